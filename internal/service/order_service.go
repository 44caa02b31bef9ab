package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/repository"
	"github.com/ignatzorin/freelance-market/internal/validation"
)

// OrderRepository описывает зависимости OrderService от слоя хранилища.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Order, error)
	ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	ListCompletedByClient(ctx context.Context, clientID uuid.UUID) ([]models.Order, error)
}

// ProjectRepoForOrders описывает доступ к проектам из сервиса заказов.
type ProjectRepoForOrders interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
}

// OrderService инкапсулирует бизнес-логику заказов.
type OrderService struct {
	repo     OrderRepository
	projects ProjectRepoForOrders
	events   EventPublisher
}

// CreateOrderInput содержит данные заказа, создаваемого фрилансером
// напрямую, минуя принятие ставки. Цена не передаётся: она берётся
// из бюджета проекта.
type CreateOrderInput struct {
	ProjectID uuid.UUID
	StartDate models.Date
	Deadline  models.Date
}

// orderTransitions задаёт переходы статусной машины заказа:
// действие клиента допустимо только из одного исходного статуса.
var orderTransitions = map[string]struct{ from, to string }{
	models.OrderActionClientApprove:  {models.OrderStatusPending, models.OrderStatusInProgress},
	models.OrderActionClientReject:   {models.OrderStatusPending, models.OrderStatusCancelled},
	models.OrderActionClientComplete: {models.OrderStatusInProgress, models.OrderStatusCompleted},
}

// NewOrderService создаёт сервис заказов.
func NewOrderService(repo OrderRepository, projects ProjectRepoForOrders, events EventPublisher) *OrderService {
	return &OrderService{repo: repo, projects: projects, events: orPublisher(events)}
}

// CreateOrder создаёт заказ напрямую в статусе "pending", минуя ставки.
// Доступно только фрилансеру на чужой проект; цена фиксируется по
// бюджету проекта. Для пары (проект, фрилансер) допустим один заказ.
func (s *OrderService) CreateOrder(ctx context.Context, callerID uuid.UUID, callerRole string, in CreateOrderInput) (*models.Order, error) {
	if callerRole != models.RoleFreelancer {
		return nil, apperror.Forbidden("создавать заказ напрямую может только фрилансер")
	}
	if err := validation.ValidateDateRange(in.StartDate, in.Deadline); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	project, err := s.projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperror.NotFound("проект не найден")
		}
		return nil, err
	}

	if project.ClientID == callerID {
		return nil, apperror.Forbidden("нельзя создать заказ на собственный проект")
	}
	if project.Budget <= 0 {
		return nil, apperror.Validation("у проекта не задан бюджет")
	}

	order := &models.Order{
		ProjectID:     in.ProjectID,
		ClientID:      project.ClientID,
		FreelancerID:  callerID,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.OrderPaymentStatusUnpaid,
		StartDate:     in.StartDate,
		Deadline:      in.Deadline,
		Price:         project.Budget,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		if errors.Is(err, repository.ErrOrderExists) {
			return nil, apperror.Conflict("заказ для этой пары проект-фрилансер уже существует")
		}
		return nil, err
	}

	s.events.Publish(order.ClientID, EventOrderCreated, order)

	return order, nil
}

// GetOrder возвращает заказ. Доступен участникам заказа и админу.
func (s *OrderService) GetOrder(ctx context.Context, callerID uuid.UUID, callerRole string, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, apperror.NotFound("заказ не найден")
		}
		return nil, err
	}

	if callerRole != models.RoleAdmin && order.ClientID != callerID && order.FreelancerID != callerID {
		return nil, apperror.Forbidden("вы не участник этого заказа")
	}

	return order, nil
}

// ProcessOrder выполняет действие над заказом. Каждое действие
// допустимо ровно из одного статуса, попытка перехода из другого
// статуса отклоняется как недопустимое состояние.
func (s *OrderService) ProcessOrder(ctx context.Context, callerID uuid.UUID, callerRole string, orderID uuid.UUID, action string) (*models.Order, error) {
	transition, ok := orderTransitions[action]
	if !ok {
		return nil, apperror.Validation(fmt.Sprintf("неизвестное действие %q", action))
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, apperror.NotFound("заказ не найден")
		}
		return nil, err
	}

	if callerRole != models.RoleAdmin && order.ClientID != callerID && order.FreelancerID != callerID {
		return nil, apperror.Forbidden("вы не участник этого заказа")
	}

	if order.Status != transition.from {
		return nil, apperror.InvalidState(fmt.Sprintf(
			"действие %q недопустимо для заказа в статусе %q", action, order.Status,
		))
	}

	if err := s.repo.UpdateStatus(ctx, orderID, transition.to); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, apperror.NotFound("заказ не найден")
		}
		return nil, err
	}

	order.Status = transition.to

	s.events.Publish(order.ClientID, EventOrderStatus, order)
	s.events.Publish(order.FreelancerID, EventOrderStatus, order)

	return order, nil
}

// ListClientOrders возвращает заказы клиента.
func (s *OrderService) ListClientOrders(ctx context.Context, clientID uuid.UUID) ([]models.Order, error) {
	return s.repo.ListByClient(ctx, clientID)
}

// ListFreelancerOrders возвращает заказы фрилансера.
func (s *OrderService) ListFreelancerOrders(ctx context.Context, freelancerID uuid.UUID) ([]models.Order, error) {
	return s.repo.ListByFreelancer(ctx, freelancerID)
}

// ListAllOrders возвращает все заказы. Только для админа.
func (s *OrderService) ListAllOrders(ctx context.Context, callerRole string) ([]models.Order, error) {
	if callerRole != models.RoleAdmin {
		return nil, apperror.ErrForbidden
	}
	return s.repo.ListAll(ctx)
}

// ListCompletedOrders возвращает завершённые заказы клиента,
// по которым можно оставить отзыв.
func (s *OrderService) ListCompletedOrders(ctx context.Context, clientID uuid.UUID) ([]models.Order, error) {
	return s.repo.ListCompletedByClient(ctx, clientID)
}

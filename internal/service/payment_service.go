package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/repository"
)

// PaymentRepository описывает зависимости PaymentService от слоя хранилища.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	Complete(ctx context.Context, paymentID uuid.UUID, transactionID string) error
	Fail(ctx context.Context, paymentID uuid.UUID) error
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.PaymentClientView, error)
	ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.Payment, error)
	ListAllAdmin(ctx context.Context) ([]models.PaymentAdminView, error)
}

// OrderRepoForPayments описывает доступ к заказам из сервиса платежей.
type OrderRepoForPayments interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

// PaymentService инкапсулирует бизнес-логику платежей.
type PaymentService struct {
	repo   PaymentRepository
	orders OrderRepoForPayments
	events EventPublisher
}

// CreatePaymentInput содержит данные нового платежа.
type CreatePaymentInput struct {
	OrderID       uuid.UUID
	Amount        float64
	PaymentMethod string
}

// SetPaymentStatusInput содержит данные смены статуса платежа.
type SetPaymentStatusInput struct {
	PaymentID     uuid.UUID
	Status        string
	TransactionID *string
}

// NewPaymentService создаёт сервис платежей.
func NewPaymentService(repo PaymentRepository, orders OrderRepoForPayments, events EventPublisher) *PaymentService {
	return &PaymentService{repo: repo, orders: orders, events: orPublisher(events)}
}

// CreatePayment создаёт платёж по заказу в статусе "pending".
// Платить может только клиент заказа и только по неоплаченному заказу.
func (s *PaymentService) CreatePayment(ctx context.Context, clientID uuid.UUID, in CreatePaymentInput) (*models.Payment, error) {
	if in.Amount < models.MinPaymentAmount {
		return nil, apperror.Validation(fmt.Sprintf("сумма платежа должна быть не меньше %v", models.MinPaymentAmount))
	}
	if _, ok := models.ValidPaymentMethods[in.PaymentMethod]; !ok {
		return nil, apperror.Validation(fmt.Sprintf("неизвестный способ оплаты %q", in.PaymentMethod))
	}

	order, err := s.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, apperror.NotFound("заказ не найден")
		}
		return nil, err
	}

	if order.ClientID != clientID {
		return nil, apperror.Forbidden("заказ принадлежит другому клиенту")
	}

	if order.IsPaid() {
		return nil, apperror.InvalidState("заказ уже оплачен")
	}

	payment := &models.Payment{
		OrderID:       order.ID,
		ClientID:      order.ClientID,
		FreelancerID:  order.FreelancerID,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// SetPaymentStatus переводит платёж в "completed" или "failed".
// Для завершения обязателен идентификатор транзакции платёжного шлюза:
// платёж и пометка заказа оплаченным выполняются одной транзакцией.
func (s *PaymentService) SetPaymentStatus(ctx context.Context, callerID uuid.UUID, callerRole string, in SetPaymentStatusInput) (*models.Payment, error) {
	payment, err := s.repo.GetByID(ctx, in.PaymentID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, apperror.NotFound("платёж не найден")
		}
		return nil, err
	}

	if callerRole != models.RoleAdmin && payment.ClientID != callerID {
		return nil, apperror.Forbidden("платёж принадлежит другому клиенту")
	}

	if payment.Status != models.PaymentStatusPending {
		return nil, apperror.InvalidState(fmt.Sprintf("платёж уже в статусе %q", payment.Status))
	}

	switch in.Status {
	case models.PaymentStatusCompleted:
		if in.TransactionID == nil || *in.TransactionID == "" {
			return nil, apperror.Validation("для завершения платежа требуется идентификатор транзакции")
		}
		if err := s.repo.Complete(ctx, payment.ID, *in.TransactionID); err != nil {
			return nil, err
		}
		payment.Status = models.PaymentStatusCompleted
		payment.TransactionID = in.TransactionID
		s.events.Publish(payment.FreelancerID, EventPaymentCompleted, payment)

	case models.PaymentStatusFailed:
		if err := s.repo.Fail(ctx, payment.ID); err != nil {
			return nil, err
		}
		payment.Status = models.PaymentStatusFailed
		s.events.Publish(payment.ClientID, EventPaymentFailed, payment)

	default:
		return nil, apperror.Validation(fmt.Sprintf("недопустимый целевой статус платежа %q", in.Status))
	}

	return payment, nil
}

// GetPayment возвращает платёж. Доступен участникам и админу.
func (s *PaymentService) GetPayment(ctx context.Context, callerID uuid.UUID, callerRole string, paymentID uuid.UUID) (*models.Payment, error) {
	payment, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, apperror.NotFound("платёж не найден")
		}
		return nil, err
	}

	if callerRole != models.RoleAdmin && payment.ClientID != callerID && payment.FreelancerID != callerID {
		return nil, apperror.Forbidden("вы не участник этого платежа")
	}

	return payment, nil
}

// ListClientPayments возвращает историю платежей клиента.
func (s *PaymentService) ListClientPayments(ctx context.Context, clientID uuid.UUID) ([]models.PaymentClientView, error) {
	return s.repo.ListByClient(ctx, clientID)
}

// ListFreelancerPayments возвращает платежи в адрес фрилансера.
func (s *PaymentService) ListFreelancerPayments(ctx context.Context, freelancerID uuid.UUID) ([]models.Payment, error) {
	return s.repo.ListByFreelancer(ctx, freelancerID)
}

// ListAllPayments возвращает сводный отчёт по платежам. Только для админа.
func (s *PaymentService) ListAllPayments(ctx context.Context, callerRole string) ([]models.PaymentAdminView, error) {
	if callerRole != models.RoleAdmin {
		return nil, apperror.ErrForbidden
	}
	return s.repo.ListAllAdmin(ctx)
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-market/internal/logger"
	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/repository"
	"github.com/ignatzorin/freelance-market/internal/validation"
)

// BidRepository описывает зависимости BidService от слоя хранилища.
type BidRepository interface {
	Create(ctx context.Context, bid *models.Bid) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)
	Reject(ctx context.Context, bidID uuid.UUID) error
	Accept(ctx context.Context, bid *models.Bid, projectDeadline models.Date) (*models.Order, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Bid, error)
	ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.Bid, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Bid, error)
	ListAllAdmin(ctx context.Context) ([]models.BidAdminView, error)
}

// ProjectRepoForBids описывает доступ к проектам из сервиса ставок.
type ProjectRepoForBids interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
}

// BidService инкапсулирует бизнес-логику ставок.
type BidService struct {
	repo     BidRepository
	projects ProjectRepoForBids
	events   EventPublisher
}

// PlaceBidInput содержит данные новой ставки.
type PlaceBidInput struct {
	ProjectID uuid.UUID
	BidAmount float64
	Proposal  string
}

// NewBidService создаёт сервис ставок.
func NewBidService(repo BidRepository, projects ProjectRepoForBids, events EventPublisher) *BidService {
	return &BidService{repo: repo, projects: projects, events: orPublisher(events)}
}

// PlaceBid создаёт ставку фрилансера на открытый проект.
func (s *BidService) PlaceBid(ctx context.Context, freelancerID uuid.UUID, freelancerRole string, in PlaceBidInput) (*models.Bid, error) {
	if freelancerRole != models.RoleFreelancer {
		return nil, apperror.Forbidden("делать ставки может только фрилансер")
	}

	if err := validation.ValidateBudget(in.BidAmount); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := validation.ValidateProposal(in.Proposal); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	project, err := s.projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperror.NotFound("проект не найден")
		}
		return nil, err
	}

	if project.Status != models.ProjectStatusOpen {
		return nil, apperror.InvalidState("ставки принимаются только на открытый проект")
	}

	bid := &models.Bid{
		ProjectID:    in.ProjectID,
		FreelancerID: freelancerID,
		BidAmount:    in.BidAmount,
		Proposal:     strings.TrimSpace(in.Proposal),
	}

	if err := s.repo.Create(ctx, bid); err != nil {
		return nil, err
	}

	s.events.Publish(project.ClientID, EventBidPlaced, bid)

	return bid, nil
}

// AcceptBid принимает ставку. Ставка становится "accepted", проект
// переводится в работу с бюджетом и исполнителем из ставки, создаётся
// заказ. Всё выполняется одной транзакцией. Если заказ для пары
// (проект, фрилансер) уже существует, новый не создаётся.
func (s *BidService) AcceptBid(ctx context.Context, clientID uuid.UUID, clientRole string, bidID uuid.UUID) (*models.Bid, *models.Order, error) {
	bid, project, err := s.loadBidForDecision(ctx, clientID, clientRole, bidID)
	if err != nil {
		return nil, nil, err
	}

	order, err := s.repo.Accept(ctx, bid, project.Deadline)
	if err != nil {
		return nil, nil, err
	}

	bid.Status = models.BidStatusAccepted

	s.events.Publish(bid.FreelancerID, EventBidAccepted, bid)
	if order != nil {
		s.events.Publish(bid.FreelancerID, EventOrderCreated, order)
	} else if logger.Log != nil {
		logger.Log.WithField("bid_id", bid.ID).Warn("заказ для пары проект-фрилансер уже существует, создание пропущено")
	}

	return bid, order, nil
}

// RejectBid отклоняет ставку.
func (s *BidService) RejectBid(ctx context.Context, clientID uuid.UUID, clientRole string, bidID uuid.UUID) (*models.Bid, error) {
	bid, _, err := s.loadBidForDecision(ctx, clientID, clientRole, bidID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Reject(ctx, bid.ID); err != nil {
		return nil, err
	}

	bid.Status = models.BidStatusRejected

	s.events.Publish(bid.FreelancerID, EventBidRejected, bid)

	return bid, nil
}

// loadBidForDecision загружает ставку и проект и проверяет право
// клиента решать её судьбу. Решение допустимо только по ставке
// в статусе "pending".
func (s *BidService) loadBidForDecision(ctx context.Context, clientID uuid.UUID, clientRole string, bidID uuid.UUID) (*models.Bid, *models.Project, error) {
	bid, err := s.repo.GetByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, repository.ErrBidNotFound) {
			return nil, nil, apperror.NotFound("ставка не найдена")
		}
		return nil, nil, err
	}

	project, err := s.projects.GetByID(ctx, bid.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, nil, apperror.NotFound("проект не найден")
		}
		return nil, nil, err
	}

	if clientRole != models.RoleAdmin && project.ClientID != clientID {
		return nil, nil, apperror.Forbidden("проект принадлежит другому клиенту")
	}

	if bid.Status != models.BidStatusPending {
		return nil, nil, apperror.InvalidState("решение уже принято по этой ставке")
	}

	return bid, project, nil
}

// ListProjectBids возвращает ставки на проект. Доступно владельцу и админу.
func (s *BidService) ListProjectBids(ctx context.Context, callerID uuid.UUID, callerRole string, projectID uuid.UUID) ([]models.Bid, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperror.NotFound("проект не найден")
		}
		return nil, err
	}

	if callerRole != models.RoleAdmin && project.ClientID != callerID {
		return nil, apperror.Forbidden("проект принадлежит другому клиенту")
	}

	return s.repo.ListByProject(ctx, projectID)
}

// ListFreelancerBids возвращает ставки фрилансера.
func (s *BidService) ListFreelancerBids(ctx context.Context, freelancerID uuid.UUID) ([]models.Bid, error) {
	return s.repo.ListByFreelancer(ctx, freelancerID)
}

// ListClientBids возвращает ставки на все проекты клиента.
func (s *BidService) ListClientBids(ctx context.Context, clientID uuid.UUID) ([]models.Bid, error) {
	return s.repo.ListByClient(ctx, clientID)
}

// ListAllBids возвращает все ставки. Только для админа.
func (s *BidService) ListAllBids(ctx context.Context, callerRole string) ([]models.BidAdminView, error) {
	if callerRole != models.RoleAdmin {
		return nil, apperror.ErrForbidden
	}
	return s.repo.ListAllAdmin(ctx)
}

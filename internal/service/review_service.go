package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/repository"
	"github.com/ignatzorin/freelance-market/internal/validation"
)

// ReviewRepository описывает зависимости ReviewService от слоя хранилища.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByReviewerAndProject(ctx context.Context, reviewerID, projectID uuid.UUID) (*models.Review, error)
	ListByReviewee(ctx context.Context, revieweeID uuid.UUID) ([]models.Review, error)
	ListAllAdmin(ctx context.Context) ([]models.ReviewAdminView, error)
	GetAverageRating(ctx context.Context, freelancerID uuid.UUID) (*float64, int, error)
}

// OrderRepoForReviews описывает доступ к заказам из сервиса отзывов.
type OrderRepoForReviews interface {
	FindCompletedForReview(ctx context.Context, projectID, clientID uuid.UUID) (*models.Order, error)
}

// ReviewService инкапсулирует бизнес-логику отзывов.
type ReviewService struct {
	repo   ReviewRepository
	orders OrderRepoForReviews
	events EventPublisher
}

// AddReviewInput содержит данные нового отзыва.
type AddReviewInput struct {
	ProjectID uuid.UUID
	Rating    int
	Feedback  string
}

// NewReviewService создаёт сервис отзывов.
func NewReviewService(repo ReviewRepository, orders OrderRepoForReviews, events EventPublisher) *ReviewService {
	return &ReviewService{repo: repo, orders: orders, events: orPublisher(events)}
}

// AddReview создаёт отзыв клиента о фрилансере.
// Отзыв доступен только после завершения заказа по проекту,
// получателем становится исполнитель завершённого заказа.
// Повторный отзыв на проект отклоняется.
func (s *ReviewService) AddReview(ctx context.Context, clientID uuid.UUID, clientRole string, in AddReviewInput) (*models.Review, error) {
	if clientRole != models.RoleClient {
		return nil, apperror.Forbidden("оставлять отзывы может только клиент")
	}

	if err := validation.ValidateRating(in.Rating); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := validation.ValidateFeedback(in.Feedback); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	order, err := s.orders.FindCompletedForReview(ctx, in.ProjectID, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, apperror.Forbidden("отзыв можно оставить только после завершения заказа")
		}
		return nil, err
	}

	existing, err := s.repo.GetByReviewerAndProject(ctx, clientID, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.InvalidState("отзыв на этот проект уже оставлен")
	}

	review := &models.Review{
		ReviewerID: clientID,
		RevieweeID: order.FreelancerID,
		ProjectID:  in.ProjectID,
		Rating:     in.Rating,
		Feedback:   strings.TrimSpace(in.Feedback),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrReviewExists) {
			return nil, apperror.InvalidState("отзыв на этот проект уже оставлен")
		}
		return nil, err
	}

	s.events.Publish(review.RevieweeID, EventReviewReceived, review)

	return review, nil
}

// ListFreelancerReviews возвращает отзывы о фрилансере.
func (s *ReviewService) ListFreelancerReviews(ctx context.Context, freelancerID uuid.UUID) ([]models.Review, error) {
	return s.repo.ListByReviewee(ctx, freelancerID)
}

// GetFreelancerRating возвращает средний рейтинг и число отзывов.
// При отсутствии отзывов средний рейтинг равен nil.
func (s *ReviewService) GetFreelancerRating(ctx context.Context, freelancerID uuid.UUID) (*models.FreelancerRating, error) {
	avg, count, err := s.repo.GetAverageRating(ctx, freelancerID)
	if err != nil {
		return nil, err
	}
	return &models.FreelancerRating{Average: avg, Count: count}, nil
}

// ListAllReviews возвращает все отзывы. Только для админа.
func (s *ReviewService) ListAllReviews(ctx context.Context, callerRole string) ([]models.ReviewAdminView, error) {
	if callerRole != models.RoleAdmin {
		return nil, apperror.ErrForbidden
	}
	return s.repo.ListAllAdmin(ctx)
}

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/repository"
)

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	if args.Error(0) == nil {
		review.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockReviewRepo) GetByReviewerAndProject(ctx context.Context, reviewerID, projectID uuid.UUID) (*models.Review, error) {
	args := m.Called(ctx, reviewerID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *mockReviewRepo) ListByReviewee(ctx context.Context, revieweeID uuid.UUID) ([]models.Review, error) {
	args := m.Called(ctx, revieweeID)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *mockReviewRepo) ListAllAdmin(ctx context.Context) ([]models.ReviewAdminView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ReviewAdminView), args.Error(1)
}

func (m *mockReviewRepo) GetAverageRating(ctx context.Context, freelancerID uuid.UUID) (*float64, int, error) {
	args := m.Called(ctx, freelancerID)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*float64), args.Int(1), args.Error(2)
}

type mockOrderRepoForReviews struct {
	mock.Mock
}

func (m *mockOrderRepoForReviews) FindCompletedForReview(ctx context.Context, projectID, clientID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, projectID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func TestReviewService_AddReview_Success(t *testing.T) {
	reviewRepo := new(mockReviewRepo)
	orderRepo := new(mockOrderRepoForReviews)
	svc := NewReviewService(reviewRepo, orderRepo, nil)
	ctx := context.Background()

	clientID := uuid.New()
	freelancerID := uuid.New()
	projectID := uuid.New()

	order := &models.Order{
		ID:           uuid.New(),
		ProjectID:    projectID,
		ClientID:     clientID,
		FreelancerID: freelancerID,
		Status:       models.OrderStatusCompleted,
	}

	orderRepo.On("FindCompletedForReview", ctx, projectID, clientID).Return(order, nil)
	reviewRepo.On("GetByReviewerAndProject", ctx, clientID, projectID).Return(nil, nil)
	reviewRepo.On("Create", ctx, mock.AnythingOfType("*models.Review")).Return(nil)

	review, err := svc.AddReview(ctx, clientID, models.RoleClient, AddReviewInput{
		ProjectID: projectID,
		Rating:    5,
		Feedback:  "Отличная работа!",
	})

	assert.NoError(t, err)
	assert.NotNil(t, review)
	assert.Equal(t, freelancerID, review.RevieweeID)
	assert.Equal(t, clientID, review.ReviewerID)
	assert.Equal(t, 5, review.Rating)
}

func TestReviewService_AddReview_NotClient(t *testing.T) {
	svc := NewReviewService(new(mockReviewRepo), new(mockOrderRepoForReviews), nil)

	_, err := svc.AddReview(context.Background(), uuid.New(), models.RoleFreelancer, AddReviewInput{
		ProjectID: uuid.New(),
		Rating:    5,
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))
}

func TestReviewService_AddReview_InvalidRating(t *testing.T) {
	svc := NewReviewService(new(mockReviewRepo), new(mockOrderRepoForReviews), nil)
	ctx := context.Background()
	clientID := uuid.New()

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.AddReview(ctx, clientID, models.RoleClient, AddReviewInput{
			ProjectID: uuid.New(),
			Rating:    rating,
		})
		assert.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	}
}

func TestReviewService_AddReview_NoCompletedOrder(t *testing.T) {
	reviewRepo := new(mockReviewRepo)
	orderRepo := new(mockOrderRepoForReviews)
	svc := NewReviewService(reviewRepo, orderRepo, nil)
	ctx := context.Background()

	clientID := uuid.New()
	projectID := uuid.New()

	orderRepo.On("FindCompletedForReview", ctx, projectID, clientID).Return(nil, repository.ErrOrderNotFound)

	_, err := svc.AddReview(ctx, clientID, models.RoleClient, AddReviewInput{
		ProjectID: projectID,
		Rating:    4,
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))
	assert.Contains(t, err.Error(), "после завершения")
}

func TestReviewService_AddReview_AlreadyReviewed(t *testing.T) {
	reviewRepo := new(mockReviewRepo)
	orderRepo := new(mockOrderRepoForReviews)
	svc := NewReviewService(reviewRepo, orderRepo, nil)
	ctx := context.Background()

	clientID := uuid.New()
	freelancerID := uuid.New()
	projectID := uuid.New()

	order := &models.Order{
		ID:           uuid.New(),
		ProjectID:    projectID,
		ClientID:     clientID,
		FreelancerID: freelancerID,
		Status:       models.OrderStatusCompleted,
	}
	existing := &models.Review{ID: uuid.New()}

	orderRepo.On("FindCompletedForReview", ctx, projectID, clientID).Return(order, nil)
	reviewRepo.On("GetByReviewerAndProject", ctx, clientID, projectID).Return(existing, nil)

	_, err := svc.AddReview(ctx, clientID, models.RoleClient, AddReviewInput{
		ProjectID: projectID,
		Rating:    5,
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
}

func TestReviewService_GetFreelancerRating(t *testing.T) {
	reviewRepo := new(mockReviewRepo)
	svc := NewReviewService(reviewRepo, new(mockOrderRepoForReviews), nil)
	ctx := context.Background()

	freelancerID := uuid.New()
	avg := 4.5
	reviewRepo.On("GetAverageRating", ctx, freelancerID).Return(&avg, 10, nil)

	rating, err := svc.GetFreelancerRating(ctx, freelancerID)
	assert.NoError(t, err)
	assert.NotNil(t, rating.Average)
	assert.Equal(t, 4.5, *rating.Average)
	assert.Equal(t, 10, rating.Count)
}

func TestReviewService_GetFreelancerRating_NoReviews(t *testing.T) {
	reviewRepo := new(mockReviewRepo)
	svc := NewReviewService(reviewRepo, new(mockOrderRepoForReviews), nil)
	ctx := context.Background()

	freelancerID := uuid.New()
	reviewRepo.On("GetAverageRating", ctx, freelancerID).Return(nil, 0, nil)

	rating, err := svc.GetFreelancerRating(ctx, freelancerID)
	assert.NoError(t, err)
	assert.Nil(t, rating.Average)
	assert.Equal(t, 0, rating.Count)
}

func TestReviewService_ListAllReviews_AdminOnly(t *testing.T) {
	reviewRepo := new(mockReviewRepo)
	svc := NewReviewService(reviewRepo, new(mockOrderRepoForReviews), nil)
	ctx := context.Background()

	_, err := svc.ListAllReviews(ctx, models.RoleClient)
	assert.True(t, apperror.IsForbidden(err))

	reviewRepo.On("ListAllAdmin", ctx).Return([]models.ReviewAdminView{{Rating: 5}}, nil)
	reviews, err := svc.ListAllReviews(ctx, models.RoleAdmin)
	assert.NoError(t, err)
	assert.Len(t, reviews, 1)
}

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

type mockBidRepo struct {
	mock.Mock
}

func (m *mockBidRepo) Create(ctx context.Context, bid *models.Bid) error {
	args := m.Called(ctx, bid)
	if args.Error(0) == nil {
		bid.ID = uuid.New()
		bid.Status = models.BidStatusPending
	}
	return args.Error(0)
}

func (m *mockBidRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bid), args.Error(1)
}

func (m *mockBidRepo) Reject(ctx context.Context, bidID uuid.UUID) error {
	args := m.Called(ctx, bidID)
	return args.Error(0)
}

func (m *mockBidRepo) Accept(ctx context.Context, bid *models.Bid, projectDeadline models.Date) (*models.Order, error) {
	args := m.Called(ctx, bid, projectDeadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockBidRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Bid, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]models.Bid), args.Error(1)
}

func (m *mockBidRepo) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.Bid, error) {
	args := m.Called(ctx, freelancerID)
	return args.Get(0).([]models.Bid), args.Error(1)
}

func (m *mockBidRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Bid, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]models.Bid), args.Error(1)
}

func (m *mockBidRepo) ListAllAdmin(ctx context.Context) ([]models.BidAdminView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.BidAdminView), args.Error(1)
}

type mockProjectRepoForBids struct {
	mock.Mock
}

func (m *mockProjectRepoForBids) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) Publish(userID uuid.UUID, event string, payload interface{}) {
	p.events = append(p.events, event)
}

func TestBidService_PlaceBid_Success(t *testing.T) {
	bidRepo := new(mockBidRepo)
	projectRepo := new(mockProjectRepoForBids)
	events := &recordingPublisher{}
	svc := NewBidService(bidRepo, projectRepo, events)
	ctx := context.Background()

	freelancerID := uuid.New()
	projectID := uuid.New()
	project := &models.Project{
		ID:       projectID,
		ClientID: uuid.New(),
		Status:   models.ProjectStatusOpen,
	}

	projectRepo.On("GetByID", ctx, projectID).Return(project, nil)
	bidRepo.On("Create", ctx, mock.AnythingOfType("*models.Bid")).Return(nil)

	bid, err := svc.PlaceBid(ctx, freelancerID, models.RoleFreelancer, PlaceBidInput{
		ProjectID: projectID,
		BidAmount: 50000,
		Proposal:  "Сделаю за две недели, есть опыт похожих проектов.",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.BidStatusPending, bid.Status)
	assert.Equal(t, freelancerID, bid.FreelancerID)
	assert.Contains(t, events.events, EventBidPlaced)
}

func TestBidService_PlaceBid_ZeroAmount(t *testing.T) {
	bidRepo := new(mockBidRepo)
	projectRepo := new(mockProjectRepoForBids)
	svc := NewBidService(bidRepo, projectRepo, nil)
	ctx := context.Background()

	projectID := uuid.New()
	project := &models.Project{ID: projectID, ClientID: uuid.New(), Status: models.ProjectStatusOpen}

	projectRepo.On("GetByID", ctx, projectID).Return(project, nil)
	bidRepo.On("Create", ctx, mock.AnythingOfType("*models.Bid")).Return(nil)

	bid, err := svc.PlaceBid(ctx, uuid.New(), models.RoleFreelancer, PlaceBidInput{
		ProjectID: projectID,
		BidAmount: 0,
		Proposal:  "Готов сделать бесплатно ради портфолио.",
	})

	assert.NoError(t, err)
	assert.Equal(t, 0.0, bid.BidAmount)
}

func TestBidService_PlaceBid_NotFreelancer(t *testing.T) {
	svc := NewBidService(new(mockBidRepo), new(mockProjectRepoForBids), nil)

	_, err := svc.PlaceBid(context.Background(), uuid.New(), models.RoleClient, PlaceBidInput{
		ProjectID: uuid.New(),
		BidAmount: 1000,
		Proposal:  "Хочу взяться за этот проект.",
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))
}

func TestBidService_PlaceBid_ProjectNotOpen(t *testing.T) {
	bidRepo := new(mockBidRepo)
	projectRepo := new(mockProjectRepoForBids)
	svc := NewBidService(bidRepo, projectRepo, nil)
	ctx := context.Background()

	projectID := uuid.New()
	project := &models.Project{ID: projectID, Status: models.ProjectStatusInProgress}
	projectRepo.On("GetByID", ctx, projectID).Return(project, nil)

	_, err := svc.PlaceBid(ctx, uuid.New(), models.RoleFreelancer, PlaceBidInput{
		ProjectID: projectID,
		BidAmount: 1000,
		Proposal:  "Хочу взяться за этот проект.",
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
}

func TestBidService_AcceptBid_Success(t *testing.T) {
	bidRepo := new(mockBidRepo)
	projectRepo := new(mockProjectRepoForBids)
	events := &recordingPublisher{}
	svc := NewBidService(bidRepo, projectRepo, events)
	ctx := context.Background()

	clientID := uuid.New()
	freelancerID := uuid.New()
	projectID := uuid.New()
	bidID := uuid.New()
	deadline := models.NewDate(2027, 6, 1)

	bid := &models.Bid{
		ID:           bidID,
		ProjectID:    projectID,
		FreelancerID: freelancerID,
		BidAmount:    45000,
		Status:       models.BidStatusPending,
	}
	project := &models.Project{
		ID:       projectID,
		ClientID: clientID,
		Status:   models.ProjectStatusOpen,
		Deadline: deadline,
	}
	order := &models.Order{
		ID:            uuid.New(),
		ProjectID:     projectID,
		ClientID:      clientID,
		FreelancerID:  freelancerID,
		Status:        models.OrderStatusInProgress,
		PaymentStatus: models.OrderPaymentStatusUnpaid,
		Price:         45000,
	}

	bidRepo.On("GetByID", ctx, bidID).Return(bid, nil)
	projectRepo.On("GetByID", ctx, projectID).Return(project, nil)
	bidRepo.On("Accept", ctx, bid, deadline).Return(order, nil)

	acceptedBid, createdOrder, err := svc.AcceptBid(ctx, clientID, models.RoleClient, bidID)

	assert.NoError(t, err)
	assert.Equal(t, models.BidStatusAccepted, acceptedBid.Status)
	assert.NotNil(t, createdOrder)
	assert.Equal(t, models.OrderStatusInProgress, createdOrder.Status)
	assert.Equal(t, models.OrderPaymentStatusUnpaid, createdOrder.PaymentStatus)
	assert.Contains(t, events.events, EventBidAccepted)
	assert.Contains(t, events.events, EventOrderCreated)
}

func TestBidService_AcceptBid_ForeignProject(t *testing.T) {
	bidRepo := new(mockBidRepo)
	projectRepo := new(mockProjectRepoForBids)
	svc := NewBidService(bidRepo, projectRepo, nil)
	ctx := context.Background()

	projectID := uuid.New()
	bidID := uuid.New()

	bid := &models.Bid{ID: bidID, ProjectID: projectID, Status: models.BidStatusPending}
	project := &models.Project{ID: projectID, ClientID: uuid.New(), Status: models.ProjectStatusOpen}

	bidRepo.On("GetByID", ctx, bidID).Return(bid, nil)
	projectRepo.On("GetByID", ctx, projectID).Return(project, nil)

	_, _, err := svc.AcceptBid(ctx, uuid.New(), models.RoleClient, bidID)

	assert.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))
}

func TestBidService_AcceptBid_AlreadyDecided(t *testing.T) {
	bidRepo := new(mockBidRepo)
	projectRepo := new(mockProjectRepoForBids)
	svc := NewBidService(bidRepo, projectRepo, nil)
	ctx := context.Background()

	clientID := uuid.New()
	projectID := uuid.New()
	bidID := uuid.New()

	bid := &models.Bid{ID: bidID, ProjectID: projectID, Status: models.BidStatusAccepted}
	project := &models.Project{ID: projectID, ClientID: clientID, Status: models.ProjectStatusInProgress}

	bidRepo.On("GetByID", ctx, bidID).Return(bid, nil)
	projectRepo.On("GetByID", ctx, projectID).Return(project, nil)

	_, _, err := svc.AcceptBid(ctx, clientID, models.RoleClient, bidID)

	assert.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
}

func TestBidService_RejectBid_Success(t *testing.T) {
	bidRepo := new(mockBidRepo)
	projectRepo := new(mockProjectRepoForBids)
	events := &recordingPublisher{}
	svc := NewBidService(bidRepo, projectRepo, events)
	ctx := context.Background()

	clientID := uuid.New()
	projectID := uuid.New()
	bidID := uuid.New()

	bid := &models.Bid{ID: bidID, ProjectID: projectID, FreelancerID: uuid.New(), Status: models.BidStatusPending}
	project := &models.Project{ID: projectID, ClientID: clientID, Status: models.ProjectStatusOpen}

	bidRepo.On("GetByID", ctx, bidID).Return(bid, nil)
	projectRepo.On("GetByID", ctx, projectID).Return(project, nil)
	bidRepo.On("Reject", ctx, bidID).Return(nil)

	rejected, err := svc.RejectBid(ctx, clientID, models.RoleClient, bidID)

	assert.NoError(t, err)
	assert.Equal(t, models.BidStatusRejected, rejected.Status)
	assert.Contains(t, events.events, EventBidRejected)
}

func TestBidService_RejectBid_NotFound(t *testing.T) {
	bidRepo := new(mockBidRepo)
	svc := NewBidService(bidRepo, new(mockProjectRepoForBids), nil)
	ctx := context.Background()

	bidID := uuid.New()
	bidRepo.On("GetByID", ctx, bidID).Return(nil, repository.ErrBidNotFound)

	_, err := svc.RejectBid(ctx, uuid.New(), models.RoleClient, bidID)

	assert.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestBidService_ListProjectBids_OwnerOnly(t *testing.T) {
	bidRepo := new(mockBidRepo)
	projectRepo := new(mockProjectRepoForBids)
	svc := NewBidService(bidRepo, projectRepo, nil)
	ctx := context.Background()

	clientID := uuid.New()
	projectID := uuid.New()
	project := &models.Project{ID: projectID, ClientID: clientID, Status: models.ProjectStatusOpen}

	projectRepo.On("GetByID", ctx, projectID).Return(project, nil)

	_, err := svc.ListProjectBids(ctx, uuid.New(), models.RoleClient, projectID)
	assert.True(t, apperror.IsForbidden(err))

	bidRepo.On("ListByProject", ctx, projectID).Return([]models.Bid{{ID: uuid.New()}}, nil)
	bids, err := svc.ListProjectBids(ctx, clientID, models.RoleClient, projectID)
	assert.NoError(t, err)
	assert.Len(t, bids, 1)
}

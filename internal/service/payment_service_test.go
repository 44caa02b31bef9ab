package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
)

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	if args.Error(0) == nil {
		payment.ID = uuid.New()
		payment.Status = models.PaymentStatusPending
	}
	return args.Error(0)
}

func (m *mockPaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *mockPaymentRepo) Complete(ctx context.Context, paymentID uuid.UUID, transactionID string) error {
	args := m.Called(ctx, paymentID, transactionID)
	return args.Error(0)
}

func (m *mockPaymentRepo) Fail(ctx context.Context, paymentID uuid.UUID) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

func (m *mockPaymentRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.PaymentClientView, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]models.PaymentClientView), args.Error(1)
}

func (m *mockPaymentRepo) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.Payment, error) {
	args := m.Called(ctx, freelancerID)
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *mockPaymentRepo) ListAllAdmin(ctx context.Context) ([]models.PaymentAdminView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.PaymentAdminView), args.Error(1)
}

type mockOrderRepoForPayments struct {
	mock.Mock
}

func (m *mockOrderRepoForPayments) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func TestPaymentService_CreatePayment_Success(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	orderRepo := new(mockOrderRepoForPayments)
	svc := NewPaymentService(paymentRepo, orderRepo, nil)
	ctx := context.Background()

	clientID := uuid.New()
	freelancerID := uuid.New()
	orderID := uuid.New()
	order := &models.Order{
		ID:            orderID,
		ClientID:      clientID,
		FreelancerID:  freelancerID,
		Status:        models.OrderStatusInProgress,
		PaymentStatus: models.OrderPaymentStatusUnpaid,
	}

	orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
	paymentRepo.On("Create", ctx, mock.AnythingOfType("*models.Payment")).Return(nil)

	payment, err := svc.CreatePayment(ctx, clientID, CreatePaymentInput{
		OrderID:       orderID,
		Amount:        45000,
		PaymentMethod: models.PaymentMethodCreditCard,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Equal(t, freelancerID, payment.FreelancerID)
	assert.Nil(t, payment.TransactionID)
}

func TestPaymentService_CreatePayment_BadAmount(t *testing.T) {
	svc := NewPaymentService(new(mockPaymentRepo), new(mockOrderRepoForPayments), nil)

	_, err := svc.CreatePayment(context.Background(), uuid.New(), CreatePaymentInput{
		OrderID:       uuid.New(),
		Amount:        0,
		PaymentMethod: models.PaymentMethodPayPal,
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestPaymentService_CreatePayment_BadMethod(t *testing.T) {
	svc := NewPaymentService(new(mockPaymentRepo), new(mockOrderRepoForPayments), nil)

	_, err := svc.CreatePayment(context.Background(), uuid.New(), CreatePaymentInput{
		OrderID:       uuid.New(),
		Amount:        100,
		PaymentMethod: "cash",
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestPaymentService_CreatePayment_OrderAlreadyPaid(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	orderRepo := new(mockOrderRepoForPayments)
	svc := NewPaymentService(paymentRepo, orderRepo, nil)
	ctx := context.Background()

	clientID := uuid.New()
	orderID := uuid.New()
	order := &models.Order{
		ID:            orderID,
		ClientID:      clientID,
		PaymentStatus: models.OrderPaymentStatusPaid,
	}

	orderRepo.On("GetByID", ctx, orderID).Return(order, nil)

	_, err := svc.CreatePayment(ctx, clientID, CreatePaymentInput{
		OrderID:       orderID,
		Amount:        100,
		PaymentMethod: models.PaymentMethodBankTransfer,
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
}

func TestPaymentService_CreatePayment_ForeignOrder(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	orderRepo := new(mockOrderRepoForPayments)
	svc := NewPaymentService(paymentRepo, orderRepo, nil)
	ctx := context.Background()

	orderID := uuid.New()
	order := &models.Order{ID: orderID, ClientID: uuid.New()}
	orderRepo.On("GetByID", ctx, orderID).Return(order, nil)

	_, err := svc.CreatePayment(ctx, uuid.New(), CreatePaymentInput{
		OrderID:       orderID,
		Amount:        100,
		PaymentMethod: models.PaymentMethodPayPal,
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))
}

func TestPaymentService_SetPaymentStatus_Completed(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	events := &recordingPublisher{}
	svc := NewPaymentService(paymentRepo, new(mockOrderRepoForPayments), events)
	ctx := context.Background()

	clientID := uuid.New()
	paymentID := uuid.New()
	payment := &models.Payment{
		ID:           paymentID,
		ClientID:     clientID,
		FreelancerID: uuid.New(),
		Status:       models.PaymentStatusPending,
	}
	txID := "txn_1234567890"

	paymentRepo.On("GetByID", ctx, paymentID).Return(payment, nil)
	paymentRepo.On("Complete", ctx, paymentID, txID).Return(nil)

	updated, err := svc.SetPaymentStatus(ctx, clientID, models.RoleClient, SetPaymentStatusInput{
		PaymentID:     paymentID,
		Status:        models.PaymentStatusCompleted,
		TransactionID: &txID,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, updated.Status)
	assert.Equal(t, txID, *updated.TransactionID)
	assert.Contains(t, events.events, EventPaymentCompleted)
}

func TestPaymentService_SetPaymentStatus_CompletedWithoutTransaction(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	svc := NewPaymentService(paymentRepo, new(mockOrderRepoForPayments), nil)
	ctx := context.Background()

	clientID := uuid.New()
	paymentID := uuid.New()
	payment := &models.Payment{ID: paymentID, ClientID: clientID, Status: models.PaymentStatusPending}

	paymentRepo.On("GetByID", ctx, paymentID).Return(payment, nil)

	_, err := svc.SetPaymentStatus(ctx, clientID, models.RoleClient, SetPaymentStatusInput{
		PaymentID: paymentID,
		Status:    models.PaymentStatusCompleted,
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	paymentRepo.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_SetPaymentStatus_Failed(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	events := &recordingPublisher{}
	svc := NewPaymentService(paymentRepo, new(mockOrderRepoForPayments), events)
	ctx := context.Background()

	clientID := uuid.New()
	paymentID := uuid.New()
	payment := &models.Payment{ID: paymentID, ClientID: clientID, Status: models.PaymentStatusPending}

	paymentRepo.On("GetByID", ctx, paymentID).Return(payment, nil)
	paymentRepo.On("Fail", ctx, paymentID).Return(nil)

	updated, err := svc.SetPaymentStatus(ctx, clientID, models.RoleClient, SetPaymentStatusInput{
		PaymentID: paymentID,
		Status:    models.PaymentStatusFailed,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, updated.Status)
	assert.Contains(t, events.events, EventPaymentFailed)
}

func TestPaymentService_SetPaymentStatus_AlreadyDecided(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	svc := NewPaymentService(paymentRepo, new(mockOrderRepoForPayments), nil)
	ctx := context.Background()

	clientID := uuid.New()
	paymentID := uuid.New()
	payment := &models.Payment{ID: paymentID, ClientID: clientID, Status: models.PaymentStatusCompleted}

	paymentRepo.On("GetByID", ctx, paymentID).Return(payment, nil)

	txID := "txn_retry"
	_, err := svc.SetPaymentStatus(ctx, clientID, models.RoleClient, SetPaymentStatusInput{
		PaymentID:     paymentID,
		Status:        models.PaymentStatusCompleted,
		TransactionID: &txID,
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
}

func TestPaymentService_ListAllPayments_AdminOnly(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	svc := NewPaymentService(paymentRepo, new(mockOrderRepoForPayments), nil)
	ctx := context.Background()

	_, err := svc.ListAllPayments(ctx, models.RoleClient)
	assert.True(t, apperror.IsForbidden(err))

	paymentRepo.On("ListAllAdmin", ctx).Return([]models.PaymentAdminView{{Amount: 100}}, nil)
	payments, err := svc.ListAllPayments(ctx, models.RoleAdmin)
	assert.NoError(t, err)
	assert.Len(t, payments, 1)
}

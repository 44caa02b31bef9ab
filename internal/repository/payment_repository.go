package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/repository/common"
)

// ErrPaymentNotFound возвращается, когда платёж не найден.
var ErrPaymentNotFound = errors.New("payment not found")

// PaymentRepository отвечает за работу с таблицей payments.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository создаёт экземпляр репозитория.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create создаёт платёж со статусом "pending".
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (order_id, client_id, freelancer_id, amount, status, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		payment.OrderID, payment.ClientID, payment.FreelancerID,
		payment.Amount, models.PaymentStatusPending, payment.PaymentMethod,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt); err != nil {
		return fmt.Errorf("payment repository: create %w", err)
	}

	payment.Status = models.PaymentStatusPending
	return nil
}

// GetByID возвращает платёж по идентификатору.
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return common.GetByID[models.Payment](ctx, r.db, "payments", id, ErrPaymentNotFound)
}

// Complete завершает платёж и помечает заказ оплаченным.
// Обе записи меняются в одной транзакции: платёж не может числиться
// завершённым при неоплаченном заказе.
func (r *PaymentRepository) Complete(ctx context.Context, paymentID uuid.UUID, transactionID string) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var orderID uuid.UUID
		err := tx.QueryRowxContext(ctx, `
			UPDATE payments
			SET status = $2, transaction_id = $3, updated_at = NOW()
			WHERE id = $1
			RETURNING order_id
		`, paymentID, models.PaymentStatusCompleted, transactionID).Scan(&orderID)
		if err != nil {
			return fmt.Errorf("payment repository: complete %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE orders SET payment_status = $2, updated_at = NOW() WHERE id = $1
		`, orderID, models.OrderPaymentStatusPaid); err != nil {
			return fmt.Errorf("payment repository: mark order paid %w", err)
		}

		return nil
	})
}

// Fail переводит платёж в статус "failed". Заказ не затрагивается.
func (r *PaymentRepository) Fail(ctx context.Context, paymentID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payments SET status = $2, updated_at = NOW() WHERE id = $1
	`, paymentID, models.PaymentStatusFailed)
	if err != nil {
		return fmt.Errorf("payment repository: fail %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("payment repository: rows affected %w", err)
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// ListByClient возвращает историю платежей клиента с названиями проектов.
func (r *PaymentRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.PaymentClientView, error) {
	var payments []models.PaymentClientView
	err := r.db.SelectContext(ctx, &payments, `
		SELECT pay.id,
			p.title AS project_title,
			f.name AS freelancer_name,
			pay.amount,
			pay.status,
			pay.created_at
		FROM payments pay
		JOIN orders o ON o.id = pay.order_id
		JOIN projects p ON p.id = o.project_id
		JOIN users f ON f.id = pay.freelancer_id
		WHERE pay.client_id = $1
		ORDER BY pay.created_at DESC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("payment repository: list by client %w", err)
	}
	return payments, nil
}

// ListByFreelancer возвращает платежи в адрес фрилансера.
func (r *PaymentRepository) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.SelectContext(ctx, &payments, `
		SELECT * FROM payments WHERE freelancer_id = $1 ORDER BY created_at DESC
	`, freelancerID)
	if err != nil {
		return nil, fmt.Errorf("payment repository: list by freelancer %w", err)
	}
	return payments, nil
}

// ListAllAdmin возвращает сводный отчёт по всем платежам для админа.
func (r *PaymentRepository) ListAllAdmin(ctx context.Context) ([]models.PaymentAdminView, error) {
	var payments []models.PaymentAdminView
	err := r.db.SelectContext(ctx, &payments, `
		SELECT pay.id,
			p.title AS project_title,
			c.name AS client_name,
			f.name AS freelancer_name,
			pay.amount,
			pay.status,
			pay.created_at
		FROM payments pay
		JOIN orders o ON o.id = pay.order_id
		JOIN projects p ON p.id = o.project_id
		JOIN users c ON c.id = pay.client_id
		JOIN users f ON f.id = pay.freelancer_id
		ORDER BY pay.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("payment repository: list all %w", err)
	}
	return payments, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/repository/common"
)

// ErrOrderNotFound возвращается, когда заказ не найден.
var ErrOrderNotFound = errors.New("order not found")

// ErrOrderExists возвращается при попытке создать второй заказ
// для пары (проект, фрилансер).
var ErrOrderExists = errors.New("order already exists for this project")

// OrderRepository отвечает за работу с таблицей orders.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository создаёт экземпляр репозитория.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create создаёт заказ. Уникальность пары (project_id, freelancer_id)
// гарантирует ограничение в базе, а не только предварительная проверка.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (project_id, client_id, freelancer_id, status, payment_status, start_date, deadline, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		order.ProjectID, order.ClientID, order.FreelancerID, order.Status,
		order.PaymentStatus, order.StartDate, order.Deadline, order.Price,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		if common.IsUniqueViolation(err, "orders_project_freelancer_key") {
			return ErrOrderExists
		}
		return fmt.Errorf("order repository: create %w", err)
	}

	return nil
}

// GetByID возвращает заказ по идентификатору.
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return common.GetByID[models.Order](ctx, r.db, "orders", id, ErrOrderNotFound)
}

// ExistsForPair проверяет, есть ли уже заказ для пары (проект, фрилансер).
func (r *OrderRepository) ExistsForPair(ctx context.Context, projectID, freelancerID uuid.UUID) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM orders WHERE project_id = $1 AND freelancer_id = $2
	`, projectID, freelancerID)
	if err != nil {
		return false, fmt.Errorf("order repository: exists for pair %w", err)
	}
	return count > 0, nil
}

// UpdateStatus переводит заказ в новый статус.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1
	`, orderID, status)
	if err != nil {
		return fmt.Errorf("order repository: update status %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("order repository: rows affected %w", err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// FindCompletedForReview ищет завершённый заказ клиента по проекту.
// Используется как гейт для создания отзыва.
func (r *OrderRepository) FindCompletedForReview(ctx context.Context, projectID, clientID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.GetContext(ctx, &order, `
		SELECT * FROM orders
		WHERE project_id = $1 AND client_id = $2 AND status = $3
	`, projectID, clientID, models.OrderStatusCompleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("order repository: find completed for review %w", err)
	}
	return &order, nil
}

// ListByClient возвращает заказы клиента.
func (r *OrderRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.SelectContext(ctx, &orders, `
		SELECT * FROM orders WHERE client_id = $1 ORDER BY created_at DESC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("order repository: list by client %w", err)
	}
	return orders, nil
}

// ListByFreelancer возвращает заказы фрилансера.
func (r *OrderRepository) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.SelectContext(ctx, &orders, `
		SELECT * FROM orders WHERE freelancer_id = $1 ORDER BY created_at DESC
	`, freelancerID)
	if err != nil {
		return nil, fmt.Errorf("order repository: list by freelancer %w", err)
	}
	return orders, nil
}

// ListAll возвращает все заказы (для админа).
func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.SelectContext(ctx, &orders, `SELECT * FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("order repository: list all %w", err)
	}
	return orders, nil
}

// ListCompletedByClient возвращает завершённые заказы клиента
// (кандидаты на отзыв).
func (r *OrderRepository) ListCompletedByClient(ctx context.Context, clientID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.SelectContext(ctx, &orders, `
		SELECT * FROM orders WHERE client_id = $1 AND status = $2 ORDER BY created_at DESC
	`, clientID, models.OrderStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("order repository: list completed by client %w", err)
	}
	return orders, nil
}

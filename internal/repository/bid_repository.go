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

// ErrBidNotFound возвращается, когда ставка не найдена.
var ErrBidNotFound = errors.New("bid not found")

// BidRepository отвечает за работу с таблицей bids.
type BidRepository struct {
	db *sqlx.DB
}

// NewBidRepository создаёт экземпляр репозитория.
func NewBidRepository(db *sqlx.DB) *BidRepository {
	return &BidRepository{db: db}
}

// Create создаёт ставку со статусом "pending".
func (r *BidRepository) Create(ctx context.Context, bid *models.Bid) error {
	query := `
		INSERT INTO bids (project_id, freelancer_id, bid_amount, proposal, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		bid.ProjectID, bid.FreelancerID, bid.BidAmount, bid.Proposal, models.BidStatusPending,
	).Scan(&bid.ID, &bid.CreatedAt, &bid.UpdatedAt); err != nil {
		return fmt.Errorf("bid repository: create %w", err)
	}

	bid.Status = models.BidStatusPending
	return nil
}

// GetByID возвращает ставку по идентификатору.
func (r *BidRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	return common.GetByID[models.Bid](ctx, r.db, "bids", id, ErrBidNotFound)
}

// Reject переводит ставку в статус "rejected".
func (r *BidRepository) Reject(ctx context.Context, bidID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE bids SET status = $2, updated_at = NOW() WHERE id = $1
	`, bidID, models.BidStatusRejected)
	if err != nil {
		return fmt.Errorf("bid repository: reject %w", err)
	}
	return nil
}

// Accept принимает ставку как одну бизнес-транзакцию:
// ставка становится "accepted", проект переводится в "in-progress"
// с бюджетом и исполнителем из ставки, создаётся заказ "in-progress".
// Если заказ для пары (проект, фрилансер) уже существует, вставка
// молча пропускается и возвращается nil-заказ.
func (r *BidRepository) Accept(ctx context.Context, bid *models.Bid, projectDeadline models.Date) (*models.Order, error) {
	var order *models.Order

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			UPDATE bids SET status = $2, updated_at = NOW() WHERE id = $1
		`, bid.ID, models.BidStatusAccepted); err != nil {
			return fmt.Errorf("bid repository: accept bid %w", err)
		}

		var clientID uuid.UUID
		err := tx.QueryRowxContext(ctx, `
			UPDATE projects
			SET status = $2, budget = $3, freelancer_id = $4, updated_at = NOW()
			WHERE id = $1
			RETURNING client_id
		`, bid.ProjectID, models.ProjectStatusInProgress, bid.BidAmount, bid.FreelancerID).Scan(&clientID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("bid repository: accept project update %w", err)
		}

		created := &models.Order{
			ProjectID:     bid.ProjectID,
			ClientID:      clientID,
			FreelancerID:  bid.FreelancerID,
			Status:        models.OrderStatusInProgress,
			PaymentStatus: models.OrderPaymentStatusUnpaid,
			StartDate:     models.Today(),
			Deadline:      projectDeadline,
			Price:         bid.BidAmount,
		}

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO orders (project_id, client_id, freelancer_id, status, payment_status, start_date, deadline, price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (project_id, freelancer_id) DO NOTHING
			RETURNING id, created_at, updated_at
		`, created.ProjectID, created.ClientID, created.FreelancerID, created.Status,
			created.PaymentStatus, created.StartDate, created.Deadline, created.Price,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			// Заказ для пары уже существует, вставка пропущена.
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("bid repository: accept order insert %w", err)
		}

		order = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// ListByProject возвращает ставки на проект.
func (r *BidRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.SelectContext(ctx, &bids, `
		SELECT * FROM bids WHERE project_id = $1 ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("bid repository: list by project %w", err)
	}
	return bids, nil
}

// ListByFreelancer возвращает ставки фрилансера.
func (r *BidRepository) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.SelectContext(ctx, &bids, `
		SELECT * FROM bids WHERE freelancer_id = $1 ORDER BY created_at DESC
	`, freelancerID)
	if err != nil {
		return nil, fmt.Errorf("bid repository: list by freelancer %w", err)
	}
	return bids, nil
}

// ListByClient возвращает ставки на все проекты клиента.
func (r *BidRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.SelectContext(ctx, &bids, `
		SELECT b.* FROM bids b
		JOIN projects p ON p.id = b.project_id
		WHERE p.client_id = $1
		ORDER BY b.created_at DESC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("bid repository: list by client %w", err)
	}
	return bids, nil
}

// ListAllAdmin возвращает плоский список всех ставок для админа.
func (r *BidRepository) ListAllAdmin(ctx context.Context) ([]models.BidAdminView, error) {
	var bids []models.BidAdminView
	err := r.db.SelectContext(ctx, &bids, `
		SELECT p.title AS project_title,
			b.created_at AS submitted,
			f.name AS freelancer_name,
			c.name AS client_name,
			b.bid_amount,
			b.status
		FROM bids b
		JOIN projects p ON p.id = b.project_id
		JOIN users f ON f.id = b.freelancer_id
		JOIN users c ON c.id = p.client_id
		ORDER BY b.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("bid repository: list all %w", err)
	}
	return bids, nil
}

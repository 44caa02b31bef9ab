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

// ErrReviewNotFound возвращается, когда отзыв не найден.
var ErrReviewNotFound = errors.New("review not found")

// ErrReviewExists возвращается при повторном отзыве на проект.
var ErrReviewExists = errors.New("review already exists for this project")

// ReviewRepository отвечает за работу с таблицей reviews.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository создаёт экземпляр репозитория.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create создаёт отзыв. Уникальность по project_id закреплена в базе.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (reviewer_id, reviewee_id, project_id, rating, feedback)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		review.ReviewerID, review.RevieweeID, review.ProjectID, review.Rating, review.Feedback,
	).Scan(&review.ID, &review.CreatedAt); err != nil {
		if common.IsUniqueViolation(err, "reviews_project_id_key") {
			return ErrReviewExists
		}
		return fmt.Errorf("review repository: create %w", err)
	}

	return nil
}

// GetByReviewerAndProject проверяет, оставлял ли клиент отзыв на проект.
// Возвращает (nil, nil), когда отзыва нет.
func (r *ReviewRepository) GetByReviewerAndProject(ctx context.Context, reviewerID, projectID uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.db.GetContext(ctx, &review, `
		SELECT * FROM reviews WHERE reviewer_id = $1 AND project_id = $2
	`, reviewerID, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("review repository: get by reviewer and project %w", err)
	}
	return &review, nil
}

// ListByReviewee возвращает отзывы о фрилансере.
func (r *ReviewRepository) ListByReviewee(ctx context.Context, revieweeID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.SelectContext(ctx, &reviews, `
		SELECT * FROM reviews WHERE reviewee_id = $1 ORDER BY created_at DESC
	`, revieweeID)
	if err != nil {
		return nil, fmt.Errorf("review repository: list by reviewee %w", err)
	}
	return reviews, nil
}

// ListAllAdmin возвращает все отзывы с именами участников для админа.
func (r *ReviewRepository) ListAllAdmin(ctx context.Context) ([]models.ReviewAdminView, error) {
	var reviews []models.ReviewAdminView
	err := r.db.SelectContext(ctx, &reviews, `
		SELECT p.title AS project_name,
			rw.name AS reviewer_name,
			re.name AS reviewee_name,
			r.created_at,
			r.rating,
			r.feedback
		FROM reviews r
		JOIN projects p ON p.id = r.project_id
		JOIN users rw ON rw.id = r.reviewer_id
		JOIN users re ON re.id = r.reviewee_id
		ORDER BY r.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("review repository: list all %w", err)
	}
	return reviews, nil
}

// GetAverageRating возвращает средний рейтинг фрилансера и число отзывов.
// При отсутствии отзывов средний рейтинг равен nil, а не нулю.
func (r *ReviewRepository) GetAverageRating(ctx context.Context, freelancerID uuid.UUID) (*float64, int, error) {
	var result struct {
		Avg   sql.NullFloat64 `db:"avg"`
		Count int             `db:"count"`
	}
	err := r.db.GetContext(ctx, &result, `
		SELECT AVG(rating) AS avg, COUNT(*) AS count FROM reviews WHERE reviewee_id = $1
	`, freelancerID)
	if err != nil {
		return nil, 0, fmt.Errorf("review repository: get average rating %w", err)
	}

	if !result.Avg.Valid {
		return nil, result.Count, nil
	}
	return &result.Avg.Float64, result.Count, nil
}

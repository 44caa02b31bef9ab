package models

import (
	"time"

	"github.com/google/uuid"
)

// Ограничения отзыва
const (
	MinRating         = 1
	MaxRating         = 5
	MaxFeedbackLength = 500
)

// Review описывает одноразовый отзыв клиента о фрилансере по завершённому
// проекту. На проект допускается ровно один отзыв; отзывы не редактируются.
type Review struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ReviewerID uuid.UUID `db:"reviewer_id" json:"reviewer_id"`
	RevieweeID uuid.UUID `db:"reviewee_id" json:"reviewee_id"`
	ProjectID  uuid.UUID `db:"project_id" json:"project_id"`
	Rating     int       `db:"rating" json:"rating"`
	Feedback   string    `db:"feedback" json:"feedback"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ReviewAdminView строка отчёта по отзывам для админа.
type ReviewAdminView struct {
	ProjectName  string    `db:"project_name" json:"project_name"`
	ReviewerName string    `db:"reviewer_name" json:"reviewer_name"`
	RevieweeName string    `db:"reviewee_name" json:"reviewee_name"`
	CreatedAt    time.Time `db:"created_at" json:"date"`
	Rating       int       `db:"rating" json:"rating"`
	Feedback     string    `db:"feedback" json:"feedback"`
}

// FreelancerRating агрегированный рейтинг фрилансера.
// Average равен nil, когда отзывов нет: отсутствие рейтинга
// отличается от нулевого.
type FreelancerRating struct {
	Average *float64 `json:"average_rating"`
	Count   int      `json:"total_reviews"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Bid представляет ставку фрилансера на открытый проект.
// Статусы accepted и rejected терминальные.
type Bid struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ProjectID    uuid.UUID `db:"project_id" json:"project_id"`
	FreelancerID uuid.UUID `db:"freelancer_id" json:"freelancer_id"`
	BidAmount    float64   `db:"bid_amount" json:"bid_amount"`
	Proposal     string    `db:"proposal" json:"proposal"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// BidAdminView плоское представление ставки для админского списка.
type BidAdminView struct {
	ProjectTitle   string    `db:"project_title" json:"project_title"`
	Submitted      time.Time `db:"submitted" json:"submitted"`
	FreelancerName string    `db:"freelancer_name" json:"freelancer"`
	ClientName     string    `db:"client_name" json:"client"`
	BidAmount      float64   `db:"bid_amount" json:"bid_amount"`
	Status         string    `db:"status" json:"status"`
}

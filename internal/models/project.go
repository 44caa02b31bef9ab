package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Project описывает проект, размещённый клиентом.
// Статус "open" разрешает приём ставок; freelancer_id назначается
// при принятии ставки.
type Project struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	ClientID       uuid.UUID  `db:"client_id" json:"client_id"`
	Title          string     `db:"title" json:"title"`
	Description    string     `db:"description" json:"description"`
	Budget         float64    `db:"budget" json:"budget"`
	Deadline       Date       `db:"deadline" json:"deadline"`
	SkillsRequired pq.StringArray `db:"skills_required" json:"skills_required"`
	Status         string     `db:"status" json:"status"`
	FreelancerID   *uuid.UUID `db:"freelancer_id" json:"freelancer_id,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

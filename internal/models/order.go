package models

import (
	"time"

	"github.com/google/uuid"
)

// Order описывает контракт между клиентом и фрилансером.
// Создаётся либо автоматически при принятии ставки (сразу in-progress),
// либо напрямую фрилансером (pending до одобрения клиентом).
// На пару (project_id, freelancer_id) допускается не более одного заказа.
type Order struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ProjectID     uuid.UUID `db:"project_id" json:"project_id"`
	ClientID      uuid.UUID `db:"client_id" json:"client_id"`
	FreelancerID  uuid.UUID `db:"freelancer_id" json:"freelancer_id"`
	Status        string    `db:"status" json:"status"`
	PaymentStatus string    `db:"payment_status" json:"payment_status"`
	StartDate     Date      `db:"start_date" json:"start_date"`
	Deadline      Date      `db:"deadline" json:"deadline"`
	Price         float64   `db:"price" json:"price"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// IsTerminal сообщает, достиг ли заказ терминального статуса.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}

// IsPaid сообщает, оплачен ли заказ.
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == OrderPaymentStatusPaid
}

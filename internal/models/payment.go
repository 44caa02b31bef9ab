package models

import (
	"time"

	"github.com/google/uuid"
)

// MinPaymentAmount минимально допустимая сумма платежа.
const MinPaymentAmount = 0.01

// Payment представляет денежную транзакцию по заказу.
// transaction_id обязателен тогда и только тогда, когда платёж завершён.
type Payment struct {
	ID            uuid.UUID `db:"id" json:"id"`
	OrderID       uuid.UUID `db:"order_id" json:"order_id"`
	ClientID      uuid.UUID `db:"client_id" json:"client_id"`
	FreelancerID  uuid.UUID `db:"freelancer_id" json:"freelancer_id"`
	Amount        float64   `db:"amount" json:"amount"`
	Status        string    `db:"status" json:"status"`
	PaymentMethod string    `db:"payment_method" json:"payment_method"`
	TransactionID *string   `db:"transaction_id" json:"transaction_id,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// PaymentClientView строка истории платежей клиента.
type PaymentClientView struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ProjectTitle string    `db:"project_title" json:"project_title"`
	Freelancer   string    `db:"freelancer_name" json:"freelancer"`
	Amount       float64   `db:"amount" json:"amount"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"date"`
}

// PaymentAdminView строка сводного отчёта по платежам для админа.
type PaymentAdminView struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ProjectTitle   string    `db:"project_title" json:"project_name"`
	ClientName     string    `db:"client_name" json:"client_name"`
	FreelancerName string    `db:"freelancer_name" json:"freelancer_name"`
	Amount         float64   `db:"amount" json:"amount"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"date"`
}

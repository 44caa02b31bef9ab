package service

import "github.com/google/uuid"

// События, которые сервисы отправляют подключённым клиентам.
const (
	EventBidPlaced        = "bid.placed"
	EventBidAccepted      = "bid.accepted"
	EventBidRejected      = "bid.rejected"
	EventOrderCreated     = "order.created"
	EventOrderStatus      = "order.status_changed"
	EventPaymentCompleted = "payment.completed"
	EventPaymentFailed    = "payment.failed"
	EventReviewReceived   = "review.received"
)

// EventPublisher доставляет событие конкретному пользователю.
// Реализация живёт в пакете ws, доставка не блокирует вызывающего.
type EventPublisher interface {
	Publish(userID uuid.UUID, event string, payload interface{})
}

// noopPublisher используется, когда hub не подключён (тесты, сиды).
type noopPublisher struct{}

func (noopPublisher) Publish(uuid.UUID, string, interface{}) {}

func orPublisher(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

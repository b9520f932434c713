package events

import "time"

// Tipos de evento emitidos tras el commit de una transacción de negocio.
const (
	TypeOrderCreated      = "order.created"
	TypeOrderCancelled    = "order.cancelled"
	TypeTransferCompleted = "transfer.completed"
)

// Event notificación de negocio. Se publica después del commit, nunca dentro
// de la transacción; lleva solo ids y totales.
type Event struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data"`
}

// Publisher puerto de salida hacia el transporte de notificaciones (ej. un
// topic de Kafka). Mejor esfuerzo: un fallo aquí no afecta la transacción ya
// confirmada.
type Publisher interface {
	Publish(event Event) error
}

package outbox

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending = "PENDING"
	StatusSent    = "SENT"
	StatusFailed  = "FAILED"
)

const (
	AggregateCheckout = "checkout"

	EventCheckoutConfirmed = "CHECKOUT_CONFIRMED"
)

type Event struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	Status        string
	Attempts      int32
	CreatedAt     time.Time
	ProcessedAt   sql.NullTime
}

type CreateParams struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

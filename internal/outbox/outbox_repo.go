package outbox

import (
	"context"

	"go-couture-api/internal/shared/database"

	"github.com/google/uuid"
)

// MaxAttempts is how many publish failures an event survives before it is
// left in FAILED for good.
const MaxAttempts = 5

//go:generate mockgen -source=outbox_repo.go -destination=../mock/outbox/outbox_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx database.DBTX) Repository
	Create(ctx context.Context, arg CreateParams) (uuid.UUID, error)
	ListPending(ctx context.Context, limit int32) ([]Event, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db database.DBTX
}

func NewRepository(db database.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx database.DBTX) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, arg CreateParams) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO outbox_events (id, aggregate_type, aggregate_id, event_type, payload, status)
		VALUES ($1, $2, $3, $4, $5, 'PENDING')`,
		id, arg.AggregateType, arg.AggregateID, arg.EventType, arg.Payload,
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// ListPending returns PENDING events and FAILED ones still under MaxAttempts,
// oldest first.
func (r *repository) ListPending(ctx context.Context, limit int32) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, aggregate_type, aggregate_id, event_type, payload, status, attempts, created_at, processed_at
		FROM outbox_events
		WHERE status = 'PENDING' OR (status = 'FAILED' AND attempts < $1)
		ORDER BY created_at ASC
		LIMIT $2`,
		MaxAttempts, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(
			&e.ID,
			&e.AggregateType,
			&e.AggregateID,
			&e.EventType,
			&e.Payload,
			&e.Status,
			&e.Attempts,
			&e.CreatedAt,
			&e.ProcessedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE outbox_events SET status = 'SENT', processed_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *repository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE outbox_events SET status = 'FAILED', attempts = attempts + 1 WHERE id = $1`, id)
	return err
}

// Package event implements the append-only event store over PostgreSQL.
// Events are best-effort audit records: the table has no foreign keys and
// writes are dropped by callers on failure, never retried.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

// DefaultListLimit caps timeline reads when the caller does not ask for a
// specific page size.
const DefaultListLimit = 50

// Repo provides event persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new event repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const insertSQL = `
INSERT INTO events (id, account_id, board_id, eventable_id, eventable_type, creator_id, action, particulars, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const listForBoardSQL = `
SELECT id, account_id, board_id, eventable_id, eventable_type, creator_id, action, particulars, created_at
FROM events
WHERE account_id = $1 AND board_id = $2
ORDER BY created_at DESC
LIMIT $3`

const deleteOlderThanSQL = `
DELETE FROM events WHERE created_at < $1`

// Append inserts one event. The repo assigns the ID and timestamp so callers
// only describe what happened. Failures are returned as-is; deciding to drop
// them is the caller's policy.
func (r *Repo) Append(ctx context.Context, e domain.Event) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if e.ID.IsZero() {
		e.ID = domain.NewID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	if e.Particulars == nil {
		e.Particulars = map[string]any{}
	}

	particulars, err := json.Marshal(e.Particulars)
	if err != nil {
		return fmt.Errorf("event marshal particulars: %w", err)
	}

	_, err = q.Exec(ctx, insertSQL,
		e.ID.Bytes(), e.AccountID.Bytes(), e.BoardID.Bytes(),
		e.EventableID.Bytes(), string(e.EventableType), e.CreatorID.Bytes(),
		string(e.Action), particulars, e.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "event", e.ID)
	}

	return nil
}

// ListForBoard returns a board's event timeline, newest first. A
// non-positive limit falls back to DefaultListLimit.
func (r *Repo) ListForBoard(ctx context.Context, accountID, boardID domain.ID, limit int64) ([]*domain.Event, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if limit <= 0 {
		limit = DefaultListLimit
	}

	var rows []eventRow
	if err := pgxscan.Select(ctx, q, &rows, listForBoardSQL, accountID.Bytes(), boardID.Bytes(), limit); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]*domain.Event, 0, len(rows))
	for _, row := range rows {
		e, err := toDomainEvent(row)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, nil
}

// DeleteOlderThan prunes events written before the cutoff and returns how
// many rows went away. Used by the retention sweep.
func (r *Repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, deleteOlderThanSQL, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old events: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type eventRow struct {
	ID            []byte    `db:"id"`
	AccountID     []byte    `db:"account_id"`
	BoardID       []byte    `db:"board_id"`
	EventableID   []byte    `db:"eventable_id"`
	EventableType string    `db:"eventable_type"`
	CreatorID     []byte    `db:"creator_id"`
	Action        string    `db:"action"`
	Particulars   []byte    `db:"particulars"`
	CreatedAt     time.Time `db:"created_at"`
}

func toDomainEvent(row eventRow) (*domain.Event, error) {
	e := &domain.Event{
		EventableType: domain.EventableType(row.EventableType),
		Action:        domain.EventAction(row.Action),
		CreatedAt:     row.CreatedAt,
	}

	var err error
	if e.ID, err = domain.IDFromBytes(row.ID); err != nil {
		return nil, fmt.Errorf("event id: %w", err)
	}
	if e.AccountID, err = domain.IDFromBytes(row.AccountID); err != nil {
		return nil, fmt.Errorf("event account_id: %w", err)
	}
	if e.BoardID, err = domain.IDFromBytes(row.BoardID); err != nil {
		return nil, fmt.Errorf("event board_id: %w", err)
	}
	if e.EventableID, err = domain.IDFromBytes(row.EventableID); err != nil {
		return nil, fmt.Errorf("event eventable_id: %w", err)
	}
	if e.CreatorID, err = domain.IDFromBytes(row.CreatorID); err != nil {
		return nil, fmt.Errorf("event creator_id: %w", err)
	}

	if err := json.Unmarshal(row.Particulars, &e.Particulars); err != nil {
		return nil, fmt.Errorf("event unmarshal particulars: %w", err)
	}

	return e, nil
}

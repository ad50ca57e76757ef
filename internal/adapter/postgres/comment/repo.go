// Package comment implements the comment store over PostgreSQL. Comment
// content lives in the polymorphic rich-text table, so a comment write is
// two inserts; the caller provides the transaction that makes them atomic.
package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

// DefaultListLimit caps comment listings when the caller does not ask for a
// specific page size.
const DefaultListLimit = 50

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new comment repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const insertCommentSQL = `
INSERT INTO comments (id, account_id, card_id, creator_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

const insertBodySQL = `
INSERT INTO action_text_rich_texts (id, account_id, record_type, record_id, name, body, created_at, updated_at)
VALUES ($1, $2, 'Comment', $3, 'body', $4, $5, $6)`

const listForCardSQL = `
SELECT cm.id, cm.account_id, cm.card_id, cm.creator_id,
       COALESCE(rt.body, '') AS content,
       u.name AS creator_name,
       cm.created_at, cm.updated_at
FROM comments cm
LEFT JOIN action_text_rich_texts rt
       ON rt.record_id = cm.id AND rt.record_type = 'Comment' AND rt.name = 'body'
JOIN users u ON u.id = cm.creator_id
WHERE cm.account_id = $1 AND cm.card_id = $2
ORDER BY cm.created_at DESC
LIMIT $3`

// Create inserts the comment row and its rich-text body row. It runs both
// statements against the ambient executor and does not open its own
// transaction: the service wraps this call (together with the card activity
// bump) in one transaction so all three effects commit or roll back as a
// unit.
func (r *Repo) Create(ctx context.Context, accountID, cardID, creatorID domain.ID, content string) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	now := time.Now().UTC().Truncate(time.Microsecond)
	c := &domain.Comment{
		ID:        domain.NewID(),
		AccountID: accountID,
		CardID:    cardID,
		CreatorID: creatorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := q.Exec(ctx, insertCommentSQL,
		c.ID.Bytes(), c.AccountID.Bytes(), c.CardID.Bytes(), c.CreatorID.Bytes(), now, now,
	)
	if err != nil {
		return nil, postgres.MapError(err, "comment", c.ID)
	}

	_, err = q.Exec(ctx, insertBodySQL,
		domain.NewID().Bytes(), c.AccountID.Bytes(), c.ID.Bytes(), c.Content, now, now,
	)
	if err != nil {
		return nil, postgres.MapError(err, "comment body", c.ID)
	}

	return c, nil
}

// ListForCard returns a card's comments, newest first, with creator names
// and bodies attached. A non-positive limit falls back to DefaultListLimit.
func (r *Repo) ListForCard(ctx context.Context, accountID, cardID domain.ID, limit int64) ([]*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if limit <= 0 {
		limit = DefaultListLimit
	}

	var rows []commentRow
	if err := pgxscan.Select(ctx, q, &rows, listForCardSQL, accountID.Bytes(), cardID.Bytes(), limit); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	comments := make([]*domain.Comment, 0, len(rows))
	for _, row := range rows {
		c, err := toDomainComment(row)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type commentRow struct {
	ID          []byte    `db:"id"`
	AccountID   []byte    `db:"account_id"`
	CardID      []byte    `db:"card_id"`
	CreatorID   []byte    `db:"creator_id"`
	Content     string    `db:"content"`
	CreatorName *string   `db:"creator_name"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func toDomainComment(row commentRow) (*domain.Comment, error) {
	c := &domain.Comment{
		Content:     row.Content,
		CreatorName: row.CreatorName,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	var err error
	if c.ID, err = domain.IDFromBytes(row.ID); err != nil {
		return nil, fmt.Errorf("comment id: %w", err)
	}
	if c.AccountID, err = domain.IDFromBytes(row.AccountID); err != nil {
		return nil, fmt.Errorf("comment account_id: %w", err)
	}
	if c.CardID, err = domain.IDFromBytes(row.CardID); err != nil {
		return nil, fmt.Errorf("comment card_id: %w", err)
	}
	if c.CreatorID, err = domain.IDFromBytes(row.CreatorID); err != nil {
		return nil, fmt.Errorf("comment creator_id: %w", err)
	}

	return c, nil
}

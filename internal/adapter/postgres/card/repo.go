// Package card implements the card store over PostgreSQL.
// Dynamic statements (the list filter, partial updates) are built with
// squirrel; fixed statements are raw SQL constants.
package card

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

// Repo provides card persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new card repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Raw SQL for fixed statements
// ---------------------------------------------------------------------------

// nextNumberSQL hands out the next account-scoped card number. The UPSERT
// takes a row lock, so concurrent creates within an account serialize here
// and a number is never handed out twice. A number allocated for a create
// that later fails is simply skipped: gaps are fine, repeats are not.
const nextNumberSQL = `
INSERT INTO card_numbers (account_id, last_number)
VALUES ($1, 1)
ON CONFLICT (account_id) DO UPDATE SET last_number = card_numbers.last_number + 1
RETURNING last_number`

const insertCardSQL = `
INSERT INTO cards (
    id, account_id, board_id, column_id, creator_id, number,
    title, description, status, due_on, last_active_at, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

const setStatusSQL = `
UPDATE cards SET status = $1, updated_at = $2
WHERE account_id = $3 AND id = $4`

const touchActivitySQL = `
UPDATE cards SET last_active_at = $1, updated_at = $1
WHERE account_id = $2 AND id = $3`

const assigneeNamesSQL = `
SELECT u.name
FROM assignments a
JOIN users u ON u.id = a.assignee_id
WHERE a.card_id = $1
ORDER BY u.name`

const tagTitlesSQL = `
SELECT t.title
FROM taggings tg
JOIN tags t ON t.id = tg.tag_id
WHERE tg.card_id = $1
ORDER BY t.title`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// FindByID returns a card by primary key scoped to an account.
// Absence is (nil, nil), not an error; callers decide whether a missing
// card is a failure.
func (r *Repo) FindByID(ctx context.Context, accountID, cardID domain.ID) (*domain.Card, error) {
	return r.findOne(ctx, accountID, squirrel.Eq{"c.id": cardID.Bytes()})
}

// FindByNumber returns a card by its account-scoped sequential number.
// Absence is (nil, nil).
func (r *Repo) FindByNumber(ctx context.Context, accountID domain.ID, number int64) (*domain.Card, error) {
	return r.findOne(ctx, accountID, squirrel.Eq{"c.number": number})
}

// List returns cards matching the filter, most recently active first, with
// assignee names and tag titles loaded per row. Returns an empty slice
// (not nil) when nothing matches. Never mutates state.
func (r *Repo) List(ctx context.Context, accountID domain.ID, filter domain.CardFilter) ([]*domain.Card, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := buildListQuery(accountID, filter)
	if err != nil {
		return nil, fmt.Errorf("build card list query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	cards, err := scanCards(rows)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	// Assignees and tags are loaded row by row on purpose: joining them in
	// would duplicate card rows per assignee/tag. Listings are small
	// (default page size 20), so the extra round trips stay bounded.
	for _, c := range cards {
		if err := r.loadRelations(ctx, q, c); err != nil {
			return nil, fmt.Errorf("load card relations: %w", err)
		}
	}

	return cards, nil
}

func (r *Repo) findOne(ctx context.Context, accountID domain.ID, cond squirrel.Sqlizer) (*domain.Card, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := baseSelect(accountID).Where(cond).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build card query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find card: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("find card: %w", err)
		}
		return nil, nil
	}

	card, err := scanCard(rows)
	if err != nil {
		return nil, fmt.Errorf("find card: %w", err)
	}
	rows.Close()

	if err := r.loadRelations(ctx, q, card); err != nil {
		return nil, fmt.Errorf("load card relations: %w", err)
	}

	return card, nil
}

// loadRelations fills the multi-valued display fields for one card.
func (r *Repo) loadRelations(ctx context.Context, q postgres.Querier, c *domain.Card) error {
	if err := pgxscan.Select(ctx, q, &c.AssigneeNames, assigneeNamesSQL, c.ID.Bytes()); err != nil {
		return fmt.Errorf("assignee names: %w", err)
	}
	if err := pgxscan.Select(ctx, q, &c.TagTitles, tagTitlesSQL, c.ID.Bytes()); err != nil {
		return fmt.Errorf("tag titles: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create allocates a new ID and account-scoped number and persists the card
// with last_active_at equal to its creation time. No event is written here;
// events are the service's responsibility.
func (r *Repo) Create(ctx context.Context, accountID domain.ID, params domain.CreateCardParams) (*domain.Card, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var number int64
	if err := q.QueryRow(ctx, nextNumberSQL, accountID.Bytes()).Scan(&number); err != nil {
		return nil, fmt.Errorf("allocate card number: %w", err)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	card := &domain.Card{
		ID:           domain.NewID(),
		AccountID:    accountID,
		BoardID:      params.BoardID,
		ColumnID:     params.ColumnID,
		CreatorID:    params.CreatorID,
		Number:       number,
		Title:        params.Title,
		Description:  params.Description,
		Status:       params.Status,
		LastActiveAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var columnID []byte
	if params.ColumnID != nil {
		columnID = params.ColumnID.Bytes()
	}

	_, err := q.Exec(ctx, insertCardSQL,
		card.ID.Bytes(), card.AccountID.Bytes(), card.BoardID.Bytes(), columnID,
		card.CreatorID.Bytes(), card.Number, card.Title, card.Description,
		string(card.Status), card.DueOn, card.LastActiveAt, card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "card", card.ID)
	}

	return card, nil
}

// Update applies a partial update: only non-nil params change; everything
// else keeps its stored value. The column/board referential check is the
// service's job; this layer has no board context to check against.
// Returns the updated card with fresh display fields.
func (r *Repo) Update(ctx context.Context, accountID, cardID domain.ID, params domain.UpdateCardParams) (*domain.Card, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if params.IsEmpty() {
		card, err := r.FindByID(ctx, accountID, cardID)
		if err != nil {
			return nil, err
		}
		if card == nil {
			return nil, fmt.Errorf("card %s: %w", cardID, domain.ErrNotFound)
		}
		return card, nil
	}

	now := time.Now().UTC().Truncate(time.Microsecond)

	ub := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Update("cards").
		Set("updated_at", now)

	if params.Title != nil {
		ub = ub.Set("title", *params.Title)
	}
	if params.Description != nil {
		ub = ub.Set("description", *params.Description)
	}
	if params.Status != nil {
		ub = ub.Set("status", string(*params.Status))
	}
	if params.ColumnID != nil {
		ub = ub.Set("column_id", params.ColumnID.Bytes())
	}
	if params.DueOn != nil {
		ub = ub.Set("due_on", *params.DueOn)
	}

	sql, args, err := ub.
		Where(squirrel.Eq{"account_id": accountID.Bytes()}).
		Where(squirrel.Eq{"id": cardID.Bytes()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build card update: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "card", cardID)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("card %s: %w", cardID, domain.ErrNotFound)
	}

	card, err := r.FindByID(ctx, accountID, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, fmt.Errorf("card %s: %w", cardID, domain.ErrNotFound)
	}
	return card, nil
}

// Close transitions a card to closed. Touches status and updated_at only.
// Returns domain.ErrNotFound if the card does not exist in the account.
func (r *Repo) Close(ctx context.Context, accountID, cardID domain.ID) error {
	return r.setStatus(ctx, accountID, cardID, domain.CardStatusClosed)
}

// Reopen transitions a card back to triaged. Reopening never restores the
// pre-close status.
func (r *Repo) Reopen(ctx context.Context, accountID, cardID domain.ID) error {
	return r.setStatus(ctx, accountID, cardID, domain.CardStatusTriaged)
}

func (r *Repo) setStatus(ctx context.Context, accountID, cardID domain.ID, status domain.CardStatus) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	now := time.Now().UTC().Truncate(time.Microsecond)

	tag, err := q.Exec(ctx, setStatusSQL, string(status), now, accountID.Bytes(), cardID.Bytes())
	if err != nil {
		return postgres.MapError(err, "card", cardID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("card %s: %w", cardID, domain.ErrNotFound)
	}

	return nil
}

// TouchActivity bumps last_active_at and updated_at to the given instant.
// Called inside the comment transaction so the bump commits or rolls back
// with the comment rows.
func (r *Repo) TouchActivity(ctx context.Context, accountID, cardID domain.ID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, touchActivitySQL, at, accountID.Bytes(), cardID.Bytes())
	if err != nil {
		return postgres.MapError(err, "card", cardID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("card %s: %w", cardID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanCards scans all rows of the shared card projection.
func scanCards(rows pgx.Rows) ([]*domain.Card, error) {
	var cards []*domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if cards == nil {
		cards = []*domain.Card{}
	}

	return cards, nil
}

// scanCard scans a single row of the shared card projection (cardColumns).
func scanCard(rows pgx.Rows) (*domain.Card, error) {
	var (
		id           []byte
		accountID    []byte
		boardID      []byte
		columnID     []byte
		creatorID    []byte
		number       int64
		title        string
		description  *string
		status       string
		dueOn        *time.Time
		lastActiveAt time.Time
		createdAt    time.Time
		updatedAt    time.Time
		boardName    string
		columnName   *string
		columnColor  *string
		creatorName  string
		isGolden     bool
	)

	if err := rows.Scan(
		&id, &accountID, &boardID, &columnID, &creatorID, &number,
		&title, &description, &status, &dueOn, &lastActiveAt, &createdAt, &updatedAt,
		&boardName, &columnName, &columnColor, &creatorName, &isGolden,
	); err != nil {
		return nil, err
	}

	card := &domain.Card{
		Number:       number,
		Title:        title,
		Description:  description,
		Status:       domain.CardStatus(status),
		DueOn:        dueOn,
		LastActiveAt: lastActiveAt,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
		BoardName:    &boardName,
		ColumnName:   columnName,
		ColumnColor:  columnColor,
		CreatorName:  &creatorName,
		IsGolden:     isGolden,
	}

	var err error
	if card.ID, err = domain.IDFromBytes(id); err != nil {
		return nil, fmt.Errorf("card id: %w", err)
	}
	if card.AccountID, err = domain.IDFromBytes(accountID); err != nil {
		return nil, fmt.Errorf("card account_id: %w", err)
	}
	if card.BoardID, err = domain.IDFromBytes(boardID); err != nil {
		return nil, fmt.Errorf("card board_id: %w", err)
	}
	if card.CreatorID, err = domain.IDFromBytes(creatorID); err != nil {
		return nil, fmt.Errorf("card creator_id: %w", err)
	}
	if columnID != nil {
		cid, err := domain.IDFromBytes(columnID)
		if err != nil {
			return nil, fmt.Errorf("card column_id: %w", err)
		}
		card.ColumnID = &cid
	}

	return card, nil
}

// Package board implements the board and column store over PostgreSQL.
package board

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

// Repo provides board persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new board repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const boardColumns = `id, account_id, creator_id, name, all_access, created_at, updated_at`

const findByIDSQL = `
SELECT ` + boardColumns + `
FROM boards
WHERE account_id = $1 AND id = $2`

const findByNameSQL = `
SELECT ` + boardColumns + `
FROM boards
WHERE account_id = $1 AND LOWER(name) = LOWER($2)`

// listAccessibleSQL returns the boards a user can see: public boards plus
// boards with an explicit grant. card_count counts open work only.
const listAccessibleSQL = `
SELECT b.id, b.account_id, b.creator_id, b.name, b.all_access, b.created_at, b.updated_at,
       (SELECT COUNT(*)
        FROM cards c
        WHERE c.board_id = b.id AND c.status NOT IN ('closed', 'not_now')) AS card_count
FROM boards b
LEFT JOIN accesses a ON a.board_id = b.id AND a.user_id = $2
WHERE b.account_id = $1 AND (b.all_access OR a.user_id IS NOT NULL)
ORDER BY b.name ASC`

const hasAccessSQL = `
SELECT b.all_access OR EXISTS (
    SELECT 1 FROM accesses a WHERE a.board_id = b.id AND a.user_id = $3
)
FROM boards b
WHERE b.account_id = $1 AND b.id = $2`

const columnsSQL = `
SELECT id, account_id, board_id, name, color, position
FROM columns
WHERE account_id = $1 AND board_id = $2
ORDER BY position ASC`

const findColumnSQL = `
SELECT id, account_id, board_id, name, color, position
FROM columns
WHERE account_id = $1 AND id = $2`

// FindByID returns a board by primary key. Absence is (nil, nil).
func (r *Repo) FindByID(ctx context.Context, accountID, boardID domain.ID) (*domain.Board, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row boardRow
	err := pgxscan.Get(ctx, q, &row, findByIDSQL, accountID.Bytes(), boardID.Bytes())
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find board: %w", err)
	}

	return toDomainBoard(row)
}

// FindByName returns a board by name, matched case-insensitively within the
// account. Absence is (nil, nil).
func (r *Repo) FindByName(ctx context.Context, accountID domain.ID, name string) (*domain.Board, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row boardRow
	err := pgxscan.Get(ctx, q, &row, findByNameSQL, accountID.Bytes(), name)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find board by name: %w", err)
	}

	return toDomainBoard(row)
}

// ListAccessible returns the boards visible to a user, ordered by name, each
// carrying its open-card count.
func (r *Repo) ListAccessible(ctx context.Context, accountID, userID domain.ID) ([]*domain.Board, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []boardRow
	if err := pgxscan.Select(ctx, q, &rows, listAccessibleSQL, accountID.Bytes(), userID.Bytes()); err != nil {
		return nil, fmt.Errorf("list accessible boards: %w", err)
	}

	boards := make([]*domain.Board, 0, len(rows))
	for _, row := range rows {
		b, err := toDomainBoard(row)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}

	return boards, nil
}

// HasAccess reports whether a user may act on a board: either the board is
// open to the whole account or the user holds a grant. A missing board is
// simply no access, not an error.
func (r *Repo) HasAccess(ctx context.Context, accountID, boardID, userID domain.ID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var allowed bool
	err := q.QueryRow(ctx, hasAccessSQL, accountID.Bytes(), boardID.Bytes(), userID.Bytes()).Scan(&allowed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check board access: %w", err)
	}

	return allowed, nil
}

// Columns returns a board's columns in lane order.
func (r *Repo) Columns(ctx context.Context, accountID, boardID domain.ID) ([]*domain.Column, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []columnRow
	if err := pgxscan.Select(ctx, q, &rows, columnsSQL, accountID.Bytes(), boardID.Bytes()); err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}

	cols := make([]*domain.Column, 0, len(rows))
	for _, row := range rows {
		c, err := toDomainColumn(row)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}

	return cols, nil
}

// FindColumn returns a column by primary key. Absence is (nil, nil). Callers
// check BoardID themselves when they need the column to belong to a
// particular board.
func (r *Repo) FindColumn(ctx context.Context, accountID, columnID domain.ID) (*domain.Column, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row columnRow
	err := pgxscan.Get(ctx, q, &row, findColumnSQL, accountID.Bytes(), columnID.Bytes())
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find column: %w", err)
	}

	return toDomainColumn(row)
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type boardRow struct {
	ID        []byte    `db:"id"`
	AccountID []byte    `db:"account_id"`
	CreatorID []byte    `db:"creator_id"`
	Name      string    `db:"name"`
	AllAccess bool      `db:"all_access"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	CardCount *int64    `db:"card_count"`
}

type columnRow struct {
	ID        []byte `db:"id"`
	AccountID []byte `db:"account_id"`
	BoardID   []byte `db:"board_id"`
	Name      string `db:"name"`
	Color     string `db:"color"`
	Position  int32  `db:"position"`
}

func toDomainBoard(row boardRow) (*domain.Board, error) {
	b := &domain.Board{
		Name:      row.Name,
		AllAccess: row.AllAccess,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		CardCount: row.CardCount,
	}

	var err error
	if b.ID, err = domain.IDFromBytes(row.ID); err != nil {
		return nil, fmt.Errorf("board id: %w", err)
	}
	if b.AccountID, err = domain.IDFromBytes(row.AccountID); err != nil {
		return nil, fmt.Errorf("board account_id: %w", err)
	}
	if b.CreatorID, err = domain.IDFromBytes(row.CreatorID); err != nil {
		return nil, fmt.Errorf("board creator_id: %w", err)
	}

	return b, nil
}

func toDomainColumn(row columnRow) (*domain.Column, error) {
	c := &domain.Column{
		Name:     row.Name,
		Color:    row.Color,
		Position: row.Position,
	}

	var err error
	if c.ID, err = domain.IDFromBytes(row.ID); err != nil {
		return nil, fmt.Errorf("column id: %w", err)
	}
	if c.AccountID, err = domain.IDFromBytes(row.AccountID); err != nil {
		return nil, fmt.Errorf("column account_id: %w", err)
	}
	if c.BoardID, err = domain.IDFromBytes(row.BoardID); err != nil {
		return nil, fmt.Errorf("column board_id: %w", err)
	}

	return c, nil
}

package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

func seedNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedAccount creates an account and returns its ID.
func SeedAccount(t *testing.T, pool *pgxpool.Pool) domain.ID {
	t.Helper()
	ctx := context.Background()

	id := domain.NewID()
	now := seedNow()

	_, err := pool.Exec(ctx,
		`INSERT INTO accounts (id, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)`,
		id.Bytes(), "Test Account "+uniqueSuffix(), now, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAccount insert: %v", err)
	}

	return id
}

// SeedUser creates an active member user in the given account.
func SeedUser(t *testing.T, pool *pgxpool.Pool, accountID domain.ID) domain.User {
	t.Helper()
	ctx := context.Background()

	now := seedNow()
	user := domain.User{
		ID:        domain.NewID(),
		AccountID: accountID,
		Name:      "Test User " + uniqueSuffix(),
		Role:      domain.UserRoleMember,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, account_id, name, role, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID.Bytes(), user.AccountID.Bytes(), user.Name, string(user.Role), user.Active, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// SeedBoard creates a board. With allAccess false the board is only visible
// to users granted access via SeedAccess.
func SeedBoard(t *testing.T, pool *pgxpool.Pool, accountID, creatorID domain.ID, name string, allAccess bool) domain.Board {
	t.Helper()
	ctx := context.Background()

	now := seedNow()
	board := domain.Board{
		ID:        domain.NewID(),
		AccountID: accountID,
		CreatorID: creatorID,
		Name:      name,
		AllAccess: allAccess,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO boards (id, account_id, creator_id, name, all_access, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		board.ID.Bytes(), board.AccountID.Bytes(), board.CreatorID.Bytes(), board.Name, board.AllAccess, board.CreatedAt, board.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBoard insert: %v", err)
	}

	return board
}

// SeedColumn creates a column on the given board.
func SeedColumn(t *testing.T, pool *pgxpool.Pool, board domain.Board, name, color string, position int32) domain.Column {
	t.Helper()
	ctx := context.Background()

	col := domain.Column{
		ID:        domain.NewID(),
		AccountID: board.AccountID,
		BoardID:   board.ID,
		Name:      name,
		Color:     color,
		Position:  position,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO columns (id, account_id, board_id, name, color, position)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		col.ID.Bytes(), col.AccountID.Bytes(), col.BoardID.Bytes(), col.Name, col.Color, col.Position,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedColumn insert: %v", err)
	}

	return col
}

// SeedAccess grants a user access to a board.
func SeedAccess(t *testing.T, pool *pgxpool.Pool, boardID, userID domain.ID) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO accesses (board_id, user_id) VALUES ($1, $2)`,
		boardID.Bytes(), userID.Bytes(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAccess insert: %v", err)
	}
}

// SeedCard creates a published card with no column, allocating the next
// account-scoped number the same way the repo does.
func SeedCard(t *testing.T, pool *pgxpool.Pool, board domain.Board, creatorID domain.ID, title string) domain.Card {
	t.Helper()
	return SeedCardWithStatus(t, pool, board, creatorID, title, domain.CardStatusPublished)
}

// SeedCardWithStatus creates a card in the given status.
func SeedCardWithStatus(t *testing.T, pool *pgxpool.Pool, board domain.Board, creatorID domain.ID, title string, status domain.CardStatus) domain.Card {
	t.Helper()
	ctx := context.Background()

	var number int64
	err := pool.QueryRow(ctx,
		`INSERT INTO card_numbers (account_id, last_number)
		 VALUES ($1, 1)
		 ON CONFLICT (account_id) DO UPDATE SET last_number = card_numbers.last_number + 1
		 RETURNING last_number`,
		board.AccountID.Bytes(),
	).Scan(&number)
	if err != nil {
		t.Fatalf("testhelper: SeedCardWithStatus allocate number: %v", err)
	}

	now := seedNow()
	card := domain.Card{
		ID:           domain.NewID(),
		AccountID:    board.AccountID,
		BoardID:      board.ID,
		CreatorID:    creatorID,
		Number:       number,
		Title:        title,
		Status:       status,
		LastActiveAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO cards (id, account_id, board_id, creator_id, number, title, status, last_active_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		card.ID.Bytes(), card.AccountID.Bytes(), card.BoardID.Bytes(), card.CreatorID.Bytes(),
		card.Number, card.Title, string(card.Status), card.LastActiveAt, card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCardWithStatus insert card: %v", err)
	}

	return card
}

// SeedCardInColumn creates a triaged card placed into the given column.
func SeedCardInColumn(t *testing.T, pool *pgxpool.Pool, board domain.Board, column domain.Column, creatorID domain.ID, title string) domain.Card {
	t.Helper()
	ctx := context.Background()

	card := SeedCardWithStatus(t, pool, board, creatorID, title, domain.CardStatusTriaged)

	_, err := pool.Exec(ctx,
		`UPDATE cards SET column_id = $1 WHERE id = $2`,
		column.ID.Bytes(), card.ID.Bytes(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCardInColumn set column: %v", err)
	}

	colID := column.ID
	card.ColumnID = &colID
	return card
}

// SeedAssignment assigns a user to a card.
func SeedAssignment(t *testing.T, pool *pgxpool.Pool, cardID, assigneeID domain.ID) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO assignments (card_id, assignee_id) VALUES ($1, $2)`,
		cardID.Bytes(), assigneeID.Bytes(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAssignment insert: %v", err)
	}
}

// SeedTag creates a tag and returns its ID.
func SeedTag(t *testing.T, pool *pgxpool.Pool, accountID domain.ID, title string) domain.ID {
	t.Helper()
	ctx := context.Background()

	id := domain.NewID()
	_, err := pool.Exec(ctx,
		`INSERT INTO tags (id, account_id, title) VALUES ($1, $2, $3)`,
		id.Bytes(), accountID.Bytes(), title,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTag insert: %v", err)
	}

	return id
}

// SeedTagging attaches a tag to a card.
func SeedTagging(t *testing.T, pool *pgxpool.Pool, cardID, tagID domain.ID) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO taggings (card_id, tag_id) VALUES ($1, $2)`,
		cardID.Bytes(), tagID.Bytes(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTagging insert: %v", err)
	}
}

// SeedGolden marks a card as golden.
func SeedGolden(t *testing.T, pool *pgxpool.Pool, cardID domain.ID) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO golden_cards (card_id) VALUES ($1)`,
		cardID.Bytes(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedGolden insert: %v", err)
	}
}

// SeedComment creates a comment row plus its rich-text body, the same two
// rows the comment repo writes.
func SeedComment(t *testing.T, pool *pgxpool.Pool, card domain.Card, creatorID domain.ID, content string) domain.Comment {
	t.Helper()
	ctx := context.Background()

	now := seedNow()
	comment := domain.Comment{
		ID:        domain.NewID(),
		AccountID: card.AccountID,
		CardID:    card.ID,
		CreatorID: creatorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO comments (id, account_id, card_id, creator_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		comment.ID.Bytes(), comment.AccountID.Bytes(), comment.CardID.Bytes(), comment.CreatorID.Bytes(), comment.CreatedAt, comment.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedComment insert comment: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO action_text_rich_texts (id, account_id, record_type, record_id, name, body, created_at, updated_at)
		 VALUES ($1, $2, 'Comment', $3, 'body', $4, $5, $6)`,
		domain.NewID().Bytes(), comment.AccountID.Bytes(), comment.ID.Bytes(), comment.Content, comment.CreatedAt, comment.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedComment insert body: %v", err)
	}

	return comment
}

// SeedEvent writes an event row directly, bypassing the repo.
func SeedEvent(t *testing.T, pool *pgxpool.Pool, accountID, boardID, eventableID, creatorID domain.ID, action domain.EventAction, createdAt time.Time) domain.ID {
	t.Helper()
	ctx := context.Background()

	id := domain.NewID()
	_, err := pool.Exec(ctx,
		`INSERT INTO events (id, account_id, board_id, eventable_id, eventable_type, creator_id, action, particulars, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, '{}', $8)`,
		id.Bytes(), accountID.Bytes(), boardID.Bytes(), eventableID.Bytes(), string(domain.EventableCard), creatorID.Bytes(), string(action), createdAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEvent insert: %v", err)
	}

	return id
}

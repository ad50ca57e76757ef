// Package seeder populates the database with a demo workspace for local runs
// of the chat facade: a few users, two boards with columns, and cards in every
// status so each command has something to show.
//
// Tables the core never writes (accounts, users, boards, columns, accesses,
// assignments, tags, golden_cards) are filled with plain INSERTs. Cards and
// comments go through the card service so numbering, status transitions, and
// the event trail come out exactly as production writes produce them.
//
// Every Run creates a fresh account, so repeated runs never collide.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/cardtrack-backend/internal/domain"
	cardsvc "github.com/heartmarshall/cardtrack-backend/internal/service/card"
)

// Seeder builds one demo workspace per Run.
type Seeder struct {
	log   *slog.Logger
	pool  *pgxpool.Pool
	cards *cardsvc.Service
}

// New creates a Seeder writing through the given pool and card service.
func New(log *slog.Logger, pool *pgxpool.Pool, cards *cardsvc.Service) *Seeder {
	return &Seeder{
		log:   log.With(slog.String("component", "seeder")),
		pool:  pool,
		cards: cards,
	}
}

// Result reports what one Run created.
type Result struct {
	AccountID domain.ID
	Users     int
	Boards    int
	Cards     int
	Comments  int
}

// workspace holds the fixture rows the card history is built on.
type workspace struct {
	accountID domain.ID

	ada   domain.ID // admin
	grace domain.ID
	linus domain.ID

	roadmap domain.ID // all-access board
	backlog domain.ID
	doing   domain.ID
	done    domain.ID

	ops   domain.ID // restricted board: ada and grace only
	inbox domain.ID
}

// Run seeds one demo workspace and returns what it created.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	w, users, err := s.seedPeople(ctx)
	if err != nil {
		return nil, err
	}

	boards, err := s.seedBoards(ctx, w)
	if err != nil {
		return nil, err
	}

	res := &Result{AccountID: w.accountID, Users: users, Boards: boards}
	if err := s.seedCards(ctx, w, res); err != nil {
		return nil, err
	}

	s.log.Info("demo workspace seeded",
		slog.String("account_id", w.accountID.String()),
		slog.Int("users", res.Users),
		slog.Int("boards", res.Boards),
		slog.Int("cards", res.Cards),
		slog.Int("comments", res.Comments),
		slog.Duration("duration", time.Since(start)),
	)
	return res, nil
}

// seedPeople creates the account and its users.
func (s *Seeder) seedPeople(ctx context.Context) (*workspace, int, error) {
	w := &workspace{accountID: domain.NewID()}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO accounts (id, name) VALUES ($1, $2)`,
		w.accountID.Bytes(), "Demo Workspace",
	)
	if err != nil {
		return nil, 0, fmt.Errorf("insert account: %w", err)
	}

	people := []struct {
		id   *domain.ID
		name string
		role domain.UserRole
	}{
		{&w.ada, "Ada Lovelace", domain.UserRoleAdmin},
		{&w.grace, "Grace Hopper", domain.UserRoleMember},
		{&w.linus, "Linus Pauling", domain.UserRoleMember},
	}
	for _, p := range people {
		*p.id = domain.NewID()
		_, err := s.pool.Exec(ctx,
			`INSERT INTO users (id, account_id, name, role) VALUES ($1, $2, $3, $4)`,
			p.id.Bytes(), w.accountID.Bytes(), p.name, string(p.role),
		)
		if err != nil {
			return nil, 0, fmt.Errorf("insert user %q: %w", p.name, err)
		}
	}

	return w, len(people), nil
}

// seedBoards creates the two demo boards with their columns and access rows.
func (s *Seeder) seedBoards(ctx context.Context, w *workspace) (int, error) {
	var err error

	w.roadmap, err = s.insertBoard(ctx, w.accountID, w.ada, "Roadmap", true)
	if err != nil {
		return 0, err
	}
	columns := []struct {
		id    *domain.ID
		name  string
		color string
		pos   int32
	}{
		{&w.backlog, "Backlog", "gray", 1},
		{&w.doing, "Doing", "amber", 2},
		{&w.done, "Done", "green", 3},
	}
	for _, c := range columns {
		if *c.id, err = s.insertColumn(ctx, w.accountID, w.roadmap, c.name, c.color, c.pos); err != nil {
			return 0, err
		}
	}

	w.ops, err = s.insertBoard(ctx, w.accountID, w.ada, "Ops", false)
	if err != nil {
		return 0, err
	}
	if w.inbox, err = s.insertColumn(ctx, w.accountID, w.ops, "Inbox", "blue", 1); err != nil {
		return 0, err
	}
	if _, err = s.insertColumn(ctx, w.accountID, w.ops, "Blocked", "red", 2); err != nil {
		return 0, err
	}

	// Ops is restricted; linus deliberately stays outside so authorization
	// failures are demonstrable.
	for _, userID := range []domain.ID{w.ada, w.grace} {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO accesses (board_id, user_id) VALUES ($1, $2)`,
			w.ops.Bytes(), userID.Bytes(),
		)
		if err != nil {
			return 0, fmt.Errorf("grant access: %w", err)
		}
	}

	return 2, nil
}

// seedCards replays a plausible history through the card service: creates,
// moves, comments, a close, and a not-now deferral.
func (s *Seeder) seedCards(ctx context.Context, w *workspace, res *Result) error {
	// Roadmap: a card in flight with discussion.
	login, err := s.create(ctx, w, w.grace, w.roadmap,
		"Fix login flow", ptr("Session cookie drops on Safari with ITP enabled."), res)
	if err != nil {
		return err
	}
	if err := s.move(ctx, w, w.grace, login, w.doing); err != nil {
		return err
	}
	if err := s.comment(ctx, w, w.ada, login, "Reproduced in a private window. Looks like SameSite.", res); err != nil {
		return err
	}
	if err := s.comment(ctx, w, w.grace, login, "Fix is up, verifying on staging.", res); err != nil {
		return err
	}
	if err := s.assign(ctx, w, login, w.grace); err != nil {
		return err
	}
	if err := s.tag(ctx, w, login, "backend"); err != nil {
		return err
	}

	// A golden card waiting in the backlog.
	rate, err := s.create(ctx, w, w.ada, w.roadmap,
		"Rate limit the public API", ptr("Token bucket per account, 429 with Retry-After."), res)
	if err != nil {
		return err
	}
	if err := s.move(ctx, w, w.ada, rate, w.backlog); err != nil {
		return err
	}
	if err := s.assign(ctx, w, rate, w.linus); err != nil {
		return err
	}
	if err := s.markGolden(ctx, w, rate); err != nil {
		return err
	}

	// A fresh unplaced card, exactly as create leaves it.
	if _, err := s.create(ctx, w, w.linus, w.roadmap,
		"Dark mode for the web client", nil, res); err != nil {
		return err
	}

	// A finished card.
	upgrade, err := s.create(ctx, w, w.ada, w.roadmap, "Upgrade postgres to 17", nil, res)
	if err != nil {
		return err
	}
	if err := s.move(ctx, w, w.ada, upgrade, w.done); err != nil {
		return err
	}
	if _, err := s.cards.CloseCard(ctx, cardsvc.CloseCardInput{
		AccountID: w.accountID, ActorID: w.ada, Number: upgrade,
	}); err != nil {
		return fmt.Errorf("close card #%d: %w", upgrade, err)
	}

	// A deferred card, parked as not-now.
	icons, err := s.create(ctx, w, w.grace, w.roadmap, "Migrate icons to SVG", nil, res)
	if err != nil {
		return err
	}
	notNow := domain.CardStatusNotNow
	if _, err := s.cards.UpdateCard(ctx, cardsvc.UpdateCardInput{
		AccountID: w.accountID, ActorID: w.grace, Number: icons, Status: &notNow,
	}); err != nil {
		return fmt.Errorf("defer card #%d: %w", icons, err)
	}

	// Ops: restricted-board activity by its members.
	certs, err := s.create(ctx, w, w.grace, w.ops,
		"Rotate TLS certificates", ptr("Current ones expire at the end of the month."), res)
	if err != nil {
		return err
	}
	if err := s.move(ctx, w, w.grace, certs, w.inbox); err != nil {
		return err
	}
	if err := s.comment(ctx, w, w.ada, certs, "Staging rotated, prod scheduled for Friday.", res); err != nil {
		return err
	}
	if err := s.tag(ctx, w, certs, "infra"); err != nil {
		return err
	}

	return nil
}

func (s *Seeder) create(ctx context.Context, w *workspace, actor, board domain.ID, title string, description *string, res *Result) (int64, error) {
	card, err := s.cards.CreateCard(ctx, cardsvc.CreateCardInput{
		AccountID:   w.accountID,
		ActorID:     actor,
		BoardID:     board,
		Title:       title,
		Description: description,
	})
	if err != nil {
		return 0, fmt.Errorf("create card %q: %w", title, err)
	}
	res.Cards++
	return card.Number, nil
}

func (s *Seeder) move(ctx context.Context, w *workspace, actor domain.ID, number int64, column domain.ID) error {
	_, err := s.cards.MoveCard(ctx, cardsvc.MoveCardInput{
		AccountID: w.accountID, ActorID: actor, Number: number, ColumnID: column,
	})
	if err != nil {
		return fmt.Errorf("move card #%d: %w", number, err)
	}
	return nil
}

func (s *Seeder) comment(ctx context.Context, w *workspace, actor domain.ID, number int64, content string, res *Result) error {
	_, err := s.cards.AddComment(ctx, cardsvc.AddCommentInput{
		AccountID: w.accountID, ActorID: actor, Number: number, Content: content,
	})
	if err != nil {
		return fmt.Errorf("comment on card #%d: %w", number, err)
	}
	res.Comments++
	return nil
}

// assign links a user to a card. Assignment is facade-owned; the core only
// reads it back as a filter and a display field.
func (s *Seeder) assign(ctx context.Context, w *workspace, number int64, assignee domain.ID) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO assignments (card_id, assignee_id)
		 SELECT id, $3 FROM cards WHERE account_id = $1 AND number = $2`,
		w.accountID.Bytes(), number, assignee.Bytes(),
	)
	if err != nil {
		return fmt.Errorf("assign card #%d: %w", number, err)
	}
	return nil
}

func (s *Seeder) tag(ctx context.Context, w *workspace, number int64, title string) error {
	tagID := domain.NewID()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tags (id, account_id, title) VALUES ($1, $2, $3)
		 ON CONFLICT (account_id, title) DO NOTHING`,
		tagID.Bytes(), w.accountID.Bytes(), title,
	)
	if err != nil {
		return fmt.Errorf("insert tag %q: %w", title, err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO taggings (card_id, tag_id)
		 SELECT c.id, t.id FROM cards c, tags t
		 WHERE c.account_id = $1 AND c.number = $2 AND t.account_id = $1 AND t.title = $3`,
		w.accountID.Bytes(), number, title,
	)
	if err != nil {
		return fmt.Errorf("tag card #%d: %w", number, err)
	}
	return nil
}

func (s *Seeder) markGolden(ctx context.Context, w *workspace, number int64) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO golden_cards (card_id)
		 SELECT id FROM cards WHERE account_id = $1 AND number = $2`,
		w.accountID.Bytes(), number,
	)
	if err != nil {
		return fmt.Errorf("mark card #%d golden: %w", number, err)
	}
	return nil
}

func (s *Seeder) insertBoard(ctx context.Context, accountID, creatorID domain.ID, name string, allAccess bool) (domain.ID, error) {
	id := domain.NewID()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO boards (id, account_id, creator_id, name, all_access)
		 VALUES ($1, $2, $3, $4, $5)`,
		id.Bytes(), accountID.Bytes(), creatorID.Bytes(), name, allAccess,
	)
	if err != nil {
		return domain.ID{}, fmt.Errorf("insert board %q: %w", name, err)
	}
	return id, nil
}

func (s *Seeder) insertColumn(ctx context.Context, accountID, boardID domain.ID, name, color string, position int32) (domain.ID, error) {
	id := domain.NewID()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO columns (id, account_id, board_id, name, color, position)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id.Bytes(), accountID.Bytes(), boardID.Bytes(), name, color, position,
	)
	if err != nil {
		return domain.ID{}, fmt.Errorf("insert column %q: %w", name, err)
	}
	return id, nil
}

func ptr(s string) *string { return &s }

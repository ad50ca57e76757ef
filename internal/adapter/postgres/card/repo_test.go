package card_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres/card"
	"github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*card.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return card.New(pool), pool
}

// seedBase creates the account/user/board fixture most tests start from.
func seedBase(t *testing.T, pool *pgxpool.Pool) (domain.ID, domain.User, domain.Board) {
	t.Helper()
	accountID := testhelper.SeedAccount(t, pool)
	user := testhelper.SeedUser(t, pool, accountID)
	board := testhelper.SeedBoard(t, pool, accountID, user.ID, "Roadmap", true)
	return accountID, user, board
}

// setLastActive pins a card's activity timestamp so ordering tests do not
// depend on insert timing.
func setLastActive(t *testing.T, pool *pgxpool.Pool, cardID domain.ID, at time.Time) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`UPDATE cards SET last_active_at = $1 WHERE id = $2`,
		at, cardID.Bytes(),
	)
	if err != nil {
		t.Fatalf("setLastActive: %v", err)
	}
}

func cardIDSet(cards []*domain.Card) map[string]bool {
	set := make(map[string]bool, len(cards))
	for _, c := range cards {
		set[c.ID.String()] = true
	}
	return set
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID, user, board := seedBase(t, pool)

	desc := "First pass at the quarterly plan"
	created, err := repo.Create(ctx, accountID, domain.CreateCardParams{
		BoardID:     board.ID,
		CreatorID:   user.ID,
		Title:       "Plan Q3",
		Description: &desc,
		Status:      domain.CardStatusPublished,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if created.Number != 1 {
		t.Errorf("Number mismatch: got %d, want 1", created.Number)
	}
	if len(created.ID.String()) != domain.IDLength {
		t.Errorf("ID length mismatch: got %d, want %d", len(created.ID.String()), domain.IDLength)
	}
	if !created.LastActiveAt.Equal(created.CreatedAt) {
		t.Errorf("LastActiveAt mismatch: got %v, want CreatedAt %v", created.LastActiveAt, created.CreatedAt)
	}

	got, err := repo.FindByID(ctx, accountID, created.ID)
	if err != nil {
		t.Fatalf("FindByID: unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("FindByID: expected non-nil result for created card")
	}

	if got.Title != "Plan Q3" {
		t.Errorf("Title mismatch: got %q, want %q", got.Title, "Plan Q3")
	}
	if got.Description == nil || *got.Description != desc {
		t.Errorf("Description mismatch: got %v, want %q", got.Description, desc)
	}
	if got.Status != domain.CardStatusPublished {
		t.Errorf("Status mismatch: got %s, want %s", got.Status, domain.CardStatusPublished)
	}
	if got.FormattedNumber() != "#1" {
		t.Errorf("FormattedNumber mismatch: got %q, want #1", got.FormattedNumber())
	}
	if got.BoardName == nil || *got.BoardName != "Roadmap" {
		t.Errorf("BoardName mismatch: got %v, want Roadmap", got.BoardName)
	}
	if got.CreatorName == nil || *got.CreatorName != user.Name {
		t.Errorf("CreatorName mismatch: got %v, want %q", got.CreatorName, user.Name)
	}
	if got.ColumnID != nil || got.ColumnName != nil || got.ColumnColor != nil {
		t.Errorf("expected empty column fields for an unplaced card, got %v/%v/%v",
			got.ColumnID, got.ColumnName, got.ColumnColor)
	}
	if got.IsGolden {
		t.Error("IsGolden mismatch: got true, want false")
	}
	if len(got.AssigneeNames) != 0 || len(got.TagTitles) != 0 {
		t.Errorf("expected empty relations, got assignees=%v tags=%v", got.AssigneeNames, got.TagTitles)
	}
	if !got.LastActiveAt.Equal(created.LastActiveAt) {
		t.Errorf("LastActiveAt mismatch after read: got %v, want %v", got.LastActiveAt, created.LastActiveAt)
	}
}

func TestRepo_Create_NumbersScopedPerAccount(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountA, userA, boardA := seedBase(t, pool)
	accountB := testhelper.SeedAccount(t, pool)
	userB := testhelper.SeedUser(t, pool, accountB)
	boardB := testhelper.SeedBoard(t, pool, accountB, userB.ID, "Other", true)

	for want := int64(1); want <= 3; want++ {
		c, err := repo.Create(ctx, accountA, domain.CreateCardParams{
			BoardID: boardA.ID, CreatorID: userA.ID, Title: "a", Status: domain.CardStatusPublished,
		})
		if err != nil {
			t.Fatalf("Create[A]: unexpected error: %v", err)
		}
		if c.Number != want {
			t.Errorf("account A number mismatch: got %d, want %d", c.Number, want)
		}
	}

	c, err := repo.Create(ctx, accountB, domain.CreateCardParams{
		BoardID: boardB.ID, CreatorID: userB.ID, Title: "b", Status: domain.CardStatusPublished,
	})
	if err != nil {
		t.Fatalf("Create[B]: unexpected error: %v", err)
	}
	if c.Number != 1 {
		t.Errorf("account B number mismatch: got %d, want 1 (independent counter)", c.Number)
	}
}

func TestRepo_Create_ConcurrentNumbers(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID, user, board := seedBase(t, pool)

	const n = 8
	var wg sync.WaitGroup
	numbers := make(chan int64, n)
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := repo.Create(ctx, accountID, domain.CreateCardParams{
				BoardID: board.ID, CreatorID: user.ID, Title: "concurrent", Status: domain.CardStatusPublished,
			})
			if err != nil {
				errs <- err
				return
			}
			numbers <- c.Number
		}()
	}
	wg.Wait()
	close(numbers)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent Create: unexpected error: %v", err)
	}

	seen := make(map[int64]bool, n)
	for num := range numbers {
		if seen[num] {
			t.Fatalf("number %d handed out twice", num)
		}
		seen[num] = true
	}
	for want := int64(1); want <= n; want++ {
		if !seen[want] {
			t.Errorf("number %d never handed out", want)
		}
	}
}

// ---------------------------------------------------------------------------
// FindByID / FindByNumber
// ---------------------------------------------------------------------------

func TestRepo_FindByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID := testhelper.SeedAccount(t, pool)

	got, err := repo.FindByID(ctx, accountID, domain.NewID())
	if err != nil {
		t.Fatalf("FindByID: unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("FindByID: got %+v, want nil for missing card", got)
	}
}

func TestRepo_FindByID_WrongAccount(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	_, userA, boardA := seedBase(t, pool)
	accountB := testhelper.SeedAccount(t, pool)

	c := testhelper.SeedCard(t, pool, boardA, userA.ID, "private")

	got, err := repo.FindByID(ctx, accountB, c.ID)
	if err != nil {
		t.Fatalf("FindByID: unexpected error: %v", err)
	}
	if got != nil {
		t.Error("card leaked across the account boundary")
	}
}

func TestRepo_FindByNumber(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID, user, board := seedBase(t, pool)
	seeded := testhelper.SeedCard(t, pool, board, user.ID, "numbered")

	got, err := repo.FindByNumber(ctx, accountID, seeded.Number)
	if err != nil {
		t.Fatalf("FindByNumber: unexpected error: %v", err)
	}
	if got == nil || got.ID != seeded.ID {
		t.Fatalf("FindByNumber: got %+v, want card %s", got, seeded.ID)
	}

	missing, err := repo.FindByNumber(ctx, accountID, 9999)
	if err != nil {
		t.Fatalf("FindByNumber(missing): unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("FindByNumber(missing): got %+v, want nil", missing)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestRepo_List_AccountScoping(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountA, userA, boardA := seedBase(t, pool)
	accountB := testhelper.SeedAccount(t, pool)
	userB := testhelper.SeedUser(t, pool, accountB)
	boardB := testhelper.SeedBoard(t, pool, accountB, userB.ID, "Other", true)

	mine := testhelper.SeedCard(t, pool, boardA, userA.ID, "mine")
	testhelper.SeedCard(t, pool, boardB, userB.ID, "theirs")

	got, err := repo.List(ctx, accountA, domain.CardFilter{})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Errorf("List returned %d cards, want exactly the account's own card", len(got))
	}
}

func TestRepo_List_Empty(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID := testhelper.SeedAccount(t, pool)

	got, err := repo.List(ctx, accountID, domain.CardFilter{})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("List returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("List returned %d cards, want 0", len(got))
	}
}

func TestRepo_List_StatusFilters(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID, user, board := seedBase(t, pool)

	published := testhelper.SeedCardWithStatus(t, pool, board, user.ID, "open", domain.CardStatusPublished)
	triaged := testhelper.SeedCardWithStatus(t, pool, board, user.ID, "placed", domain.CardStatusTriaged)
	closed := testhelper.SeedCardWithStatus(t, pool, board, user.ID, "done", domain.CardStatusClosed)

	got, err := repo.List(ctx, accountID, domain.CardFilter{
		Status: []domain.CardStatus{domain.CardStatusTriaged},
	})
	if err != nil {
		t.Fatalf("List(status): unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != triaged.ID {
		t.Errorf("status filter returned %d cards, want the triaged one", len(got))
	}

	got, err = repo.List(ctx, accountID, domain.CardFilter{
		ExcludeStatus: domain.TerminalStatuses(),
	})
	if err != nil {
		t.Fatalf("List(exclude): unexpected error: %v", err)
	}
	ids := cardIDSet(got)
	if len(got) != 2 || !ids[published.ID.String()] || !ids[triaged.ID.String()] {
		t.Errorf("exclude filter returned %d cards, want published+triaged", len(got))
	}
	if ids[closed.ID.String()] {
		t.Error("exclude filter returned a closed card")
	}
}

func TestRepo_List_AssigneeFilter(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID, user, board := seedBase(t, pool)
	assignee := testhelper.SeedUser(t, pool, accountID)

	assigned := testhelper.SeedCard(t, pool, board, user.ID, "assigned")
	testhelper.SeedCard(t, pool, board, user.ID, "unassigned")
	testhelper.SeedAssignment(t, pool, assigned.ID, assignee.ID)

	got, err := repo.List(ctx, accountID, domain.CardFilter{AssigneeID: &assignee.ID})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != assigned.ID {
		t.Fatalf("assignee filter returned %d cards, want the assigned one", len(got))
	}
	if len(got[0].AssigneeNames) != 1 || got[0].AssigneeNames[0] != assignee.Name {
		t.Errorf("AssigneeNames mismatch: got %v, want [%q]", got[0].AssigneeNames, assignee.Name)
	}
}

func TestRepo_List_BoardAndColumnFilters(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID, user, boardA := seedBase(t, pool)
	boardB := testhelper.SeedBoard(t, pool, accountID, user.ID, "Second", true)
	column := testhelper.SeedColumn(t, pool, boardA, "Doing", "#ff0000", 1)

	inColumn := testhelper.SeedCardInColumn(t, pool, boardA, column, user.ID, "in column")
	onBoardA := testhelper.SeedCard(t, pool, boardA, user.ID, "loose on A")
	testhelper.SeedCard(t, pool, boardB, user.ID, "on B")

	got, err := repo.List(ctx, accountID, domain.CardFilter{BoardID: &boardA.ID})
	if err != nil {
		t.Fatalf("List(board): unexpected error: %v", err)
	}
	ids := cardIDSet(got)
	if len(got) != 2 || !ids[inColumn.ID.String()] || !ids[onBoardA.ID.String()] {
		t.Errorf("board filter returned %d cards, want the two on board A", len(got))
	}

	got, err = repo.List(ctx, accountID, domain.CardFilter{ColumnID: &column.ID})
	if err != nil {
		t.Fatalf("List(column): unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != inColumn.ID {
		t.Fatalf("column filter returned %d cards, want the placed one", len(got))
	}
	if got[0].ColumnName == nil || *got[0].ColumnName != "Doing" {
		t.Errorf("ColumnName mismatch: got %v, want Doing", got[0].ColumnName)
	}
	if got[0].ColumnColor == nil || *got[0].ColumnColor != "#ff0000" {
		t.Errorf("ColumnColor mismatch: got %v, want #ff0000", got[0].ColumnColor)
	}
}

func TestRepo_List_GoldenFilter(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID, user, board := seedBase(t, pool)

	golden := testhelper.SeedCard(t, pool, board, user.ID, "starred")
	plain := testhelper.SeedCard(t, pool, board, user.ID, "plain")
	testhelper.SeedGolden(t, pool, golden.ID)

	wantGolden := true
	got, err := repo.List(ctx, accountID, domain.CardFilter{IsGolden: &wantGolden})
	if err != nil {
		t.Fatalf("List(golden): unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != golden.ID {
		t.Fatalf("golden filter returned %d cards, want the starred one", len(got))
	}
	if !got[0].IsGolden {
		t.Error("IsGolden mismatch: got false on a starred card")
	}

	wantGolden = false
	got, err = repo.List(ctx, accountID, domain.CardFilter{IsGolden: &wantGolden})
	if err != nil {
		t.Fatalf("List(not golden): unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != plain.ID {
		t.Fatalf("non-golden filter returned %d cards, want the plain one", len(got))
	}
}

func TestRepo_List_CombinedFilters(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID, user, board := seedBase(t, pool)
	assignee := testhelper.SeedUser(t, pool, accountID)

	match := testhelper.SeedCardWithStatus(t, pool, board, user.ID, "match", domain.CardStatusTriaged)
	testhelper.SeedAssignment(t, pool, match.ID, assignee.ID)

	wrongStatus := testhelper.SeedCardWithStatus(t, pool, board, user.ID, "closed", domain.CardStatusClosed)
	testhelper.SeedAssignment(t, pool, wrongStatus.ID, assignee.ID)

	testhelper.SeedCardWithStatus(t, pool, board, user.ID, "unassigned", domain.CardStatusTriaged)

	got, err := repo.List(ctx, accountID, domain.CardFilter{
		BoardID:       &board.ID,
		AssigneeID:    &assignee.ID,
		ExcludeStatus: domain.TerminalStatuses(),
	})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != match.ID {
		t.Fatalf("combined filter returned %d cards, want exactly the matching one", len(got))
	}
}

func TestRepo_List_OrderedByActivity(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID, user, board := seedBase(t, pool)

	oldest := testhelper.SeedCard(t, pool, board, user.ID, "oldest")
	middle := testhelper.SeedCard(t, pool, board, user.ID, "middle")
	newest := testhelper.SeedCard(t, pool, board, user.ID, "newest")

	base := time.Now().UTC().Truncate(time.Microsecond)
	setLastActive(t, pool, oldest.ID, base.Add(-3*time.Hour))
	setLastActive(t, pool, middle.ID, base.Add(-2*time.Hour))
	setLastActive(t, pool, newest.ID, base.Add(-1*time.Hour))

	got, err := repo.List(ctx, accountID, domain.CardFilter{})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List returned %d cards, want 3", len(got))
	}
	wantOrder := []domain.ID{newest.ID, middle.ID, oldest.ID}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("position %d: got %q, want card %s", i, got[i].Title, want)
		}
	}
}

func TestRepo_List_LimitOffset(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID, user, board := seedBase(t, pool)

	base := time.Now().UTC().Truncate(time.Microsecond)
	var seeded []domain.Card
	for i := 0; i < 5; i++ {
		c := testhelper.SeedCard(t, pool, board, user.ID, "card")
		setLastActive(t, pool, c.ID, base.Add(-time.Duration(i)*time.Hour))
		seeded = append(seeded, c)
	}

	limit := int64(2)
	got, err := repo.List(ctx, accountID, domain.CardFilter{Limit: &limit})
	if err != nil {
		t.Fatalf("List(limit): unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != seeded[0].ID || got[1].ID != seeded[1].ID {
		t.Errorf("first page wrong: got %d cards", len(got))
	}

	offset := int64(2)
	got, err = repo.List(ctx, accountID, domain.CardFilter{Limit: &limit, Offset: &offset})
	if err != nil {
		t.Fatalf("List(limit+offset): unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != seeded[2].ID || got[1].ID != seeded[3].ID {
		t.Errorf("second page wrong: got %d cards", len(got))
	}
}

func TestRepo_List_HydratesRelations(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID, user, board := seedBase(t, pool)
	first := testhelper.SeedUser(t, pool, accountID)
	second := testhelper.SeedUser(t, pool, accountID)

	c := testhelper.SeedCard(t, pool, board, user.ID, "rich")
	testhelper.SeedAssignment(t, pool, c.ID, first.ID)
	testhelper.SeedAssignment(t, pool, c.ID, second.ID)

	infra := testhelper.SeedTag(t, pool, accountID, "infra")
	api := testhelper.SeedTag(t, pool, accountID, "api")
	testhelper.SeedTagging(t, pool, c.ID, infra)
	testhelper.SeedTagging(t, pool, c.ID, api)

	got, err := repo.List(ctx, accountID, domain.CardFilter{})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List returned %d cards, want 1", len(got))
	}

	names := got[0].AssigneeNames
	if len(names) != 2 {
		t.Fatalf("AssigneeNames mismatch: got %v, want 2 names", names)
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("AssigneeNames not sorted: %v", names)
	}
	wantNames := map[string]bool{first.Name: true, second.Name: true}
	for _, n := range names {
		if !wantNames[n] {
			t.Errorf("unexpected assignee name %q", n)
		}
	}

	wantTags := []string{"api", "infra"}
	if len(got[0].TagTitles) != 2 || got[0].TagTitles[0] != wantTags[0] || got[0].TagTitles[1] != wantTags[1] {
		t.Errorf("TagTitles mismatch: got %v, want %v", got[0].TagTitles, wantTags)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestRepo_Update_PartialTitle(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID, user, board := seedBase(t, pool)

	desc := "keep me"
	orig, err := repo.Create(ctx, accountID, domain.CreateCardParams{
		BoardID: board.ID, CreatorID: user.ID, Title: "before",
		Description: &desc, Status: domain.CardStatusPublished,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	title := "after"
	got, err := repo.Update(ctx, accountID, orig.ID, domain.UpdateCardParams{Title: &title})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	if got.Title != "after" {
		t.Errorf("Title mismatch: got %q, want after", got.Title)
	}
	if got.Description == nil || *got.Description != desc {
		t.Errorf("Description mismatch: got %v, want untouched %q", got.Description, desc)
	}
	if got.Status != domain.CardStatusPublished {
		t.Errorf("Status mismatch: got %s, want untouched published", got.Status)
	}
	if got.UpdatedAt.Before(orig.UpdatedAt) {
		t.Errorf("UpdatedAt went backwards: %v < %v", got.UpdatedAt, orig.UpdatedAt)
	}
	if !got.LastActiveAt.Equal(orig.LastActiveAt) {
		t.Errorf("LastActiveAt changed on plain update: got %v, want %v", got.LastActiveAt, orig.LastActiveAt)
	}
}

func TestRepo_Update_MoveToColumn(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID, user, board := seedBase(t, pool)
	column := testhelper.SeedColumn(t, pool, board, "Doing", "#00ff00", 1)

	orig, err := repo.Create(ctx, accountID, domain.CreateCardParams{
		BoardID: board.ID, CreatorID: user.ID, Title: "to move", Status: domain.CardStatusPublished,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	status := domain.CardStatusTriaged
	got, err := repo.Update(ctx, accountID, orig.ID, domain.UpdateCardParams{
		ColumnID: &column.ID,
		Status:   &status,
	})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	if got.ColumnID == nil || *got.ColumnID != column.ID {
		t.Errorf("ColumnID mismatch: got %v, want %s", got.ColumnID, column.ID)
	}
	if got.ColumnName == nil || *got.ColumnName != "Doing" {
		t.Errorf("ColumnName mismatch: got %v, want Doing", got.ColumnName)
	}
	if got.Status != domain.CardStatusTriaged {
		t.Errorf("Status mismatch: got %s, want triaged", got.Status)
	}
}

func TestRepo_Update_DueDate(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID, user, board := seedBase(t, pool)

	orig, err := repo.Create(ctx, accountID, domain.CreateCardParams{
		BoardID: board.ID, CreatorID: user.ID, Title: "due soon", Status: domain.CardStatusPublished,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	got, err := repo.Update(ctx, accountID, orig.ID, domain.UpdateCardParams{DueOn: &due})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	if got.DueOn == nil || got.DueOn.Format("2006-01-02") != "2026-09-01" {
		t.Errorf("DueOn mismatch: got %v, want 2026-09-01", got.DueOn)
	}
}

func TestRepo_Update_Empty(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID, user, board := seedBase(t, pool)

	orig, err := repo.Create(ctx, accountID, domain.CreateCardParams{
		BoardID: board.ID, CreatorID: user.ID, Title: "unchanged", Status: domain.CardStatusPublished,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	got, err := repo.Update(ctx, accountID, orig.ID, domain.UpdateCardParams{})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if got.Title != "unchanged" {
		t.Errorf("Title mismatch: got %q, want unchanged", got.Title)
	}
	if !got.UpdatedAt.Equal(orig.UpdatedAt) {
		t.Errorf("empty update bumped UpdatedAt: got %v, want %v", got.UpdatedAt, orig.UpdatedAt)
	}
}

func TestRepo_Update_NotFound(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID := testhelper.SeedAccount(t, pool)

	title := "ghost"
	_, err := repo.Update(ctx, accountID, domain.NewID(), domain.UpdateCardParams{Title: &title})
	assertIsDomainError(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Close / Reopen / TouchActivity
// ---------------------------------------------------------------------------

func TestRepo_CloseAndReopen(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID, user, board := seedBase(t, pool)
	c := testhelper.SeedCardWithStatus(t, pool, board, user.ID, "lifecycle", domain.CardStatusTriaged)

	if err := repo.Close(ctx, accountID, c.ID); err != nil {
		t.Fatalf("Close: unexpected error: %v", err)
	}
	got, err := repo.FindByID(ctx, accountID, c.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID after close: %v", err)
	}
	if got.Status != domain.CardStatusClosed {
		t.Errorf("Status mismatch: got %s, want closed", got.Status)
	}

	if err := repo.Reopen(ctx, accountID, c.ID); err != nil {
		t.Fatalf("Reopen: unexpected error: %v", err)
	}
	got, err = repo.FindByID(ctx, accountID, c.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID after reopen: %v", err)
	}
	// Reopen never restores the pre-close status.
	if got.Status != domain.CardStatusTriaged {
		t.Errorf("Status mismatch: got %s, want triaged", got.Status)
	}
}

func TestRepo_Close_NotFound(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID := testhelper.SeedAccount(t, pool)

	assertIsDomainError(t, repo.Close(ctx, accountID, domain.NewID()), domain.ErrNotFound)
	assertIsDomainError(t, repo.Reopen(ctx, accountID, domain.NewID()), domain.ErrNotFound)
}

func TestRepo_TouchActivity(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	accountID, user, board := seedBase(t, pool)
	c := testhelper.SeedCard(t, pool, board, user.ID, "touched")

	at := time.Now().UTC().Truncate(time.Microsecond).Add(time.Hour)
	if err := repo.TouchActivity(ctx, accountID, c.ID, at); err != nil {
		t.Fatalf("TouchActivity: unexpected error: %v", err)
	}

	got, err := repo.FindByID(ctx, accountID, c.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !got.LastActiveAt.Equal(at) {
		t.Errorf("LastActiveAt mismatch: got %v, want %v", got.LastActiveAt, at)
	}
	if !got.UpdatedAt.Equal(at) {
		t.Errorf("UpdatedAt mismatch: got %v, want %v", got.UpdatedAt, at)
	}

	assertIsDomainError(t, repo.TouchActivity(ctx, accountID, domain.NewID(), at), domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func assertIsDomainError(t *testing.T, err error, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error wrapping %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error wrapping %v, got: %v", target, err)
	}
}

package card

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockCardRepo struct {
	FindByIDFunc      func(ctx context.Context, accountID, cardID domain.ID) (*domain.Card, error)
	FindByNumberFunc  func(ctx context.Context, accountID domain.ID, number int64) (*domain.Card, error)
	ListFunc          func(ctx context.Context, accountID domain.ID, filter domain.CardFilter) ([]*domain.Card, error)
	CreateFunc        func(ctx context.Context, accountID domain.ID, params domain.CreateCardParams) (*domain.Card, error)
	UpdateFunc        func(ctx context.Context, accountID, cardID domain.ID, params domain.UpdateCardParams) (*domain.Card, error)
	CloseFunc         func(ctx context.Context, accountID, cardID domain.ID) error
	ReopenFunc        func(ctx context.Context, accountID, cardID domain.ID) error
	TouchActivityFunc func(ctx context.Context, accountID, cardID domain.ID, at time.Time) error
}

func (m *mockCardRepo) FindByID(ctx context.Context, accountID, cardID domain.ID) (*domain.Card, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, accountID, cardID)
	}
	return nil, nil
}

func (m *mockCardRepo) FindByNumber(ctx context.Context, accountID domain.ID, number int64) (*domain.Card, error) {
	if m.FindByNumberFunc != nil {
		return m.FindByNumberFunc(ctx, accountID, number)
	}
	return nil, nil
}

func (m *mockCardRepo) List(ctx context.Context, accountID domain.ID, filter domain.CardFilter) ([]*domain.Card, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, accountID, filter)
	}
	return nil, nil
}

func (m *mockCardRepo) Create(ctx context.Context, accountID domain.ID, params domain.CreateCardParams) (*domain.Card, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, accountID, params)
	}
	now := time.Now().UTC()
	return &domain.Card{
		ID:           domain.NewID(),
		AccountID:    accountID,
		BoardID:      params.BoardID,
		CreatorID:    params.CreatorID,
		Number:       1,
		Title:        params.Title,
		Description:  params.Description,
		Status:       params.Status,
		ColumnID:     params.ColumnID,
		LastActiveAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (m *mockCardRepo) Update(ctx context.Context, accountID, cardID domain.ID, params domain.UpdateCardParams) (*domain.Card, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, accountID, cardID, params)
	}
	return &domain.Card{ID: cardID, AccountID: accountID}, nil
}

func (m *mockCardRepo) Close(ctx context.Context, accountID, cardID domain.ID) error {
	if m.CloseFunc != nil {
		return m.CloseFunc(ctx, accountID, cardID)
	}
	return nil
}

func (m *mockCardRepo) Reopen(ctx context.Context, accountID, cardID domain.ID) error {
	if m.ReopenFunc != nil {
		return m.ReopenFunc(ctx, accountID, cardID)
	}
	return nil
}

func (m *mockCardRepo) TouchActivity(ctx context.Context, accountID, cardID domain.ID, at time.Time) error {
	if m.TouchActivityFunc != nil {
		return m.TouchActivityFunc(ctx, accountID, cardID, at)
	}
	return nil
}

type mockBoardRepo struct {
	FindByIDFunc   func(ctx context.Context, accountID, boardID domain.ID) (*domain.Board, error)
	FindByNameFunc func(ctx context.Context, accountID domain.ID, name string) (*domain.Board, error)
	HasAccessFunc  func(ctx context.Context, accountID, boardID, userID domain.ID) (bool, error)
	FindColumnFunc func(ctx context.Context, accountID, columnID domain.ID) (*domain.Column, error)
}

func (m *mockBoardRepo) FindByID(ctx context.Context, accountID, boardID domain.ID) (*domain.Board, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, accountID, boardID)
	}
	return nil, nil
}

func (m *mockBoardRepo) FindByName(ctx context.Context, accountID domain.ID, name string) (*domain.Board, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, accountID, name)
	}
	return nil, nil
}

// HasAccess defaults to true so happy-path tests only stub the lookups.
func (m *mockBoardRepo) HasAccess(ctx context.Context, accountID, boardID, userID domain.ID) (bool, error) {
	if m.HasAccessFunc != nil {
		return m.HasAccessFunc(ctx, accountID, boardID, userID)
	}
	return true, nil
}

func (m *mockBoardRepo) FindColumn(ctx context.Context, accountID, columnID domain.ID) (*domain.Column, error) {
	if m.FindColumnFunc != nil {
		return m.FindColumnFunc(ctx, accountID, columnID)
	}
	return nil, nil
}

type mockCommentRepo struct {
	CreateFunc      func(ctx context.Context, accountID, cardID, creatorID domain.ID, content string) (*domain.Comment, error)
	ListForCardFunc func(ctx context.Context, accountID, cardID domain.ID, limit int64) ([]*domain.Comment, error)
}

func (m *mockCommentRepo) Create(ctx context.Context, accountID, cardID, creatorID domain.ID, content string) (*domain.Comment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, accountID, cardID, creatorID, content)
	}
	now := time.Now().UTC()
	return &domain.Comment{
		ID:        domain.NewID(),
		AccountID: accountID,
		CardID:    cardID,
		CreatorID: creatorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (m *mockCommentRepo) ListForCard(ctx context.Context, accountID, cardID domain.ID, limit int64) ([]*domain.Comment, error) {
	if m.ListForCardFunc != nil {
		return m.ListForCardFunc(ctx, accountID, cardID, limit)
	}
	return nil, nil
}

type mockEventRepo struct {
	AppendFunc func(ctx context.Context, e domain.Event) error
}

func (m *mockEventRepo) Append(ctx context.Context, e domain.Event) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, e)
	}
	return nil
}

type mockTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(context.Context) error) error
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

// ===========================================================================
// Helpers
// ===========================================================================

type testDeps struct {
	cards    *mockCardRepo
	boards   *mockBoardRepo
	comments *mockCommentRepo
	events   *mockEventRepo
	tx       *mockTxManager
}

func newTestService() (*Service, *testDeps) {
	deps := &testDeps{
		cards:    &mockCardRepo{},
		boards:   &mockBoardRepo{},
		comments: &mockCommentRepo{},
		events:   &mockEventRepo{},
		tx:       &mockTxManager{},
	}
	svc := NewService(
		slog.Default(),
		deps.cards,
		deps.boards,
		deps.comments,
		deps.events,
		deps.tx,
	)
	return svc, deps
}

func makeBoard(accountID domain.ID, name string) *domain.Board {
	return &domain.Board{
		ID:        domain.NewID(),
		AccountID: accountID,
		CreatorID: domain.NewID(),
		Name:      name,
		AllAccess: true,
	}
}

func makeCard(accountID, boardID domain.ID, number int64) *domain.Card {
	now := time.Now().UTC()
	return &domain.Card{
		ID:           domain.NewID(),
		AccountID:    accountID,
		BoardID:      boardID,
		CreatorID:    domain.NewID(),
		Number:       number,
		Title:        "Fix login flow",
		Status:       domain.CardStatusPublished,
		LastActiveAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func ptrString(s string) *string { return &s }

func ptrStatus(s domain.CardStatus) *domain.CardStatus { return &s }

func ptrBool(b bool) *bool { return &b }

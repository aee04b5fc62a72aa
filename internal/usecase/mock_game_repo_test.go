package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

type mockGameRepo struct {
	mock.Mock
}

func newMockGameRepo(t interface {
	mock.TestingT
	Cleanup(func())
}) *mockGameRepo {
	m := &mockGameRepo{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockGameRepo) Create(ctx context.Context, game *entity.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)

	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

// Update hands fn the game configured with the "stored" argument when the call succeeds.
func (m *mockGameRepo) Update(ctx context.Context, id string, fn func(game *entity.Game) error) error {
	args := m.Called(ctx, id, fn)

	if game, ok := args.Get(0).(*entity.Game); ok {
		if err := fn(game); err != nil {
			return err
		}
	}

	return args.Error(1)
}

func (m *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

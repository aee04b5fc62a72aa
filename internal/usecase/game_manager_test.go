package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

var errRedisDown = errors.New("redis down")

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(t *testing.T) *GameManager {
	t.Helper()

	return NewGameManager(newTestLogger(), repository.NewMemoryGameRepository(time.Hour))
}

func playCells(t *testing.T, manager *GameManager, id string, cells ...int) *GameView {
	t.Helper()

	var view *GameView
	for _, cell := range cells {
		var err error
		view, err = manager.MakeMove(context.Background(), id, cell)
		require.NoError(t, err, "move to cell %d", cell)
	}

	return view
}

func TestGameManager_CreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates an empty game", func(t *testing.T) {
		// Given: a game manager
		manager := newTestManager(t)

		// When: a game is created
		view, err := manager.CreateGame(ctx)

		// Then: the empty board is shown with X to play
		require.NoError(t, err)
		assert.NotEmpty(t, view.ID)
		assert.Equal(t, entity.Board{}, view.Board)
		assert.Equal(t, tictactoe.Status{Kind: tictactoe.StatusNext, Mark: entity.MarkX}, view.Status)
		assert.Equal(t, 1, view.HistoryLength)
		assert.Equal(t, 0, view.CurrentIndex)
		assert.Len(t, view.Moments, 1)

		// Then: the game can be read back
		stored, err := manager.GetGame(ctx, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view, stored)
	})

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		// Given: a repository that cannot store games
		mockRepo := newMockGameRepo(t)
		manager := NewGameManager(newTestLogger(), mockRepo)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Game")).
			Return(errRedisDown).
			Once()

		// When: a game is created
		view, err := manager.CreateGame(ctx)

		// Then: the error is returned
		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, view)
	})
}

func TestGameManager_MakeMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Winning sequence", func(t *testing.T) {
		// Given: a new game
		manager := newTestManager(t)
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)

		// When: X completes the top row
		view := playCells(t, manager, game.ID, 0, 4, 1, 7, 2)

		// Then: X wins with six snapshots recorded
		assert.Equal(t, tictactoe.Status{Kind: tictactoe.StatusWin, Mark: entity.MarkX}, view.Status)
		assert.Equal(t, 6, view.HistoryLength)
		assert.Equal(t, 5, view.CurrentIndex)
	})

	t.Run("Ignored move returns the unchanged view", func(t *testing.T) {
		// Given: X has played cell 0
		manager := newTestManager(t)
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)
		before := playCells(t, manager, game.ID, 0)

		// When: cell 0 is clicked again
		view, err := manager.MakeMove(ctx, game.ID, 0)

		// Then: ErrCellOccupied is returned with the same view
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.True(t, apperror.IsIgnorable(err))
		assert.Equal(t, before, view)
	})

	t.Run("Move after the game is over", func(t *testing.T) {
		manager := newTestManager(t)
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)
		playCells(t, manager, game.ID, 0, 4, 1, 7, 2)

		view, err := manager.MakeMove(ctx, game.ID, 3)

		require.ErrorIs(t, err, apperror.ErrGameOver)
		assert.Equal(t, 6, view.HistoryLength)
	})

	t.Run("Invalid cell", func(t *testing.T) {
		manager := newTestManager(t)
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)

		_, err = manager.MakeMove(ctx, game.ID, 9)

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
		assert.False(t, apperror.IsIgnorable(err))
	})

	t.Run("Unknown game", func(t *testing.T) {
		manager := newTestManager(t)

		view, err := manager.MakeMove(ctx, "missing", 0)

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, view)
	})

	t.Run("Corrupt stored history is reported", func(t *testing.T) {
		// Given: a repository holding an impossible timeline
		mockRepo := newMockGameRepo(t)
		manager := NewGameManager(newTestLogger(), mockRepo)

		corrupt := &entity.Game{ID: "g1", Snapshots: []entity.Board{{0: entity.MarkO}}}
		mockRepo.On("Update", mock.Anything, "g1", mock.Anything).
			Return(corrupt, nil).
			Once()

		// When: a move is made
		view, err := manager.MakeMove(ctx, "g1", 4)

		// Then: ErrCorruptHistory is returned
		require.ErrorIs(t, err, apperror.ErrCorruptHistory)
		assert.Nil(t, view)
	})

	t.Run("Repository failure is returned", func(t *testing.T) {
		mockRepo := newMockGameRepo(t)
		manager := NewGameManager(newTestLogger(), mockRepo)

		mockRepo.On("Update", mock.Anything, "g1", mock.Anything).
			Return(nil, errRedisDown).
			Once()

		view, err := manager.MakeMove(ctx, "g1", 4)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, view)
	})

	t.Run("Stamps the update time", func(t *testing.T) {
		// Given: a manager with a fixed clock
		stored := &entity.Game{ID: "g1", Snapshots: []entity.Board{{}}}
		mockRepo := newMockGameRepo(t)
		manager := NewGameManager(newTestLogger(), mockRepo)
		manager.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }

		mockRepo.On("Update", mock.Anything, "g1", mock.Anything).
			Return(stored, nil).
			Once()

		// When: a move is made
		_, err := manager.MakeMove(ctx, "g1", 4)

		// Then: the stored game carries the new snapshot and time
		require.NoError(t, err)
		assert.Len(t, stored.Snapshots, 2)
		assert.Equal(t, 1, stored.CurrentIndex)
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), stored.UpdatedAt)
	})
}

func TestGameManager_JumpTo(t *testing.T) {
	ctx := context.Background()

	t.Run("Jump then replay truncates the stored history", func(t *testing.T) {
		// Given: a won game
		manager := newTestManager(t)
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)
		playCells(t, manager, game.ID, 0, 4, 1, 7, 2)

		// When: jumping to moment 2 and playing cell 8
		view, err := manager.JumpTo(ctx, game.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 6, view.HistoryLength)
		assert.Equal(t, 2, view.CurrentIndex)

		view = playCells(t, manager, game.ID, 8)

		// Then: the stored timeline was cut and extended from moment 2
		assert.Equal(t, 4, view.HistoryLength)
		assert.Equal(t, 3, view.CurrentIndex)
		assert.Equal(t, entity.TurnFor(2), view.Board[8])

		stored, err := manager.GetGame(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, view, stored)
	})

	t.Run("Index out of range", func(t *testing.T) {
		manager := newTestManager(t)
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)

		view, err := manager.JumpTo(ctx, game.ID, 3)

		require.ErrorIs(t, err, apperror.ErrIndexOutOfRange)
		assert.Equal(t, 0, view.CurrentIndex)
	})
}

func TestGameManager_DeleteGame(t *testing.T) {
	ctx := context.Background()

	// Given: a stored game
	manager := newTestManager(t)
	game, err := manager.CreateGame(ctx)
	require.NoError(t, err)

	// When: it is deleted
	require.NoError(t, manager.DeleteGame(ctx, game.ID))

	// Then: it can no longer be read or deleted
	_, err = manager.GetGame(ctx, game.ID)
	require.ErrorIs(t, err, apperror.ErrGameNotFound)
	require.ErrorIs(t, manager.DeleteGame(ctx, game.ID), apperror.ErrGameNotFound)
}

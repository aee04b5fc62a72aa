package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, fn func(game *entity.Game) error) error
	DeleteByID(ctx context.Context, id string) error
}

// GameView is the read model the display renders from.
type GameView struct {
	ID            string
	Board         entity.Board
	Status        tictactoe.Status
	HistoryLength int
	CurrentIndex  int
	Moments       []tictactoe.Moment
}

// GameManager runs games stored in the repository. Every change goes through
// gameRepo.Update so a game's history is never modified by two callers at once.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	now func() time.Time
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		now:      time.Now,
	}
}

func (that *GameManager) CreateGame(ctx context.Context) (*GameView, error) {
	controller := tictactoe.NewGameController()

	now := that.now()
	game := &entity.Game{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	controller.Save(game)

	if err := that.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "game_id", game.ID)

	return newGameView(game.ID, controller), nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*GameView, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	controller, err := tictactoe.RestoreGameController(game)
	if err != nil {
		return nil, err
	}

	return newGameView(game.ID, controller), nil
}

// MakeMove plays cell at the moment the game is viewing. A rejected click still returns the
// unchanged view together with the error.
func (that *GameManager) MakeMove(ctx context.Context, id string, cell int) (*GameView, error) {
	log := that.logger.With("method", "MakeMove", "game_id", id, "cell", cell)

	view, err := that.update(ctx, id, func(controller *tictactoe.GameController) error {
		return controller.Move(cell)
	})
	if err != nil {
		that.logRejection(log, err)
		return view, fmt.Errorf("failed to make move: %w", err)
	}

	log.Debug("move played", "history_length", view.HistoryLength, "status", view.Status.String())

	return view, nil
}

// JumpTo travels the game to a recorded moment.
func (that *GameManager) JumpTo(ctx context.Context, id string, index int) (*GameView, error) {
	log := that.logger.With("method", "JumpTo", "game_id", id, "index", index)

	view, err := that.update(ctx, id, func(controller *tictactoe.GameController) error {
		return controller.ViewMoment(index)
	})
	if err != nil {
		that.logRejection(log, err)
		return view, fmt.Errorf("failed to jump: %w", err)
	}

	log.Debug("moment viewed")

	return view, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "game_id", id)

	return nil
}

func (that *GameManager) update(ctx context.Context, id string, apply func(*tictactoe.GameController) error) (*GameView, error) {
	var view *GameView

	err := that.gameRepo.Update(ctx, id, func(game *entity.Game) error {
		controller, err := tictactoe.RestoreGameController(game)
		if err != nil {
			return err
		}

		if err = apply(controller); err != nil {
			view = newGameView(game.ID, controller)
			return err
		}

		controller.Save(game)
		game.UpdatedAt = that.now()
		view = newGameView(game.ID, controller)

		return nil
	})

	return view, err
}

// logRejection - rejected clicks are expected, bad indices mean the display is broken.
func (that *GameManager) logRejection(log *slog.Logger, err error) {
	switch {
	case apperror.IsIgnorable(err):
		log.Debug("move ignored", "reason", err)
	case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrIndexOutOfRange):
		log.Error("display sent an impossible request", "error", err)
	case errors.Is(err, apperror.ErrGameNotFound):
		log.Info("game not found")
	default:
		log.Error("failed to update game", "error", err)
	}
}

func newGameView(id string, controller *tictactoe.GameController) *GameView {
	return &GameView{
		ID:            id,
		Board:         controller.Current(),
		Status:        controller.Status(),
		HistoryLength: controller.HistoryLength(),
		CurrentIndex:  controller.CurrentIndex(),
		Moments:       controller.Moments(),
	}
}

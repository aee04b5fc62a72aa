package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const (
	StatusWin  = "win"
	StatusDraw = "draw"
	StatusNext = "next"
)

// Status is what the board shows above the cells: the winner, a draw, or who moves next.
type Status struct {
	Kind string
	Mark entity.Mark
}

// Moment is one entry of the jump list rendered next to the board.
type Moment struct {
	Index   int
	Label   string
	Current bool
}

// GameController is the single owner of a game's history. It is not safe for concurrent use;
// callers serialize access per game.
type GameController struct {
	history *History
}

func NewGameController() *GameController {
	return &GameController{history: NewHistory()}
}

// RestoreGameController resumes a stored game.
func RestoreGameController(game *entity.Game) (*GameController, error) {
	history, err := RestoreHistory(game.Snapshots, game.CurrentIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game %s: %w", game.ID, err)
	}

	return &GameController{history: history}, nil
}

// Move plays the next mark at cell from the moment being viewed.
func (that *GameController) Move(cell int) error {
	if err := that.history.ApplyMove(cell); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	return nil
}

// ViewMoment travels to a recorded point of the game.
func (that *GameController) ViewMoment(index int) error {
	if err := that.history.JumpTo(index); err != nil {
		return fmt.Errorf("invalid moment: %w", err)
	}

	return nil
}

// Status is recomputed from the viewed snapshot on every call.
func (that *GameController) Status() Status {
	outcome := entity.Evaluate(that.history.Current())

	switch outcome.Kind {
	case entity.OutcomeWin:
		return Status{Kind: StatusWin, Mark: outcome.Winner}
	case entity.OutcomeDraw:
		return Status{Kind: StatusDraw}
	default:
		return Status{Kind: StatusNext, Mark: entity.TurnFor(that.history.CurrentIndex())}
	}
}

func (that *GameController) Current() entity.Board {
	return that.history.Current()
}

func (that *GameController) HistoryLength() int {
	return that.history.Len()
}

func (that *GameController) CurrentIndex() int {
	return that.history.CurrentIndex()
}

// Moments lists every recorded point of the game as a jump target.
func (that *GameController) Moments() []Moment {
	moments := make([]Moment, that.history.Len())
	for i := range moments {
		label := "Go to game start"
		if i > 0 {
			label = fmt.Sprintf("Go to move #%d", i)
		}

		moments[i] = Moment{
			Index:   i,
			Label:   label,
			Current: i == that.history.CurrentIndex(),
		}
	}

	return moments
}

// Save copies the controller state into game for storage.
func (that *GameController) Save(game *entity.Game) {
	game.Snapshots = that.history.Snapshots()
	game.CurrentIndex = that.history.CurrentIndex()
}

func (that Status) String() string {
	switch that.Kind {
	case StatusWin:
		return "Winner: " + that.Mark.String()
	case StatusDraw:
		return "Draw"
	default:
		return "Next player: " + that.Mark.String()
	}
}

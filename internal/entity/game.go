package entity

import "time"

// Mark is the content of a single board cell.
type Mark uint8

const (
	EmptyCell Mark = iota
	MarkX
	MarkO
)

const BoardSize = 9

// Board is one immutable 3x3 snapshot stored row-major.
type Board [BoardSize]Mark

const (
	OutcomeInProgress = "in-progress"
	OutcomeWin        = "win"
	OutcomeDraw       = "draw"
)

// WinCombos lists the winning lines in evaluation order: rows, columns, diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Outcome is the result of evaluating a board. Winner is set only for OutcomeWin.
type Outcome struct {
	Kind   string
	Winner Mark
}

func (that Outcome) IsFinished() bool {
	return that.Kind != OutcomeInProgress
}

// Game is the stored form of a game session: the whole live timeline plus the viewed index.
type Game struct {
	ID           string    `json:"id"`
	Snapshots    []Board   `json:"snapshots"`
	CurrentIndex int       `json:"current_index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (that Mark) String() string {
	switch that {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return ""
	}
}

// Opponent returns the other player's mark. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return EmptyCell
	}
}

// Evaluate reports the outcome of the board. When two different marks both complete a line,
// the first line in WinCombos order decides.
func Evaluate(board Board) Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Outcome{Kind: OutcomeWin, Winner: a}
		}
	}

	// the game continues while any square is free
	for _, cell := range board {
		if cell == EmptyCell {
			return Outcome{Kind: OutcomeInProgress}
		}
	}

	return Outcome{Kind: OutcomeDraw}
}

// TurnFor returns the mark placed by the move made from history position index.
// X always opens and players strictly alternate.
func TurnFor(index int) Mark {
	if index%2 == 0 {
		return MarkX
	}
	return MarkO
}

// Filled counts the marks on the board.
func (that Board) Filled() int {
	n := 0
	for _, cell := range that {
		if cell != EmptyCell {
			n++
		}
	}
	return n
}

// Strings renders the board cells as "X", "O" or "".
func (that Board) Strings() []string {
	cells := make([]string, len(that))
	for i, cell := range that {
		cells[i] = cell.String()
	}
	return cells
}

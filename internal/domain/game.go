package domain

import "fmt"

type lastMove struct {
	player PlayerID
	at     Coord
}

// Game runs one round: turn order, legality and the win/tie verdict.
// It is not safe for concurrent use; one caller drives a round to completion.
type Game struct {
	board    *Board
	detector *WinDetector
	round    int // starts at 1; odd means PlayerA moves
	last     lastMove
	outcome  Outcome
}

func NewGame() *Game {
	board := NewBoard()
	return &Game{
		board:    board,
		detector: NewWinDetector(board),
		round:    1,
		last:     lastMove{player: PlayerA, at: NoMove},
		outcome:  Outcome{Status: StatusActive},
	}
}

// MakeMove drops a token for the current player into col.
func (g *Game) MakeMove(col int) error {
	if g.Winner().Decided() {
		return fmt.Errorf("%w: game is over", ErrIllegalMove)
	}
	if col < 0 || col >= Columns {
		return fmt.Errorf("%w: column %d out of range", ErrIllegalMove, col)
	}

	row := g.board.LandingRow(col)
	if row < 0 {
		return fmt.Errorf("%w: column %d is full", ErrIllegalMove, col)
	}

	player := g.CurrentPlayer()
	if !g.board.Place(row, col, player) {
		return fmt.Errorf("%w: cell (%d,%d) unavailable", ErrIllegalMove, row, col)
	}
	g.round++
	g.last = lastMove{player: player, at: Coord{Row: row, Col: col}}
	return nil
}

// Winner evaluates the most recent move. The first decided verdict is kept,
// after which the game accepts no more moves.
func (g *Game) Winner() Outcome {
	if g.outcome.Decided() {
		return g.outcome
	}
	if g.detector.IsWon(g.last.at, g.last.player, nil) {
		g.outcome = Outcome{Status: StatusWon, Winner: g.last.player}
		return g.outcome
	}
	if g.board.IsFull() {
		g.outcome = Outcome{Status: StatusDraw}
	}
	return g.outcome
}

func (g *Game) CurrentPlayer() PlayerID {
	if g.round%2 == 1 {
		return PlayerA
	}
	return PlayerB
}

// CellAt returns the occupant of (row, col). Off-grid positions read as Empty.
func (g *Game) CellAt(row, col int) PlayerID {
	return g.board.owner(row, col)
}

func (g *Game) FillCounts() [Columns]int {
	return g.board.FillCounts()
}

// Grid returns a copy of every cell.
func (g *Game) Grid() [Rows][Columns]PlayerID {
	return g.board.Grid()
}

// LastMove returns where the previous token landed, NoMove before the first move.
func (g *Game) LastMove() Coord {
	return g.last.at
}

func (g *Game) LastMover() PlayerID {
	if g.last.at == NoMove {
		return Empty
	}
	return g.last.player
}

// WinningCells returns the four cells of the winning run, or nil.
func (g *Game) WinningCells() []Coord {
	if g.Winner().Status != StatusWon {
		return nil
	}
	return g.detector.WinSequence()
}

// MoveCount is the number of tokens played so far.
func (g *Game) MoveCount() int {
	return g.round - 1
}

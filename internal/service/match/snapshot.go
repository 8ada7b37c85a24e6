package match

import (
	"time"

	"github.com/IdoSagiv/connect-four/internal/domain"
)

// Snapshot is an immutable view of a round, safe to hand to other goroutines.
type Snapshot struct {
	RoundID       string                                       `json:"roundId"`
	Round         int                                          `json:"round"`
	Grid          [domain.Rows][domain.Columns]domain.PlayerID `json:"grid"`
	FillCounts    [domain.Columns]int                          `json:"fillCounts"`
	CurrentPlayer domain.PlayerID                              `json:"currentPlayer"`
	LastMove      domain.Coord                                 `json:"lastMove"`
	LastMover     domain.PlayerID                              `json:"lastMover"`
	MoveCount     int                                          `json:"moveCount"`
	Outcome       domain.Outcome                               `json:"outcome"`
	WinningCells  []domain.Coord                               `json:"winningCells,omitempty"`
	Players       [2]PlayerView                                `json:"players"`
	At            time.Time                                    `json:"at"`
}

type PlayerView struct {
	ID    domain.PlayerID `json:"id"`
	Color string          `json:"color"`
	Role  domain.Role     `json:"role"`
	Score int64           `json:"score"`
}

// Result closes a round.
type Result struct {
	Snapshot
	Duration time.Duration `json:"duration"`
}

func viewOf(p *domain.Player) PlayerView {
	return PlayerView{ID: p.ID, Color: p.Color, Role: p.Role, Score: p.Score()}
}

func takeSnapshot(roundID string, round int, g *domain.Game, players [2]*domain.Player) Snapshot {
	return Snapshot{
		RoundID:       roundID,
		Round:         round,
		Grid:          g.Grid(),
		FillCounts:    g.FillCounts(),
		CurrentPlayer: g.CurrentPlayer(),
		LastMove:      g.LastMove(),
		LastMover:     g.LastMover(),
		MoveCount:     g.MoveCount(),
		Outcome:       g.Winner(),
		WinningCells:  g.WinningCells(),
		Players:       [2]PlayerView{viewOf(players[0]), viewOf(players[1])},
		At:            time.Now(),
	}
}

// Player returns the view for id.
func (s Snapshot) Player(id domain.PlayerID) PlayerView {
	if s.Players[0].ID == id {
		return s.Players[0]
	}
	return s.Players[1]
}

// IsWinningCell reports whether (row, col) is part of the winning run.
func (s Snapshot) IsWinningCell(row, col int) bool {
	for _, c := range s.WinningCells {
		if c.Row == row && c.Col == col {
			return true
		}
	}
	return false
}

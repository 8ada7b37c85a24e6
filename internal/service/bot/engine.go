package bot

import (
	"math/rand"
	"time"

	"github.com/IdoSagiv/connect-four/internal/domain"
)

const (
	// Search depth in plies: one own move followed by every opponent reply.
	DefaultDepth = 2
	MinDepth     = 1

	// Budgets below this collapse the search to MinDepth.
	LowLatencyThreshold = 150 * time.Millisecond
)

// AI picks columns for one identity in one game. It keeps a private copy of
// the game board and never mutates the game itself.
type AI struct {
	game     *domain.Game
	player   domain.PlayerID
	opponent domain.PlayerID
	mirror   domain.Board
	detector *domain.WinDetector
	scores   map[int]int
	last     int
	rng      *rand.Rand
}

func New(game *domain.Game, player domain.PlayerID) *AI {
	ai := &AI{
		game:     game,
		player:   player,
		opponent: player.Opponent(),
		last:     -1,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	ai.mirror = buildMirror(game)
	ai.detector = domain.NewWinDetector(&ai.mirror)
	return ai
}

// buildMirror replays every occupied cell of the game bottom-up so column
// counts stay consistent.
func buildMirror(game *domain.Game) domain.Board {
	var board domain.Board
	for row := domain.Rows - 1; row >= 0; row-- {
		for col := 0; col < domain.Columns; col++ {
			if p := game.CellAt(row, col); p != domain.Empty {
				board.Place(row, col, p)
			}
		}
	}
	return board
}

// LastChosenMove returns the column returned by the previous search.
func (ai *AI) LastChosenMove() (int, bool) {
	return ai.last, ai.last >= 0
}

func (ai *AI) Player() domain.PlayerID {
	return ai.player
}

// FindLegalMove searches at full depth.
func (ai *AI) FindLegalMove() (int, error) {
	return ai.findLegalMove(DefaultDepth)
}

// FindLegalMoveWithin is FindLegalMove with a soft time budget; a budget under
// LowLatencyThreshold searches one ply only. The search is never interrupted.
func (ai *AI) FindLegalMoveWithin(budget time.Duration) (int, error) {
	depth := DefaultDepth
	if budget < LowLatencyThreshold {
		depth = MinDepth
	}
	return ai.findLegalMove(depth)
}

func (ai *AI) findLegalMove(depth int) (int, error) {
	if ai.game.Winner().Decided() {
		return -1, domain.ErrNoLegalMove
	}

	ai.syncMirror()

	ai.scores = make(map[int]int)
	for _, col := range ai.mirror.PlayableColumns() {
		ai.scores[col] = 0
	}
	if len(ai.scores) == 0 {
		return -1, domain.ErrNoLegalMove
	}

	board := ai.mirror.Clone()
	ai.rate(&board, depth, 0, -1)

	ai.last = ai.chooseColumn()
	return ai.last, nil
}

// syncMirror brings the private board up to date with the game: first the
// column this AI chose last time, then whatever else landed since.
func (ai *AI) syncMirror() {
	if ai.last >= 0 {
		row := ai.mirror.LandingRow(ai.last)
		if row >= 0 && ai.game.CellAt(row, ai.last) == ai.player {
			ai.mirror.Place(row, ai.last, ai.player)
		}
	}

	gameFill := ai.game.FillCounts()
	for col := 0; col < domain.Columns; col++ {
		for ai.mirror.FillCount(col) < gameFill[col] {
			row := ai.mirror.LandingRow(col)
			if !ai.mirror.Place(row, col, ai.game.CellAt(row, col)) {
				break
			}
		}
	}
}

// chooseColumn returns a highest-scored column, picking uniformly at random
// among equal scores.
func (ai *AI) chooseColumn() int {
	best := 0
	var options []int
	for col := 0; col < domain.Columns; col++ {
		score, ok := ai.scores[col]
		if !ok {
			continue
		}
		switch {
		case len(options) == 0 || score > best:
			best = score
			options = append(options[:0], col)
		case score == best:
			options = append(options, col)
		}
	}
	if len(options) == 1 {
		return options[0]
	}
	return options[ai.rng.Intn(len(options))]
}

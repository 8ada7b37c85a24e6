package bot

import (
	"github.com/IdoSagiv/connect-four/internal/domain"
)

const (
	// Score adjustments. The "sure" values apply to the candidate's own
	// first move and reply only; anything found deeper uses the "possible" ones.
	SureWin      = 1000
	SureLose     = -100
	PossibleWin  = 5
	PossibleLose = -1
)

// drop plays col for player on board and returns where the token landed.
func drop(board *domain.Board, col int, player domain.PlayerID) (domain.Coord, bool) {
	row := board.LandingRow(col)
	if row < 0 || !board.Place(row, col, player) {
		return domain.Coord{}, false
	}
	return domain.Coord{Row: row, Col: col}, true
}

// rate scores every own move on board followed by every opponent reply,
// recursing from each non-losing reply while rounds remain. level 0 is the
// real position; there root is unset and each candidate scores for itself.
// Deeper levels add to the score of the top-level candidate root.
//
// Moves are played on board and undone again, so board is unchanged on return.
// It reports false when a sure win was found, which ends the whole search.
func (ai *AI) rate(board *domain.Board, rounds, level, root int) bool {
	if rounds == 0 {
		return true
	}
	top := level == 0

	for _, col := range board.PlayableColumns() {
		key := root
		if top {
			key = col
		}

		mine, ok := drop(board, col, ai.player)
		if !ok {
			continue
		}

		if ai.detector.IsWon(mine, ai.player, board) {
			board.Undo(mine.Row, mine.Col)
			if top {
				ai.scores[key] += SureWin
				return false
			}
			ai.scores[key] += PossibleWin
			continue
		}

		for _, reply := range board.PlayableColumns() {
			theirs, ok := drop(board, reply, ai.opponent)
			if !ok {
				continue
			}

			if ai.detector.IsWon(theirs, ai.opponent, board) {
				board.Undo(theirs.Row, theirs.Col)
				if top {
					ai.scores[key] += SureLose
					break
				}
				ai.scores[key] += PossibleLose
				continue
			}

			ai.rate(board, rounds-1, level+1, key)
			board.Undo(theirs.Row, theirs.Col)
		}

		board.Undo(mine.Row, mine.Col)
	}
	return true
}

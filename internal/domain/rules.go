package domain

type direction struct {
	dRow, dCol int
}

// axes are scanned in this order; each axis is a pair of opposite directions.
var axes = [4][2]direction{
	{{0, 1}, {0, -1}},  // row
	{{1, 0}, {-1, 0}},  // column
	{{1, 1}, {-1, -1}}, // diagonal \
	{{-1, 1}, {1, -1}}, // diagonal /
}

// WinDetector checks whether a move completed a run of ToWin tokens and
// remembers the cells of the last run it found.
type WinDetector struct {
	board *Board
	seq   []Coord
}

func NewWinDetector(board *Board) *WinDetector {
	return &WinDetector{board: board}
}

// IsWon reports whether the token at last belongs to player and is part of a
// run of at least ToWin along one axis. A non-nil override is scanned instead
// of the bound board for this call only. The first qualifying axis wins and
// its cells become the stored sequence.
func (w *WinDetector) IsWon(last Coord, player PlayerID, override *Board) bool {
	board := w.board
	if override != nil {
		board = override
	}
	if board == nil || player == Empty || board.owner(last.Row, last.Col) != player {
		return false
	}

	for _, axis := range axes {
		seq := make([]Coord, 1, ToWin)
		seq[0] = last
		for _, dir := range axis {
			need := ToWin - len(seq)
			if need == 0 {
				break
			}
			seq = append(seq, collectInDirection(board, last, dir, player, need)...)
		}
		if len(seq) >= ToWin {
			w.seq = seq
			return true
		}
	}
	return false
}

// collectInDirection walks away from start while cells belong to player,
// taking at most limit steps.
func collectInDirection(board *Board, start Coord, dir direction, player PlayerID, limit int) []Coord {
	var cells []Coord
	r, c := start.Row+dir.dRow, start.Col+dir.dCol
	for len(cells) < limit && board.owner(r, c) == player {
		cells = append(cells, Coord{Row: r, Col: c})
		r += dir.dRow
		c += dir.dCol
	}
	return cells
}

// WinSequence returns the last detected run, or nil if none is long enough
// to prove a win.
func (w *WinDetector) WinSequence() []Coord {
	if len(w.seq) < ToWin {
		return nil
	}
	out := make([]Coord, ToWin)
	copy(out, w.seq[:ToWin])
	return out
}

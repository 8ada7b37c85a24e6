package domain

// Board holds the grid and how many tokens each column contains.
// Row 0 is the top row, so a column fills from row Rows-1 upwards.
// The type is array backed: assigning a Board copies it completely.
type Board struct {
	grid [Rows][Columns]PlayerID
	fill [Columns]int
}

func NewBoard() *Board {
	return &Board{}
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}

// Place puts a token for player at (row, col). It reports false and leaves the
// board untouched when the cell is off-grid or already taken.
func (b *Board) Place(row, col int, player PlayerID) bool {
	if !inBounds(row, col) || b.grid[row][col] != Empty {
		return false
	}
	b.grid[row][col] = player
	b.fill[col]++
	return true
}

// Undo removes the topmost token of col if it sits at (row, col).
// It is the exact reverse of a successful Place on that column.
func (b *Board) Undo(row, col int) bool {
	if !inBounds(row, col) || b.fill[col] == 0 {
		return false
	}
	if row != Rows-b.fill[col] || b.grid[row][col] == Empty {
		return false
	}
	b.grid[row][col] = Empty
	b.fill[col]--
	return true
}

func (b *Board) CellAt(row, col int) (PlayerID, error) {
	if !inBounds(row, col) {
		return Empty, ErrInvalidCoordinate
	}
	return b.grid[row][col], nil
}

// owner is CellAt without the error, for scanners that already treat
// off-grid cells as "not mine".
func (b *Board) owner(row, col int) PlayerID {
	if !inBounds(row, col) {
		return Empty
	}
	return b.grid[row][col]
}

// FillCount returns the number of tokens in col, or 0 for an unknown column.
func (b *Board) FillCount(col int) int {
	if col < 0 || col >= Columns {
		return 0
	}
	return b.fill[col]
}

func (b *Board) FillCounts() [Columns]int {
	return b.fill
}

// LandingRow is the row a token dropped into col would occupy, or -1 when the
// column is full or does not exist.
func (b *Board) LandingRow(col int) int {
	if col < 0 || col >= Columns || b.fill[col] >= Rows {
		return -1
	}
	return (Rows - 1) - b.fill[col]
}

func (b *Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b.fill[c] != Rows {
			return false
		}
	}
	return true
}

// PlayableColumns lists the columns that still have room, left to right.
func (b *Board) PlayableColumns() []int {
	cols := make([]int, 0, Columns)
	for c := 0; c < Columns; c++ {
		if b.fill[c] < Rows {
			cols = append(cols, c)
		}
	}
	return cols
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() Board {
	return *b
}

// Grid returns a copy of the cells, row by row.
func (b *Board) Grid() [Rows][Columns]PlayerID {
	return b.grid
}

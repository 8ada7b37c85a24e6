package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	PlayerA PlayerID = 1
	PlayerB PlayerID = 2
)

// Opponent returns the other fixed identity. Empty maps to Empty.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	}
	return Empty
}

func (p PlayerID) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	}
	return "-"
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// Coord is a (row, col) grid position; row 0 is the top row.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoMove marks "nothing played yet".
var NoMove = Coord{Row: -1, Col: -1}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// Outcome is what Game.Winner reports. Winner is only set when Status is StatusWon.
type Outcome struct {
	Status GameStatus `json:"status"`
	Winner PlayerID   `json:"winner"`
}

func (o Outcome) Decided() bool {
	return o.Status != StatusActive
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidCoordinate Error = "invalid coordinate"
	ErrIllegalMove       Error = "illegal move"
	ErrNoLegalMove       Error = "no legal move"
)

package domain

import "fmt"

type Role string

const (
	RoleHuman    Role = "human"
	RoleComputer Role = "computer"
)

// Colors offered to players, in the order the console lists them.
var Colors = []string{"red", "blue", "green", "orange", "purple", "black"}

func IsColor(name string) bool {
	for _, c := range Colors {
		if c == name {
			return true
		}
	}
	return false
}

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleHuman, RoleComputer:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown player role %q", s)
}

// Player is the presentation-side record of one identity. The engine only
// looks at ID; score, color and role belong to whoever runs the rounds.
type Player struct {
	ID    PlayerID
	Color string
	Role  Role
	score int64
}

func NewPlayer(id PlayerID, score int64, color string, role Role) *Player {
	return &Player{ID: id, Color: color, Role: role, score: score}
}

func (p *Player) Score() int64 {
	return p.score
}

func (p *Player) SetScore(score int64) {
	p.score = score
}

// Increment records one more win.
func (p *Player) Increment() {
	p.score++
}

func (p *Player) IsComputer() bool {
	return p.Role == RoleComputer
}

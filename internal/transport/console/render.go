package console

import (
	"fmt"
	"strings"

	"github.com/IdoSagiv/connect-four/internal/domain"
	"github.com/IdoSagiv/connect-four/internal/service/match"
)

const (
	ansiReset   = "\x1b[0m"
	ansiReverse = "\x1b[7m"
)

var ansiColors = map[string]string{
	"red":    "\x1b[31m",
	"blue":   "\x1b[34m",
	"green":  "\x1b[32m",
	"orange": "\x1b[38;5;208m",
	"purple": "\x1b[35m",
	"black":  "\x1b[90m",
}

func (p *Presenter) token(view match.PlayerView, winning bool) string {
	if !p.color {
		if winning {
			return "*"
		}
		return view.ID.String()
	}
	code := ansiColors[view.Color]
	if winning {
		code += ansiReverse
	}
	return code + "O" + ansiReset
}

func (p *Presenter) name(view match.PlayerView) string {
	label := fmt.Sprintf("Player %s (%s)", view.ID, view.Color)
	if !p.color {
		return label
	}
	return ansiColors[view.Color] + label + ansiReset
}

// renderBoard draws the grid top row first, with 1-based column labels.
func (p *Presenter) renderBoard(s match.Snapshot) string {
	var b strings.Builder
	for col := 0; col < domain.Columns; col++ {
		fmt.Fprintf(&b, " %d", col+1)
	}
	b.WriteString("\n")

	for row := 0; row < domain.Rows; row++ {
		b.WriteString("|")
		for col := 0; col < domain.Columns; col++ {
			owner := s.Grid[row][col]
			if owner == domain.Empty {
				b.WriteString(".")
			} else {
				b.WriteString(p.token(s.Player(owner), s.IsWinningCell(row, col)))
			}
			b.WriteString("|")
		}
		b.WriteString("\n")
	}
	b.WriteString("+" + strings.Repeat("-+", domain.Columns) + "\n")
	return b.String()
}

func (p *Presenter) renderScores(s match.Snapshot) string {
	a, b := s.Player(domain.PlayerA), s.Player(domain.PlayerB)
	return fmt.Sprintf("Score: %s %d - %d %s\n", p.name(a), a.Score, b.Score, p.name(b))
}

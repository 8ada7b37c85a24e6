package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/IdoSagiv/connect-four/internal/domain"
	"github.com/IdoSagiv/connect-four/internal/service/match"
	"github.com/IdoSagiv/connect-four/internal/service/scoreboard"
)

func humans() [2]*domain.Player {
	return [2]*domain.Player{
		domain.NewPlayer(domain.PlayerA, 0, "red", domain.RoleHuman),
		domain.NewPlayer(domain.PlayerB, 0, "blue", domain.RoleHuman),
	}
}

func TestConsoleMatch(t *testing.T) {
	in := strings.NewReader("1\n1\n2\n2\nx\n9\n3\n3\n4\nmaybe\nn\n")
	var out bytes.Buffer
	p := NewPresenter(in, &out, false)

	players := humans()
	s, err := match.NewSession(players, p, scoreboard.NewService(nil), match.Options{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"=== Round 1 ===",
		`"x" is not a column number.`,
		"Column 9 is not available, try another one.",
		"Player A (red) played column 4",
		"Player A (red) wins after 7 moves!",
		"|*|*|*|*|.|.|.|",
		"Score: Player A (red) 1 - 0 Player B (blue)",
		"Play again? [y/n]: Play again? [y/n]: ",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q\n%s", want, got)
		}
	}
	if players[0].Score() != 1 {
		t.Fatalf("PlayerA score = %d", players[0].Score())
	}
}

func TestChooseColumnQuit(t *testing.T) {
	p := NewPresenter(strings.NewReader("q\n"), &bytes.Buffer{}, false)
	if _, err := p.ChooseColumn(context.Background(), match.Snapshot{}, humans()[0]); !errors.Is(err, match.ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
}

func TestEndOfInputQuits(t *testing.T) {
	p := NewPresenter(strings.NewReader(""), &bytes.Buffer{}, false)
	if _, err := p.ChooseColumn(context.Background(), match.Snapshot{}, humans()[0]); !errors.Is(err, match.ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
	again, err := p.PlayAgain(context.Background())
	if err != nil || again {
		t.Fatalf("PlayAgain at EOF = %v, %v", again, err)
	}
}

func TestChooseColumnHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// A reader that never delivers a line.
	p := NewPresenter(blockingReader{}, &bytes.Buffer{}, false)
	if _, err := p.ChooseColumn(ctx, match.Snapshot{}, humans()[0]); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) { select {} }

func TestRenderBoardColours(t *testing.T) {
	var snap match.Snapshot
	snap.Grid[5][0] = domain.PlayerA
	snap.Grid[5][1] = domain.PlayerB
	snap.Players = [2]match.PlayerView{
		{ID: domain.PlayerA, Color: "green"},
		{ID: domain.PlayerB, Color: "purple"},
	}
	snap.WinningCells = []domain.Coord{{Row: 5, Col: 1}}

	p := NewPresenter(strings.NewReader(""), &bytes.Buffer{}, true)
	board := p.renderBoard(snap)
	if !strings.Contains(board, ansiColors["green"]+"O"+ansiReset) {
		t.Fatalf("PlayerA token not drawn in green:\n%q", board)
	}
	if !strings.Contains(board, ansiColors["purple"]+ansiReverse+"O"+ansiReset) {
		t.Fatalf("winning PlayerB token not highlighted:\n%q", board)
	}
	if !strings.HasPrefix(board, " 1 2 3 4 5 6 7\n") {
		t.Fatalf("missing column labels:\n%s", board)
	}
}

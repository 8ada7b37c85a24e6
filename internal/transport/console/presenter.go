package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/IdoSagiv/connect-four/internal/domain"
	"github.com/IdoSagiv/connect-four/internal/service/match"
)

// Presenter plays a match on a terminal: it draws every event and reads
// human moves one line at a time.
type Presenter struct {
	out   io.Writer
	color bool

	in    io.Reader
	once  sync.Once
	lines chan string
}

func NewPresenter(in io.Reader, out io.Writer, color bool) *Presenter {
	return &Presenter{in: in, out: out, color: color}
}

func (p *Presenter) RoundStarted(s match.Snapshot) {
	fmt.Fprintf(p.out, "\n=== Round %d ===\n", s.Round)
	fmt.Fprint(p.out, p.renderScores(s))
	fmt.Fprint(p.out, p.renderBoard(s))
}

func (p *Presenter) MoveMade(s match.Snapshot) {
	fmt.Fprintf(p.out, "%s played column %d\n", p.name(s.Player(s.LastMover)), s.LastMove.Col+1)
	fmt.Fprint(p.out, p.renderBoard(s))
}

func (p *Presenter) RoundFinished(r match.Result) {
	switch r.Outcome.Status {
	case domain.StatusWon:
		fmt.Fprintf(p.out, "%s wins after %d moves!\n", p.name(r.Player(r.Outcome.Winner)), r.MoveCount)
		fmt.Fprint(p.out, p.renderBoard(r.Snapshot))
	case domain.StatusDraw:
		fmt.Fprintln(p.out, "The board is full, it's a tie.")
	}
	fmt.Fprint(p.out, p.renderScores(r.Snapshot))
}

// ChooseColumn returns a 0-based column. The range is not checked here:
// the game rejects bad columns and MoveRejected reports them.
func (p *Presenter) ChooseColumn(ctx context.Context, _ match.Snapshot, player *domain.Player) (int, error) {
	for {
		fmt.Fprintf(p.out, "%s, choose a column [1-%d] or q to quit: ", p.name(viewOf(player)), domain.Columns)
		line, err := p.readLine(ctx)
		if err != nil {
			return -1, err
		}
		if line == "q" || line == "quit" {
			return -1, match.ErrQuit
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(p.out, "%q is not a column number.\n", line)
			continue
		}
		return n - 1, nil
	}
}

func (p *Presenter) MoveRejected(player *domain.Player, col int, _ error) {
	fmt.Fprintf(p.out, "Column %d is not available, try another one.\n", col+1)
}

func (p *Presenter) PlayAgain(ctx context.Context) (bool, error) {
	for {
		fmt.Fprint(p.out, "Play again? [y/n]: ")
		line, err := p.readLine(ctx)
		if errors.Is(err, match.ErrQuit) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		switch line {
		case "y", "yes":
			return true, nil
		case "n", "no", "q":
			return false, nil
		}
	}
}

// readLine waits for the next input line or ctx. End of input reads as a quit.
func (p *Presenter) readLine(ctx context.Context) (string, error) {
	p.once.Do(func() {
		p.lines = make(chan string)
		go p.scan()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			return "", match.ErrQuit
		}
		return strings.ToLower(strings.TrimSpace(line)), nil
	}
}

func (p *Presenter) scan() {
	defer close(p.lines)
	scanner := bufio.NewScanner(p.in)
	for scanner.Scan() {
		p.lines <- scanner.Text()
	}
}

func viewOf(player *domain.Player) match.PlayerView {
	return match.PlayerView{ID: player.ID, Color: player.Color, Role: player.Role, Score: player.Score()}
}

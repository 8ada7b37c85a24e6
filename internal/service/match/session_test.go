package match

import (
	"context"
	"testing"

	"github.com/IdoSagiv/connect-four/internal/domain"
	"github.com/IdoSagiv/connect-four/internal/service/scoreboard"
)

type scriptedPresenter struct {
	moves    []int
	again    []bool
	rejected []int
	started  int
	moved    int
	results  []Result
}

func (p *scriptedPresenter) RoundStarted(Snapshot) { p.started++ }
func (p *scriptedPresenter) MoveMade(Snapshot) { p.moved++ }
func (p *scriptedPresenter) RoundFinished(r Result) {
	p.results = append(p.results, r)
}

func (p *scriptedPresenter) ChooseColumn(_ context.Context, _ Snapshot, _ *domain.Player) (int, error) {
	if len(p.moves) == 0 {
		return -1, ErrQuit
	}
	c := p.moves[0]
	p.moves = p.moves[1:]
	return c, nil
}

func (p *scriptedPresenter) MoveRejected(_ *domain.Player, col int, _ error) {
	p.rejected = append(p.rejected, col)
}

func (p *scriptedPresenter) PlayAgain(context.Context) (bool, error) {
	if len(p.again) == 0 {
		return false, nil
	}
	a := p.again[0]
	p.again = p.again[1:]
	return a, nil
}

type countingObserver struct {
	started, moved, finished int
	last                     Snapshot
}

func (o *countingObserver) RoundStarted(Snapshot) { o.started++ }
func (o *countingObserver) MoveMade(s Snapshot) { o.moved++; o.last = s }
func (o *countingObserver) RoundFinished(r Result) { o.finished++; o.last = r.Snapshot }

func humans() [2]*domain.Player {
	return [2]*domain.Player{
		domain.NewPlayer(domain.PlayerA, 0, "red", domain.RoleHuman),
		domain.NewPlayer(domain.PlayerB, 0, "blue", domain.RoleHuman),
	}
}

func TestHumanRoundRejectsAndRecordsWin(t *testing.T) {
	presenter := &scriptedPresenter{moves: []int{0, 0, 1, 1, 9, 2, 2, 3}}
	obs := &countingObserver{}
	scores := scoreboard.NewService(nil)
	players := humans()

	s, err := NewSession(players, presenter, scores, Options{Rounds: 1}, obs)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(presenter.rejected) != 1 || presenter.rejected[0] != 9 {
		t.Fatalf("expected column 9 to be rejected once, got %v", presenter.rejected)
	}
	if len(presenter.results) != 1 {
		t.Fatalf("expected one finished round, got %d", len(presenter.results))
	}
	res := presenter.results[0]
	if res.Outcome.Status != domain.StatusWon || res.Outcome.Winner != domain.PlayerA {
		t.Fatalf("unexpected outcome %+v", res.Outcome)
	}
	if len(res.WinningCells) != domain.ToWin {
		t.Fatalf("expected four winning cells, got %v", res.WinningCells)
	}
	if players[0].Score() != 1 || players[1].Score() != 0 {
		t.Fatalf("scores A=%d B=%d", players[0].Score(), players[1].Score())
	}
	if res.Player(domain.PlayerA).Score != 1 {
		t.Fatalf("result snapshot should carry the new score")
	}

	totals, _ := scores.Totals(context.Background())
	if totals[domain.PlayerA] != 1 {
		t.Fatalf("stored totals %v", totals)
	}
	if obs.started != 1 || obs.moved != 7 || obs.finished != 1 {
		t.Fatalf("observer saw started=%d moved=%d finished=%d", obs.started, obs.moved, obs.finished)
	}
}

func TestRunStopsWhenPlayerQuits(t *testing.T) {
	presenter := &scriptedPresenter{moves: []int{3, 4}}
	s, err := NewSession(humans(), presenter, nil, Options{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("quitting should end Run cleanly, got %v", err)
	}
	if len(presenter.results) != 0 {
		t.Fatalf("an abandoned round must not finish")
	}
}

func TestComputerRoundsPlayToCompletion(t *testing.T) {
	players := [2]*domain.Player{
		domain.NewPlayer(domain.PlayerA, 0, "red", domain.RoleComputer),
		domain.NewPlayer(domain.PlayerB, 0, "blue", domain.RoleComputer),
	}
	presenter := &scriptedPresenter{}
	scores := scoreboard.NewService(nil)

	s, err := NewSession(players, presenter, scores, Options{Rounds: 3})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(presenter.results) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(presenter.results))
	}

	var wins int64
	for _, r := range presenter.results {
		if !r.Outcome.Decided() {
			t.Fatalf("round %d ended undecided", r.Round)
		}
		if r.Outcome.Status == domain.StatusWon {
			wins++
		}
	}
	if got := players[0].Score() + players[1].Score(); got != wins {
		t.Fatalf("player scores add up to %d, want %d", got, wins)
	}
}

func TestRunAsksToPlayAgain(t *testing.T) {
	presenter := &scriptedPresenter{
		moves: []int{0, 1, 0, 1, 0, 1, 0, 0, 1, 0, 1, 0, 1, 0},
		again: []bool{true, false},
	}
	players := humans()
	scores := scoreboard.NewService(nil)
	s, err := NewSession(players, presenter, scores, Options{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(presenter.results) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(presenter.results))
	}
	// Both rounds are won by A stacking column 0.
	if players[0].Score() != 2 {
		t.Fatalf("PlayerA score = %d, want 2", players[0].Score())
	}
}

func TestRunLoadsStoredTotals(t *testing.T) {
	store := scoreboard.NewMemoryStore()
	scores := scoreboard.NewService(store)
	ctx := context.Background()
	scores.RecordWin(ctx, domain.PlayerB)
	scores.RecordWin(ctx, domain.PlayerB)

	players := humans()
	s, _ := NewSession(players, &scriptedPresenter{}, scores, Options{})
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if players[1].Score() != 2 {
		t.Fatalf("expected PlayerB to start with 2 wins, got %d", players[1].Score())
	}
}

func TestRunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, _ := NewSession(humans(), &scriptedPresenter{moves: []int{0}}, nil, Options{Rounds: 1})
	if err := s.Run(ctx); err == nil {
		t.Fatalf("expected the cancelled context to stop the round")
	}
}

func TestNewSessionValidatesPlayers(t *testing.T) {
	a := domain.NewPlayer(domain.PlayerA, 0, "red", domain.RoleHuman)
	if _, err := NewSession([2]*domain.Player{a, a}, &scriptedPresenter{}, nil, Options{}); err == nil {
		t.Fatalf("expected duplicate identities to be rejected")
	}
	if _, err := NewSession(humans(), nil, nil, Options{}); err == nil {
		t.Fatalf("expected a missing presenter to be rejected")
	}
}

package match

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/IdoSagiv/connect-four/internal/domain"
	"github.com/IdoSagiv/connect-four/internal/service/bot"
	"github.com/IdoSagiv/connect-four/pkg/uid"
)

// ErrQuit is returned by a Presenter when the human wants to stop playing.
var ErrQuit = errors.New("player quit")

// Observer receives round events. Calls happen on the goroutine running the
// session, one at a time; implementations must not block for long.
type Observer interface {
	RoundStarted(s Snapshot)
	MoveMade(s Snapshot)
	RoundFinished(r Result)
}

// Presenter is the front end: it shows events and supplies human moves.
type Presenter interface {
	Observer
	ChooseColumn(ctx context.Context, s Snapshot, p *domain.Player) (int, error)
	MoveRejected(p *domain.Player, col int, err error)
	PlayAgain(ctx context.Context) (bool, error)
}

// ScoreKeeper persists win totals across rounds. May be nil.
type ScoreKeeper interface {
	RecordWin(ctx context.Context, id domain.PlayerID) (int64, error)
	Totals(ctx context.Context) (map[domain.PlayerID]int64, error)
}

type Options struct {
	Rounds    int           // 0 asks the presenter after every round
	AIBudget  time.Duration // 0 searches at full depth
	MoveDelay time.Duration // pause before a computer move is applied
}

// Session plays consecutive rounds between two players.
type Session struct {
	players   [2]*domain.Player
	presenter Presenter
	scores    ScoreKeeper
	observers []Observer
	opts      Options
	round     int
}

func NewSession(players [2]*domain.Player, presenter Presenter, scores ScoreKeeper, opts Options, observers ...Observer) (*Session, error) {
	if players[0] == nil || players[1] == nil || players[0].ID == players[1].ID {
		return nil, fmt.Errorf("session needs two distinct players")
	}
	if presenter == nil {
		return nil, fmt.Errorf("session needs a presenter")
	}
	for _, p := range players {
		if p.ID != domain.PlayerA && p.ID != domain.PlayerB {
			return nil, fmt.Errorf("unknown player identity %d", p.ID)
		}
	}
	return &Session{
		players:   players,
		presenter: presenter,
		scores:    scores,
		observers: observers,
		opts:      opts,
	}, nil
}

func (s *Session) Players() [2]*domain.Player {
	return s.players
}

func (s *Session) player(id domain.PlayerID) *domain.Player {
	if s.players[0].ID == id {
		return s.players[0]
	}
	return s.players[1]
}

// Run loads stored totals and plays rounds until the configured count is
// reached, the presenter declines another round, a player quits or ctx ends.
func (s *Session) Run(ctx context.Context) error {
	s.loadTotals(ctx)

	for {
		if _, err := s.PlayRound(ctx); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}

		if s.opts.Rounds > 0 {
			if s.round >= s.opts.Rounds {
				return nil
			}
			continue
		}

		again, err := s.presenter.PlayAgain(ctx)
		if err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		if !again {
			return nil
		}
	}
}

func (s *Session) loadTotals(ctx context.Context) {
	if s.scores == nil {
		return
	}
	totals, err := s.scores.Totals(ctx)
	if err != nil {
		log.Printf("[MATCH] Could not load stored scores: %v", err)
		return
	}
	for _, p := range s.players {
		p.SetScore(totals[p.ID])
	}
}

// PlayRound plays one fresh game to its end.
func (s *Session) PlayRound(ctx context.Context) (Result, error) {
	s.round++
	game := domain.NewGame()
	roundID := uid.GenerateRoundID()
	started := time.Now()

	ais := make(map[domain.PlayerID]*bot.AI)
	for _, p := range s.players {
		if p.IsComputer() {
			ais[p.ID] = bot.New(game, p.ID)
		}
	}

	log.Printf("[MATCH] Round %d (%s) started: A=%s B=%s", s.round, roundID,
		s.player(domain.PlayerA).Role, s.player(domain.PlayerB).Role)
	s.emitStarted(takeSnapshot(roundID, s.round, game, s.players))

	for !game.Winner().Decided() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		current := s.player(game.CurrentPlayer())
		col, err := s.nextColumn(ctx, game, ais[current.ID], current, roundID)
		if err != nil {
			return Result{}, err
		}

		if err := game.MakeMove(col); err != nil {
			if errors.Is(err, domain.ErrIllegalMove) && !current.IsComputer() {
				s.presenter.MoveRejected(current, col, err)
				continue
			}
			return Result{}, fmt.Errorf("round %s: %w", roundID, err)
		}

		s.emitMove(takeSnapshot(roundID, s.round, game, s.players))
	}

	outcome := game.Winner()
	if outcome.Status == domain.StatusWon {
		s.recordWin(ctx, s.player(outcome.Winner))
	}

	res := Result{
		Snapshot: takeSnapshot(roundID, s.round, game, s.players),
		Duration: time.Since(started),
	}
	log.Printf("[MATCH] Round %d finished: %s winner=%s moves=%d", s.round, outcome.Status, outcome.Winner, game.MoveCount())
	s.emitFinished(res)
	return res, nil
}

func (s *Session) nextColumn(ctx context.Context, game *domain.Game, ai *bot.AI, p *domain.Player, roundID string) (int, error) {
	if ai == nil {
		return s.presenter.ChooseColumn(ctx, takeSnapshot(roundID, s.round, game, s.players), p)
	}

	if s.opts.MoveDelay > 0 {
		timer := time.NewTimer(s.opts.MoveDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return -1, ctx.Err()
		case <-timer.C:
		}
	}

	if s.opts.AIBudget > 0 {
		return ai.FindLegalMoveWithin(s.opts.AIBudget)
	}
	return ai.FindLegalMove()
}

func (s *Session) recordWin(ctx context.Context, winner *domain.Player) {
	winner.Increment()
	if s.scores == nil {
		return
	}
	if _, err := s.scores.RecordWin(ctx, winner.ID); err != nil {
		log.Printf("[MATCH] Failed to store win for player %s: %v", winner.ID, err)
	}
}

func (s *Session) emitStarted(snap Snapshot) {
	s.presenter.RoundStarted(snap)
	for _, o := range s.observers {
		o.RoundStarted(snap)
	}
}

func (s *Session) emitMove(snap Snapshot) {
	s.presenter.MoveMade(snap)
	for _, o := range s.observers {
		o.MoveMade(snap)
	}
}

func (s *Session) emitFinished(res Result) {
	s.presenter.RoundFinished(res)
	for _, o := range s.observers {
		o.RoundFinished(res)
	}
}

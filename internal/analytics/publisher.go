package analytics

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/IdoSagiv/connect-four/internal/service/match"
)

const (
	EventRoundStarted  = "round_started"
	EventRoundFinished = "round_finished"

	writeTimeout = 2 * time.Second
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher sends one message per round start and finish. A nil Publisher
// is a valid no-op observer.
type Publisher struct {
	writer messageWriter
}

func NewPublisher(brokers []string, topic string) *Publisher {
	if len(brokers) == 0 {
		return nil
	}
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Printf("[ANALYTICS] Publishing round events to %s on %v", topic, brokers)
	return &Publisher{writer: w}
}

func (p *Publisher) RoundStarted(s match.Snapshot) {
	p.emit(EventRoundStarted, s.RoundID, roundPayload(s))
}

// MoveMade is not published; rounds are summarised when they finish.
func (p *Publisher) MoveMade(match.Snapshot) {}

func (p *Publisher) RoundFinished(r match.Result) {
	payload := roundPayload(r.Snapshot)
	payload["status"] = r.Outcome.Status
	payload["winner"] = r.Outcome.Winner.String()
	payload["moves"] = r.MoveCount
	payload["durationMs"] = r.Duration.Milliseconds()
	payload["scores"] = map[string]int64{
		r.Players[0].ID.String(): r.Players[0].Score,
		r.Players[1].ID.String(): r.Players[1].Score,
	}
	p.emit(EventRoundFinished, r.RoundID, payload)
}

func roundPayload(s match.Snapshot) map[string]any {
	roles := make(map[string]string, len(s.Players))
	for _, pv := range s.Players {
		roles[pv.ID.String()] = string(pv.Role)
	}
	return map[string]any{
		"roundId": s.RoundID,
		"round":   s.Round,
		"roles":   roles,
	}
}

func (p *Publisher) emit(event, key string, payload map[string]any) {
	if p == nil || p.writer == nil {
		return
	}
	payload["event"] = event
	payload["ts"] = time.Now().UTC()

	b, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[ANALYTICS] Failed to encode %s: %v", event, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: b}); err != nil {
		log.Printf("[ANALYTICS] Failed to publish %s for round %s: %v", event, key, err)
	}
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

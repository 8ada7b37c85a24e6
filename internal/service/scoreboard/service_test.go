package scoreboard

import (
	"context"
	"errors"
	"testing"

	"github.com/IdoSagiv/connect-four/internal/domain"
)

type failingStore struct{}

func (failingStore) Increment(context.Context, domain.PlayerID) (int64, error) {
	return 0, errors.New("store down")
}

func (failingStore) Totals(context.Context) (map[domain.PlayerID]int64, error) {
	return nil, errors.New("store down")
}

func TestRecordWinAccumulates(t *testing.T) {
	ctx := context.Background()
	svc := NewService(nil)

	for i := 0; i < 3; i++ {
		if _, err := svc.RecordWin(ctx, domain.PlayerA); err != nil {
			t.Fatalf("RecordWin: %v", err)
		}
	}
	total, err := svc.RecordWin(ctx, domain.PlayerB)
	if err != nil || total != 1 {
		t.Fatalf("RecordWin(B) = %d, %v", total, err)
	}

	totals, err := svc.Totals(ctx)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals[domain.PlayerA] != 3 || totals[domain.PlayerB] != 1 {
		t.Fatalf("unexpected totals %v", totals)
	}
}

func TestTotalsReportsBothPlayers(t *testing.T) {
	totals, err := NewService(NewMemoryStore()).Totals(context.Background())
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if len(totals) != 2 || totals[domain.PlayerA] != 0 || totals[domain.PlayerB] != 0 {
		t.Fatalf("expected zeroed totals for both players, got %v", totals)
	}
}

func TestRecordWinRejectsEmpty(t *testing.T) {
	if _, err := NewService(nil).RecordWin(context.Background(), domain.Empty); err == nil {
		t.Fatalf("expected an error for the empty identity")
	}
}

func TestStoreErrorsAreWrapped(t *testing.T) {
	svc := NewService(failingStore{})
	if _, err := svc.RecordWin(context.Background(), domain.PlayerA); err == nil {
		t.Fatalf("expected store failure to surface")
	}
	if _, err := svc.Totals(context.Background()); err == nil {
		t.Fatalf("expected store failure to surface")
	}
}

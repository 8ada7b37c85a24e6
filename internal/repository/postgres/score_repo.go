package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/IdoSagiv/connect-four/internal/domain"
)

// ScoreRepo stores one win counter row per player identity.
type ScoreRepo struct {
	DB *sql.DB
}

func NewScoreRepo(db *sql.DB) *ScoreRepo {
	return &ScoreRepo{DB: db}
}

// Increment adds a win and returns the new total (UPSERT so the first win
// creates the row).
func (r *ScoreRepo) Increment(ctx context.Context, id domain.PlayerID) (int64, error) {
	query := `
	INSERT INTO player_scores (player_id, wins, updated_at)
	VALUES ($1, 1, NOW())
	ON CONFLICT (player_id) DO UPDATE SET
		wins = player_scores.wins + 1,
		updated_at = NOW()
	RETURNING wins;
	`

	var total int64
	if err := r.DB.QueryRowContext(ctx, query, int(id)).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to increment score: %w", err)
	}
	return total, nil
}

func (r *ScoreRepo) Totals(ctx context.Context) (map[domain.PlayerID]int64, error) {
	query := `SELECT player_id, wins FROM player_scores;`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	totals := make(map[domain.PlayerID]int64)
	for rows.Next() {
		var id int
		var wins int64
		if err := rows.Scan(&id, &wins); err != nil {
			return nil, fmt.Errorf("failed to scan score row: %w", err)
		}
		totals[domain.PlayerID(id)] = wins
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating score rows: %w", err)
	}
	return totals, nil
}

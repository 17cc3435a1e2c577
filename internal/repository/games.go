package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GameResult is one finished (or aborted) game's outcome row.
type GameResult struct {
	GameID      string
	WinnerSeat  int
	Turns       int
	FailureCode string
	FinishedAt  time.Time
}

// GameRepository stores game outcomes and replay blobs.
type GameRepository struct {
	pool *pgxpool.Pool
}

// NewGameRepository creates a repository over the pool.
func NewGameRepository(pool *pgxpool.Pool) *GameRepository {
	return &GameRepository{pool: pool}
}

// SaveResult upserts the outcome of a game.
func (r *GameRepository) SaveResult(ctx context.Context, res GameResult) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO game_results (game_id, winner_seat, turns, failure_code, finished_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (game_id) DO UPDATE
		SET winner_seat = EXCLUDED.winner_seat,
		    turns = EXCLUDED.turns,
		    failure_code = EXCLUDED.failure_code,
		    finished_at = EXCLUDED.finished_at`,
		res.GameID, res.WinnerSeat, res.Turns, res.FailureCode, res.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save game result: %w", err)
	}
	return nil
}

// SaveReplay stores the serialized replay log for a game.
func (r *GameRepository) SaveReplay(ctx context.Context, gameID string, blob []byte) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO game_replays (game_id, replay)
		VALUES ($1, $2)
		ON CONFLICT (game_id) DO UPDATE SET replay = EXCLUDED.replay`,
		gameID, blob,
	)
	if err != nil {
		return fmt.Errorf("failed to save replay: %w", err)
	}
	return nil
}

// GetReplay fetches a stored replay blob.
func (r *GameRepository) GetReplay(ctx context.Context, gameID string) ([]byte, error) {
	var blob []byte
	err := r.pool.QueryRow(ctx,
		`SELECT replay FROM game_replays WHERE game_id = $1`, gameID,
	).Scan(&blob)
	if err != nil {
		return nil, fmt.Errorf("failed to load replay for %s: %w", gameID, err)
	}
	return blob, nil
}

// GetResult fetches a stored game result.
func (r *GameRepository) GetResult(ctx context.Context, gameID string) (GameResult, error) {
	var res GameResult
	err := r.pool.QueryRow(ctx, `
		SELECT game_id, winner_seat, turns, failure_code, finished_at
		FROM game_results WHERE game_id = $1`, gameID,
	).Scan(&res.GameID, &res.WinnerSeat, &res.Turns, &res.FailureCode, &res.FinishedAt)
	if err != nil {
		return GameResult{}, fmt.Errorf("failed to load result for %s: %w", gameID, err)
	}
	return res, nil
}

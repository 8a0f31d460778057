package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"take5/internal/model"
)

// Store is the ledger of finished games.
type Store interface {
	RecordGameResult(ctx context.Context, gameID string, standings []model.Standing) error
	// Stats returns per-player totals, lowest total penalty first.
	Stats(ctx context.Context) ([]model.PlayerStat, error)
	Close() error
}

// SQLiteStore keeps results in a local SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	sqlStmt := `CREATE TABLE IF NOT EXISTS game_history (id INTEGER PRIMARY KEY AUTOINCREMENT, game_id TEXT, place INTEGER, player_name TEXT, score INTEGER, played_at DATETIME DEFAULT CURRENT_TIMESTAMP);`
	sqlStmt += `CREATE INDEX IF NOT EXISTS idx_game_history_player ON game_history (player_name);`
	if _, err = db.Exec(sqlStmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) RecordGameResult(ctx context.Context, gameID string, standings []model.Standing) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO game_history(game_id, place, player_name, score) VALUES(?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, st := range standings {
		if _, err := stmt.ExecContext(ctx, gameID, st.Place, st.Name, st.Score); err != nil {
			return fmt.Errorf("insert %s: %w", st.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("game result recorded",
		slog.String("game_id", gameID),
		slog.Int("player_count", len(standings)),
	)
	return nil
}

func (s *SQLiteStore) Stats(ctx context.Context) ([]model.PlayerStat, error) {
	stats := make([]model.PlayerStat, 0)

	rows, err := s.db.QueryContext(ctx, `SELECT player_name, COUNT(*) as games, SUM(score) as total_score FROM game_history GROUP BY player_name ORDER BY total_score ASC, player_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var st model.PlayerStat
		if err := rows.Scan(&st.Name, &st.TotalGames, &st.TotalScore); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

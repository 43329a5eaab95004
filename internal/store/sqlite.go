package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/drhelai/helai/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository on an in-memory SQLite database. The
// data lives as long as the process.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a fresh in-memory transcript.
func NewSQLite() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", "file::memory:?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every new connection to :memory: is a separate empty database, so the
	// pool is pinned to one connection that is never recycled.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS turns (
		id TEXT PRIMARY KEY,
		message TEXT NOT NULL,
		response TEXT NOT NULL,
		stress_level INTEGER NOT NULL,
		primary_emotion TEXT NOT NULL,
		source TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_turns_created ON turns(created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SaveTurn records a processed turn.
func (s *SQLiteStore) SaveTurn(ctx context.Context, turn *domain.ChatTurn) error {
	query := `
	INSERT INTO turns (id, message, response, stress_level, primary_emotion, source, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		turn.ID, turn.Message, turn.Response,
		turn.StressLevel, turn.PrimaryEmotion, string(turn.Source),
		turn.Timestamp.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

// RecentTurns returns up to limit of the newest turns, oldest first.
func (s *SQLiteStore) RecentTurns(ctx context.Context, limit int) ([]domain.ChatTurn, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `
		SELECT id, message, response, stress_level, primary_emotion, source, created_at
		FROM turns ORDER BY created_at DESC, rowid DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent turns: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close recent turns rows", "error", closeErr)
		}
	}()

	var turns []domain.ChatTurn
	for rows.Next() {
		var turn domain.ChatTurn
		var source string
		var createdAt int64

		if err := rows.Scan(
			&turn.ID, &turn.Message, &turn.Response,
			&turn.StressLevel, &turn.PrimaryEmotion, &source, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan turn row: %w", err)
		}

		turn.Source = domain.Source(source)
		turn.Timestamp = time.Unix(0, createdAt).UTC()
		turns = append(turns, turn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate turns: %w", err)
	}

	// Newest-first from SQL; callers expect insertion order.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// CountTurns returns the number of recorded turns.
func (s *SQLiteStore) CountTurns(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM turns`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count turns: %w", err)
	}
	return n, nil
}

// DeleteTurnsBefore removes turns recorded before cutoff.
func (s *SQLiteStore) DeleteTurnsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM turns WHERE created_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("delete expired turns: %w", err)
	}
	return result.RowsAffected()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

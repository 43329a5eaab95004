// Package store provides the process-lifetime transcript of chat turns.
package store

import (
	"context"
	"time"

	"github.com/drhelai/helai/internal/domain"
)

// Repository defines the interface for recording chat turns.
type Repository interface {
	// SaveTurn records a processed turn.
	SaveTurn(ctx context.Context, turn *domain.ChatTurn) error

	// RecentTurns returns up to limit of the newest turns, oldest first.
	RecentTurns(ctx context.Context, limit int) ([]domain.ChatTurn, error)

	// CountTurns returns the number of recorded turns.
	CountTurns(ctx context.Context) (int64, error)

	// DeleteTurnsBefore removes turns recorded before cutoff.
	DeleteTurnsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Ping verifies database connectivity and returns an error if the database is unreachable.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}

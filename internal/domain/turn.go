// Package domain contains core domain types for the HelAI service.
package domain

import (
	"time"
)

// Source records where a response text came from.
type Source string

const (
	// SourceModel indicates text produced by the generation service.
	SourceModel Source = "model"
	// SourceFallback indicates locally selected text.
	SourceFallback Source = "fallback"
)

// Trend compares a stress level with the previous turn's level.
type Trend string

const (
	TrendStable     Trend = "stable"
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
)

// TrendBetween returns the trend from previous to current.
func TrendBetween(previous, current int) Trend {
	switch {
	case current > previous:
		return TrendIncreasing
	case current < previous:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// ChatTurn is one processed exchange. Turns are appended to the
// conversation log and never mutated afterwards.
type ChatTurn struct {
	ID             string    `json:"id"`
	Message        string    `json:"message"`
	Response       string    `json:"response"`
	StressLevel    int       `json:"stress_level"`
	PrimaryEmotion string    `json:"primary_emotion"`
	Source         Source    `json:"source"`
	Timestamp      time.Time `json:"timestamp"`
}

// Package feed pushes live stress-meter updates to WebSocket clients.
package feed

import (
	"time"

	"github.com/drhelai/helai/internal/domain"
	"github.com/drhelai/helai/internal/history"
	"github.com/drhelai/helai/internal/stress"
)

// Event types.
const (
	TypeSnapshot    = "snapshot"
	TypeStressMeter = "stress_meter"
)

// Event is one message on the feed.
type Event struct {
	Type       string       `json:"type"`
	Current    int          `json:"current"`
	Percentage int          `json:"percentage"`
	Color      string       `json:"color"`
	Label      string       `json:"label"`
	Animation  string       `json:"animation"`
	Trend      domain.Trend `json:"trend"`
	Timestamp  time.Time    `json:"timestamp"`
}

// NewMeterEvent builds the event published after a processed turn.
func NewMeterEvent(level int, trend domain.Trend, at time.Time) Event {
	return newEvent(TypeStressMeter, level, trend, at)
}

// SnapshotEvent builds the event sent when a client connects.
func SnapshotEvent(s history.Summary, now time.Time) Event {
	at := s.LastUpdated
	if s.Empty {
		at = now
	}
	return newEvent(TypeSnapshot, s.Current, s.Trend, at)
}

func newEvent(typ string, level int, trend domain.Trend, at time.Time) Event {
	m := stress.MeterFor(level)
	return Event{
		Type:       typ,
		Current:    level,
		Percentage: stress.Percentage(level),
		Color:      m.Color,
		Label:      m.Label,
		Animation:  m.Animation,
		Trend:      trend,
		Timestamp:  at.UTC(),
	}
}

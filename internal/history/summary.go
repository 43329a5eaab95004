package history

import (
	"time"

	"github.com/drhelai/helai/internal/domain"
)

// MonitorWindow is the number of recent turns the stress monitor reports on.
const MonitorWindow = 10

// NeutralLevel is reported when no turns have been logged.
const NeutralLevel = 5

// Summary describes stress over a window of recent turns.
type Summary struct {
	Empty       bool
	Current     int
	Trend       domain.Trend
	LastUpdated time.Time
	Average     float64
	Peak        int
	Levels      []int
}

// Summarize computes a Summary over turns, which must be oldest first.
func Summarize(turns []domain.ChatTurn) Summary {
	if len(turns) == 0 {
		return Summary{Empty: true, Current: NeutralLevel, Trend: domain.TrendStable, Levels: []int{}}
	}

	s := Summary{Levels: make([]int, len(turns))}
	total := 0
	for i, t := range turns {
		s.Levels[i] = t.StressLevel
		total += t.StressLevel
		if t.StressLevel > s.Peak {
			s.Peak = t.StressLevel
		}
	}

	last := turns[len(turns)-1]
	s.Current = last.StressLevel
	s.LastUpdated = last.Timestamp
	s.Average = float64(total) / float64(len(turns))
	s.Trend = domain.TrendStable
	if len(turns) >= 2 {
		s.Trend = domain.TrendBetween(turns[len(turns)-2].StressLevel, last.StressLevel)
	}
	return s
}

// Summary summarizes the last MonitorWindow turns of the log.
func (l *Log) Summary() Summary {
	return Summarize(l.Recent(MonitorWindow))
}

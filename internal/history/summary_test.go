package history

import (
	"testing"
	"time"

	"github.com/drhelai/helai/internal/domain"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if !s.Empty || s.Current != NeutralLevel || s.Trend != domain.TrendStable {
		t.Errorf("Unexpected empty summary: %+v", s)
	}
	if s.Levels == nil || len(s.Levels) != 0 {
		t.Errorf("Expected empty non-nil levels, got %v", s.Levels)
	}
}

func TestSummarize_Window(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	turns := []domain.ChatTurn{
		{StressLevel: 3},
		{StressLevel: 9},
		{StressLevel: 6, Timestamp: at},
	}

	s := Summarize(turns)
	if s.Current != 6 || s.Peak != 9 || s.Average != 6 {
		t.Errorf("Unexpected summary: %+v", s)
	}
	if s.Trend != domain.TrendDecreasing {
		t.Errorf("Expected decreasing, got %s", s.Trend)
	}
	if !s.LastUpdated.Equal(at) {
		t.Errorf("Expected last updated %v, got %v", at, s.LastUpdated)
	}
}

func TestLog_SummaryUsesMonitorWindow(t *testing.T) {
	l := NewLog(50)
	for i := 0; i < 15; i++ {
		l.Append(turn(1))
	}
	l.Append(turn(10))

	s := l.Summary()
	if len(s.Levels) != MonitorWindow {
		t.Fatalf("Expected %d levels, got %d", MonitorWindow, len(s.Levels))
	}
	if s.Trend != domain.TrendIncreasing || s.Peak != 10 {
		t.Errorf("Unexpected summary: %+v", s)
	}
}

package chat

import (
	"time"

	"github.com/drhelai/helai/internal/domain"
	"github.com/drhelai/helai/internal/stress"
)

// Response is the success body of POST /api/chat.
type Response struct {
	Status              string              `json:"status"`
	Response            string              `json:"response"`
	ResponseSource      domain.Source       `json:"response_source"`
	EmotionAnalysis     EmotionAnalysis     `json:"emotion_analysis"`
	StressMeter         StressMeter         `json:"stress_meter"`
	TherapeuticInsights TherapeuticInsights `json:"therapeutic_insights"`
	Timestamp           time.Time           `json:"timestamp"`
}

// EmotionAnalysis describes the scored message.
type EmotionAnalysis struct {
	PrimaryEmotion       string   `json:"primary_emotion"`
	StressLevel          int      `json:"stress_level"`
	EmotionIntensity     float64  `json:"emotion_intensity"`
	RiskAssessment       string   `json:"risk_assessment"`
	PsychologicalMarkers []string `json:"psychological_markers"`
}

// StressMeter is the presentation metadata for the UI gauge.
type StressMeter struct {
	Current    int          `json:"current"`
	Percentage int          `json:"percentage"`
	Color      string       `json:"color"`
	Label      string       `json:"label"`
	Animation  string       `json:"animation"`
	Trend      domain.Trend `json:"trend"`
}

// TherapeuticInsights carries the reply guidance.
type TherapeuticInsights struct {
	Approach         string `json:"approach"`
	CopingSuggestion string `json:"coping_suggestion"`
	IsCrisis         bool   `json:"is_crisis"`
}

// ErrorResponse is the 500 body. It still carries a supportive response.
type ErrorResponse struct {
	Status              string              `json:"status"`
	Response            string              `json:"response"`
	EmotionAnalysis     EmotionAnalysis     `json:"emotion_analysis"`
	StressMeter         StressMeter         `json:"stress_meter"`
	TherapeuticInsights TherapeuticInsights `json:"therapeutic_insights"`
	Timestamp           time.Time           `json:"timestamp"`
	Error               string              `json:"error"`
	Debug               *Debug              `json:"debug,omitempty"`
}

// Debug is attached to error bodies outside production.
type Debug struct {
	HasAPIKey   bool   `json:"hasApiKey"`
	Environment string `json:"environment"`
}

const (
	errorStateLevel = 5
	errorReply      = "I apologize for the technical difficulty. I'm still here to support you."
)

// NewResponse builds the success body for reply.
func NewResponse(reply *Reply) Response {
	a := reply.Assessment
	meter := stress.MeterFor(a.Level)

	return Response{
		Status:         "success",
		Response:       reply.Turn.Response,
		ResponseSource: reply.Turn.Source,
		EmotionAnalysis: EmotionAnalysis{
			PrimaryEmotion:       a.PrimaryEmotion,
			StressLevel:          a.Level,
			EmotionIntensity:     a.Intensity(),
			RiskAssessment:       a.Risk(),
			PsychologicalMarkers: a.Markers,
		},
		StressMeter: StressMeter{
			Current:    a.Level,
			Percentage: stress.Percentage(a.Level),
			Color:      meter.Color,
			Label:      meter.Label,
			Animation:  meter.Animation,
			Trend:      reply.Trend,
		},
		TherapeuticInsights: TherapeuticInsights{
			Approach:         a.Approach(),
			CopingSuggestion: a.CopingSuggestion(),
			IsCrisis:         a.IsCrisis(),
		},
		Timestamp: reply.Turn.Timestamp,
	}
}

// NewErrorResponse builds the 500 body. debug may be nil.
func NewErrorResponse(err error, debug *Debug, now time.Time) ErrorResponse {
	return ErrorResponse{
		Status:   "error",
		Response: errorReply,
		EmotionAnalysis: EmotionAnalysis{
			PrimaryEmotion:       "neutral",
			StressLevel:          errorStateLevel,
			EmotionIntensity:     0.5,
			RiskAssessment:       "low",
			PsychologicalMarkers: []string{},
		},
		StressMeter: StressMeter{
			Current:    errorStateLevel,
			Percentage: stress.Percentage(errorStateLevel),
			Color:      "yellow",
			Label:      "Error State",
			Animation:  "none",
			Trend:      domain.TrendStable,
		},
		TherapeuticInsights: TherapeuticInsights{
			Approach:         "Supportive",
			CopingSuggestion: "Please try again in a moment",
		},
		Timestamp: now.UTC(),
		Error:     err.Error(),
		Debug:     debug,
	}
}

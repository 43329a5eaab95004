// Package stress derives a heuristic 1–10 stress score from a chat message
// and maps it to presentation metadata.
package stress

import (
	"strings"

	"github.com/drhelai/helai/internal/lexicon"
)

const (
	MinLevel = 1
	MaxLevel = 10

	// baseOffset is added to the marker count before clamping.
	baseOffset = 3
	// panicFloor is the minimum level when a panic keyword is present.
	panicFloor = 8
	// crisisLevel is forced when a crisis keyword is present.
	crisisLevel = 10
	// crisisLabelLevel is the lowest level labelled "Crisis".
	crisisLabelLevel = 9
)

// Assessment is the scoring result for one message.
type Assessment struct {
	Level          int
	Markers        []string // Tokens that contained a stress keyword, in message order.
	Crisis         bool     // A crisis keyword was present.
	PrimaryEmotion string
}

// Analyzer scores messages against a lexicon. It holds no mutable state
// and is safe for concurrent use.
type Analyzer struct {
	lex *lexicon.Lexicon
}

// NewAnalyzer creates an Analyzer. A nil lexicon uses lexicon.Default().
func NewAnalyzer(lex *lexicon.Lexicon) *Analyzer {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Analyzer{lex: lex}
}

// Analyze scores message. The result depends only on message and the
// lexicon.
func (a *Analyzer) Analyze(message string) Assessment {
	lowered := strings.ToLower(message)

	markers := []string{}
	for _, token := range strings.Fields(lowered) {
		if lexicon.ContainsAny(token, a.lex.StressKeywords) {
			markers = append(markers, token)
		}
	}

	level := clamp(len(markers)+baseOffset, MinLevel, MaxLevel)

	crisis := lexicon.ContainsAny(lowered, a.lex.CrisisKeywords)
	switch {
	case crisis:
		level = crisisLevel
	case lexicon.ContainsAny(lowered, a.lex.PanicKeywords) && level < panicFloor:
		level = panicFloor
	}

	return Assessment{
		Level:          level,
		Markers:        markers,
		Crisis:         crisis,
		PrimaryEmotion: a.primaryEmotion(lowered, len(markers) > 0),
	}
}

func (a *Analyzer) primaryEmotion(lowered string, hasMarkers bool) string {
	for _, topic := range a.lex.Topics {
		if topic.Emotion != "" && lexicon.ContainsAny(lowered, topic.Keywords) {
			return topic.Emotion
		}
	}
	if hasMarkers {
		return "anxious"
	}
	return "neutral"
}

// IsCrisis reports whether the assessment should be treated as a crisis.
func (a Assessment) IsCrisis() bool {
	return a.Crisis || a.Level >= crisisLabelLevel
}

// Intensity maps the level onto 0.55–1.0.
func (a Assessment) Intensity() float64 {
	return 0.5 + float64(a.Level)/20
}

// Risk returns the coarse risk band.
func (a Assessment) Risk() string {
	switch {
	case a.Level >= 8:
		return "high"
	case a.Level >= 6:
		return "moderate"
	default:
		return "low"
	}
}

// Approach names the therapeutic approach for the reply.
func (a Assessment) Approach() string {
	if a.IsCrisis() {
		return "Crisis Support"
	}
	return "Supportive"
}

// CopingSuggestion returns a short suggestion matching the level.
func (a Assessment) CopingSuggestion() string {
	switch {
	case a.IsCrisis():
		return "Please reach out to a crisis line or someone you trust right now. You don't have to face this alone."
	case a.Level >= 7:
		return "Consider taking some deep breaths and grounding yourself"
	default:
		return "Continue sharing your thoughts"
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

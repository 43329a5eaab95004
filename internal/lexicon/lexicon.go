// Package lexicon holds the keyword lists and canned texts used to score
// messages and to answer locally when the generation service is unavailable.
package lexicon

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidLexicon is returned when a lexicon fails validation.
var ErrInvalidLexicon = errors.New("invalid lexicon")

// Topic is a keyword-triggered canned response.
type Topic struct {
	Name     string   `yaml:"name"`
	Emotion  string   `yaml:"emotion"` // Empty for topics that carry no emotion (help-seeking).
	Keywords []string `yaml:"keywords"`
	Response string   `yaml:"response"`
}

// Lexicon is the full keyword configuration. Topic order is significant:
// the first matching topic wins.
type Lexicon struct {
	StressKeywords   []string `yaml:"stress_keywords"`
	CrisisKeywords   []string `yaml:"crisis_keywords"`
	PanicKeywords    []string `yaml:"panic_keywords"`
	Topics           []Topic  `yaml:"topics"`
	GenericResponses []string `yaml:"generic_responses"`
}

// Default returns the built-in lexicon.
func Default() *Lexicon {
	return &Lexicon{
		StressKeywords: []string{
			"stressed", "anxious", "worried", "panic", "overwhelmed",
			"crisis", "depressed", "sad", "angry", "frustrated",
		},
		CrisisKeywords: []string{
			"suicide", "suicidal", "kill myself", "end my life", "self-harm", "self harm", "crisis",
		},
		PanicKeywords: []string{"panic", "overwhelmed"},
		Topics: []Topic{
			{
				Name:     "stress",
				Emotion:  "stressed",
				Keywords: []string{"stress", "pressure", "overwhelm", "burnout"},
				Response: "It sounds like you're carrying a lot right now. Let's slow things down together: " +
					"what is the one thing weighing on you the most at this moment?",
			},
			{
				Name:     "anxiety",
				Emotion:  "anxious",
				Keywords: []string{"anxious", "anxiety", "worried", "worry", "nervous", "panic"},
				Response: "Anxiety can feel really intense. Try breathing in for four counts, holding for four, " +
					"and breathing out for six. I'm here with you. What's been making you feel this way?",
			},
			{
				Name:     "sadness",
				Emotion:  "sad",
				Keywords: []string{"sad", "depressed", "lonely", "hopeless", "feeling down"},
				Response: "I'm sorry you're feeling this way. Your feelings are valid, and you don't have to " +
					"go through this alone. Would you like to tell me more about what's been happening?",
			},
			{
				Name:     "anger",
				Emotion:  "angry",
				Keywords: []string{"angry", "anger", "frustrated", "furious", "mad at"},
				Response: "It makes sense to feel frustrated when things aren't going right. Let's take a moment " +
					"to name what triggered this feeling so we can look at it together.",
			},
			{
				Name:     "help",
				Keywords: []string{"help", "support", "advice", "talk"},
				Response: "I'm here to support you. Tell me a little about what's going on, " +
					"and we can work through it one step at a time.",
			},
		},
		GenericResponses: []string{
			"Thank you for sharing that with me. How are you feeling about it right now?",
			"I hear you. Can you tell me more about what's on your mind?",
			"That sounds important. What would feel most helpful to talk about next?",
			"I'm here to listen. Take your time and share whatever feels right.",
		},
	}
}

// Load reads a YAML lexicon from path. Sections missing from the file keep
// their built-in defaults.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}

	var override Lexicon
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}

	lex := Default()
	if len(override.StressKeywords) > 0 {
		lex.StressKeywords = override.StressKeywords
	}
	if len(override.CrisisKeywords) > 0 {
		lex.CrisisKeywords = override.CrisisKeywords
	}
	if len(override.PanicKeywords) > 0 {
		lex.PanicKeywords = override.PanicKeywords
	}
	if len(override.Topics) > 0 {
		lex.Topics = override.Topics
	}
	if len(override.GenericResponses) > 0 {
		lex.GenericResponses = override.GenericResponses
	}

	lex.normalize()
	if err := lex.Validate(); err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return lex, nil
}

// LoadOrDefault returns the built-in lexicon when path is empty.
func LoadOrDefault(path string) (*Lexicon, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks that every topic can trigger and answer, and that at
// least one generic response exists.
func (l *Lexicon) Validate() error {
	if len(l.StressKeywords) == 0 {
		return fmt.Errorf("%w: no stress keywords", ErrInvalidLexicon)
	}
	if len(l.GenericResponses) == 0 {
		return fmt.Errorf("%w: no generic responses", ErrInvalidLexicon)
	}
	for i, topic := range l.Topics {
		if len(topic.Keywords) == 0 {
			return fmt.Errorf("%w: topic %d (%q) has no keywords", ErrInvalidLexicon, i, topic.Name)
		}
		if strings.TrimSpace(topic.Response) == "" {
			return fmt.Errorf("%w: topic %d (%q) has no response", ErrInvalidLexicon, i, topic.Name)
		}
	}
	return nil
}

// MatchTopic returns the first topic with a keyword contained in the
// lower-cased text.
func (l *Lexicon) MatchTopic(lowered string) (Topic, bool) {
	for _, topic := range l.Topics {
		if ContainsAny(lowered, topic.Keywords) {
			return topic, true
		}
	}
	return Topic{}, false
}

// ContainsAny reports whether text contains any of words as a substring.
func ContainsAny(text string, words []string) bool {
	for _, word := range words {
		if word != "" && strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// normalize lower-cases keywords so matching can work on lower-cased input.
func (l *Lexicon) normalize() {
	lowerAll(l.StressKeywords)
	lowerAll(l.CrisisKeywords)
	lowerAll(l.PanicKeywords)
	for i := range l.Topics {
		lowerAll(l.Topics[i].Keywords)
	}
}

func lowerAll(words []string) {
	for i, w := range words {
		words[i] = strings.ToLower(strings.TrimSpace(w))
	}
}

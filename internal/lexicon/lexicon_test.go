package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLexicon(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	lex := Default()
	require.NoError(t, lex.Validate())
	assert.Len(t, lex.GenericResponses, 4)
	assert.Equal(t, []string{"stress", "anxiety", "sadness", "anger", "help"}, topicNames(lex))
}

func TestMatchTopicFirstWins(t *testing.T) {
	t.Parallel()

	lex := Default()

	// "stressed" (stress) and "angry" (anger) both match; stress is listed first.
	topic, ok := lex.MatchTopic("i'm stressed and angry")
	require.True(t, ok)
	assert.Equal(t, "stress", topic.Name)

	topic, ok = lex.MatchTopic("can you help me")
	require.True(t, ok)
	assert.Equal(t, "help", topic.Name)
	assert.Empty(t, topic.Emotion)

	_, ok = lex.MatchTopic("the weather is nice")
	assert.False(t, ok)
}

func TestLoadOverridesSections(t *testing.T) {
	t.Parallel()

	path := writeLexicon(t, `
stress_keywords: ["Tense", "on edge"]
generic_responses:
  - "Tell me more."
`)

	lex, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"tense", "on edge"}, lex.StressKeywords)
	assert.Equal(t, []string{"Tell me more."}, lex.GenericResponses)
	// Untouched sections keep their defaults.
	assert.Equal(t, Default().CrisisKeywords, lex.CrisisKeywords)
	assert.Len(t, lex.Topics, 5)
}

func TestLoadRejectsTopicWithoutResponse(t *testing.T) {
	t.Parallel()

	path := writeLexicon(t, `
topics:
  - name: work
    keywords: [deadline]
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidLexicon))
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadOrDefaultEmptyPath(t *testing.T) {
	t.Parallel()

	lex, err := LoadOrDefault("  ")
	require.NoError(t, err)
	assert.Equal(t, Default(), lex)
}

func topicNames(l *Lexicon) []string {
	names := make([]string, 0, len(l.Topics))
	for _, topic := range l.Topics {
		names = append(names, topic.Name)
	}
	return names
}

// Package fallback selects a local response when the generation service is
// unavailable or returned nothing usable.
package fallback

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/drhelai/helai/internal/lexicon"
)

// Responder picks canned responses. Topic matches are deterministic; the
// generic template choice uses the injected random source.
type Responder struct {
	lex *lexicon.Lexicon

	mu  sync.Mutex // rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

// NewResponder creates a Responder drawing from rng. A nil lexicon uses
// lexicon.Default(); a nil rng is seeded from the clock.
func NewResponder(lex *lexicon.Lexicon, rng *rand.Rand) *Responder {
	if lex == nil {
		lex = lexicon.Default()
	}
	if rng == nil {
		rng = NewRand(0)
	}
	return &Responder{lex: lex, rng: rng}
}

// NewRand returns a PCG-backed source. seed 0 seeds from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Respond returns the canned response of the first matching topic, or a
// uniformly chosen generic template.
func (r *Responder) Respond(message string) string {
	if topic, ok := r.lex.MatchTopic(strings.ToLower(message)); ok {
		return topic.Response
	}

	r.mu.Lock()
	i := r.rng.IntN(len(r.lex.GenericResponses))
	r.mu.Unlock()

	return r.lex.GenericResponses[i]
}

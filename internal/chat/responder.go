// Package chat implements the chat responder and its HTTP handler.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/drhelai/helai/internal/domain"
	"github.com/drhelai/helai/internal/fallback"
	"github.com/drhelai/helai/internal/feed"
	"github.com/drhelai/helai/internal/generator"
	"github.com/drhelai/helai/internal/history"
	"github.com/drhelai/helai/internal/store"
	"github.com/drhelai/helai/internal/stress"
)

const transcriptWriteTimeout = 2 * time.Second

// Publisher receives an event for every processed turn.
type Publisher interface {
	Publish(ev feed.Event)
}

// Reply is the outcome of one processed message.
type Reply struct {
	Turn       domain.ChatTurn
	Assessment stress.Assessment
	Trend      domain.Trend
	Reason     generator.Reason // Why fallback text was used; empty for model text.
}

// Deps are the collaborators of a Responder. Transcript and Publisher are
// optional.
type Deps struct {
	Generator  generator.Generator
	Fallback   *fallback.Responder
	Analyzer   *stress.Analyzer
	Log        *history.Log
	Transcript store.Repository
	Publisher  Publisher
	Logger     *slog.Logger
	Now        func() time.Time
}

// Responder turns a user message into a scored reply and records it.
type Responder struct {
	gen        generator.Generator
	fallback   *fallback.Responder
	analyzer   *stress.Analyzer
	log        *history.Log
	transcript store.Repository
	publisher  Publisher
	logger     *slog.Logger
	now        func() time.Time
}

// NewResponder creates a Responder. Missing required collaborators get
// defaults: a disabled generator, the default lexicon and a default-size log.
func NewResponder(d Deps) *Responder {
	r := &Responder{
		gen:        d.Generator,
		fallback:   d.Fallback,
		analyzer:   d.Analyzer,
		log:        d.Log,
		transcript: d.Transcript,
		publisher:  d.Publisher,
		logger:     d.Logger,
		now:        d.Now,
	}
	if r.gen == nil {
		r.gen = generator.Disabled{}
	}
	if r.fallback == nil {
		r.fallback = fallback.NewResponder(nil, nil)
	}
	if r.analyzer == nil {
		r.analyzer = stress.NewAnalyzer(nil)
	}
	if r.log == nil {
		r.log = history.NewLog(0)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Respond processes message. It returns ErrEmptyMessage for blank input and
// an *InternalError if anything in the pipeline panics. Upstream failures are
// never returned; they switch the reply to fallback text.
func (r *Responder) Respond(ctx context.Context, message string) (reply *Reply, err error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	defer func() {
		if rec := recover(); rec != nil {
			reply = nil
			err = &InternalError{Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	result := r.gen.Generate(ctx, message)
	text, source := result.Text, domain.SourceModel
	if !result.OK() {
		text, source = r.fallback.Respond(message), domain.SourceFallback
	}

	assessment := r.analyzer.Analyze(message)

	turn := domain.ChatTurn{
		ID:             uuid.NewString(),
		Message:        message,
		Response:       text,
		StressLevel:    assessment.Level,
		PrimaryEmotion: assessment.PrimaryEmotion,
		Source:         source,
		Timestamp:      r.now().UTC(),
	}

	trend := domain.TrendStable
	if prev, ok := r.log.Append(turn); ok {
		trend = domain.TrendBetween(prev.StressLevel, turn.StressLevel)
	}

	r.record(ctx, &turn)
	if r.publisher != nil {
		r.publisher.Publish(feed.NewMeterEvent(turn.StressLevel, trend, turn.Timestamp))
	}

	r.logger.Info("Chat turn processed",
		"turn_id", turn.ID,
		"stress_level", turn.StressLevel,
		"trend", trend,
		"source", source,
		"reason", result.Reason)

	return &Reply{
		Turn:       turn,
		Assessment: assessment,
		Trend:      trend,
		Reason:     result.Reason,
	}, nil
}

// record writes turn to the transcript. It outlives a cancelled request so a
// client hang-up does not drop a turn that is already in the log.
func (r *Responder) record(ctx context.Context, turn *domain.ChatTurn) {
	if r.transcript == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), transcriptWriteTimeout)
	defer cancel()

	if err := r.transcript.SaveTurn(ctx, turn); err != nil {
		r.logger.Warn("Failed to write transcript", "turn_id", turn.ID, "error", err)
	}
}

// Log returns the conversation log the responder appends to.
func (r *Responder) Log() *history.Log {
	return r.log
}

// Package generator calls the upstream generative-language service.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/drhelai/helai/internal/config"
)

// Reason explains why no model text was obtained.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonNoCredentials Reason = "no_credentials"
	ReasonUpstreamError Reason = "upstream_error"
	ReasonEmptyResponse Reason = "empty_response"
)

// ErrEmptyResponse is returned when the service answered without text.
var ErrEmptyResponse = errors.New("generation returned no text")

// Result is the outcome of one generation attempt.
type Result struct {
	Text   string
	Reason Reason
}

// OK reports whether model text was obtained.
func (r Result) OK() bool {
	return r.Reason == ReasonNone && r.Text != ""
}

// Generator produces a reply for a user message.
type Generator interface {
	Generate(ctx context.Context, message string) Result
}

// promptTemplate is the fixed instruction wrapped around every message.
const promptTemplate = `You are Dr. HelAI, a professional AI therapeutic assistant. Please provide a supportive, empathetic response to this message. Keep your response concise and therapeutic: "%s"`

// BuildPrompt embeds message into the fixed prompt.
func BuildPrompt(message string) string {
	return fmt.Sprintf(promptTemplate, message)
}

// Disabled is the Generator used when no API key is configured.
type Disabled struct{}

// Generate always reports missing credentials.
func (Disabled) Generate(context.Context, string) Result {
	return Result{Reason: ReasonNoCredentials}
}

// GeminiClient calls generateContent through the genai SDK.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// New returns a GeminiClient, or Disabled when cfg has no API key.
func New(ctx context.Context, cfg config.GeminiConfig, logger *slog.Logger) (Generator, error) {
	if cfg.APIKey == "" {
		return Disabled{}, nil
	}
	return NewGeminiClient(ctx, cfg, logger)
}

// NewGeminiClient creates a Gemini client. An empty BaseURL uses the SDK
// default endpoint.
func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig, logger *slog.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// Generate makes a single attempt. Failures are logged and reported in the
// Result; they are never returned to the caller as errors.
func (g *GeminiClient) Generate(ctx context.Context, message string) Result {
	start := time.Now()
	text, err := g.generate(ctx, message)
	if err != nil {
		reason := ReasonUpstreamError
		if errors.Is(err, ErrEmptyResponse) {
			reason = ReasonEmptyResponse
		}
		g.logger.Warn("Gemini generation failed, using fallback",
			"model", g.model,
			"reason", reason,
			"duration", time.Since(start),
			"error", err)
		return Result{Reason: reason}
	}

	g.logger.Debug("Gemini generation completed",
		"model", g.model,
		"duration", time.Since(start),
		"response_length", len(text))
	return Result{Text: text}
}

func (g *GeminiClient) generate(ctx context.Context, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(message)), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := firstText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// firstText returns candidates[0].content.parts[0].text, trimmed.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return ""
	}
	return strings.TrimSpace(content.Parts[0].Text)
}

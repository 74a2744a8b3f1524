package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrUnavailable means the text service failed after all retries. Callers
// fall back to templates; the error never aborts a run.
var ErrUnavailable = errors.New("text service unavailable")

// LLMConfig configures the messages-API text source.
type LLMConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Retries     int
	RetryDelay  time.Duration
}

// LLMSource generates text through an Anthropic-style messages endpoint.
type LLMSource struct {
	cfg    LLMConfig
	client *http.Client
	log    *zap.Logger
}

// NewLLMSource builds the HTTP-backed source.
func NewLLMSource(cfg LLMConfig, log *zap.Logger) *LLMSource {
	if cfg.Retries <= 0 {
		cfg.Retries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 1500 * time.Millisecond
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMSource{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Generate sends a prompt and returns the first text block. Transport and
// decode failures are retried with a fixed delay; exhausting retries
// yields ErrUnavailable.
func (s *LLMSource) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < s.cfg.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(s.cfg.RetryDelay):
			}
		}
		text, err := s.generateOnce(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		s.log.Warn("text service request failed",
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return "", fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (s *LLMSource) generateOnce(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(messagesRequest{
		Model:       s.cfg.Model,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
		Messages:    []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimSuffix(s.cfg.BaseURL, "/")+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.cfg.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("messages API status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	var decoded messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	for _, block := range decoded.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return strings.TrimSpace(block.Text), nil
		}
	}
	return "", fmt.Errorf("response had no text content")
}

// TaskName asks the service for a short task title.
func (s *LLMSource) TaskName(ctx context.Context, _ *rand.Rand, teamType string) (string, error) {
	prompt := fmt.Sprintf("Write one short, realistic project-management task title for a %s team. Reply with the title only.", teamType)
	return s.Generate(ctx, prompt)
}

// Comment asks the service for a short status comment.
func (s *LLMSource) Comment(ctx context.Context, _ *rand.Rand) (string, error) {
	return s.Generate(ctx, "Write one short, realistic status comment someone would leave on a work task. Reply with the comment only.")
}

// WithFallback wraps an LLM source so every failure degrades to the
// template path with no change in record shape.
func WithFallback(llm *LLMSource, templates *TemplateSource, log *zap.Logger) Source {
	if log == nil {
		log = zap.NewNop()
	}
	return &fallbackSource{llm: llm, templates: templates, log: log}
}

type fallbackSource struct {
	llm       *LLMSource
	templates *TemplateSource
	log       *zap.Logger
}

func (f *fallbackSource) TaskName(ctx context.Context, r *rand.Rand, teamType string) string {
	if text, err := f.llm.TaskName(ctx, r, teamType); err == nil {
		return text
	} else if errors.Is(err, ErrUnavailable) {
		f.log.Debug("falling back to task name template", zap.String("team_type", teamType))
	}
	return f.templates.TaskName(ctx, r, teamType)
}

func (f *fallbackSource) Comment(ctx context.Context, r *rand.Rand) string {
	if text, err := f.llm.Comment(ctx, r); err == nil {
		return text
	}
	return f.templates.Comment(ctx, r)
}

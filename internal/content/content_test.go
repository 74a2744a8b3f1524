package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seedline/internal/randx"
)

func newTemplateSource() *TemplateSource {
	return &TemplateSource{
		TaskTemplates: map[string][]string{
			"engineering": {"Fix {issue} in {component}", "Implement {feature} for {component}"},
		},
		CommentTemplates: []string{"Looks good to me.", "Any updates on this?"},
	}
}

func TestExpandReplacesPlaceholders(t *testing.T) {
	r := randx.New(1)
	out := Expand(r, "Fix {issue} in {component}")
	assert.NotContains(t, out, "{")
	assert.True(t, strings.HasPrefix(out, "Fix "))
}

func TestExpandLeavesUnknownPlaceholders(t *testing.T) {
	r := randx.New(1)
	assert.Equal(t, "Sprint {n} - Core Platform", Expand(r, "Sprint {n} - Core Platform"))
}

func TestTemplateSourceDeterministic(t *testing.T) {
	src := newTemplateSource()
	ctx := context.Background()
	a := src.TaskName(ctx, randx.New(9), "engineering")
	b := src.TaskName(ctx, randx.New(9), "engineering")
	assert.Equal(t, a, b)
}

func TestTemplateSourceUnknownTeamType(t *testing.T) {
	src := newTemplateSource()
	name := src.TaskName(context.Background(), randx.New(2), "finance")
	assert.NotEmpty(t, name)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 200))
	long := strings.Repeat("a", 210)
	got := Truncate(long, 200)
	assert.Len(t, got, 200)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestLLMSourceSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		w.Write([]byte(`{"content":[{"type":"text","text":"Ship the billing export"}]}`))
	}))
	defer srv.Close()

	src := NewLLMSource(LLMConfig{BaseURL: srv.URL, APIKey: "test-key", Model: "m", MaxTokens: 100}, nil)
	text, err := src.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Ship the billing export", text)
}

func TestLLMSourceRetriesThenUnavailable(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewLLMSource(LLMConfig{
		BaseURL: srv.URL, Model: "m", MaxTokens: 10,
		Retries: 3, RetryDelay: time.Millisecond,
	}, nil)
	_, err := src.Generate(context.Background(), "prompt")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFallbackSourceDegradesToTemplates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	llm := NewLLMSource(LLMConfig{BaseURL: srv.URL, Model: "m", MaxTokens: 10, Retries: 1, RetryDelay: time.Millisecond}, nil)
	src := WithFallback(llm, newTemplateSource(), nil)

	name := src.TaskName(context.Background(), randx.New(3), "engineering")
	assert.NotEmpty(t, name)
	assert.NotContains(t, name, "{")
	comment := src.Comment(context.Background(), randx.New(3))
	assert.NotEmpty(t, comment)
}

func TestFallbackSourcePrefersLLM(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[{"type":"text","text":"From the service"}]}`))
	}))
	defer srv.Close()

	llm := NewLLMSource(LLMConfig{BaseURL: srv.URL, Model: "m", MaxTokens: 10}, nil)
	src := WithFallback(llm, newTemplateSource(), nil)
	assert.Equal(t, "From the service", src.TaskName(context.Background(), randx.New(1), "engineering"))
}

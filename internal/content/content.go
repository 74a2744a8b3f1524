// Package content supplies the human-readable text on generated records.
// The default source expands deterministic templates from word pools; an
// optional LLM-backed source can replace it at configuration time, with
// the template path as a guaranteed fallback.
package content

import (
	"context"
	"math/rand"
	"strings"
)

// Source produces record text. Implementations must not change record
// shape: a task name is a task name whichever source produced it.
type Source interface {
	TaskName(ctx context.Context, r *rand.Rand, teamType string) string
	Comment(ctx context.Context, r *rand.Rand) string
}

// wordPools fills template placeholders. Pools are fixed so that template
// expansion only consumes randomness from the run stream.
var wordPools = map[string][]string{
	"feature":   {"user onboarding", "billing export", "search filters", "notifications", "SSO login", "audit logging", "dark mode", "rate limiting"},
	"component": {"auth service", "billing API", "web dashboard", "mobile app", "data pipeline", "notification worker", "search index"},
	"issue":     {"race condition", "memory leak", "timeout handling", "pagination bug", "encoding error", "flaky retry logic"},
	"reason":    {"cleanup", "performance", "readability", "tech debt", "consistency"},
	"asset":     {"landing page", "banner set", "case study", "email sequence", "product video"},
	"campaign":  {"Q1 Launch", "Product Update", "Brand Awareness", "Lead Gen"},
	"channel":   {"Social Media", "Email", "Content", "Paid Ads", "Events"},
	"process":   {"onboarding flow", "invoice approval", "vendor review", "incident response", "release checklist"},
	"tool":      {"CRM", "help desk", "analytics dashboard", "billing system"},
	"prospect":  {"Acme Corp", "Globex", "Initech", "Umbrella Logistics", "Northwind"},
	"stage":     {"discovery", "negotiation", "proposal", "closing"},
}

// TemplateSource is the deterministic default text source.
type TemplateSource struct {
	TaskTemplates    map[string][]string
	CommentTemplates []string
}

func (s *TemplateSource) TaskName(_ context.Context, r *rand.Rand, teamType string) string {
	pool := s.TaskTemplates[teamType]
	if len(pool) == 0 {
		// unknown team types fall back to a neutral name
		return "Task " + pick(r, wordPools["stage"])
	}
	return Expand(r, pool[r.Intn(len(pool))])
}

func (s *TemplateSource) Comment(_ context.Context, r *rand.Rand) string {
	return s.CommentTemplates[r.Intn(len(s.CommentTemplates))]
}

// Expand replaces {placeholder} tokens left to right with a draw from the
// matching word pool. Unknown placeholders are left in place.
func Expand(r *rand.Rand, template string) string {
	var b strings.Builder
	rest := template
	for {
		open := strings.Index(rest, "{")
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := strings.Index(rest[open:], "}")
		if end < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end += open
		b.WriteString(rest[:open])
		key := rest[open+1 : end]
		if pool, ok := wordPools[key]; ok {
			b.WriteString(pick(r, pool))
		} else {
			b.WriteString(rest[open : end+1])
		}
		rest = rest[end+1:]
	}
}

func pick(r *rand.Rand, pool []string) string {
	return pool[r.Intn(len(pool))]
}

// Truncate shortens text to maxLen runes with an ellipsis, mirroring the
// record length limits.
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen-3]) + "..."
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 150, cfg.Scale.Users)
	assert.Equal(t, 180, cfg.Dates.HistoryDays)
	assert.Len(t, cfg.Content.Tags, 15)
	assert.Equal(t, []string{"sprint", "kanban"}, cfg.ProjectTypesByTeam["engineering"])
}

func TestFromYAMLPartialOverride(t *testing.T) {
	cfg, err := FromYAML([]byte("scale:\n  users: 10\n  users_per_team_min: 2\n  users_per_team_max: 4\n  projects_per_team_min: 1\n  projects_per_team_max: 2\n  tasks_per_project_min: 3\n  tasks_per_project_max: 5\n  subtasks_per_task_min: 2\n  subtasks_per_task_max: 3\n  teams:\n    - {type: engineering, count: 1}\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Scale.Users)
	// untouched sections keep defaults
	assert.Equal(t, "TechFlow Solutions", cfg.Company.Name)
	assert.InDelta(t, 0.15, cfg.Probabilities.Unassigned, 1e-9)
}

func TestMalformedPriorityTableRejected(t *testing.T) {
	_, err := FromYAML([]byte("probabilities:\n  priority:\n    - {key: high, weight: 0.5}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "priority")
}

func TestMalformedDueTableRejected(t *testing.T) {
	_, err := FromYAML([]byte("probabilities:\n  due_date:\n    overdue: 0.5\n    week: 0.5\n    month: 0.5\n    quarter: 0\n    none: 0\n"))
	require.Error(t, err)
}

func TestUnknownProjectTypeRejected(t *testing.T) {
	_, err := FromYAML([]byte("project_types_by_team:\n  engineering: [scrumfall]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scrumfall")
}

func TestFixedNowParses(t *testing.T) {
	cfg := Default()
	cfg.Dates.Now = "2026-03-02T09:00:00Z"
	now, err := cfg.Now()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), now)

	cfg.Dates.Now = "not-a-time"
	_, err = cfg.Now()
	require.Error(t, err)
}

func TestRetryDelayFallback(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1500*time.Millisecond, cfg.RetryDelay())
	cfg.LLM.RetryDelay = "2s"
	assert.Equal(t, 2*time.Second, cfg.RetryDelay())
	cfg.LLM.RetryDelay = "garbage"
	assert.Equal(t, 1500*time.Millisecond, cfg.RetryDelay())
}

// Package config models the generation scenario: scale, probability
// tables, per-project-type section/field layouts, and content pools.
// Changing values here changes output distribution, never generator logic.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config models seedline.yml.
type Config struct {
	Company struct {
		Name   string `yaml:"name"`
		Domain string `yaml:"domain"`
	} `yaml:"company"`

	Scale struct {
		Users              int             `yaml:"users"`
		Teams              []TeamTypeCount `yaml:"teams"`
		UsersPerTeamMin    int             `yaml:"users_per_team_min"`
		UsersPerTeamMax    int             `yaml:"users_per_team_max"`
		ProjectsPerTeamMin int             `yaml:"projects_per_team_min"`
		ProjectsPerTeamMax int             `yaml:"projects_per_team_max"`
		TasksPerProjectMin int             `yaml:"tasks_per_project_min"`
		TasksPerProjectMax int             `yaml:"tasks_per_project_max"`
		SubtasksPerTaskMin int             `yaml:"subtasks_per_task_min"`
		SubtasksPerTaskMax int             `yaml:"subtasks_per_task_max"`
	} `yaml:"scale"`

	Dates struct {
		HistoryDays        int    `yaml:"history_days"`
		SprintDurationDays int    `yaml:"sprint_duration_days"`
		Now                string `yaml:"now"` // RFC3339; empty means wall clock
	} `yaml:"dates"`

	Probabilities struct {
		Unassigned         float64   `yaml:"unassigned"`
		Subtasks           float64   `yaml:"subtasks"`
		Tags               float64   `yaml:"tags"`
		Attachments        float64   `yaml:"attachments"`
		Comments           float64   `yaml:"comments"`
		AvoidWeekendDue    float64   `yaml:"avoid_weekend_due"`
		CompleteBeforeDue  float64   `yaml:"complete_before_due"`
		DueDate            DueTable  `yaml:"due_date"`
		Roles              []Outcome `yaml:"roles"`
		Priority           []Outcome `yaml:"priority"`
		CompletionTimeMean float64   `yaml:"completion_time_mean"`
		CompletionTimeStdv float64   `yaml:"completion_time_stddev"`
	} `yaml:"probabilities"`

	CommentsPerTaskMin int `yaml:"comments_per_task_min"`
	CommentsPerTaskMax int `yaml:"comments_per_task_max"`
	TagsPerTaskMax     int `yaml:"tags_per_task_max"`

	ProjectTypes       map[string]ProjectType `yaml:"project_types"`
	ProjectTypesByTeam map[string][]string    `yaml:"project_types_by_team"`

	Content struct {
		FirstNames           []string            `yaml:"first_names"`
		LastNames            []string            `yaml:"last_names"`
		TeamNames            map[string][]string `yaml:"team_names"`
		ProjectNameTemplates map[string][]string `yaml:"project_name_templates"`
		TaskNameTemplates    map[string][]string `yaml:"task_name_templates"`
		CommentTemplates     []string            `yaml:"comment_templates"`
		Tags                 []TagSpec           `yaml:"tags"`
	} `yaml:"content"`

	LLM struct {
		Enabled     bool    `yaml:"enabled"`
		BaseURL     string  `yaml:"base_url"`
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float64 `yaml:"temperature"`
		Retries     int     `yaml:"retries"`
		RetryDelay  string  `yaml:"retry_delay"`
	} `yaml:"llm"`

	Logging struct {
		Level       string `yaml:"level"`
		Environment string `yaml:"environment"`
	} `yaml:"logging"`
}

// TeamTypeCount pins team generation order: a YAML map would iterate in
// nondeterministic order and break seed reproducibility.
type TeamTypeCount struct {
	Type  string `yaml:"type"`
	Count int    `yaml:"count"`
}

// Outcome is one row of an ordered categorical table. An empty key is the
// "none" outcome.
type Outcome struct {
	Key    string  `yaml:"key"`
	Weight float64 `yaml:"weight"`
}

// DueTable is the 5-way due-date bucket distribution, scanned in declared
// field order: overdue, week, month, quarter, none.
type DueTable struct {
	Overdue float64 `yaml:"overdue"`
	Week    float64 `yaml:"week"`
	Month   float64 `yaml:"month"`
	Quarter float64 `yaml:"quarter"`
	None    float64 `yaml:"none"`
}

type ProjectType struct {
	Sections       []string      `yaml:"sections"`
	CustomFields   []CustomField `yaml:"custom_fields"`
	CompletionLow  float64       `yaml:"completion_low"`
	CompletionHigh float64       `yaml:"completion_high"`
}

type CustomField struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"` // number | enum
	Options []string `yaml:"options,omitempty"`
}

type TagSpec struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Load reads config from path, or returns defaults when path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return FromYAML(data)
}

// FromYAML parses and validates config, starting from defaults so a
// partial file only overrides what it names.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in scenario.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultTemplate), &cfg); err != nil {
		panic(fmt.Sprintf("default config template invalid: %v", err))
	}
	return &cfg
}

// Now returns the simulation clock end for the run.
func (c *Config) Now() (time.Time, error) {
	if c.Dates.Now == "" {
		return time.Now().UTC().Truncate(time.Second), nil
	}
	now, err := time.Parse(time.RFC3339, c.Dates.Now)
	if err != nil {
		return time.Time{}, fmt.Errorf("dates.now: %w", err)
	}
	return now.UTC(), nil
}

// RetryDelay parses llm.retry_delay with a 1.5s fallback.
func (c *Config) RetryDelay() time.Duration {
	d, err := time.ParseDuration(c.LLM.RetryDelay)
	if err != nil || d <= 0 {
		return 1500 * time.Millisecond
	}
	return d
}

// Validate catches malformed probability tables and empty pools before
// any generator runs; these are fatal per the error taxonomy.
func (c *Config) Validate() error {
	if c.Company.Name == "" || c.Company.Domain == "" {
		return fmt.Errorf("company.name and company.domain are required")
	}
	if c.Scale.Users <= 0 {
		return fmt.Errorf("scale.users must be positive")
	}
	if len(c.Scale.Teams) == 0 {
		return fmt.Errorf("scale.teams must not be empty")
	}
	for _, tc := range c.Scale.Teams {
		if tc.Type == "" || tc.Count <= 0 {
			return fmt.Errorf("scale.teams entries need a type and positive count")
		}
		if len(c.Content.TeamNames[tc.Type]) == 0 {
			return fmt.Errorf("content.team_names missing pool for team type %s", tc.Type)
		}
		if len(c.ProjectTypesByTeam[tc.Type]) == 0 {
			return fmt.Errorf("project_types_by_team missing entry for team type %s", tc.Type)
		}
		if len(c.Content.TaskNameTemplates[tc.Type]) == 0 {
			return fmt.Errorf("content.task_name_templates missing pool for team type %s", tc.Type)
		}
	}
	for teamType, types := range c.ProjectTypesByTeam {
		for _, pt := range types {
			if _, ok := c.ProjectTypes[pt]; !ok {
				return fmt.Errorf("project_types_by_team.%s references unknown project type %s", teamType, pt)
			}
		}
	}
	for name, pt := range c.ProjectTypes {
		if len(pt.Sections) == 0 {
			return fmt.Errorf("project type %s has no sections", name)
		}
		if pt.CompletionLow < 0 || pt.CompletionHigh > 1 || pt.CompletionLow > pt.CompletionHigh {
			return fmt.Errorf("project type %s has invalid completion band [%v,%v]", name, pt.CompletionLow, pt.CompletionHigh)
		}
		for _, f := range pt.CustomFields {
			switch f.Type {
			case "number":
			case "enum":
				if len(f.Options) == 0 {
					return fmt.Errorf("project type %s enum field %s has no options", name, f.Name)
				}
			default:
				return fmt.Errorf("project type %s field %s has unknown type %s", name, f.Name, f.Type)
			}
		}
		if len(c.Content.ProjectNameTemplates[name]) == 0 {
			return fmt.Errorf("content.project_name_templates missing pool for project type %s", name)
		}
	}
	if err := boundsPair("scale.users_per_team", c.Scale.UsersPerTeamMin, c.Scale.UsersPerTeamMax); err != nil {
		return err
	}
	if err := boundsPair("scale.projects_per_team", c.Scale.ProjectsPerTeamMin, c.Scale.ProjectsPerTeamMax); err != nil {
		return err
	}
	if err := boundsPair("scale.tasks_per_project", c.Scale.TasksPerProjectMin, c.Scale.TasksPerProjectMax); err != nil {
		return err
	}
	if err := boundsPair("scale.subtasks_per_task", c.Scale.SubtasksPerTaskMin, c.Scale.SubtasksPerTaskMax); err != nil {
		return err
	}
	if err := boundsPair("comments_per_task", c.CommentsPerTaskMin, c.CommentsPerTaskMax); err != nil {
		return err
	}
	if c.Dates.HistoryDays <= 0 {
		return fmt.Errorf("dates.history_days must be positive")
	}
	if c.Dates.SprintDurationDays <= 0 {
		return fmt.Errorf("dates.sprint_duration_days must be positive")
	}
	dd := c.Probabilities.DueDate
	ddSum := dd.Overdue + dd.Week + dd.Month + dd.Quarter + dd.None
	if ddSum < 0.99 || ddSum > 1.01 {
		return fmt.Errorf("probabilities.due_date weights sum to %v, want ~1.0", ddSum)
	}
	if err := outcomeTable("probabilities.priority", c.Probabilities.Priority); err != nil {
		return err
	}
	if err := outcomeTable("probabilities.roles", c.Probabilities.Roles); err != nil {
		return err
	}
	for _, o := range c.Probabilities.Roles {
		if o.Key == "" {
			return fmt.Errorf("probabilities.roles must not contain a none outcome")
		}
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"unassigned", c.Probabilities.Unassigned},
		{"subtasks", c.Probabilities.Subtasks},
		{"tags", c.Probabilities.Tags},
		{"attachments", c.Probabilities.Attachments},
		{"comments", c.Probabilities.Comments},
		{"avoid_weekend_due", c.Probabilities.AvoidWeekendDue},
		{"complete_before_due", c.Probabilities.CompleteBeforeDue},
	} {
		if p.v < 0 || p.v > 1 {
			return fmt.Errorf("probabilities.%s must be within [0,1]", p.name)
		}
	}
	if c.Probabilities.CompletionTimeMean <= 0 || c.Probabilities.CompletionTimeStdv <= 0 {
		return fmt.Errorf("completion time mean/stddev must be positive")
	}
	if len(c.Content.FirstNames) == 0 || len(c.Content.LastNames) == 0 {
		return fmt.Errorf("content.first_names and content.last_names must not be empty")
	}
	if len(c.Content.CommentTemplates) == 0 {
		return fmt.Errorf("content.comment_templates must not be empty")
	}
	if len(c.Content.Tags) == 0 {
		return fmt.Errorf("content.tags must not be empty")
	}
	if c.TagsPerTaskMax <= 0 {
		return fmt.Errorf("tags_per_task_max must be positive")
	}
	return nil
}

func boundsPair(name string, lo, hi int) error {
	if lo < 0 || hi < lo {
		return fmt.Errorf("%s min/max invalid: [%d,%d]", name, lo, hi)
	}
	return nil
}

func outcomeTable(name string, outcomes []Outcome) error {
	if len(outcomes) == 0 {
		return fmt.Errorf("%s must not be empty", name)
	}
	sum := 0.0
	for _, o := range outcomes {
		if o.Weight < 0 {
			return fmt.Errorf("%s weight for %q is negative", name, o.Key)
		}
		sum += o.Weight
	}
	if sum < 0.99 || sum > 1.01 {
		return fmt.Errorf("%s weights sum to %v, want ~1.0", name, sum)
	}
	return nil
}

package gen

import (
	"context"
	"fmt"
	"sort"

	"seedline/internal/content"
	"seedline/internal/domain"
	"seedline/internal/randx"
)

const maxTaskNameLen = 200

// Tasks generates tasks and their subtasks per project. Completion is a
// Bernoulli draw against the project's stored completion-rate target;
// completed tasks get a completion date consistent with their creation
// and due dates. Subtasks inherit the parent's assignee, creator, timing
// window, and priority, but sample their own hour estimates.
func (g *Generator) Tasks(ctx context.Context, projects []domain.Project, sections []domain.Section, teams []domain.Team, users []domain.User) ([]domain.Task, error) {
	sectionsByProject := make(map[string][]domain.Section)
	for _, s := range sections {
		sectionsByProject[s.ProjectID] = append(sectionsByProject[s.ProjectID], s)
	}
	for _, list := range sectionsByProject {
		sort.Slice(list, func(i, j int) bool { return list[i].DisplayOrder < list[j].DisplayOrder })
	}
	teamTypeByID := make(map[string]string, len(teams))
	for _, t := range teams {
		teamTypeByID[t.ID] = t.TeamType
	}

	priorities := make([]randx.Weighted, len(g.Config.Probabilities.Priority))
	for i, o := range g.Config.Probabilities.Priority {
		priorities[i] = randx.Weighted{Key: o.Key, Weight: o.Weight}
	}

	var tasks []domain.Task
	for _, project := range projects {
		projectSections := sectionsByProject[project.ID]
		teamType := teamTypeByID[project.TeamID]
		n := randx.IntBetween(g.Rand, g.Config.Scale.TasksPerProjectMin, g.Config.Scale.TasksPerProjectMax)

		for i := 0; i < n; i++ {
			task, err := g.task(ctx, project, projectSections, teamType, users, priorities)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, task)

			if randx.Bernoulli(g.Rand, g.Config.Probabilities.Subtasks) {
				count := randx.IntBetween(g.Rand, g.Config.Scale.SubtasksPerTaskMin, g.Config.Scale.SubtasksPerTaskMax)
				for j := 0; j < count; j++ {
					sub, err := g.subtask(task, j+1)
					if err != nil {
						return nil, err
					}
					tasks = append(tasks, sub)
				}
			}
		}
	}
	return tasks, nil
}

func (g *Generator) task(ctx context.Context, project domain.Project, projectSections []domain.Section, teamType string, users []domain.User, priorities []randx.Weighted) (domain.Task, error) {
	createdAt := g.Timeline.CreationDate(g.Rand)
	dueDate := g.Timeline.DueDate(g.Rand, createdAt, project.ProjectType)

	completed := randx.Bernoulli(g.Rand, project.CompletionRate)
	task := domain.Task{
		ID:             newID(g.Rand),
		ProjectID:      project.ID,
		SectionID:      projectSections[g.Rand.Intn(len(projectSections))].ID,
		Name:           taskName(g, ctx, teamType),
		CreatedBy:      users[g.Rand.Intn(len(users))].ID,
		CreatedAt:      createdAt,
		ModifiedAt:     createdAt,
		DueDate:        dueDate,
		Completed:      completed,
		EstimatedHours: randx.Round1(randx.FloatBetween(g.Rand, 1, 16)),
	}
	if completed {
		completedAt := g.Timeline.CompletionDate(g.Rand, createdAt, dueDate)
		task.CompletedAt = &completedAt
		task.ModifiedAt = completedAt
		actual := randx.Round1(randx.FloatBetween(g.Rand, 1, 20))
		task.ActualHours = &actual
	}
	if p := randx.WeightedChoice(g.Rand, priorities); p != "" {
		task.Priority = &p
	}
	if !randx.Bernoulli(g.Rand, g.Config.Probabilities.Unassigned) {
		task.AssigneeID = &users[g.Rand.Intn(len(users))].ID
	}
	if err := task.Validate(); err != nil {
		return domain.Task{}, fmt.Errorf("generate task: %w", err)
	}
	return task, nil
}

func (g *Generator) subtask(parent domain.Task, index int) (domain.Task, error) {
	sub := domain.Task{
		ID:             newID(g.Rand),
		ProjectID:      parent.ProjectID,
		SectionID:      parent.SectionID,
		ParentTaskID:   &parent.ID,
		Name:           content.Truncate(fmt.Sprintf("Subtask %d - %s", index, parent.Name), maxTaskNameLen),
		AssigneeID:     parent.AssigneeID,
		CreatedBy:      parent.CreatedBy,
		CreatedAt:      parent.CreatedAt,
		ModifiedAt:     parent.ModifiedAt,
		DueDate:        parent.DueDate,
		Completed:      parent.Completed,
		CompletedAt:    parent.CompletedAt,
		Priority:       parent.Priority,
		EstimatedHours: randx.Round1(randx.FloatBetween(g.Rand, 0.5, 8)),
	}
	if parent.Completed {
		actual := randx.Round1(randx.FloatBetween(g.Rand, 0.5, 10))
		sub.ActualHours = &actual
	}
	if err := sub.Validate(); err != nil {
		return domain.Task{}, fmt.Errorf("generate subtask: %w", err)
	}
	return sub, nil
}

func taskName(g *Generator, ctx context.Context, teamType string) string {
	return content.Truncate(g.Text.TaskName(ctx, g.Rand, teamType), maxTaskNameLen)
}

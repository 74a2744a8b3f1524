package gen

import (
	"context"
	"fmt"
	"time"

	"seedline/internal/domain"
	"seedline/internal/randx"
)

// Tags materializes the workspace tag catalog from configuration.
func (g *Generator) Tags(ws domain.Workspace) []domain.Tag {
	tags := make([]domain.Tag, 0, len(g.Config.Content.Tags))
	for _, spec := range g.Config.Content.Tags {
		tags = append(tags, domain.Tag{
			ID:          newID(g.Rand),
			WorkspaceID: ws.ID,
			Name:        spec.Name,
			Color:       spec.Color,
			CreatedAt:   g.Timeline.Window.Start,
		})
	}
	return tags
}

// TaskTags links a random distinct subset of catalog tags to each tagged
// task. The gate applies to every task, subtasks included.
func (g *Generator) TaskTags(tasks []domain.Task, tags []domain.Tag) []domain.TaskTag {
	var links []domain.TaskTag
	maxTags := g.Config.TagsPerTaskMax
	if maxTags > len(tags) {
		maxTags = len(tags)
	}
	for _, task := range tasks {
		if !randx.Bernoulli(g.Rand, g.Config.Probabilities.Tags) {
			continue
		}
		n := randx.IntBetween(g.Rand, 1, maxTags)
		for _, idx := range randx.SampleIndices(g.Rand, len(tags), n) {
			links = append(links, domain.TaskTag{
				ID:        newID(g.Rand),
				TaskID:    task.ID,
				TagID:     tags[idx].ID,
				CreatedAt: task.CreatedAt,
			})
		}
	}
	return links
}

// Attachments attaches at most one file per eligible task.
func (g *Generator) Attachments(ws domain.Workspace, tasks []domain.Task, users []domain.User) []domain.Attachment {
	var attachments []domain.Attachment
	for _, task := range tasks {
		if !randx.Bernoulli(g.Rand, g.Config.Probabilities.Attachments) {
			continue
		}
		attachments = append(attachments, domain.Attachment{
			ID:         newID(g.Rand),
			TaskID:     task.ID,
			UploadedBy: users[g.Rand.Intn(len(users))].ID,
			FileName:   fmt.Sprintf("attachment_%d.pdf", randx.IntBetween(g.Rand, 1, 999)),
			FileSize:   int64(randx.IntBetween(g.Rand, 50_000, 5_000_000)),
			FileType:   "pdf",
			URL:        fmt.Sprintf("https://files.%s/%s", ws.Domain, newID(g.Rand)),
			UploadedAt: g.activityTime(task),
		})
	}
	return attachments
}

// Comments writes a short thread on a fraction of tasks.
func (g *Generator) Comments(ctx context.Context, tasks []domain.Task, users []domain.User) []domain.Comment {
	var comments []domain.Comment
	for _, task := range tasks {
		if !randx.Bernoulli(g.Rand, g.Config.Probabilities.Comments) {
			continue
		}
		n := randx.IntBetween(g.Rand, g.Config.CommentsPerTaskMin, g.Config.CommentsPerTaskMax)
		for i := 0; i < n; i++ {
			comments = append(comments, domain.Comment{
				ID:          newID(g.Rand),
				TaskID:      task.ID,
				UserID:      users[g.Rand.Intn(len(users))].ID,
				CommentText: g.Text.Comment(ctx, g.Rand),
				CreatedAt:   g.activityTime(task),
				IsEdited:    false,
			})
		}
	}
	return comments
}

// activityTime samples a moment between a task's creation and the end of
// the history window, so follow-on records never predate the task they
// hang off.
func (g *Generator) activityTime(task domain.Task) time.Time {
	upper := g.Timeline.Window.Now
	if !upper.After(task.CreatedAt) {
		return task.CreatedAt
	}
	span := int(upper.Sub(task.CreatedAt) / time.Second)
	return task.CreatedAt.Add(time.Duration(g.Rand.Intn(span+1)) * time.Second)
}

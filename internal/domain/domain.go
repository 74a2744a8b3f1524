// Package domain defines the generated entity records. All IDs are opaque
// UUID strings; rows are append-only and never mutated after construction.
package domain

import (
	"fmt"
	"time"
)

type Workspace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

type User struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role" enum:"admin,member,guest"`
	CreatedAt   time.Time `json:"created_at"`
	IsActive    bool      `json:"is_active"`
}

type Team struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TeamType    string    `json:"team_type"`
	CreatedAt   time.Time `json:"created_at"`
	IsArchived  bool      `json:"is_archived"`
}

type TeamMembership struct {
	ID       string    `json:"id"`
	TeamID   string    `json:"team_id"`
	UserID   string    `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

type Project struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	TeamID      string    `json:"team_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ProjectType string    `json:"project_type" enum:"sprint,kanban,campaign,ongoing"`
	Status      string    `json:"status"`
	Privacy     string    `json:"privacy"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	Color       string    `json:"color"`

	// CompletionRate is the target fraction sampled once at project
	// generation and reused by task generation. It is not persisted.
	CompletionRate float64 `json:"-"`
}

type Section struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// Task covers both top-level tasks and subtasks; subtasks carry a
// non-nil ParentTaskID.
type Task struct {
	ID             string     `json:"id"`
	ProjectID      string     `json:"project_id"`
	SectionID      string     `json:"section_id"`
	ParentTaskID   *string    `json:"parent_task_id,omitempty"`
	Name           string     `json:"name"`
	Description    *string    `json:"description,omitempty"`
	AssigneeID     *string    `json:"assignee_id,omitempty"`
	CreatedBy      string     `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	ModifiedAt     time.Time  `json:"modified_at"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Completed      bool       `json:"completed"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	Priority       *string    `json:"priority,omitempty"`
	EstimatedHours float64    `json:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours,omitempty"`
}

// Validate enforces construction invariants: completed_at is set iff
// completed, and completion never precedes creation.
func (t Task) Validate() error {
	if t.Completed && t.CompletedAt == nil {
		return fmt.Errorf("task %s: completed without completed_at", t.ID)
	}
	if !t.Completed && t.CompletedAt != nil {
		return fmt.Errorf("task %s: completed_at set on incomplete task", t.ID)
	}
	if t.CompletedAt != nil && t.CompletedAt.Before(t.CreatedAt) {
		return fmt.Errorf("task %s: completed_at %s before created_at %s",
			t.ID, t.CompletedAt.Format(time.RFC3339), t.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

// IsSubtask reports whether the task is a child of another task.
func (t Task) IsSubtask() bool { return t.ParentTaskID != nil }

type CustomFieldDefinition struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	FieldName   string    `json:"field_name"`
	FieldType   string    `json:"field_type" enum:"number,enum"`
	EnumOptions *string   `json:"enum_options,omitempty"` // JSON array for enum fields
	IsRequired  bool      `json:"is_required"`
	CreatedAt   time.Time `json:"created_at"`
}

type CustomFieldValue struct {
	ID      string `json:"id"`
	FieldID string `json:"field_id"`
	TaskID  string `json:"task_id"`
	Value   string `json:"value"`
}

type Tag struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

type TaskTag struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	TagID     string    `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Attachment struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id"`
	UploadedBy string    `json:"uploaded_by"`
	FileName   string    `json:"file_name"`
	FileSize   int64     `json:"file_size"`
	FileType   string    `json:"file_type"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type Comment struct {
	ID          string     `json:"id"`
	TaskID      string     `json:"task_id"`
	UserID      string     `json:"user_id"`
	CommentText string     `json:"comment_text"`
	CreatedAt   time.Time  `json:"created_at"`
	EditedAt    *time.Time `json:"edited_at,omitempty"`
	IsEdited    bool       `json:"is_edited"`
}

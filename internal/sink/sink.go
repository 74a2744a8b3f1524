// Package sink persists a generated dataset into the SQLite schema. It is
// a passive consumer: batches arrive fully formed and are inserted in
// dependency order inside a single transaction. Any constraint or
// connection error aborts the run; there is no partial-commit recovery.
package sink

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"seedline/internal/domain"
)

// Tables lists entity tables in insertion order.
var Tables = []string{
	"workspaces", "users", "teams", "team_memberships", "projects",
	"sections", "tasks", "custom_field_definitions", "custom_field_values",
	"tags", "task_tags", "attachments", "comments",
}

type Store struct {
	DB *sql.DB
}

// Write inserts the whole dataset in one transaction. The task batch is
// inserted in generator order, which places parent tasks before their
// subtasks.
func (s Store) Write(ctx context.Context, ds *domain.Dataset) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	w := ds.Workspace
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO workspaces(workspace_id,name,domain,created_at,is_active) VALUES (?,?,?,?,?)`,
		w.ID, w.Name, w.Domain, ts(w.CreatedAt), boolInt(w.IsActive)); err != nil {
		return fmt.Errorf("insert workspace: %w", err)
	}
	for _, u := range ds.Users {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users(user_id,workspace_id,name,email,role,created_at,is_active) VALUES (?,?,?,?,?,?,?)`,
			u.ID, u.WorkspaceID, u.Name, u.Email, u.Role, ts(u.CreatedAt), boolInt(u.IsActive)); err != nil {
			return fmt.Errorf("insert user %s: %w", u.ID, err)
		}
	}
	for _, t := range ds.Teams {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO teams(team_id,workspace_id,name,description,team_type,created_at,is_archived) VALUES (?,?,?,?,?,?,?)`,
			t.ID, t.WorkspaceID, t.Name, t.Description, t.TeamType, ts(t.CreatedAt), boolInt(t.IsArchived)); err != nil {
			return fmt.Errorf("insert team %s: %w", t.ID, err)
		}
	}
	for _, m := range ds.Memberships {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO team_memberships(membership_id,team_id,user_id,joined_at) VALUES (?,?,?,?)`,
			m.ID, m.TeamID, m.UserID, ts(m.JoinedAt)); err != nil {
			return fmt.Errorf("insert membership %s: %w", m.ID, err)
		}
	}
	for _, p := range ds.Projects {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO projects(project_id,workspace_id,team_id,name,description,project_type,status,privacy,owner_id,created_at,color) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			p.ID, p.WorkspaceID, p.TeamID, p.Name, p.Description, p.ProjectType, p.Status, p.Privacy, p.OwnerID, ts(p.CreatedAt), p.Color); err != nil {
			return fmt.Errorf("insert project %s: %w", p.ID, err)
		}
	}
	for _, sec := range ds.Sections {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sections(section_id,project_id,name,display_order,created_at) VALUES (?,?,?,?,?)`,
			sec.ID, sec.ProjectID, sec.Name, sec.DisplayOrder, ts(sec.CreatedAt)); err != nil {
			return fmt.Errorf("insert section %s: %w", sec.ID, err)
		}
	}
	for _, t := range ds.Tasks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tasks(task_id,project_id,section_id,parent_task_id,name,description,assignee_id,created_by,created_at,modified_at,start_date,due_date,completed,completed_at,priority,estimated_hours,actual_hours)
			 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			t.ID, t.ProjectID, t.SectionID, strPtr(t.ParentTaskID), t.Name, strPtr(t.Description),
			strPtr(t.AssigneeID), t.CreatedBy, ts(t.CreatedAt), ts(t.ModifiedAt), tsPtr(t.StartDate),
			tsPtr(t.DueDate), boolInt(t.Completed), tsPtr(t.CompletedAt), strPtr(t.Priority),
			t.EstimatedHours, floatPtr(t.ActualHours)); err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
	}
	for _, f := range ds.FieldDefinitions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO custom_field_definitions(field_id,project_id,field_name,field_type,enum_options,is_required,created_at) VALUES (?,?,?,?,?,?,?)`,
			f.ID, f.ProjectID, f.FieldName, f.FieldType, strPtr(f.EnumOptions), boolInt(f.IsRequired), ts(f.CreatedAt)); err != nil {
			return fmt.Errorf("insert field definition %s: %w", f.ID, err)
		}
	}
	for _, v := range ds.FieldValues {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO custom_field_values(value_id,field_id,task_id,value) VALUES (?,?,?,?)`,
			v.ID, v.FieldID, v.TaskID, v.Value); err != nil {
			return fmt.Errorf("insert field value %s: %w", v.ID, err)
		}
	}
	for _, tg := range ds.Tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tags(tag_id,workspace_id,name,color,created_at) VALUES (?,?,?,?,?)`,
			tg.ID, tg.WorkspaceID, tg.Name, tg.Color, ts(tg.CreatedAt)); err != nil {
			return fmt.Errorf("insert tag %s: %w", tg.ID, err)
		}
	}
	for _, tt := range ds.TaskTags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO task_tags(task_tag_id,task_id,tag_id,created_at) VALUES (?,?,?,?)`,
			tt.ID, tt.TaskID, tt.TagID, ts(tt.CreatedAt)); err != nil {
			return fmt.Errorf("insert task tag %s: %w", tt.ID, err)
		}
	}
	for _, a := range ds.Attachments {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO attachments(attachment_id,task_id,uploaded_by,file_name,file_size,file_type,url,uploaded_at) VALUES (?,?,?,?,?,?,?,?)`,
			a.ID, a.TaskID, a.UploadedBy, a.FileName, a.FileSize, a.FileType, a.URL, ts(a.UploadedAt)); err != nil {
			return fmt.Errorf("insert attachment %s: %w", a.ID, err)
		}
	}
	for _, c := range ds.Comments {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO comments(comment_id,task_id,user_id,comment_text,created_at,edited_at,is_edited) VALUES (?,?,?,?,?,?,?)`,
			c.ID, c.TaskID, c.UserID, c.CommentText, ts(c.CreatedAt), tsPtr(c.EditedAt), boolInt(c.IsEdited)); err != nil {
			return fmt.Errorf("insert comment %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

// TableCount pairs a table with its row count, in insertion order.
type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// Stats returns per-table row counts.
func (s Store) Stats(ctx context.Context) ([]TableCount, error) {
	var out []TableCount
	for _, table := range Tables {
		var n int64
		if err := s.DB.QueryRowContext(ctx, `SELECT count(*) FROM `+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out = append(out, TableCount{Table: table, Rows: n})
	}
	return out, nil
}

func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func tsPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return ts(*t)
}

func strPtr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func floatPtr(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

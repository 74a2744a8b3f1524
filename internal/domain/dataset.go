package domain

// Dataset aggregates one run's output in sink insertion order: every
// batch only references rows from earlier batches, except that a task may
// reference a parent task earlier in the same batch.
type Dataset struct {
	Workspace        Workspace
	Users            []User
	Teams            []Team
	Memberships      []TeamMembership
	Projects         []Project
	Sections         []Section
	Tasks            []Task
	FieldDefinitions []CustomFieldDefinition
	FieldValues      []CustomFieldValue
	Tags             []Tag
	TaskTags         []TaskTag
	Attachments      []Attachment
	Comments         []Comment
}

// Counts reports rows per entity type, keyed by table name.
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		"workspaces":               1,
		"users":                    len(d.Users),
		"teams":                    len(d.Teams),
		"team_memberships":         len(d.Memberships),
		"projects":                 len(d.Projects),
		"sections":                 len(d.Sections),
		"tasks":                    len(d.Tasks),
		"custom_field_definitions": len(d.FieldDefinitions),
		"custom_field_values":      len(d.FieldValues),
		"tags":                     len(d.Tags),
		"task_tags":                len(d.TaskTags),
		"attachments":              len(d.Attachments),
		"comments":                 len(d.Comments),
	}
}

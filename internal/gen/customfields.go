package gen

import (
	"encoding/json"
	"strconv"

	"seedline/internal/domain"
	"seedline/internal/randx"
)

// FieldDefinitions instantiates each project's custom fields from its
// project-type template, in configured order. Enum option lists are
// stored as JSON arrays.
func (g *Generator) FieldDefinitions(projects []domain.Project) []domain.CustomFieldDefinition {
	var defs []domain.CustomFieldDefinition
	for _, p := range projects {
		for _, field := range g.Config.ProjectTypes[p.ProjectType].CustomFields {
			def := domain.CustomFieldDefinition{
				ID:        newID(g.Rand),
				ProjectID: p.ID,
				FieldName: field.Name,
				FieldType: field.Type,
				CreatedAt: p.CreatedAt,
			}
			if field.Type == "enum" {
				raw, err := json.Marshal(field.Options)
				if err != nil {
					// Options come from validated config; a string
					// slice cannot fail to marshal.
					panic(err)
				}
				s := string(raw)
				def.EnumOptions = &s
			}
			defs = append(defs, def)
		}
	}
	return defs
}

// FieldValues fills every custom field of every task in the field's
// project. Number fields get a small point estimate; enum fields pick a
// uniform option.
func (g *Generator) FieldValues(tasks []domain.Task, defs []domain.CustomFieldDefinition) []domain.CustomFieldValue {
	defsByProject := make(map[string][]domain.CustomFieldDefinition)
	for _, d := range defs {
		defsByProject[d.ProjectID] = append(defsByProject[d.ProjectID], d)
	}

	var values []domain.CustomFieldValue
	for _, task := range tasks {
		for _, def := range defsByProject[task.ProjectID] {
			var value string
			switch def.FieldType {
			case "number":
				value = strconv.Itoa(randx.IntBetween(g.Rand, 1, 13))
			case "enum":
				var options []string
				if def.EnumOptions != nil {
					if err := json.Unmarshal([]byte(*def.EnumOptions), &options); err != nil {
						panic(err)
					}
				}
				if len(options) == 0 {
					continue
				}
				value = options[g.Rand.Intn(len(options))]
			default:
				continue
			}
			values = append(values, domain.CustomFieldValue{
				ID:      newID(g.Rand),
				FieldID: def.ID,
				TaskID:  task.ID,
				Value:   value,
			})
		}
	}
	return values
}

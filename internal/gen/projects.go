package gen

import (
	"strconv"
	"strings"

	"seedline/internal/domain"
	"seedline/internal/randx"
)

// Projects generates a bounded random number of projects per team. Each
// project's type is drawn uniformly from the team type's eligible list,
// and its completion-rate target is sampled once from the type's band and
// kept on the record for task generation to reuse.
func (g *Generator) Projects(ws domain.Workspace, teams []domain.Team, users []domain.User) []domain.Project {
	var projects []domain.Project
	for _, team := range teams {
		eligible := g.Config.ProjectTypesByTeam[team.TeamType]
		n := randx.IntBetween(g.Rand, g.Config.Scale.ProjectsPerTeamMin, g.Config.Scale.ProjectsPerTeamMax)
		for i := 0; i < n; i++ {
			ptype := eligible[g.Rand.Intn(len(eligible))]
			spec := g.Config.ProjectTypes[ptype]
			pool := g.Config.Content.ProjectNameTemplates[ptype]
			name := strings.ReplaceAll(
				pool[g.Rand.Intn(len(pool))],
				"{n}", strconv.Itoa(randx.IntBetween(g.Rand, 1, 4)))

			projects = append(projects, domain.Project{
				ID:             newID(g.Rand),
				WorkspaceID:    ws.ID,
				TeamID:         team.ID,
				Name:           name,
				Description:    name + " project",
				ProjectType:    ptype,
				Status:         "active",
				Privacy:        "team",
				OwnerID:        users[g.Rand.Intn(len(users))].ID,
				CreatedAt:      g.Timeline.CreationDate(g.Rand),
				Color:          "light-gray",
				CompletionRate: randx.FloatBetween(g.Rand, spec.CompletionLow, spec.CompletionHigh),
			})
		}
	}
	return projects
}

// Sections lays out each project's workflow columns. Names and order are
// fixed by project type; display_order preserves the configured order.
func (g *Generator) Sections(projects []domain.Project) []domain.Section {
	var sections []domain.Section
	for _, p := range projects {
		for order, name := range g.Config.ProjectTypes[p.ProjectType].Sections {
			sections = append(sections, domain.Section{
				ID:           newID(g.Rand),
				ProjectID:    p.ID,
				Name:         name,
				DisplayOrder: order,
				CreatedAt:    g.Timeline.CreationDate(g.Rand),
			})
		}
	}
	return sections
}

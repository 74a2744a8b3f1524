package gen

import (
	"fmt"
	"math/rand"
	"strings"

	"seedline/internal/domain"
	"seedline/internal/randx"
)

// Users generates the workspace member roster. Roles follow the
// configured weighted table; emails are unique within the run, with a
// numeric suffix appended on collision (first free integer from 1).
func (g *Generator) Users(ws domain.Workspace) []domain.User {
	cfg := g.Config
	users := make([]domain.User, 0, cfg.Scale.Users)
	usedEmails := make(map[string]bool, cfg.Scale.Users)

	roles := make([]randx.Weighted, len(cfg.Probabilities.Roles))
	for i, o := range cfg.Probabilities.Roles {
		roles[i] = randx.Weighted{Key: o.Key, Weight: o.Weight}
	}

	for i := 0; i < cfg.Scale.Users; i++ {
		first := cfg.Content.FirstNames[g.Rand.Intn(len(cfg.Content.FirstNames))]
		last := cfg.Content.LastNames[g.Rand.Intn(len(cfg.Content.LastNames))]
		role := randx.WeightedChoice(g.Rand, roles)

		base := emailFor(g.Rand, first, last, cfg.Company.Domain)
		email := base
		for counter := 1; usedEmails[email]; counter++ {
			local, domainPart, _ := strings.Cut(base, "@")
			email = fmt.Sprintf("%s%d@%s", local, counter, domainPart)
		}
		usedEmails[email] = true

		users = append(users, domain.User{
			ID:          newID(g.Rand),
			WorkspaceID: ws.ID,
			Name:        first + " " + last,
			Email:       email,
			Role:        role,
			CreatedAt:   g.Timeline.CreationDate(g.Rand),
			IsActive:    true,
		})
	}
	return users
}

// emailFor picks one of four common corporate address patterns.
func emailFor(r *rand.Rand, first, last, domain string) string {
	f := strings.ToLower(strings.ReplaceAll(first, " ", ""))
	l := strings.ToLower(strings.ReplaceAll(last, " ", ""))
	patterns := []string{
		f + "." + l,
		f + l,
		f[:1] + l,
		f + "_" + l,
	}
	return patterns[r.Intn(len(patterns))] + "@" + domain
}

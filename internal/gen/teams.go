package gen

import (
	"seedline/internal/domain"
	"seedline/internal/randx"
)

// Teams generates one team per configured (type, count) entry. Names are
// drawn from the per-type pool after a shuffle, recycling modulo the pool
// size when the count exceeds it.
func (g *Generator) Teams(ws domain.Workspace) []domain.Team {
	var teams []domain.Team
	for _, tc := range g.Config.Scale.Teams {
		pool := append([]string(nil), g.Config.Content.TeamNames[tc.Type]...)
		randx.Shuffle(g.Rand, pool)
		for i := 0; i < tc.Count; i++ {
			name := pool[i%len(pool)]
			teams = append(teams, domain.Team{
				ID:          newID(g.Rand),
				WorkspaceID: ws.ID,
				Name:        name,
				Description: name + " team",
				TeamType:    tc.Type,
				CreatedAt:   g.Timeline.CreationDate(g.Rand),
				IsArchived:  false,
			})
		}
	}
	return teams
}

// Memberships assigns a bounded random subset of users to each team.
// Per-team draws sample without replacement, so intra-team duplicates
// cannot occur; the pair set makes the cross-draw dedup policy explicit
// (duplicates are dropped, never retried, so realized sizes may run
// short of the request).
func (g *Generator) Memberships(teams []domain.Team, users []domain.User) []domain.TeamMembership {
	var memberships []domain.TeamMembership
	usedPairs := make(map[[2]string]bool)

	for _, team := range teams {
		n := randx.IntBetween(g.Rand, g.Config.Scale.UsersPerTeamMin, g.Config.Scale.UsersPerTeamMax)
		for _, idx := range randx.SampleIndices(g.Rand, len(users), n) {
			pair := [2]string{team.ID, users[idx].ID}
			if usedPairs[pair] {
				continue
			}
			usedPairs[pair] = true
			memberships = append(memberships, domain.TeamMembership{
				ID:       newID(g.Rand),
				TeamID:   team.ID,
				UserID:   users[idx].ID,
				JoinedAt: g.Timeline.CreationDate(g.Rand),
			})
		}
	}
	return memberships
}

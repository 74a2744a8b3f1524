package sink

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seedline/internal/config"
	"seedline/internal/db"
	"seedline/internal/domain"
	"seedline/internal/gen"
	"seedline/internal/migrate"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, migrate.Migrate(conn))
	return Store{DB: conn}
}

func testDataset(t *testing.T) *domain.Dataset {
	t.Helper()
	cfg := config.Default()
	cfg.Dates.Now = "2026-08-31T12:00:00Z"
	cfg.Scale.Users = 25
	cfg.Scale.Teams = []config.TeamTypeCount{
		{Type: "engineering", Count: 1},
		{Type: "product", Count: 1},
	}
	cfg.Scale.ProjectsPerTeamMin = 1
	cfg.Scale.ProjectsPerTeamMax = 2
	cfg.Scale.TasksPerProjectMin = 5
	cfg.Scale.TasksPerProjectMax = 10

	g, err := gen.New(cfg, 21, nil, nil)
	require.NoError(t, err)
	ds, err := g.Run(context.Background())
	require.NoError(t, err)
	return ds
}

func TestWriteThenStatsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ds := testDataset(t)

	require.NoError(t, store.Write(context.Background(), ds))

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, len(Tables))

	want := ds.Counts()
	for _, tc := range stats {
		assert.EqualValues(t, want[tc.Table], tc.Rows, tc.Table)
	}
}

func TestWriteEnforcesUniqueEmails(t *testing.T) {
	store := newTestStore(t)
	ds := testDataset(t)
	require.NotEmpty(t, ds.Users)
	ds.Users = append(ds.Users, ds.Users[0])

	err := store.Write(context.Background(), ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert user")
}

func TestWriteIsAtomic(t *testing.T) {
	store := newTestStore(t)
	ds := testDataset(t)
	// Break a late batch so everything before it must roll back.
	ds.Comments = append(ds.Comments, domain.Comment{
		ID:     "dup",
		TaskID: ds.Tasks[0].ID,
		UserID: ds.Users[0].ID,
	}, domain.Comment{
		ID:     "dup",
		TaskID: ds.Tasks[0].ID,
		UserID: ds.Users[0].ID,
	})

	require.Error(t, store.Write(context.Background(), ds))

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	for _, tc := range stats {
		assert.Zero(t, tc.Rows, tc.Table)
	}
}

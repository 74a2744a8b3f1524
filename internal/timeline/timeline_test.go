package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seedline/internal/randx"
)

func testTimeline() Timeline {
	// 2026-08-31 is a Monday.
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	return Timeline{
		Window:            NewWindow(now, 180),
		SprintDays:        14,
		AvoidWeekendDue:   0.85,
		CompleteBeforeDue: 0.80,
		Due:               DueWeights{Overdue: 0.05, Week: 0.25, Month: 0.40, Quarter: 0.20},
		CycleTimeMean:     7,
		CycleTimeStddev:   5,
	}
}

func TestCreationDateRecencyBias(t *testing.T) {
	tl := testTimeline()
	r := randx.New(1)
	totalOffset := 0.0
	for i := 0; i < 10000; i++ {
		d := tl.CreationDate(r)
		totalOffset += d.Sub(tl.Window.Start).Hours() / 24
	}
	mean := totalOffset / 10000
	assert.Less(t, mean, float64(tl.Window.Days())/2, "expected mean offset below half the window")
}

func TestCreationDateShape(t *testing.T) {
	tl := testTimeline()
	r := randx.New(2)
	for i := 0; i < 5000; i++ {
		d := tl.CreationDate(r)
		require.True(t, IsBusinessDay(d), "creation on weekend: %s", d)
		require.GreaterOrEqual(t, d.Hour(), 9)
		require.LessOrEqual(t, d.Hour(), 18)
		// weekend shifting can move a date one day outside the window
		require.False(t, d.Before(tl.Window.Start.AddDate(0, 0, -1)))
		require.False(t, d.After(tl.Window.Now.AddDate(0, 0, 1)))
	}
}

func TestDueDateWeekdayBias(t *testing.T) {
	tl := testTimeline()
	r := randx.New(3)
	createdAt := tl.Window.Start.AddDate(0, 0, 30)
	weekday, total := 0, 0
	for i := 0; i < 5000; i++ {
		due := tl.DueDate(r, createdAt, "kanban")
		if due == nil {
			continue
		}
		total++
		if IsBusinessDay(*due) {
			weekday++
		}
	}
	require.NotZero(t, total)
	assert.GreaterOrEqual(t, float64(weekday)/float64(total), 0.85)
}

func TestDueDateBucketShares(t *testing.T) {
	tl := testTimeline()
	r := randx.New(4)
	createdAt := tl.Window.Start.AddDate(0, 0, 60)
	none := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if tl.DueDate(r, createdAt, "ongoing") == nil {
			none++
		}
	}
	assert.InDelta(t, 0.10, float64(none)/n, 0.02)
}

func TestAlignToSprintBoundary(t *testing.T) {
	tl := testTimeline()
	boundary := tl.Window.Start.AddDate(0, 0, 42) // 3 sprints in
	for lead := 0; lead <= 3; lead++ {
		d := tl.AlignToSprintBoundary(boundary.AddDate(0, 0, -lead))
		assert.Equal(t, boundary, d, "date %d days before boundary should snap", lead)
	}
	// more than 3 days out is left alone
	d := boundary.AddDate(0, 0, -5)
	assert.Equal(t, d, tl.AlignToSprintBoundary(d))
}

func TestSprintDueDatesLandNearBoundaries(t *testing.T) {
	tl := testTimeline()
	r := randx.New(5)
	createdAt := tl.Window.Start.AddDate(0, 0, 20)
	for i := 0; i < 1000; i++ {
		due := tl.DueDate(r, createdAt, "sprint")
		if due == nil {
			continue
		}
		offset := DaysBetween(tl.Window.Start, *due)
		rem := ((offset % 14) + 14) % 14
		// snapped dates sit on a boundary; unsnapped ones were more than
		// 3 days short of it
		if rem != 0 {
			assert.Greater(t, 14-rem, 3, "due date %s within snap range but not snapped", due)
		}
	}
}

func TestCompletionDateInvariants(t *testing.T) {
	tl := testTimeline()
	r := randx.New(6)
	for i := 0; i < 5000; i++ {
		createdAt := tl.CreationDate(r)
		due := tl.DueDate(r, createdAt, "kanban")
		completed := tl.CompletionDate(r, createdAt, due)
		require.False(t, completed.Before(createdAt), "completed %s before created %s", completed, createdAt)
		require.False(t, completed.After(tl.Window.Now.AddDate(0, 0, 1)))
	}
}

func TestLateCompletionFraction(t *testing.T) {
	tl := testTimeline()
	r := randx.New(7)
	late, total := 0, 0
	createdAt := tl.Window.Start.AddDate(0, 0, 10)
	for i := 0; i < 20000; i++ {
		due := tl.DueDate(r, createdAt, "kanban")
		if due == nil {
			continue
		}
		completed := tl.CompletionDate(r, createdAt, due)
		total++
		if completed.After(*due) {
			late++
		}
	}
	frac := float64(late) / float64(total)
	// deliberate missed-deadline model: some tasks stay late, most do not
	assert.Greater(t, frac, 0.02)
	assert.Less(t, frac, 0.45)
}

func TestAvoidWeekend(t *testing.T) {
	sat := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	sun := sat.AddDate(0, 0, 1)
	fri := sat.AddDate(0, 0, -1)
	assert.Equal(t, fri, AvoidWeekend(sat))
	assert.Equal(t, fri, AvoidWeekend(sun))
	assert.Equal(t, fri, AvoidWeekend(fri))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 31, DaysBetween(a, a.AddDate(0, 1, 0)))
	assert.Equal(t, 0, DaysBetween(a, a))
}

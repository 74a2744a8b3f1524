// Package timeline synthesizes creation, due, and completion timestamps
// with realistic activity signatures: recency-biased creation, weekday
// clustering, sprint-boundary alignment, and log-normal cycle times.
package timeline

import (
	"math/rand"
	"time"

	"seedline/internal/randx"
)

// Window is the simulation clock bounds [Start, Now) fixed once per run.
type Window struct {
	Start time.Time
	Now   time.Time
}

// NewWindow anchors a window ending at now covering historyDays of history.
func NewWindow(now time.Time, historyDays int) Window {
	return Window{Start: now.AddDate(0, 0, -historyDays), Now: now}
}

// Days returns the window length in whole days.
func (w Window) Days() int {
	return DaysBetween(w.Start, w.Now)
}

// DueWeights is the ordered due-date bucket distribution. The no-due-date
// bucket has no weight of its own: it is the mass remaining after the
// four dated buckets, so the weights are expected to sum below 1.0.
type DueWeights struct {
	Overdue float64
	Week    float64
	Month   float64
	Quarter float64
}

// Timeline bundles the window with the temporal tunables for a run.
type Timeline struct {
	Window            Window
	SprintDays        int
	AvoidWeekendDue   float64
	CompleteBeforeDue float64
	Due               DueWeights
	CycleTimeMean     float64
	CycleTimeStddev   float64
}

// CreationDate draws a timestamp inside the window, exponentially biased
// toward recent days (mean offset = half the window), shifted off
// weekends onto an adjacent weekday, at a business-hours time of day.
func (tl Timeline) CreationDate(r *rand.Rand) time.Time {
	days := tl.Window.Days()
	offset := int(randx.Exponential(r, float64(days)/2))
	if offset > days {
		offset = days
	}
	d := tl.Window.Start.AddDate(0, 0, offset)
	for isWeekend(d) {
		if randx.Bernoulli(r, 0.5) {
			d = d.AddDate(0, 0, -1)
		} else {
			d = d.AddDate(0, 0, 1)
		}
	}
	return atBusinessHours(r, d)
}

// DueDate draws a due-date bucket and computes the offset from createdAt.
// A nil result means no due date. Weekend due dates are pulled back to the
// preceding Friday most of the time, and sprint projects snap forward to
// the next sprint boundary when it is at most 3 days ahead.
func (tl Timeline) DueDate(r *rand.Rand, createdAt time.Time, projectType string) *time.Time {
	u := r.Float64()
	var due time.Time
	switch {
	case u < tl.Due.Overdue:
		due = createdAt.AddDate(0, 0, -randx.IntBetween(r, 1, 30))
	case u < tl.Due.Overdue+tl.Due.Week:
		due = createdAt.AddDate(0, 0, randx.IntBetween(r, 1, 7))
	case u < tl.Due.Overdue+tl.Due.Week+tl.Due.Month:
		due = createdAt.AddDate(0, 0, randx.IntBetween(r, 8, 30))
	case u < tl.Due.Overdue+tl.Due.Week+tl.Due.Month+tl.Due.Quarter:
		due = createdAt.AddDate(0, 0, randx.IntBetween(r, 31, 90))
	default:
		return nil
	}
	if randx.Bernoulli(r, tl.AvoidWeekendDue) {
		due = AvoidWeekend(due)
	}
	if projectType == "sprint" {
		due = tl.AlignToSprintBoundary(due)
	}
	return &due
}

// CompletionDate computes when a completed task finished: a log-normal
// cycle time clamped inside the window, with most tasks landing before
// their due date and a deliberate late fraction left as drawn.
func (tl Timeline) CompletionDate(r *rand.Rand, createdAt time.Time, dueDate *time.Time) time.Time {
	cycleDays := randx.ClippedLogNormal(r, tl.CycleTimeMean/3, tl.CycleTimeStddev/5, 1, 30)
	completed := createdAt.AddDate(0, 0, cycleDays)
	if completed.After(tl.Window.Now) {
		completed = tl.Window.Now.AddDate(0, 0, -randx.IntBetween(r, 1, 7))
	}
	if dueDate != nil && randx.Bernoulli(r, tl.CompleteBeforeDue) {
		if completed.After(*dueDate) {
			// Resample inside [createdAt, due). Overdue buckets place the
			// due date before creation; those tasks stay late.
			window := dueDate.Sub(createdAt).Seconds()
			if window > 0 {
				completed = createdAt.Add(time.Duration(randx.FloatBetween(r, 0, window) * float64(time.Second)))
			}
		}
	}
	completed = atBusinessHours(r, completed)
	// completed_at >= created_at must hold by construction.
	if completed.Before(createdAt) {
		completed = createdAt
	}
	return completed
}

// AvoidWeekend pulls Saturday back one day and Sunday back two, landing
// on the preceding Friday.
func AvoidWeekend(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, -2)
	}
	return d
}

// AlignToSprintBoundary snaps the date forward to the next sprint
// boundary (SprintDays-periodic from window start) when the boundary is
// within 3 days ahead; otherwise the date is left alone.
func (tl Timeline) AlignToSprintBoundary(d time.Time) time.Time {
	daysSinceStart := DaysBetween(tl.Window.Start, d)
	rem := ((daysSinceStart % tl.SprintDays) + tl.SprintDays) % tl.SprintDays
	toNext := tl.SprintDays - rem
	if toNext <= 3 {
		return d.AddDate(0, 0, toNext)
	}
	return d
}

// IsBusinessDay reports whether d falls Monday through Friday.
func IsBusinessDay(d time.Time) bool {
	return !isWeekend(d)
}

// DaysBetween returns the number of whole days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// atBusinessHours keeps the calendar day and assigns a work-hours clock
// time: hour 9-18, minute and second 0-59.
func atBusinessHours(r *rand.Rand, d time.Time) time.Time {
	hour := randx.IntBetween(r, 9, 18)
	minute := randx.IntBetween(r, 0, 59)
	second := randx.IntBetween(r, 0, 59)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, second, 0, d.Location())
}

// Package stats derives aggregate counts, completion rates and textual
// insights from the task collection. Every function takes a read-only
// snapshot and an explicit evaluation instant where time matters.
package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/taskflow/taskflow/internal/models"
)

// Summary holds the headline task counts
type Summary struct {
	Total     int
	Completed int
	Pending   int
	Overdue   int
}

// Summarize counts tasks by state at the given instant
func Summarize(tasks []models.Task, now time.Time) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
		if t.Overdue(now) {
			s.Overdue++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}

// CompletionRate returns the percentage of completed tasks, rounded to
// one decimal. An empty collection has a rate of 0.
func CompletionRate(tasks []models.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	rate := float64(completed) / float64(len(tasks)) * 100
	return math.Round(rate*10) / 10
}

// DayCount is one day of the productivity series
type DayCount struct {
	Label     string // short weekday name
	Completed int
}

// Productivity returns completed-task counts for the last days calendar
// days ending today, oldest first. A task counts toward the day its
// CompletedAt falls on; CreatedAt is the fallback for completed tasks
// persisted before completion times were recorded.
func Productivity(tasks []models.Task, days int, now time.Time) []DayCount {
	series := make([]DayCount, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		count := 0
		for _, t := range tasks {
			if !t.Completed {
				continue
			}
			ts := t.CreatedAt
			if t.CompletedAt != nil {
				ts = *t.CompletedAt
			}
			if sameDay(ts, day) {
				count++
			}
		}
		series = append(series, DayCount{Label: day.Format("Mon"), Completed: count})
	}
	return series
}

// Breakdown counts incomplete tasks per priority
type Breakdown struct {
	High   int
	Medium int
	Low    int
}

// PriorityBreakdown counts the incomplete tasks at each priority
func PriorityBreakdown(tasks []models.Task) Breakdown {
	var b Breakdown
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		switch t.Priority {
		case models.PriorityHigh:
			b.High++
		case models.PriorityMedium:
			b.Medium++
		case models.PriorityLow:
			b.Low++
		}
	}
	return b
}

// Insights returns textual findings about the collection: the completion
// rate always, an overdue finding when any task is overdue, and a
// high-priority finding when any high priority task is pending.
func Insights(tasks []models.Task, now time.Time) []string {
	findings := []string{
		fmt.Sprintf("Your overall completion rate is %.1f%%", CompletionRate(tasks)),
	}

	overdue := Summarize(tasks, now).Overdue
	if overdue > 0 {
		findings = append(findings, fmt.Sprintf("You have %d overdue %s", overdue, plural(overdue, "task", "tasks")))
	}

	high := PriorityBreakdown(tasks).High
	if high > 0 {
		verb := "need"
		if high == 1 {
			verb = "needs"
		}
		findings = append(findings, fmt.Sprintf("%d high priority %s %s attention", high, plural(high, "task", "tasks"), verb))
	}

	return findings
}

// Progress summarizes one project's tasks
type Progress struct {
	Total     int
	Completed int
	Percent   int // rounded to the nearest whole percent
}

// ProjectProgress scans the task collection for tasks assigned to the
// given project. Projects hold no back-references, so membership is
// always computed here.
func ProjectProgress(tasks []models.Task, projectID int64) Progress {
	var p Progress
	for _, t := range tasks {
		if t.ProjectID == nil || *t.ProjectID != projectID {
			continue
		}
		p.Total++
		if t.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	}
	return p
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Package query produces the visible, ordered subset of the task
// collection for a given set of filter, search and sort parameters. All
// functions are pure: the source slice is never mutated and the result
// is reproducible for a fixed input and evaluation instant.
package query

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/taskflow/taskflow/internal/models"
)

// Status narrows tasks by completion state
type Status string

const (
	StatusAll       Status = "all"
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusOverdue   Status = "overdue"
)

// Sort selects the ordering of the filtered tasks
type Sort string

const (
	SortCreated      Sort = "created"      // newest first
	SortPriority     Sort = "priority"     // high to low
	SortDueDate      Sort = "dueDate"      // soonest first, undated last
	SortAlphabetical Sort = "alphabetical" // by title, locale-aware
)

// Params selects and orders tasks. The zero value means: all statuses,
// all priorities, no search, newest first.
type Params struct {
	Status   Status
	Priority models.Priority // empty matches every priority
	Search   string
	Sort     Sort
}

// Filter applies the status, priority and search stages in order, then
// sorts the result. now is the evaluation instant for the overdue check.
func Filter(tasks []models.Task, p Params, now time.Time) []models.Task {
	out := make([]models.Task, 0, len(tasks))

	search := strings.ToLower(strings.TrimSpace(p.Search))
	for _, t := range tasks {
		if !matchStatus(t, p.Status, now) {
			continue
		}
		if p.Priority != "" && t.Priority != p.Priority {
			continue
		}
		if search != "" && !matchSearch(t, search) {
			continue
		}
		out = append(out, t)
	}

	sortTasks(out, p.Sort)
	return out
}

func matchStatus(t models.Task, status Status, now time.Time) bool {
	switch status {
	case StatusCompleted:
		return t.Completed
	case StatusPending:
		return !t.Completed
	case StatusOverdue:
		return t.Overdue(now)
	}
	return true
}

func matchSearch(t models.Task, query string) bool {
	if strings.Contains(strings.ToLower(t.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), query) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func sortTasks(tasks []models.Task, by Sort) {
	switch by {
	case SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Priority.Weight() > tasks[j].Priority.Weight()
		})
	case SortDueDate:
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i].DueDate, tasks[j].DueDate
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})
	case SortAlphabetical:
		c := collate.New(language.English)
		sort.SliceStable(tasks, func(i, j int) bool {
			return c.CompareString(tasks[i].Title, tasks[j].Title) < 0
		})
	default: // SortCreated
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}

// Recent returns the n most recently updated tasks
func Recent(tasks []models.Task, n int) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// DueOn returns the tasks whose due date falls on the given calendar day
func DueOn(tasks []models.Task, day time.Time) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.DueDate != nil && sameDay(*t.DueDate, day) {
			out = append(out, t)
		}
	}
	return out
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

package stats

import (
	"testing"
	"time"

	"github.com/taskflow/taskflow/internal/models"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func completedTask(completedAt time.Time) models.Task {
	return models.Task{
		Title:       "done",
		Priority:    models.PriorityMedium,
		Completed:   true,
		CreatedAt:   completedAt,
		UpdatedAt:   completedAt,
		CompletedAt: &completedAt,
	}
}

func pendingTask(priority models.Priority) models.Task {
	return models.Task{
		Title:     "pending",
		Priority:  priority,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

func TestSummarize(t *testing.T) {
	due := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		pendingTask(models.PriorityLow),
		completedTask(testNow),
		{Title: "late", Priority: models.PriorityHigh, DueDate: &due, CreatedAt: testNow, UpdatedAt: testNow},
	}

	got := Summarize(tasks, testNow)
	want := Summary{Total: 3, Completed: 1, Pending: 2, Overdue: 1}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestCompletionRate(t *testing.T) {
	if got := CompletionRate(nil); got != 0 {
		t.Errorf("empty collection must have rate 0, got %v", got)
	}

	tasks := []models.Task{
		completedTask(testNow),
		pendingTask(models.PriorityLow),
		pendingTask(models.PriorityLow),
	}
	if got := CompletionRate(tasks); got != 33.3 {
		t.Errorf("expected 33.3, got %v", got)
	}

	all := []models.Task{completedTask(testNow), completedTask(testNow)}
	if got := CompletionRate(all); got != 100 {
		t.Errorf("expected 100, got %v", got)
	}
}

func TestProductivity(t *testing.T) {
	tasks := []models.Task{
		completedTask(testNow),                       // today
		completedTask(testNow.AddDate(0, 0, -1)),     // yesterday
		completedTask(testNow.AddDate(0, 0, -1)),     // yesterday
		completedTask(testNow.AddDate(0, 0, -10)),    // outside the window
		pendingTask(models.PriorityLow),              // never counts
	}

	series := Productivity(tasks, 7, testNow)
	if len(series) != 7 {
		t.Fatalf("expected 7 days, got %d", len(series))
	}

	if got := series[6].Completed; got != 1 {
		t.Errorf("expected 1 completion today, got %d", got)
	}
	if got := series[5].Completed; got != 2 {
		t.Errorf("expected 2 completions yesterday, got %d", got)
	}
	for i := 0; i < 5; i++ {
		if series[i].Completed != 0 {
			t.Errorf("day %d: expected 0 completions, got %d", i, series[i].Completed)
		}
	}

	// Oldest first: the last label is today's weekday
	if series[6].Label != testNow.Format("Mon") {
		t.Errorf("expected label %s last, got %s", testNow.Format("Mon"), series[6].Label)
	}
}

func TestProductivityFallsBackToCreatedAt(t *testing.T) {
	legacy := models.Task{
		Title:     "completed before completion times existed",
		Priority:  models.PriorityLow,
		Completed: true,
		CreatedAt: testNow.AddDate(0, 0, -1),
		UpdatedAt: testNow.AddDate(0, 0, -1),
	}

	series := Productivity([]models.Task{legacy}, 7, testNow)
	if got := series[5].Completed; got != 1 {
		t.Errorf("expected the legacy task counted on its creation day, got %d", got)
	}
}

func TestPriorityBreakdown(t *testing.T) {
	tasks := []models.Task{
		pendingTask(models.PriorityHigh),
		pendingTask(models.PriorityHigh),
		pendingTask(models.PriorityMedium),
		pendingTask(models.PriorityLow),
		completedTask(testNow), // completed tasks are excluded
	}

	got := PriorityBreakdown(tasks)
	want := Breakdown{High: 2, Medium: 1, Low: 1}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestInsights(t *testing.T) {
	due := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		completedTask(testNow),
		{Title: "late", Priority: models.PriorityHigh, DueDate: &due, CreatedAt: testNow, UpdatedAt: testNow},
	}

	got := Insights(tasks, testNow)
	want := []string{
		"Your overall completion rate is 50.0%",
		"You have 1 overdue task",
		"1 high priority task needs attention",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d findings, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("finding %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestInsightsPlural(t *testing.T) {
	due := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{Title: "late 1", Priority: models.PriorityHigh, DueDate: &due, CreatedAt: testNow, UpdatedAt: testNow},
		{Title: "late 2", Priority: models.PriorityHigh, DueDate: &due, CreatedAt: testNow, UpdatedAt: testNow},
	}

	got := Insights(tasks, testNow)
	if got[1] != "You have 2 overdue tasks" {
		t.Errorf("unexpected overdue finding: %q", got[1])
	}
	if got[2] != "2 high priority tasks need attention" {
		t.Errorf("unexpected high priority finding: %q", got[2])
	}
}

func TestInsightsOnlyRateWhenNothingPending(t *testing.T) {
	got := Insights([]models.Task{completedTask(testNow)}, testNow)
	if len(got) != 1 {
		t.Errorf("expected a single finding, got %v", got)
	}
	if got[0] != "Your overall completion rate is 100.0%" {
		t.Errorf("unexpected finding: %q", got[0])
	}
}

func TestProjectProgress(t *testing.T) {
	pid := int64(7)
	other := int64(8)
	tasks := []models.Task{
		{Title: "a", ProjectID: &pid, Completed: true},
		{Title: "b", ProjectID: &pid},
		{Title: "c", ProjectID: &pid},
		{Title: "unrelated", ProjectID: &other, Completed: true},
		{Title: "unassigned"},
	}

	got := ProjectProgress(tasks, pid)
	if got.Total != 3 || got.Completed != 1 || got.Percent != 33 {
		t.Errorf("unexpected progress: %+v", got)
	}

	empty := ProjectProgress(tasks, 999)
	if empty.Total != 0 || empty.Percent != 0 {
		t.Errorf("expected zero progress for unknown project, got %+v", empty)
	}
}

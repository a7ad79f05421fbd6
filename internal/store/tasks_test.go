package store

import (
	"errors"
	"testing"
	"time"

	"github.com/taskflow/taskflow/internal/models"
)

func TestCreateTask(t *testing.T) {
	s, _, clock := newTestStore(t)

	estimate := 2.5
	task, err := s.CreateTask(TaskInput{
		Title:    "  Write report  ",
		Priority: models.PriorityHigh,
		Estimate: &estimate,
		Tags:     []string{" urgent ", "", "work"},
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if task.Title != "Write report" {
		t.Errorf("expected trimmed title, got %q", task.Title)
	}
	if task.Completed {
		t.Error("new task must not be completed")
	}
	if task.CompletedAt != nil {
		t.Error("new task must not have a completion time")
	}
	if !task.CreatedAt.Equal(*clock) || !task.UpdatedAt.Equal(*clock) {
		t.Errorf("timestamps not taken from the clock: %v / %v", task.CreatedAt, task.UpdatedAt)
	}
	if len(task.Tags) != 2 || task.Tags[0] != "urgent" || task.Tags[1] != "work" {
		t.Errorf("unexpected tags: %v", task.Tags)
	}
}

func TestCreateTaskEmptyTitleRejected(t *testing.T) {
	s, _, _ := newTestStore(t)

	for _, title := range []string{"", "   ", "\t"} {
		_, err := s.CreateTask(TaskInput{Title: title})

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("title %q: expected ValidationError, got %v", title, err)
		}
		if verr.Field != "title" {
			t.Errorf("expected title field, got %q", verr.Field)
		}
	}

	if got := len(s.Tasks()); got != 0 {
		t.Errorf("collection must stay unchanged, has %d tasks", got)
	}
}

func TestCreateTaskNegativeEstimateRejected(t *testing.T) {
	s, _, _ := newTestStore(t)

	estimate := -1.0
	_, err := s.CreateTask(TaskInput{Title: "bad estimate", Estimate: &estimate})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateTaskPrepends(t *testing.T) {
	s, _, _ := newTestStore(t)

	if _, err := s.CreateTask(TaskInput{Title: "first"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateTask(TaskInput{Title: "second"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	tasks := s.Tasks()
	if tasks[0].Title != "second" || tasks[1].Title != "first" {
		t.Errorf("expected most recent first, got %q, %q", tasks[0].Title, tasks[1].Title)
	}
}

func TestUpdateTask(t *testing.T) {
	s, _, clock := newTestStore(t)

	task, err := s.CreateTask(TaskInput{Title: "original", Priority: models.PriorityLow})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	*clock = clock.Add(time.Hour)
	updated, err := s.UpdateTask(task.ID, TaskInput{
		Title:    "renamed",
		Priority: models.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.ID != task.ID {
		t.Errorf("id changed: %d -> %d", task.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(task.CreatedAt) {
		t.Error("update must preserve CreatedAt")
	}
	if !updated.UpdatedAt.After(task.UpdatedAt) {
		t.Error("update must refresh UpdatedAt")
	}
	if updated.Priority != models.PriorityHigh {
		t.Errorf("expected high priority, got %s", updated.Priority)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	s, _, _ := newTestStore(t)

	_, err := s.UpdateTask(999, TaskInput{Title: "whatever"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateTaskEmptyTitleRejected(t *testing.T) {
	s, _, _ := newTestStore(t)

	task, err := s.CreateTask(TaskInput{Title: "keep me"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := s.UpdateTask(task.ID, TaskInput{Title: "  "}); err == nil {
		t.Fatal("expected validation error")
	}

	unchanged, err := s.Task(task.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if unchanged.Title != "keep me" {
		t.Errorf("rejected update must not change the task, got %q", unchanged.Title)
	}
}

func TestToggleTaskRoundTrip(t *testing.T) {
	s, _, clock := newTestStore(t)

	task, err := s.CreateTask(TaskInput{Title: "toggle me"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	*clock = clock.Add(time.Minute)
	done, err := s.ToggleTask(task.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !done.Completed {
		t.Error("expected completed after first toggle")
	}
	if done.CompletedAt == nil || !done.CompletedAt.Equal(*clock) {
		t.Errorf("expected CompletedAt at toggle time, got %v", done.CompletedAt)
	}
	if !done.UpdatedAt.After(task.UpdatedAt) {
		t.Error("first toggle must refresh UpdatedAt")
	}

	*clock = clock.Add(time.Minute)
	undone, err := s.ToggleTask(task.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if undone.Completed {
		t.Error("expected pending after second toggle")
	}
	if undone.CompletedAt != nil {
		t.Errorf("CompletedAt must be cleared, got %v", undone.CompletedAt)
	}
	if !undone.UpdatedAt.After(done.UpdatedAt) {
		t.Error("second toggle must refresh UpdatedAt")
	}
}

func TestDeleteTask(t *testing.T) {
	s, _, _ := newTestStore(t)

	task, err := s.CreateTask(TaskInput{Title: "doomed"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.DeleteTask(task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := len(s.Tasks()); got != 0 {
		t.Errorf("expected empty collection, got %d tasks", got)
	}

	// Deleting an unknown id is a silent no-op
	if err := s.DeleteTask(task.ID); err != nil {
		t.Errorf("delete of missing id must not fail: %v", err)
	}
}

func TestTaskSnapshotIsACopy(t *testing.T) {
	s, _, _ := newTestStore(t)

	if _, err := s.CreateTask(TaskInput{Title: "original"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	snapshot := s.Tasks()
	snapshot[0].Title = "mutated"

	if got := s.Tasks()[0].Title; got != "original" {
		t.Errorf("snapshot mutation leaked into the store: %q", got)
	}
}

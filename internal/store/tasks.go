package store

import (
	"strings"
	"time"

	"github.com/taskflow/taskflow/internal/models"
)

// TaskInput carries the editable fields of a task. The same input serves
// create and edit; an update overwrites every editable field.
type TaskInput struct {
	Title       string
	Description string
	Priority    models.Priority
	ProjectID   *int64
	DueDate     *time.Time
	Estimate    *float64
	Tags        []string
}

func (in *TaskInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return errRequired("title")
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !in.Priority.Valid() {
		return &ValidationError{Field: "priority", Reason: "must be low, medium or high"}
	}
	if in.Estimate != nil && *in.Estimate < 0 {
		return &ValidationError{Field: "estimate", Reason: "must not be negative"}
	}

	var tags []string
	for _, raw := range in.Tags {
		tag := strings.TrimSpace(raw)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	in.Tags = tags
	return nil
}

// CreateTask validates the input, assigns a fresh id and timestamps, and
// inserts the task at the front of the collection (most recent first).
func (s *Store) CreateTask(in TaskInput) (models.Task, error) {
	if err := in.validate(); err != nil {
		return models.Task{}, err
	}

	now := s.now()
	t := models.Task{
		ID:          s.nextID(),
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		Priority:    in.Priority,
		ProjectID:   in.ProjectID,
		DueDate:     in.DueDate,
		Estimate:    in.Estimate,
		Tags:        in.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.tasks = append([]models.Task{t}, s.tasks...)
	if err := s.persistTasks(); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// UpdateTask overwrites the editable fields of an existing task. The id,
// creation time and completion state are preserved.
func (s *Store) UpdateTask(id int64, in TaskInput) (models.Task, error) {
	idx := s.taskIndex(id)
	if idx < 0 {
		return models.Task{}, ErrNotFound
	}
	if err := in.validate(); err != nil {
		return models.Task{}, err
	}

	t := &s.tasks[idx]
	t.Title = in.Title
	t.Description = strings.TrimSpace(in.Description)
	t.Priority = in.Priority
	t.ProjectID = in.ProjectID
	t.DueDate = in.DueDate
	t.Estimate = in.Estimate
	t.Tags = in.Tags
	t.UpdatedAt = s.now()

	if err := s.persistTasks(); err != nil {
		return models.Task{}, err
	}
	return *t, nil
}

// ToggleTask flips a task's completion state. CompletedAt is set on the
// transition to completed and cleared on the transition back.
func (s *Store) ToggleTask(id int64) (models.Task, error) {
	idx := s.taskIndex(id)
	if idx < 0 {
		return models.Task{}, ErrNotFound
	}

	now := s.now()
	t := &s.tasks[idx]
	t.Completed = !t.Completed
	if t.Completed {
		completedAt := now
		t.CompletedAt = &completedAt
	} else {
		t.CompletedAt = nil
	}
	t.UpdatedAt = now

	if err := s.persistTasks(); err != nil {
		return models.Task{}, err
	}
	return *t, nil
}

// DeleteTask removes a task by id. Deleting an unknown id is a no-op.
func (s *Store) DeleteTask(id int64) error {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return s.persistTasks()
}

// Task returns the task with the given id
func (s *Store) Task(id int64) (models.Task, error) {
	idx := s.taskIndex(id)
	if idx < 0 {
		return models.Task{}, ErrNotFound
	}
	return s.tasks[idx], nil
}

func (s *Store) taskIndex(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

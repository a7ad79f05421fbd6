// Package store holds the in-memory task and project collections and
// mirrors every mutation to the storage gateway. It is the sole owner of
// both collections; the query and stats packages only ever see copies.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/taskflow/taskflow/internal/models"
	"github.com/taskflow/taskflow/internal/storage"
)

// Store owns the task and project collections
type Store struct {
	storage *storage.Store
	now     func() time.Time
	nextID  func() int64
	lastID  int64

	tasks    []models.Task
	projects []models.Project
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces the wall clock, used for deterministic tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the id generator
func WithIDGenerator(next func() int64) Option {
	return func(s *Store) { s.nextID = next }
}

// Open loads the persisted collections into a new Store. Missing records
// yield empty collections; malformed records are an error.
func Open(st *storage.Store, opts ...Option) (*Store, error) {
	s := &Store{
		storage: st,
		now:     time.Now,
	}
	s.nextID = func() int64 {
		s.lastID++
		return s.lastID
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := loadRecord(st, storage.KeyTasks, &s.tasks); err != nil {
		return nil, err
	}
	if err := loadRecord(st, storage.KeyProjects, &s.projects); err != nil {
		return nil, err
	}
	s.reseed()

	return s, nil
}

func loadRecord[T any](st *storage.Store, key string, dest *[]T) error {
	value, ok, err := st.Get(key)
	if err != nil {
		return err
	}
	if !ok || value == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return fmt.Errorf("decode record %q: %w", key, err)
	}
	return nil
}

// reseed advances the id counter past every persisted id. Tasks and
// projects share the counter, so ids stay unique across both kinds.
func (s *Store) reseed() {
	for _, t := range s.tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	for _, p := range s.projects {
		if p.ID > s.lastID {
			s.lastID = p.ID
		}
	}
}

// Tasks returns a copy of the task collection, most recent first
func (s *Store) Tasks() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Projects returns a copy of the project collection
func (s *Store) Projects() []models.Project {
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// ReplaceAll swaps in entirely new collections, persisting both in a
// single transaction. Used by import.
func (s *Store) ReplaceAll(tasks []models.Task, projects []models.Project) error {
	s.tasks = tasks
	s.projects = projects
	s.reseed()
	return s.persistBoth()
}

// Theme returns the stored theme preference, defaulting to "light"
func (s *Store) Theme() string {
	value, ok, err := s.storage.Get(storage.KeyTheme)
	if err != nil || !ok {
		return "light"
	}
	return value
}

// SetTheme stores the theme preference; only "light" and "dark" are accepted
func (s *Store) SetTheme(theme string) error {
	if theme != "light" && theme != "dark" {
		return &ValidationError{Field: "theme", Reason: "must be light or dark"}
	}
	return s.storage.Set(storage.KeyTheme, theme)
}

func (s *Store) persistTasks() error {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return s.storage.Set(storage.KeyTasks, string(data))
}

func (s *Store) persistProjects() error {
	data, err := json.Marshal(s.projects)
	if err != nil {
		return fmt.Errorf("encode projects: %w", err)
	}
	return s.storage.Set(storage.KeyProjects, string(data))
}

func (s *Store) persistBoth() error {
	tasks, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	projects, err := json.Marshal(s.projects)
	if err != nil {
		return fmt.Errorf("encode projects: %w", err)
	}
	return s.storage.SetAll(map[string]string{
		storage.KeyTasks:    string(tasks),
		storage.KeyProjects: string(projects),
	})
}

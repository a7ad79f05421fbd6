package store

import (
	"strings"
	"time"

	"github.com/taskflow/taskflow/internal/models"
)

// DefaultProjectColor is used when no color is supplied
const DefaultProjectColor = "#667eea"

// ProjectInput carries the editable fields of a project
type ProjectInput struct {
	Name        string
	Description string
	Color       string
	Deadline    *time.Time
}

func (in *ProjectInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return errRequired("name")
	}
	if in.Color == "" {
		in.Color = DefaultProjectColor
	}
	return nil
}

// CreateProject validates the input and appends a new project
func (s *Store) CreateProject(in ProjectInput) (models.Project, error) {
	if err := in.validate(); err != nil {
		return models.Project{}, err
	}

	now := s.now()
	p := models.Project{
		ID:          s.nextID(),
		Name:        in.Name,
		Description: strings.TrimSpace(in.Description),
		Color:       in.Color,
		Deadline:    in.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.projects = append(s.projects, p)
	if err := s.persistProjects(); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// UpdateProject overwrites the editable fields of an existing project
func (s *Store) UpdateProject(id int64, in ProjectInput) (models.Project, error) {
	idx := s.projectIndex(id)
	if idx < 0 {
		return models.Project{}, ErrNotFound
	}
	if err := in.validate(); err != nil {
		return models.Project{}, err
	}

	p := &s.projects[idx]
	p.Name = in.Name
	p.Description = strings.TrimSpace(in.Description)
	p.Color = in.Color
	p.Deadline = in.Deadline
	p.UpdatedAt = s.now()

	if err := s.persistProjects(); err != nil {
		return models.Project{}, err
	}
	return *p, nil
}

// DeleteProject removes a project and unassigns every task that
// referenced it. Both collections are persisted in one transaction, so
// no persisted state ever has tasks pointing at a missing project.
func (s *Store) DeleteProject(id int64) error {
	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept

	for i := range s.tasks {
		if s.tasks[i].ProjectID != nil && *s.tasks[i].ProjectID == id {
			s.tasks[i].ProjectID = nil
		}
	}

	return s.persistBoth()
}

// Project returns the project with the given id
func (s *Store) Project(id int64) (models.Project, error) {
	idx := s.projectIndex(id)
	if idx < 0 {
		return models.Project{}, ErrNotFound
	}
	return s.projects[idx], nil
}

func (s *Store) projectIndex(id int64) int {
	for i, p := range s.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

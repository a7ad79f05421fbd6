package store

import (
	"errors"
	"testing"
)

func TestCreateProjectDefaults(t *testing.T) {
	s, _, _ := newTestStore(t)

	project, err := s.CreateProject(ProjectInput{Name: "  Website  "})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	if project.Name != "Website" {
		t.Errorf("expected trimmed name, got %q", project.Name)
	}
	if project.Color != DefaultProjectColor {
		t.Errorf("expected default color %s, got %s", DefaultProjectColor, project.Color)
	}
}

func TestCreateProjectEmptyNameRejected(t *testing.T) {
	s, _, _ := newTestStore(t)

	_, err := s.CreateProject(ProjectInput{Name: "   "})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := len(s.Projects()); got != 0 {
		t.Errorf("collection must stay unchanged, has %d projects", got)
	}
}

func TestProjectsAppendInOrder(t *testing.T) {
	s, _, _ := newTestStore(t)

	for _, name := range []string{"alpha", "beta", "gamma"} {
		if _, err := s.CreateProject(ProjectInput{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	projects := s.Projects()
	if projects[0].Name != "alpha" || projects[2].Name != "gamma" {
		t.Errorf("projects out of order: %+v", projects)
	}
}

func TestUpdateProject(t *testing.T) {
	s, _, _ := newTestStore(t)

	project, err := s.CreateProject(ProjectInput{Name: "before"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := s.UpdateProject(project.ID, ProjectInput{Name: "after", Color: "#ff0000"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "after" || updated.Color != "#ff0000" {
		t.Errorf("unexpected project after update: %+v", updated)
	}

	if _, err := s.UpdateProject(999, ProjectInput{Name: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteProjectUnassignsTasks(t *testing.T) {
	s, st, _ := newTestStore(t)

	doomed, err := s.CreateProject(ProjectInput{Name: "doomed"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	kept, err := s.CreateProject(ProjectInput{Name: "kept"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	assigned, err := s.CreateTask(TaskInput{Title: "assigned", ProjectID: &doomed.ID})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	other, err := s.CreateTask(TaskInput{Title: "other", ProjectID: &kept.ID})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := s.DeleteProject(doomed.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}

	got, err := s.Task(assigned.ID)
	if err != nil {
		t.Fatalf("find task: %v", err)
	}
	if got.ProjectID != nil {
		t.Errorf("expected nil project reference, got %v", *got.ProjectID)
	}

	untouched, err := s.Task(other.ID)
	if err != nil {
		t.Fatalf("find task: %v", err)
	}
	if untouched.ProjectID == nil || *untouched.ProjectID != kept.ID {
		t.Error("task of another project must stay assigned")
	}

	// Both collections were persisted together
	reopened, err := Open(st)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	persisted, err := reopened.Task(assigned.ID)
	if err != nil {
		t.Fatalf("find persisted task: %v", err)
	}
	if persisted.ProjectID != nil {
		t.Error("persisted task still references the deleted project")
	}
}

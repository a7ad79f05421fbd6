// Package backup serializes the full application state to a portable
// JSON document and restores it from one. A document is accepted only
// when it carries both collections; anything else is rejected wholesale.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/taskflow/taskflow/internal/models"
)

// ErrBadFormat is returned when a document cannot be parsed or lacks the
// tasks or projects field.
var ErrBadFormat = errors.New("invalid backup format")

// Document is the interchange format for export and import
type Document struct {
	Tasks      []models.Task    `json:"tasks"`
	Projects   []models.Project `json:"projects"`
	ExportDate time.Time        `json:"exportDate"`
}

// Export produces an indented interchange document
func Export(tasks []models.Task, projects []models.Project, now time.Time) ([]byte, error) {
	doc := Document{
		Tasks:      tasks,
		Projects:   projects,
		ExportDate: now,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return data, nil
}

// WriteFile exports the state to path atomically, writing a temporary
// file first and renaming it into place.
func WriteFile(path string, tasks []models.Task, projects []models.Project, now time.Time) error {
	data, err := Export(tasks, projects, now)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "taskflow-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	name := tmp.Name()
	tmp = nil // keep the defer from removing the finished file

	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename backup: %w", err)
	}
	return nil
}

// Parse validates and decodes an interchange document. A document that
// is not valid JSON, or that is missing the tasks or projects field,
// fails with ErrBadFormat; no partial result is ever returned.
func Parse(data []byte) ([]models.Task, []models.Project, error) {
	var probe struct {
		Tasks    *json.RawMessage `json:"tasks"`
		Projects *json.RawMessage `json:"projects"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if probe.Tasks == nil || probe.Projects == nil {
		return nil, nil, fmt.Errorf("%w: missing tasks or projects", ErrBadFormat)
	}

	var tasks []models.Task
	if err := json.Unmarshal(*probe.Tasks, &tasks); err != nil {
		return nil, nil, fmt.Errorf("%w: tasks: %v", ErrBadFormat, err)
	}
	var projects []models.Project
	if err := json.Unmarshal(*probe.Projects, &projects); err != nil {
		return nil, nil, fmt.Errorf("%w: projects: %v", ErrBadFormat, err)
	}
	return tasks, projects, nil
}

// ReadFile reads and parses an interchange document from disk
func ReadFile(path string) ([]models.Task, []models.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read backup: %w", err)
	}
	return Parse(data)
}

// DefaultFilename returns the conventional backup filename for a day,
// e.g. "taskflow-backup-2024-01-31.json".
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("taskflow-backup-%s.json", now.Format("2006-01-02"))
}

package storage

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "data", "taskflow.db"))
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestGetMissingKey(t *testing.T) {
	st := newTestStore(t)

	val, ok, err := st.Get("tasks")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Errorf("expected no record, got %q", val)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	st := newTestStore(t)

	if err := st.Set(KeyTheme, "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}

	val, ok, err := st.Get(KeyTheme)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || val != "dark" {
		t.Errorf("expected dark, got %q (ok=%v)", val, ok)
	}
}

func TestSetOverwrites(t *testing.T) {
	st := newTestStore(t)

	if err := st.Set(KeyTasks, `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Set(KeyTasks, `[{"id":1}]`); err != nil {
		t.Fatalf("set again: %v", err)
	}

	val, ok, err := st.Get(KeyTasks)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || val != `[{"id":1}]` {
		t.Errorf("expected the second value to win, got %q", val)
	}
}

func TestSetAll(t *testing.T) {
	st := newTestStore(t)

	err := st.SetAll(map[string]string{
		KeyTasks:    `[1]`,
		KeyProjects: `[2]`,
	})
	if err != nil {
		t.Fatalf("set all: %v", err)
	}

	for key, want := range map[string]string{KeyTasks: `[1]`, KeyProjects: `[2]`} {
		val, ok, err := st.Get(key)
		if err != nil {
			t.Fatalf("get %s: %v", key, err)
		}
		if !ok || val != want {
			t.Errorf("%s: expected %q, got %q", key, want, val)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskflow.db")

	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := st.Set(KeyProjects, `[{"id":7}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()

	val, ok, err := st.Get(KeyProjects)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || val != `[{"id":7}]` {
		t.Errorf("expected persisted value, got %q (ok=%v)", val, ok)
	}
}

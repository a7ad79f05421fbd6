package models

import (
	"reflect"
	"testing"
	"time"
)

func TestPriorityWeight(t *testing.T) {
	if PriorityHigh.Weight() <= PriorityMedium.Weight() ||
		PriorityMedium.Weight() <= PriorityLow.Weight() {
		t.Error("priority weights must be strictly ordered high > medium > low")
	}
	if Priority("urgent").Weight() != 0 {
		t.Error("an unknown priority must weigh zero")
	}
}

func TestPriorityValid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.Valid() {
			t.Errorf("%s should be valid", p)
		}
	}
	if Priority("").Valid() || Priority("critical").Valid() {
		t.Error("unknown priorities should not be valid")
	}
}

func TestOverdue(t *testing.T) {
	due := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		now  time.Time
		want bool
	}{
		{"no due date", Task{}, due, false},
		{"due today, morning", Task{DueDate: &due}, due.Add(9 * time.Hour), false},
		{"due today, just before midnight", Task{DueDate: &due}, due.Add(24*time.Hour - time.Second), false},
		{"day after has started", Task{DueDate: &due}, due.Add(24 * time.Hour), true},
		{"long past", Task{DueDate: &due}, due.AddDate(0, 1, 0), true},
		{"past but completed", Task{DueDate: &due, Completed: true}, due.AddDate(0, 1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Overdue(tt.now); got != tt.want {
				t.Errorf("Overdue(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"work", []string{"work"}},
		{"work, home", []string{"work", "home"}},
		{" a ,, b ,", []string{"a", "b"}},
		{"dup,dup", []string{"dup", "dup"}},
	}

	for _, tt := range tests {
		if got := ParseTags(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

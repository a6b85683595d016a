package audit

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeJournal(t *testing.T, dir string, ids ...string) {
	t.Helper()
	j, err := OpenJournal(dir)
	if err != nil {
		t.Fatalf("OpenJournal failed: %v", err)
	}
	for _, id := range ids {
		e := NewEvent("insert_student", ActionCreate, ResourceStudent, id, nil)
		e.Metadata = map[string]any{"student_id": id}
		if err := j.Log(e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestJournal_AppendAndRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "audit")

	writeJournal(t, dir, "A", "B")
	// Reopening continues the chain.
	writeJournal(t, dir, "C")

	events, err := ReadJournal(dir, Filter{})
	if err != nil {
		t.Fatalf("ReadJournal failed: %v", err)
	}
	if len(events) != 3 || events[0].ResourceID != "A" || events[2].ResourceID != "C" {
		t.Fatalf("Unexpected events: %v", events)
	}

	only, err := ReadJournal(dir, Filter{ResourceID: "B"})
	if err != nil || len(only) != 1 {
		t.Errorf("Expected one event for B, got %v, %v", only, err)
	}

	n, err := Verify(dir)
	if err != nil || n != 3 {
		t.Errorf("Verify = %d, %v; want 3, nil", n, err)
	}

	j, err := OpenJournal(dir)
	if err != nil {
		t.Fatalf("OpenJournal failed: %v", err)
	}
	defer j.Close()
	if j.Count() != 3 {
		t.Errorf("Count = %d, want 3", j.Count())
	}
}

func TestJournal_MissingIsEmpty(t *testing.T) {
	events, err := ReadJournal(t.TempDir(), Filter{})
	if err != nil || len(events) != 0 {
		t.Errorf("Expected no events, got %v, %v", events, err)
	}
	if _, err := Verify(t.TempDir()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Verify on a missing journal should report ErrNotExist, got %v", err)
	}
}

func TestJournal_DetectsTampering(t *testing.T) {
	tests := []struct {
		name   string
		tamper func(lines []string) []string
	}{
		{"edited entry", func(lines []string) []string {
			lines[1] = strings.Replace(lines[1], `"resource_id":"B"`, `"resource_id":"X"`, 1)
			return lines
		}},
		{"removed entry", func(lines []string) []string {
			return append(lines[:1], lines[2:]...)
		}},
		{"reordered entries", func(lines []string) []string {
			lines[0], lines[1] = lines[1], lines[0]
			return lines
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeJournal(t, dir, "A", "B", "C")

			path := filepath.Join(dir, JournalFile)
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			lines := strings.Split(strings.TrimSpace(string(data)), "\n")
			lines = tt.tamper(lines)
			if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
				t.Fatal(err)
			}

			if _, err := Verify(dir); !errors.Is(err, ErrChainBroken) {
				t.Errorf("Expected ErrChainBroken, got %v", err)
			}
		})
	}
}

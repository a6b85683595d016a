package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI against dir and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--data-dir", dir, "--log-level", "ERROR"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	require.NoError(t, err, "socialgraph %s", strings.Join(args, " "))
	return out
}

// seed builds A-B (normal), A-C (close), B-D (normal).
func seed(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	mustRun(t, dir, "student", "add", "A", "Ana Torres", "Ingenieria", "-i", "Musica,Cine")
	mustRun(t, dir, "student", "add", "B", "Bruno Diaz", "Medicina", "-i", "Musica")
	mustRun(t, dir, "student", "add", "C", "Carla Ruiz", "Ingenieria")
	mustRun(t, dir, "student", "add", "D", "Diego Paz", "Derecho", "-i", "Cine")
	mustRun(t, dir, "friendship", "add", "A", "B")
	mustRun(t, dir, "friendship", "add", "A", "C", "-w", "2")
	mustRun(t, dir, "friendship", "add", "B", "D")
	return dir
}

func TestStudentCommands(t *testing.T) {
	dir := seed(t)

	out := mustRun(t, dir, "students")
	assert.Contains(t, out, "Ana Torres")
	assert.Contains(t, out, "Musica, Cine")

	out = mustRun(t, dir, "students", "--search", "ingenieria")
	assert.Contains(t, out, "Carla Ruiz")
	assert.NotContains(t, out, "Bruno Diaz")

	out = mustRun(t, dir, "friends", "A")
	assert.Contains(t, out, "Bruno Diaz")
	assert.Contains(t, out, "close")

	out = mustRun(t, dir, "student", "show", "A")
	assert.Contains(t, out, "STUDENT REPORT - Ana Torres")

	mustRun(t, dir, "student", "update", "C", "--name", "Carla R.")
	assert.Contains(t, mustRun(t, dir, "students"), "Carla R.")

	mustRun(t, dir, "interest", "add", "C", "Teatro")
	assert.Contains(t, mustRun(t, dir, "students"), "Teatro")
	mustRun(t, dir, "interest", "remove", "C", "Teatro")
	assert.NotContains(t, mustRun(t, dir, "students"), "Teatro")
	assert.Contains(t, mustRun(t, dir, "students", "-s", "nobody"), "No students found.")

	mustRun(t, dir, "friendship", "update", "A", "B", "-w", "3")
	assert.Contains(t, mustRun(t, dir, "friends", "B"), "closest")

	mustRun(t, dir, "friendship", "remove", "B", "D")
	assert.Contains(t, mustRun(t, dir, "friends", "D"), "D has no friends registered.")

	mustRun(t, dir, "student", "remove", "D")
	assert.NotContains(t, mustRun(t, dir, "students"), "Diego Paz")
}

func TestStudentCommands_Errors(t *testing.T) {
	dir := seed(t)

	_, err := run(t, dir, "friends", "Z")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "student not found")

	_, err = run(t, dir, "student", "add", "A", "Again", "Ingenieria")
	assert.Error(t, err, "duplicate ID should be rejected")

	_, err = run(t, dir, "friendship", "add", "A", "A")
	assert.Error(t, err, "self friendship should be rejected")

	_, err = run(t, dir, "friendship", "add", "A", "D", "-w", "7")
	assert.Error(t, err, "weight outside 1..3 should be rejected")

	_, err = run(t, dir, "friendship", "update", "C", "D", "-w", "2")
	assert.Error(t, err, "updating a missing friendship should fail")

	_, err = run(t, dir, "friends")
	assert.Error(t, err, "missing argument")
}

func TestAnalyticsCommands(t *testing.T) {
	dir := seed(t)

	assert.Contains(t, mustRun(t, dir, "bfs", "A"), "A → B → C → D")
	assert.Contains(t, mustRun(t, dir, "path", "C", "D"), "C → A → B → D (3 hops)")
	assert.Contains(t, mustRun(t, dir, "path", "C", "D", "--weighted"), "(cost 4)")

	out := mustRun(t, dir, "recommend", "D")
	assert.Contains(t, out, "A")

	out = mustRun(t, dir, "recommend", "D", "--by", "interests")
	assert.Contains(t, out, "Cine")

	_, err := run(t, dir, "recommend", "D", "--by", "astrology")
	assert.Error(t, err)

	out = mustRun(t, dir, "communities", "-m", "components")
	assert.Contains(t, out, "1 communities (connected_components")

	out = mustRun(t, dir, "centrality", "--metric", "degree")
	assert.Contains(t, out, "1. A (2)")
	assert.NotContains(t, out, "closeness:")

	out = mustRun(t, dir, "compare", "A", "D")
	assert.Contains(t, out, "2 (#1)")

	out = mustRun(t, dir, "influence")
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "50")

	out = mustRun(t, dir, "stats")
	assert.Contains(t, out, "Students:           4")
	assert.Contains(t, out, "Friendships:        3")
}

func TestReportAndLayout(t *testing.T) {
	dir := seed(t)

	assert.Contains(t, mustRun(t, dir, "report"), "SOCIAL NETWORK CENTRALITY REPORT")

	path := filepath.Join(dir, "report.json")
	mustRun(t, dir, "report", "--json", "-o", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	out := mustRun(t, dir, "layout", "--kind", "circular")
	var viz struct {
		Students    []map[string]any `json:"students"`
		Friendships []map[string]any `json:"friendships"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &viz))
	assert.Len(t, viz.Students, 4)
	assert.Len(t, viz.Friendships, 3)

	_, err = run(t, dir, "layout", "--kind", "radial")
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "generate", "-n", "12", "--density", "0.3", "--seed", "7")
	assert.Contains(t, out, "Generated 12 students")
	assert.FileExists(t, filepath.Join(dir, "graph.json"))
	assert.Contains(t, mustRun(t, dir, "stats"), "Students:           12")

	_, err := run(t, dir, "generate", "--density", "1.5")
	assert.Error(t, err)
}

func TestBackupRestoreAndConvert(t *testing.T) {
	dir := seed(t)

	assert.Contains(t, mustRun(t, dir, "backup"), "Backup written")
	assert.Contains(t, mustRun(t, dir, "backup", "--list"), "backups")

	mustRun(t, dir, "student", "remove", "A")
	assert.Contains(t, mustRun(t, dir, "restore"), "Restored 4 students and 3 friendships")
	assert.Contains(t, mustRun(t, dir, "students"), "Ana Torres")

	mustRun(t, dir, "convert", "csv")
	assert.FileExists(t, filepath.Join(dir, "students.csv"))
	assert.FileExists(t, filepath.Join(dir, "friendships.csv"))
	assert.Contains(t, mustRun(t, dir, "--format", "csv", "friends", "A"), "Carla Ruiz")

	_, err := run(t, dir, "--format", "xml", "students")
	assert.Error(t, err)
}

func TestRestore_NoBackups(t *testing.T) {
	_, err := run(t, t.TempDir(), "restore")
	assert.Error(t, err)
}

func TestEmptyDataDir(t *testing.T) {
	out := mustRun(t, t.TempDir(), "students")
	assert.Contains(t, out, "No students found.")
}

func TestHistory(t *testing.T) {
	dir := seed(t)
	_, err := run(t, dir, "student", "remove", "Z")
	require.Error(t, err)

	out := mustRun(t, dir, "history")
	assert.Contains(t, out, "insert_student")
	assert.Contains(t, out, "A-B")
	assert.Contains(t, out, "student not found")

	out = mustRun(t, dir, "history", "--failed")
	assert.Contains(t, out, "remove_student")
	assert.NotContains(t, out, "insert_student")

	out = mustRun(t, dir, "history", "-s", "D", "-n", "0")
	assert.Contains(t, out, "B-D")
	assert.NotContains(t, out, "A-C")

	out = mustRun(t, dir, "history", "-n", "1")
	assert.NotContains(t, out, "insert_student")

	assert.Contains(t, mustRun(t, dir, "history", "--verify"), "Journal intact (8 entries)")
}

func TestHistory_Empty(t *testing.T) {
	dir := t.TempDir()
	assert.Contains(t, mustRun(t, dir, "history"), "No history recorded.")
	assert.Contains(t, mustRun(t, dir, "history", "--verify"), "No history recorded.")
}

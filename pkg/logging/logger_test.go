package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// logLine is the decoded form of one output line.
type logLine struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	Fields  map[string]any `json:"fields,omitempty"`
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []logLine {
	t.Helper()
	var out []logLine
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line logLine
		if err := json.Unmarshal([]byte(raw), &line); err != nil {
			t.Fatalf("Invalid log line %q: %v", raw, err)
		}
		out = append(out, line)
	}
	return out
}

func decodeOne(t *testing.T, buf *bytes.Buffer) logLine {
	t.Helper()
	lines := decodeLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("Expected one log line, got %d: %q", len(lines), buf.String())
	}
	return lines[0]
}

func TestLevel_StringAndParse(t *testing.T) {
	tests := []struct {
		input string
		level Level
		name  string
	}{
		{"debug", DebugLevel, "DEBUG"},
		{" INFO ", InfoLevel, "INFO"},
		{"Warning", WarnLevel, "WARN"},
		{"warn", WarnLevel, "WARN"},
		{"error", ErrorLevel, "ERROR"},
		{"verbose", InfoLevel, "INFO"},
		{"", InfoLevel, "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.level {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.level)
			}
			if got.String() != tt.name {
				t.Errorf("String() = %q, want %q", got.String(), tt.name)
			}
		})
	}
}

func TestJSONLogger_LineShape(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLogger(&buf, DebugLevel).Info("graph loaded",
		Students(30),
		Friendships(45),
		StudentID("7"),
		Friendship("1", "2"),
		Bool("fallback", true),
		Duration("took", 1500*time.Millisecond),
		Error(errors.New("boom")),
	)

	line := decodeOne(t, &buf)
	if line.Level != "INFO" || line.Message != "graph loaded" || line.Time == "" {
		t.Errorf("Unexpected envelope: %+v", line)
	}
	want := map[string]any{
		"students":    float64(30),
		"friendships": float64(45),
		"student_id":  "7",
		"friendship":  "1-2",
		"fallback":    true,
		"took":        "1.5s",
		"error":       "boom",
	}
	for k, v := range want {
		if line.Fields[k] != v {
			t.Errorf("Fields[%s] = %v, want %v", k, line.Fields[k], v)
		}
	}
}

func TestJSONLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e")

	lines := decodeLines(t, &buf)
	if len(lines) != 2 || lines[0].Level != "WARN" || lines[1].Level != "ERROR" {
		t.Errorf("Expected WARN and ERROR only, got %+v", lines)
	}
}

func TestJSONLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	child := logger.With(Component("service"))

	logger.SetLevel(ErrorLevel)
	if logger.GetLevel() != ErrorLevel {
		t.Errorf("GetLevel = %v, want ERROR", logger.GetLevel())
	}
	child.Info("filtered")
	logger.Warn("filtered")
	if buf.Len() != 0 {
		t.Fatalf("Expected no output below ERROR, got %q", buf.String())
	}

	child.Error("kept")
	if line := decodeOne(t, &buf); line.Fields["component"] != "service" {
		t.Errorf("Child lost its fields: %+v", line)
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Component("persistence")).With(Format("json"))
	child.Info("saved", Path("/tmp/graph.json"))

	line := decodeOne(t, &buf)
	for k, v := range map[string]string{"component": "persistence", "format": "json", "path": "/tmp/graph.json"} {
		if line.Fields[k] != v {
			t.Errorf("Fields[%s] = %v, want %s", k, line.Fields[k], v)
		}
	}

	buf.Reset()
	logger.Info("parent unchanged")
	if line := decodeOne(t, &buf); line.Fields != nil {
		t.Errorf("Parent should not inherit child fields, got %v", line.Fields)
	}
}

func TestJSONLogger_NoFieldsKeyWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLogger(&buf, InfoLevel).Info("bare")

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if _, ok := raw["fields"]; ok {
		t.Error("Expected no fields key")
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("ignored", Count(3))
	logger.With(Method("greedy")).Error("ignored")
	if logger.GetLevel() != InfoLevel {
		t.Errorf("GetLevel = %v", logger.GetLevel())
	}
}

func TestDefaultLoggerHelpers(t *testing.T) {
	if DefaultLogger() == nil {
		t.Fatal("DefaultLogger() returned nil")
	}

	var buf bytes.Buffer
	SetDefaultLogger(NewJSONLogger(&buf, DebugLevel))
	defer SetDefaultLogger(NewNopLogger())

	Debug("d")
	Info("i")
	Warn("w")
	ErrorLog("e")
	With(String("service", "socialgraph")).Info("scoped")

	lines := decodeLines(t, &buf)
	if len(lines) != 5 {
		t.Fatalf("Expected 5 lines, got %d", len(lines))
	}
	for i, want := range []string{"DEBUG", "INFO", "WARN", "ERROR", "INFO"} {
		if lines[i].Level != want {
			t.Errorf("line %d level = %s, want %s", i, lines[i].Level, want)
		}
	}
	if lines[4].Fields["service"] != "socialgraph" {
		t.Errorf("Scoped line fields = %v", lines[4].Fields)
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	timer := StartTimer(logger, "betweenness computed", Metric("betweenness"))
	if elapsed := timer.End(Students(4)); elapsed < 0 {
		t.Errorf("Negative elapsed time %v", elapsed)
	}

	line := decodeOne(t, &buf)
	if line.Fields["metric"] != "betweenness" || line.Fields["students"] != float64(4) {
		t.Errorf("Unexpected fields: %v", line.Fields)
	}
	if _, ok := line.Fields["latency"]; !ok {
		t.Error("Expected latency field")
	}

	buf.Reset()
	StartTimer(logger, "load failed", Path("/tmp/x.json")).EndError(errors.New("boom"))
	if line := decodeOne(t, &buf); line.Level != "ERROR" || line.Fields["error"] != "boom" {
		t.Errorf("Unexpected entry: %+v", line)
	}
}

func BenchmarkJSONLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", StudentID("42"), Count(i))
		buf.Reset()
	}
}

func BenchmarkJSONLogger_InfoFiltered(b *testing.B) {
	logger := NewJSONLogger(&bytes.Buffer{}, ErrorLevel)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", StudentID("42"), Count(i))
	}
}

// Package audit records graph mutations: an in-memory ring of recent events
// and an append-only, hash-chained journal on disk.
package audit

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Action is the kind of change an event records.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ResourceType is what a change touched.
type ResourceType string

const (
	ResourceStudent    ResourceType = "student"
	ResourceInterest   ResourceType = "interest"
	ResourceFriendship ResourceType = "friendship"
)

// Status represents the outcome of a change.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Event is one recorded mutation.
type Event struct {
	ID           string         `json:"id"`
	Timestamp    time.Time      `json:"timestamp"`
	Operation    string         `json:"operation"`
	Action       Action         `json:"action"`
	ResourceType ResourceType   `json:"resource_type"`
	ResourceID   string         `json:"resource_id,omitempty"`
	Status       Status         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// NewEvent builds an event for operation on a resource. A non-nil err marks
// it failed.
func NewEvent(operation string, action Action, resource ResourceType, resourceID string, err error) *Event {
	e := &Event{
		ID:           uuid.New().String(),
		Timestamp:    time.Now(),
		Operation:    operation,
		Action:       action,
		ResourceType: resource,
		ResourceID:   resourceID,
		Status:       StatusSuccess,
	}
	if err != nil {
		e.Status = StatusFailure
		e.ErrorMessage = err.Error()
	}
	return e
}

// String returns a one-line human-readable form.
func (e *Event) String() string {
	s := fmt.Sprintf("%s %s %s %s",
		e.Timestamp.Format(time.RFC3339), e.Operation, e.ResourceID, e.Status)
	if e.ErrorMessage != "" {
		s += ": " + e.ErrorMessage
	}
	return s
}

// Filter selects events. Zero fields match everything.
type Filter struct {
	Operation    string
	ResourceType ResourceType
	// ResourceID matches the resource itself, or either end of a friendship.
	ResourceID string
	Status     Status
	Since      time.Time
}

// Match reports whether e passes the filter.
func (f Filter) Match(e *Event) bool {
	if f.Operation != "" && e.Operation != f.Operation {
		return false
	}
	if f.ResourceType != "" && e.ResourceType != f.ResourceType {
		return false
	}
	if f.ResourceID != "" && !e.touches(f.ResourceID) {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if !f.Since.IsZero() && e.Timestamp.Before(f.Since) {
		return false
	}
	return true
}

func (e *Event) touches(id string) bool {
	if e.ResourceID == id {
		return true
	}
	for _, key := range []string{"student_a", "student_b", "student_id"} {
		if v, ok := e.Metadata[key].(string); ok && v == id {
			return true
		}
	}
	return false
}

// Logger receives events.
type Logger interface {
	Log(event *Event) error
}

// MemoryLog keeps the most recent events in a circular buffer.
type MemoryLog struct {
	mu         sync.RWMutex
	events     []*Event
	bufferSize int
	index      int
	count      int
}

// NewMemoryLog keeps up to bufferSize events. Sizes below one become one.
func NewMemoryLog(bufferSize int) *MemoryLog {
	bufferSize = max(bufferSize, 1)
	return &MemoryLog{
		events:     make([]*Event, bufferSize),
		bufferSize: bufferSize,
	}
}

// Log stores event, overwriting the oldest once the buffer is full.
func (l *MemoryLog) Log(event *Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	l.events[l.index] = event
	l.index = (l.index + 1) % l.bufferSize
	if l.count < l.bufferSize {
		l.count++
	}
	return nil
}

// Events returns the stored events matching filter, oldest first.
func (l *MemoryLog) Events(filter Filter) []*Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*Event, 0, l.count)
	for i := 0; i < l.count; i++ {
		idx := (l.index - l.count + i + l.bufferSize) % l.bufferSize
		if e := l.events[idx]; e != nil && filter.Match(e) {
			result = append(result, e)
		}
	}
	return result
}

// Recent returns the n most recent events, newest first.
func (l *MemoryLog) Recent(n int) []*Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n = min(max(n, 0), l.count)
	result := make([]*Event, 0, n)
	for i := 0; i < n; i++ {
		idx := (l.index - 1 - i + l.bufferSize) % l.bufferSize
		result = append(result, l.events[idx])
	}
	return result
}

// Count returns the number of events currently held.
func (l *MemoryLog) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.count
}

// Multi fans an event out to several loggers and returns the first error.
type Multi []Logger

// Log implements Logger.
func (m Multi) Log(event *Event) error {
	var first error
	for _, l := range m {
		if err := l.Log(event); err != nil && first == nil {
			first = err
		}
	}
	return first
}

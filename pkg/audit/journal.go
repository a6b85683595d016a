package audit

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JournalFile is the journal's name inside its directory.
const JournalFile = "journal.jsonl"

// ErrChainBroken is returned by Verify when an entry was edited, removed or
// reordered.
var ErrChainBroken = errors.New("journal hash chain broken")

// Entry is an event as written to the journal. Hash covers the entry with
// Hash cleared, and PreviousHash links it to the entry before.
type Entry struct {
	*Event
	PreviousHash string `json:"previous_hash,omitempty"`
	Hash         string `json:"hash"`
}

func (e *Entry) digest() (string, error) {
	clone := Entry{Event: e.Event, PreviousHash: e.PreviousHash}
	data, err := json.Marshal(clone)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Journal appends events to dir/journal.jsonl, one JSON object per line.
type Journal struct {
	mu       sync.Mutex
	file     *os.File
	writer   *bufio.Writer
	lastHash string
	count    int64
}

// OpenJournal opens or creates the journal in dir and resumes its chain.
func OpenJournal(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	path := filepath.Join(dir, JournalFile)

	entries, err := readEntries(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	j := &Journal{
		file:   file,
		writer: bufio.NewWriter(file),
		count:  int64(len(entries)),
	}
	if n := len(entries); n > 0 {
		j.lastHash = entries[n-1].Hash
	}
	return j, nil
}

// Log appends event and syncs the file.
func (j *Journal) Log(event *Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	entry := &Entry{Event: event, PreviousHash: j.lastHash}
	hash, err := entry.digest()
	if err != nil {
		return fmt.Errorf("failed to hash event: %w", err)
	}
	entry.Hash = hash

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := j.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	if err := j.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush journal: %w", err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync journal: %w", err)
	}

	j.lastHash = hash
	j.count++
	return nil
}

// Count returns the number of entries in the journal.
func (j *Journal) Count() int64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.count
}

// Close flushes and closes the file.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	flushErr := j.writer.Flush()
	closeErr := j.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// ReadJournal returns the events in dir's journal matching filter, oldest
// first. A missing journal yields no events.
func ReadJournal(dir string, filter Filter) ([]*Event, error) {
	entries, err := readEntries(filepath.Join(dir, JournalFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	events := make([]*Event, 0, len(entries))
	for _, e := range entries {
		if filter.Match(e.Event) {
			events = append(events, e.Event)
		}
	}
	return events, nil
}

// Verify checks every hash in dir's journal and returns the number of
// entries checked.
func Verify(dir string) (int, error) {
	entries, err := readEntries(filepath.Join(dir, JournalFile))
	if err != nil {
		return 0, err
	}

	previous := ""
	for i, e := range entries {
		line := i + 1
		if e.PreviousHash != previous {
			return i, fmt.Errorf("%w: line %d does not follow line %d", ErrChainBroken, line, i)
		}
		hash, err := e.digest()
		if err != nil {
			return i, err
		}
		if hash != e.Hash {
			return i, fmt.Errorf("%w: line %d was modified", ErrChainBroken, line)
		}
		previous = e.Hash
	}
	return len(entries), nil
}

func readEntries(path string) (_ []*Entry, retErr error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && retErr == nil {
			retErr = closeErr
		}
	}()

	var entries []*Entry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		entry := &Entry{Event: &Event{}}
		if err := json.Unmarshal(scanner.Bytes(), entry); err != nil {
			return nil, fmt.Errorf("journal line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

package persistence

import (
	"fmt"
	"time"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

// Default file names inside a data directory.
const (
	StudentsCSV    = "students.csv"
	FriendshipsCSV = "friendships.csv"
	GraphJSON      = "graph.json"
	SnapshotFile   = "graph.json.sz"

	backupPrefix     = "backup_"
	backupTimeLayout = "20060102_150405"

	filePermissions = 0o644
	dirPermissions  = 0o755
)

// Metadata describes an exported document.
type Metadata struct {
	ID              string    `json:"id"`
	ExportedAt      time.Time `json:"exported_at"`
	StudentCount    int       `json:"student_count"`
	FriendshipCount int       `json:"friendship_count"`
}

// Document is the JSON representation of a whole graph.
type Document struct {
	Metadata    Metadata             `json:"metadata"`
	Students    []storage.Student    `json:"students"`
	Friendships []storage.Friendship `json:"friendships"`
}

// friendshipRecord decodes friendships where the weight may be missing.
type friendshipRecord struct {
	A      string `json:"id1"`
	B      string `json:"id2"`
	Weight *int   `json:"weight"`
}

type documentRecord struct {
	Metadata    Metadata           `json:"metadata"`
	Students    []storage.Student  `json:"students"`
	Friendships []friendshipRecord `json:"friendships"`
}

// Warning is a non-fatal problem found while loading a single record.
type Warning struct {
	Source string // file name or "json"
	Line   int    // 1-based record number, header excluded
	Err    error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s:%d: %v", w.Source, w.Line, w.Err)
}

// LoadResult is a freshly built graph plus the rows that could not be applied.
type LoadResult struct {
	Graph    *storage.Graph
	Warnings []Warning
}

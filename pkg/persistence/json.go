package persistence

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

// NewDocument captures the graph with fresh metadata.
func NewDocument(g *storage.Graph, exportedAt time.Time) *Document {
	friendships := g.Friendships()
	return &Document{
		Metadata: Metadata{
			ID:              uuid.NewString(),
			ExportedAt:      exportedAt.UTC(),
			StudentCount:    g.StudentCount(),
			FriendshipCount: len(friendships),
		},
		Students:    g.Students(),
		Friendships: friendships,
	}
}

// EncodeJSON writes the document as indented JSON.
func EncodeJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	return nil
}

// DecodeJSON replays a JSON document into a fresh graph. Friendships
// without a weight get a normal tie.
func DecodeJSON(r io.Reader) (*LoadResult, *Metadata, error) {
	var doc documentRecord
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("failed to decode graph: %w", err)
	}

	rp := newReplayer()
	for i, s := range doc.Students {
		rp.student("students", i+1, s)
	}
	for i, f := range doc.Friendships {
		rp.friendship("friendships", i+1, f.A, f.B, f.Weight)
	}
	return rp.result(), &doc.Metadata, nil
}

// EncodeSnapshot writes the document as snappy-framed JSON.
func EncodeSnapshot(w io.Writer, doc *Document) error {
	sw := snappy.NewBufferedWriter(w)
	if err := json.NewEncoder(sw).Encode(doc); err != nil {
		sw.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := sw.Close(); err != nil {
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a document written by EncodeSnapshot.
func DecodeSnapshot(r io.Reader) (*LoadResult, *Metadata, error) {
	return DecodeJSON(snappy.NewReader(r))
}

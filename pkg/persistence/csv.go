package persistence

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

// interestSeparator joins interests inside a single CSV cell.
const interestSeparator = ";"

var (
	studentHeader    = []string{"id", "name", "category", "interests"}
	friendshipHeader = []string{"id1", "id2", "weight"}
)

// ErrMissingColumn is returned when a CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// WriteStudentsCSV writes one row per student in insertion order.
func WriteStudentsCSV(w io.Writer, g *storage.Graph) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(studentHeader); err != nil {
		return err
	}
	for _, s := range g.Students() {
		row := []string{s.ID, s.Name, s.Category, strings.Join(s.Interests, interestSeparator)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFriendshipsCSV writes each friendship once.
func WriteFriendshipsCSV(w io.Writer, g *storage.Graph) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(friendshipHeader); err != nil {
		return err
	}
	for _, f := range g.Friendships() {
		if err := cw.Write([]string{f.A, f.B, strconv.Itoa(int(f.Weight))}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV builds a graph from a students file and a friendships file.
// Students are inserted first so every friendship can find its endpoints.
// The interests and weight columns are optional.
func ReadCSV(students, friendships io.Reader) (*LoadResult, error) {
	r := newReplayer()

	err := readRows(students, StudentsCSV, []string{"id", "name", "category"}, func(line int, get func(string) string) {
		var interests []string
		if cell := get("interests"); cell != "" {
			interests = strings.Split(cell, interestSeparator)
		}
		r.student(StudentsCSV, line, storage.Student{
			ID:        get("id"),
			Name:      get("name"),
			Category:  get("category"),
			Interests: interests,
		})
	})
	if err != nil {
		return nil, err
	}

	err = readRows(friendships, FriendshipsCSV, []string{"id1", "id2"}, func(line int, get func(string) string) {
		var weight *int
		if cell := get("weight"); cell != "" {
			n, err := strconv.Atoi(cell)
			if err != nil {
				r.warn(FriendshipsCSV, line, fmt.Errorf("weight %q: %w", cell, err))
				return
			}
			weight = &n
		}
		r.friendship(FriendshipsCSV, line, get("id1"), get("id2"), weight)
	})
	if err != nil {
		return nil, err
	}

	return r.result(), nil
}

// readRows maps the header to column positions and calls fn for every
// record. Only a malformed header or an I/O failure aborts the read.
func readRows(src io.Reader, name string, required []string, fn func(line int, get func(string) string)) error {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%s: read header: %w", name, err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			return fmt.Errorf("%s: %w %q", name, ErrMissingColumn, col)
		}
	}

	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: record %d: %w", name, line, err)
		}
		get := func(col string) string {
			i, ok := columns[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		fn(line, get)
	}
}

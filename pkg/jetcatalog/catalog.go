// Package jetcatalog adds table-discovery ergonomics — filtering,
// sorting, simple name search — on top of jetdb.Handle, without
// touching any decode internals. This is the "public discovery
// surface" spec.md §1 names as an external collaborator of the core.
package jetcatalog

import (
	"sort"
	"strings"

	"github.com/martti/tsjetdb/pkg/jetdb"
)

// Tables returns db's user tables sorted alphabetically, rather than in
// raw catalog discovery order.
func Tables(db *jetdb.Handle) []string {
	names := db.Tables()
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	return sorted
}

// Find returns the subset of db's table names containing substr,
// case-insensitively.
func Find(db *jetdb.Handle, substr string) []string {
	substr = strings.ToLower(substr)

	var matches []string

	for _, name := range db.Tables() {
		if strings.Contains(strings.ToLower(name), substr) {
			matches = append(matches, name)
		}
	}

	return matches
}

// Describe is a summary of one table: its name and column count,
// useful for a discovery listing without decoding any rows.
type Describe struct {
	Name        string
	ColumnCount int
}

// DescribeAll builds a Describe for every user table in db.
func DescribeAll(db *jetdb.Handle) ([]Describe, error) {
	out := make([]Describe, 0, len(db.Tables()))

	for _, name := range db.Tables() {
		cols, err := db.Columns(name)
		if err != nil {
			return nil, err
		}

		out = append(out, Describe{Name: name, ColumnCount: len(cols)})
	}

	return out, nil
}

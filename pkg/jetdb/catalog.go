package jetdb

import "fmt"

// catalogTdefPage is where the system catalog's own table definition
// always lives.
const catalogTdefPage = 2

const (
	catalogColType  = "Type"
	catalogColFlags = "Flags"
	catalogColName  = "Name"
	catalogColID    = "Id"
)

// catalogEntry names one user table and the tdef page that describes
// it.
type catalogEntry struct {
	Name     string
	TdefPage int64
}

// isUserTableRow reports whether a catalog row names a user-defined
// table, per spec.md §4.8.
func isUserTableRow(typ, flags uint32) bool {
	return (typ&0x00FFFFFF) == 1 && (flags&0x80000002) == 0
}

// decodeCatalog reads the system catalog (tdef page 2) and returns its
// user-table rows in discovery order.
func decodeCatalog(db *Handle) ([]catalogEntry, error) {
	tdef, rows, err := db.loadTable(catalogTdefPage)
	if err != nil {
		return nil, fmt.Errorf("jetdb: reading catalog: %w", err)
	}

	colIndex := func(name string) int {
		for i, n := range tdef.ColumnNames {
			if n == name {
				return i
			}
		}
		return -1
	}

	typeIdx := colIndex(catalogColType)
	flagsIdx := colIndex(catalogColFlags)
	nameIdx := colIndex(catalogColName)
	idIdx := colIndex(catalogColID)

	if typeIdx < 0 || flagsIdx < 0 || nameIdx < 0 || idIdx < 0 {
		return nil, &MalformedTdefError{Reason: "system catalog is missing an expected column"}
	}

	var entries []catalogEntry

	for _, row := range rows {
		typCol := row.Columns[typeIdx]
		flagsCol := row.Columns[flagsIdx]
		nameCol := row.Columns[nameIdx]
		idCol := row.Columns[idIdx]

		if typCol.IsNull() || flagsCol.IsNull() || nameCol.IsNull() || idCol.IsNull() {
			continue
		}

		if !isUserTableRow(typCol.Uint32(), flagsCol.Uint32()) {
			continue
		}

		entries = append(entries, catalogEntry{
			Name:     nameCol.Str(),
			TdefPage: int64(idCol.Uint32()),
		})
	}

	return entries, nil
}

package jetdb

import "testing"

// decodeCatalog itself is exercised end-to-end by TestHandleOpenAndTables
// in handle_test.go, since Open always calls it against the fixture
// database's catalog page.
func TestIsUserTableRow(t *testing.T) {
	cases := []struct {
		name       string
		typ, flags uint32
		want       bool
	}{
		{"plain user table", 1, 0, true},
		{"system table flag set", 1, 0x80000000, false},
		{"hidden flag set", 1, 0x00000002, false},
		{"not a table type", 5, 0, false},
		{"type low 24 bits only", 0xFF000001, 0, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := isUserTableRow(c.typ, c.flags); got != c.want {
				t.Errorf("isUserTableRow(%#x, %#x) = %v, want %v", c.typ, c.flags, got, c.want)
			}
		})
	}
}

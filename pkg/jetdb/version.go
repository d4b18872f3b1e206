package jetdb

// Version identifies the on-disk JET engine format.
type Version int

const (
	JET3 Version = 3
	JET4 Version = 4
)

func (v Version) String() string {
	switch v {
	case JET3:
		return "JET3"
	case JET4:
		return "JET4"
	default:
		return "unknown"
	}
}

// layout collects the handful of places the two versions diverge so the
// decoders below read as a single code path parameterized by it, rather
// than duplicated per version.
type layout struct {
	version    Version
	pageSize   int
	// entryWidth is the width, in bytes, of the row-body "columns in row"
	// count, the "var len" count, and each variable-offset table entry:
	// u8 for JET3, u16 for JET4.
	entryWidth int
	usedPgSkip int  // bytes skipped before firstPageApplies in a used-pages-map page
	nameIsWide bool // column name length prefix is u16 (v4) vs u8 (v3)
}

func layoutFor(v Version) layout {
	switch v {
	case JET3:
		return layout{
			version:    JET3,
			pageSize:   2048,
			entryWidth: 1,
			usedPgSkip: 10,
			nameIsWide: false,
		}
	case JET4:
		return layout{
			version:    JET4,
			pageSize:   4096,
			entryWidth: 2,
			usedPgSkip: 14,
			nameIsWide: true,
		}
	default:
		return layout{}
	}
}

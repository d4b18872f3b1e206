package jetdb

import "testing"

// buildJET4DataPage constructs a single-row JET4 data page matching
// tdefForDataPageTests's one fixed-length LongInt column, storing
// columnValue in its only row, whose row-offset entry (offset plus
// deleted/lookup flags) is rawOffsetFlags.
func buildJET4DataPage(rawOffsetFlags uint16, columnValue uint32) []byte {
	page := make([]byte, 27)

	page[0] = dataPageCode
	// page[1] skip, page[2:4] freeSpaceInPage, page[4:8] tdefPage,
	// page[8:12] skip(4) [JET4]: all zero
	page[12], page[13] = 1, 0 // numRows = 1

	page[14] = byte(rawOffsetFlags)
	page[15] = byte(rawOffsetFlags >> 8)

	// Row body, bytes [16:27]:
	page[16], page[17] = 1, 0 // columnsInRow = 1
	page[18] = byte(columnValue)
	page[19] = byte(columnValue >> 8)
	page[20] = byte(columnValue >> 16)
	page[21] = byte(columnValue >> 24)
	// page[22:24] var-offset table entry (unused, no var columns): zero
	page[24], page[25] = 0, 0 // varLen = 0
	page[26] = 0x01           // null mask: column 0 (bit 0) is not null

	return page
}

func tdefForDataPageTests() *Tdef {
	return &Tdef{
		Columns: []ColumnDescriptor{
			{Type: uint8(ColumnTypeLongInt), Number: 0, OffsetFixed: 0, Length: 4, Bitmask: 0x01},
		},
		ColumnNames: []string{"ID"},
	}
}

func TestDecodeDataPage(t *testing.T) {
	page := buildJET4DataPage(16, 42)
	tdef := tdefForDataPageTests()

	rows, err := decodeDataPage(page, tdef, JET4, textConfig{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}

	if rows[0].Columns[0].IsNull() {
		t.Fatalf("expected a non-null value")
	}
	if got := rows[0].Columns[0].Int32(); got != 42 {
		t.Errorf("column value = %d, want 42", got)
	}
}

func TestDecodeDataPageSkipsDeletedRows(t *testing.T) {
	page := buildJET4DataPage(16|slotDeleted, 42)
	tdef := tdefForDataPageTests()

	rows, err := decodeDataPage(page, tdef, JET4, textConfig{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 0 {
		t.Fatalf("expected deleted row to be skipped, got %d rows", len(rows))
	}
}

func TestDecodeDataPageNullValue(t *testing.T) {
	page := buildJET4DataPage(16, 42)
	page[26] = 0x00 // clear the null-mask bit for column 0

	tdef := tdefForDataPageTests()

	rows, err := decodeDataPage(page, tdef, JET4, textConfig{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 1 || !rows[0].Columns[0].IsNull() {
		t.Fatalf("expected a null column value, got %+v", rows[0].Columns[0])
	}
}

func TestDecodeDataPageRejectsWrongPageCode(t *testing.T) {
	page := buildJET4DataPage(16, 42)
	page[0] = tdefPageCode

	if _, err := decodeDataPage(page, tdefForDataPageTests(), JET4, textConfig{}, nil); err == nil {
		t.Fatalf("expected an error for a non-data page code")
	}
}

func TestReadCount(t *testing.T) {
	if got := readCount([]byte{7}, 0, 1); got != 7 {
		t.Errorf("readCount(width=1) = %d, want 7", got)
	}

	if got := readCount([]byte{0x34, 0x12}, 0, 2); got != 0x1234 {
		t.Errorf("readCount(width=2) = 0x%x, want 0x1234", got)
	}
}

package jetdb

const tdefPageCode = 0x02

// ColumnDescriptor describes one column's position and type within a
// row, as recorded on a tdef page.
type ColumnDescriptor struct {
	Type        uint8
	Number      uint16 // ordinal within the row; indexes the null bitmask
	OffsetFixed uint16
	OffsetVar   uint16
	Length      uint16
	Bitmask     uint8
}

// IsFixedLength reports whether this column occupies a fixed position
// in the row's fixed-length area (bitmask bit 0 set) rather than being
// located via the row's variable-offset table.
func (c ColumnDescriptor) IsFixedLength() bool {
	return c.Bitmask&0x01 == 1
}

// Tdef is a parsed table definition: its column schema plus the
// pointers needed to locate its data pages.
type Tdef struct {
	NumRows          uint32
	NumCols          uint16
	NumVarCols       uint16
	NumRealIdx       uint32
	UsedPagesMapPage uint32
	Columns          []ColumnDescriptor
	ColumnNames      []string
}

// decodeTdef parses a tdef page (0x02), following at most one overflow
// page, into a Tdef. reader is used only to fetch the overflow page
// named by nextPage; it is not retained.
func decodeTdef(page []byte, v Version, reader PageReader) (*Tdef, error) {
	if len(page) == 0 || page[0] != tdefPageCode {
		return nil, &MalformedTdefError{Reason: "leading byte is not a tdef page code"}
	}

	c := newCursor(page)
	c.skip(1) // page code, already checked
	c.skip(1) // skip

	if v == JET3 {
		vc := c.bytes(2)
		if c.err != nil {
			return nil, c.err
		}
		if string(vc) != "VC" {
			return nil, &MalformedTdefError{Reason: `expected "VC" literal in JET3 tdef header`}
		}
	} else {
		c.u16() // freeSpaceInPage, unused
	}

	nextPage := c.u32()
	tdefLen := c.u32()
	_ = tdefLen

	if c.err != nil {
		return nil, c.err
	}

	buf := page

	if nextPage > 0 {
		if reader == nil {
			return nil, &MalformedTdefError{Reason: "tdef spans an overflow page but no reader was provided"}
		}

		overflow, err := reader.ReadPage(int64(nextPage))
		if err != nil {
			return nil, err
		}

		if len(overflow) < 8 {
			return nil, &MalformedTdefError{Reason: "overflow page shorter than its own header"}
		}

		buf = make([]byte, 0, len(page)+len(overflow)-8)
		buf = append(buf, page...)
		buf = append(buf, overflow[8:]...)
	}

	body := newCursor(buf)
	body.pos = c.pos

	if v == JET4 {
		body.skip(4)
	}

	numRows := body.u32()
	body.u32() // autoNumber, unused

	if v == JET4 {
		body.u8()    // autoNumberFlag
		body.skip(3) // skip
		body.u32()   // autoNumberValue
		body.skip(8) // skip
	}

	body.u8()  // tableType, unused
	body.u16() // maxCols, unused
	numVarCols := body.u16()
	numCols := body.u16()
	body.u32() // numIdx, unused
	numRealIdx := body.u32()

	body.u8() // usedPagesRow, unused
	usedPagesMapPage := body.u24()
	body.u32() // freePagesCount, unused

	if body.err != nil {
		return nil, body.err
	}

	idxRecordSize := 8
	if v == JET4 {
		idxRecordSize = 12
	}
	body.skip(int(numRealIdx) * idxRecordSize)

	columns := make([]ColumnDescriptor, numCols)

	for i := range columns {
		var col ColumnDescriptor

		col.Type = body.u8()

		if v == JET4 {
			body.skip(4)
		}

		col.Number = body.u16()
		col.OffsetVar = body.u16()
		body.u16() // num, unused

		if v == JET3 {
			body.u16() // sortOrder, unused
		}

		body.u16() // misc, unused
		body.u16() // miscExt, unused
		col.Bitmask = body.u8()

		if v == JET4 {
			body.u8()    // miscFlags, unused
			body.skip(4) // skip
		}

		col.OffsetFixed = body.u16()
		col.Length = body.u16()

		columns[i] = col
	}

	if body.err != nil {
		return nil, body.err
	}

	names := make([]string, numCols)

	for i := range names {
		if v == JET3 {
			n := int(body.u8())
			raw := body.bytes(n)
			if body.err != nil {
				return nil, body.err
			}
			names[i] = decodeSingleByteText(raw, false)
		} else {
			n := int(body.u16())
			raw := body.bytes(n)
			if body.err != nil {
				return nil, body.err
			}
			names[i] = decodeUTF16LE(raw)
		}
	}

	return &Tdef{
		NumRows:          numRows,
		NumCols:          numCols,
		NumVarCols:       numVarCols,
		NumRealIdx:       numRealIdx,
		UsedPagesMapPage: usedPagesMapPage,
		Columns:          columns,
		ColumnNames:      names,
	}, nil
}

package jetdb

import "encoding/binary"

const dataPageCode = 0x01

// decodeSlotTable parses a data page's header and row-offset table into
// rowSlot entries, skipping nothing beyond what's needed to find each
// slot's byte range. Per spec.md §9, this is factored standalone so the
// memo/LVAL path can re-enter it without a table's column schema.
func decodeSlotTable(page []byte, v Version) ([]rowSlot, error) {
	if len(page) == 0 || page[0] != dataPageCode {
		return nil, &MalformedDataPageError{Reason: "leading byte is not a data page code"}
	}

	pageSize := len(page)
	pos := 1 // skip page code
	pos++    // 1 skip byte
	pos += 2 // freeSpaceInPage
	pos += 4 // tdefPage

	if v == JET4 {
		pos += 4 // skip
	}

	if pos+2 > pageSize {
		return nil, &MalformedDataPageError{Reason: "truncated before numRows"}
	}

	numRows := int(binary.LittleEndian.Uint16(page[pos : pos+2]))
	pos += 2

	rawOffsets := make([]uint16, numRows)
	for i := 0; i < numRows; i++ {
		if pos+2 > pageSize {
			return nil, &MalformedDataPageError{Reason: "truncated row-offset table"}
		}
		rawOffsets[i] = binary.LittleEndian.Uint16(page[pos : pos+2])
		pos += 2
	}

	slots := make([]rowSlot, numRows)

	for i := 0; i < numRows; i++ {
		offset, isDeleted, isLookup := decodeSlotFlags(rawOffsets[i])

		next := pageSize
		if i > 0 {
			next, _, _ = decodeSlotFlags(rawOffsets[i-1])
		}

		slots[i] = rowSlot{
			index:     i,
			offset:    offset,
			next:      next,
			isDeleted: isDeleted,
			isLookup:  isLookup,
		}
	}

	return slots, nil
}

// Row is one decoded record: one ColumnValue per column of the table,
// in column-descriptor order.
type Row struct {
	Columns   []ColumnValue
	SlotIndex int
}

// decodeDataPage decodes every non-deleted slot of a data page into a
// Row, using tdef's column descriptors to locate and type each value.
// reader is used only for out-of-line memo resolution; it may be nil if
// the table has no memo columns.
func decodeDataPage(page []byte, tdef *Tdef, v Version, cfg textConfig, reader PageReader) ([]Row, error) {
	slots, err := decodeSlotTable(page, v)
	if err != nil {
		return nil, err
	}

	lay := layoutFor(v)
	rows := make([]Row, 0, len(slots))

	for _, slot := range slots {
		if slot.isDeleted {
			continue
		}

		if slot.offset >= slot.next || slot.next > len(page) {
			continue
		}

		row, err := decodeRowSlot(page, slot, tdef, lay, cfg, reader)
		if err != nil {
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func readCount(page []byte, at, width int) int {
	if width == 1 {
		return int(page[at])
	}
	return int(binary.LittleEndian.Uint16(page[at : at+2]))
}

// decodeRowSlot decodes one row's bytes in [slot.offset, slot.next),
// right-to-left, per spec.md §4.5.
func decodeRowSlot(page []byte, slot rowSlot, tdef *Tdef, lay layout, cfg textConfig, reader PageReader) (Row, error) {
	start, end := slot.offset, slot.next
	body := page[start:end]

	ew := lay.entryWidth

	columnsInRow := readCount(body, 0, ew)

	nullMaskSize := (columnsInRow + 7) / 8
	if nullMaskSize > len(body) {
		return Row{}, &MalformedDataPageError{Reason: "null mask exceeds row bounds"}
	}
	nullMask := body[len(body)-nullMaskSize:]

	varLenAt := len(body) - nullMaskSize - ew
	if varLenAt < 0 {
		return Row{}, &MalformedDataPageError{Reason: "varLen field exceeds row bounds"}
	}
	varLen := readCount(body, varLenAt, ew)

	varTableSize := (varLen + 1) * ew
	varTableAt := varLenAt - varTableSize
	if varTableAt < 0 {
		return Row{}, &MalformedDataPageError{Reason: "var-offset table exceeds row bounds"}
	}

	// Stored in reverse; reverse them into natural order.
	rawVarOffsets := make([]int, varLen+1)
	for i := 0; i < varLen+1; i++ {
		at := varTableAt + (varLen-i)*ew
		rawVarOffsets[i] = readCount(body, at, ew)
	}

	varLenAreaSize := ew // the "columnsInRow" prefix itself

	row := Row{
		Columns:   make([]ColumnValue, len(tdef.Columns)),
		SlotIndex: slot.index,
	}

	for i, col := range tdef.Columns {
		isNull := !bitSet(nullMask, int(col.Number))

		var raw []byte
		var length int
		var ok bool

		if col.IsFixedLength() {
			fixedStart := varLenAreaSize + int(col.OffsetFixed)
			length = int(col.Length)
			if fixedStart >= 0 && fixedStart+length <= len(body) {
				raw = body[fixedStart : fixedStart+length]
				ok = true
			}
		} else {
			voIdx := int(col.OffsetVar)
			if voIdx >= 0 && voIdx+1 < len(rawVarOffsets) {
				vs, ve := rawVarOffsets[voIdx], rawVarOffsets[voIdx+1]
				if ve >= vs && ve <= len(body) {
					raw = body[vs:ve]
					length = ve - vs
					ok = true
				}
			} else if voIdx >= 0 && voIdx < len(rawVarOffsets) {
				length = 0
				ok = true
			}
		}

		if !ok {
			row.Columns[i] = unsupportedValue()
			continue
		}

		if length == 0 {
			if isNull {
				row.Columns[i] = nullValue()
			} else {
				row.Columns[i] = stringValue("")
			}
			continue
		}

		if isNull {
			row.Columns[i] = nullValue()
			continue
		}

		if ColumnType(col.Type) == ColumnTypeMemo {
			row.Columns[i] = decodeMemo(raw, lay.version, cfg, reader)
			continue
		}

		row.Columns[i] = decodeValue(ColumnType(col.Type), raw, lay.version, cfg)
	}

	return row, nil
}

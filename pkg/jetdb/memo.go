package jetdb

import "encoding/binary"

// decodeMemo decodes a type-12 column per spec.md §4.6. raw is the
// column's slice within the row; reader lets the out-of-line ("LVAL")
// path re-enter the data-page decoder on the memo's page.
func decodeMemo(raw []byte, v Version, cfg textConfig, reader PageReader) ColumnValue {
	if len(raw) < 12 {
		return unsupportedValue()
	}

	memoLen := int(raw[0]) | int(raw[1])<<8 | int(raw[2])<<16
	memoMask := raw[3]
	ptr := binary.LittleEndian.Uint32(raw[4:8])
	memoPage := int64(ptr >> 8)
	memoRow := int(ptr & 0xFF)

	switch memoMask {
	case 0x80:
		end := 12 + memoLen
		if end > len(raw) {
			return unsupportedValue()
		}
		return stringValue(decodeText(raw[12:end], v, cfg))
	case 0x40:
		if reader == nil {
			return unsupportedValue()
		}

		page, err := reader.ReadPage(memoPage)
		if err != nil {
			return unsupportedValue()
		}

		slots, err := decodeSlotTable(page, v)
		if err != nil || memoRow >= len(slots) {
			return unsupportedValue()
		}

		slot := slots[memoRow]
		if slot.offset >= slot.next || slot.next > len(page) {
			return unsupportedValue()
		}

		return stringValue(decodeText(page[slot.offset:slot.next], v, cfg))
	default:
		// mask 0x00: long LVAL spanning multiple pages. Not implemented
		// per spec.md §1 Non-goals.
		return unsupportedValue()
	}
}

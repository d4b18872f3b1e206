package jetdb

import (
	"encoding/binary"

	"golang.org/x/exp/slices"
)

const (
	usedPagesMapInline = 0
	usedPagesMapPaged  = 1
)

// decodeUsedPages parses a table's used-pages-map page (and, for the
// "paged" encoding, the pages it points at) into the set of data-page
// indices owned by the table. Order is not significant per spec.md §4.3;
// this returns them sorted ascending so callers get deterministic
// iteration.
func decodeUsedPages(page []byte, v Version, reader PageReader) ([]int64, error) {
	lay := layoutFor(v)

	c := newCursor(page)
	c.skip(lay.usedPgSkip)
	c.u16() // firstPageApplies, unused: index decoding doesn't vary our result
	mapType := c.u8()

	if c.err != nil {
		return nil, c.err
	}

	body := page[c.pos:]

	var pages []int64

	switch mapType {
	case usedPagesMapInline:
		pages = decodeInlineUsedPages(body)
	case usedPagesMapPaged:
		var err error
		pages, err = decodePagedUsedPages(body, len(page), reader)
		if err != nil {
			return nil, err
		}
	default:
		return nil, &MalformedTdefError{Reason: "unknown used-pages-map type"}
	}

	slices.Sort(pages)

	return slices.Compact(pages), nil
}

func decodeInlineUsedPages(body []byte) []int64 {
	if len(body) < 4 {
		return nil
	}

	pageStart := int64(binary.LittleEndian.Uint32(body[:4]))
	bitmap := body[4:]

	return bitmapToPages(bitmap, pageStart)
}

func decodePagedUsedPages(body []byte, pageSize int, reader PageReader) ([]int64, error) {
	numEntries := len(body) / 4
	var pages []int64

	for i := 0; i < numEntries; i++ {
		pageNumber := binary.LittleEndian.Uint32(body[i*4 : i*4+4])
		if pageNumber == 0 {
			continue
		}

		if reader == nil {
			return nil, &MalformedTdefError{Reason: "paged used-pages map requires a reader"}
		}

		mapPage, err := reader.ReadPage(int64(pageNumber))
		if err != nil {
			return nil, err
		}

		if len(mapPage) < 4 {
			continue
		}

		bitmap := mapPage[4:]
		base := int64(i) * int64(pageSize-4) * 8

		pages = append(pages, bitmapToPages(bitmap, base)...)
	}

	return pages, nil
}

// bitmapToPages walks bitmap LSB-first within each byte, returning
// base+bitIndex for every set bit.
func bitmapToPages(bitmap []byte, base int64) []int64 {
	var pages []int64

	for byteIdx, b := range bitmap {
		if b == 0 {
			continue
		}

		for bit := 0; bit < 8; bit++ {
			if b&(1<<uint(bit)) != 0 {
				pages = append(pages, base+int64(byteIdx)*8+int64(bit))
			}
		}
	}

	return pages
}

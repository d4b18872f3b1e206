package jetdb

import "testing"

func TestBitmapToPages(t *testing.T) {
	bitmap := []byte{0b00000101, 0b00000010} // bits 0, 2, 9 set
	got := bitmapToPages(bitmap, 100)
	want := []int64{100, 102, 109}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDecodeInlineUsedPages(t *testing.T) {
	body := make([]byte, 4+1)
	body[0], body[1], body[2], body[3] = 10, 0, 0, 0 // pageStart = 10
	body[4] = 0b00000001                              // bit 0 set

	got := decodeInlineUsedPages(body)
	if len(got) != 1 || got[0] != 10 {
		t.Fatalf("got %v, want [10]", got)
	}
}

func TestDecodeInlineUsedPagesTooShort(t *testing.T) {
	if got := decodeInlineUsedPages([]byte{1, 2, 3}); got != nil {
		t.Fatalf("expected nil for a too-short body, got %v", got)
	}
}

// fakeReader is a minimal PageReader over an in-memory page table, used
// to exercise the paged used-pages-map decoder without a real file.
type fakeReader struct {
	pages    map[int64][]byte
	pageSize int
}

func (f *fakeReader) ReadPage(page int64) ([]byte, error) {
	p, ok := f.pages[page]
	if !ok {
		return nil, ErrIO
	}
	return p, nil
}

func (f *fakeReader) PageSize() int { return f.pageSize }
func (f *fakeReader) Close() error  { return nil }

func TestDecodePagedUsedPages(t *testing.T) {
	pageSize := 12
	mapPage := make([]byte, pageSize)
	mapPage[4] = 0b00000100 // bit 2 set, relative to this map page's base

	reader := &fakeReader{pages: map[int64][]byte{5: mapPage}, pageSize: pageSize}

	body := make([]byte, 4)
	body[0], body[1], body[2], body[3] = 5, 0, 0, 0 // one entry: page 5

	got, err := decodePagedUsedPages(body, pageSize, reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := int64(0)*int64(pageSize-4)*8 + 2

	if len(got) != 1 || got[0] != want {
		t.Fatalf("got %v, want [%d]", got, want)
	}
}

func TestDecodePagedUsedPagesSkipsZeroEntries(t *testing.T) {
	body := []byte{0, 0, 0, 0} // a zero page-number entry means "no page here"

	got, err := decodePagedUsedPages(body, 12, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no pages, got %v", got)
	}
}

func TestDecodeUsedPagesInline(t *testing.T) {
	lay := layoutFor(JET4)

	page := make([]byte, lay.usedPgSkip+2+1+4+1)
	pos := lay.usedPgSkip
	// firstPageApplies (2 bytes, unused by the decoder)
	pos += 2
	page[pos] = usedPagesMapInline
	pos++
	// pageStart = 0
	pos += 4
	page[pos] = 0b00000011 // bits 0 and 1 set

	got, err := decodeUsedPages(page, JET4, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int64{0, 1}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDecodeUsedPagesUnknownMapType(t *testing.T) {
	lay := layoutFor(JET4)

	page := make([]byte, lay.usedPgSkip+2+1)
	page[lay.usedPgSkip+2] = 0x7F // neither inline nor paged

	if _, err := decodeUsedPages(page, JET4, nil); err == nil {
		t.Fatalf("expected an error for an unknown used-pages-map type")
	}
}

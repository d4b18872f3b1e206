package jetdb

import (
	"fmt"
	"log/slog"
	"sync"
)

// Handle composes the page-typed decoders above into the public
// tables()/columns()/rows() surface described in spec.md §4.9.
//
// A Handle is not safe for concurrent use; callers serialize access to
// a single handle or open separate handles, per spec.md §5.
type Handle struct {
	reader PageReader
	config DatabaseConfig
	text   textConfig
	reject bool

	mu      sync.Mutex
	catalog []catalogEntry
	tdefs   map[int64]*Tdef
}

// Option configures a Handle at Open time.
type Option func(*Handle)

// WithCP1252 selects the cp1252 approximation for JET3 single-byte
// text instead of the default latin1 mapping.
func WithCP1252() Option {
	return func(h *Handle) { h.text.cp1252 = true }
}

// WithRejectJET3 makes Open fail with ErrUnsupportedVersion for JET3
// files even though they are fully decodable, per spec.md §7 item 3.
func WithRejectJET3() Option {
	return func(h *Handle) { h.reject = true }
}

// Open builds a Handle over a reader whose header has already been
// decoded. Callers typically get reader/config from a pkg/jetsource
// implementation plus DecodeHeader.
func Open(reader PageReader, config DatabaseConfig, opts ...Option) (*Handle, error) {
	h := &Handle{
		reader: reader,
		config: config,
		tdefs:  make(map[int64]*Tdef),
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.reject && config.Version == JET3 {
		return nil, fmt.Errorf("jetdb: %w", ErrUnsupportedVersion)
	}

	entries, err := decodeCatalog(h)
	if err != nil {
		return nil, err
	}

	h.catalog = entries

	return h, nil
}

// Close releases the underlying PageReader. Idempotent.
func (h *Handle) Close() error {
	if h.reader == nil {
		return nil
	}

	err := h.reader.Close()
	h.reader = nil

	return err
}

// Tables returns user-table names in catalog discovery order.
func (h *Handle) Tables() []string {
	names := make([]string, len(h.catalog))
	for i, e := range h.catalog {
		names[i] = e.Name
	}
	return names
}

// Columns returns table's column names in tdef order.
func (h *Handle) Columns(table string) ([]string, error) {
	entry, ok := h.findTable(table)
	if !ok {
		return nil, &UnknownTableError{Name: table}
	}

	tdef, _, err := h.loadTable(entry.TdefPage)
	if err != nil {
		return nil, err
	}

	return tdef.ColumnNames, nil
}

// Rows decodes every non-deleted row of table, across all of its data
// pages, in used-pages-map discovery order.
func (h *Handle) Rows(table string) ([]Row, error) {
	entry, ok := h.findTable(table)
	if !ok {
		return nil, &UnknownTableError{Name: table}
	}

	_, rows, err := h.loadTable(entry.TdefPage)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// DataPages returns the ascending, deduplicated list of data-page
// indices that hold table's rows, per its used-pages map. Streaming
// transports use this to read the file sequentially rather than
// materializing every row up front; see pkg/jetstream.
func (h *Handle) DataPages(table string) ([]int64, error) {
	entry, ok := h.findTable(table)
	if !ok {
		return nil, &UnknownTableError{Name: table}
	}

	tdef, err := h.tdef(entry.TdefPage)
	if err != nil {
		return nil, err
	}

	mapPage, err := h.reader.ReadPage(int64(tdef.UsedPagesMapPage))
	if err != nil {
		return nil, fmt.Errorf("jetdb: %w: %v", ErrIO, err)
	}

	return decodeUsedPages(mapPage, h.config.Version, h.reader)
}

// DecodePage decodes the non-deleted rows of a single data page of
// table. Combined with DataPages, this lets a caller stream a table
// page-by-page instead of calling Rows, which decodes the whole table.
func (h *Handle) DecodePage(table string, page int64) ([]Row, error) {
	entry, ok := h.findTable(table)
	if !ok {
		return nil, &UnknownTableError{Name: table}
	}

	tdef, err := h.tdef(entry.TdefPage)
	if err != nil {
		return nil, err
	}

	buf, err := h.reader.ReadPage(page)
	if err != nil {
		return nil, fmt.Errorf("jetdb: %w: %v", ErrIO, err)
	}

	return decodeDataPage(buf, tdef, h.config.Version, h.text, h.reader)
}

func (h *Handle) findTable(name string) (catalogEntry, bool) {
	for _, e := range h.catalog {
		if e.Name == name {
			return e, true
		}
	}
	return catalogEntry{}, false
}

// loadTable parses the tdef at tdefPage and decodes every row across
// its used-pages-map data pages. Results are not cached beyond the
// parsed Tdef itself: rows are re-decoded on every call, matching
// spec.md's synchronous, no-write-behind read model.
func (h *Handle) loadTable(tdefPage int64) (*Tdef, []Row, error) {
	tdef, err := h.tdef(tdefPage)
	if err != nil {
		return nil, nil, err
	}

	mapPage, err := h.reader.ReadPage(int64(tdef.UsedPagesMapPage))
	if err != nil {
		return nil, nil, fmt.Errorf("jetdb: %w: %v", ErrIO, err)
	}

	dataPages, err := decodeUsedPages(mapPage, h.config.Version, h.reader)
	if err != nil {
		return nil, nil, err
	}

	var rows []Row

	for _, pageIdx := range dataPages {
		page, err := h.reader.ReadPage(pageIdx)
		if err != nil {
			return nil, nil, fmt.Errorf("jetdb: %w: %v", ErrIO, err)
		}

		pageRows, err := decodeDataPage(page, tdef, h.config.Version, h.text, h.reader)
		if err != nil {
			slog.Debug("jetdb: skipping undecodable data page", "page", pageIdx, "error", err)
			continue
		}

		rows = append(rows, pageRows...)
	}

	return tdef, rows, nil
}

func (h *Handle) tdef(tdefPage int64) (*Tdef, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if t, ok := h.tdefs[tdefPage]; ok {
		return t, nil
	}

	page, err := h.reader.ReadPage(tdefPage)
	if err != nil {
		return nil, fmt.Errorf("jetdb: %w: %v", ErrIO, err)
	}

	tdef, err := decodeTdef(page, h.config.Version, h.reader)
	if err != nil {
		return nil, err
	}

	h.tdefs[tdefPage] = tdef

	return tdef, nil
}

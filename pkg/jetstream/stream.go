// Package jetstream is the streaming delivery transport spec.md §5
// describes as an external concern: it reads a table's data pages
// in used-pages-map order, page by page, and emits decoded rows over a
// websocket connection without materializing the whole table in
// memory. It imposes no new concurrency on the core decoder — each
// page is still decoded synchronously into a []jetdb.Row.
package jetstream

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/s2"
	"github.com/sqids/sqids-go"

	"github.com/martti/tsjetdb/pkg/jetdb"
)

// Frame is one page's worth of decoded rows, sent as a single
// websocket message.
type Frame struct {
	SessionID string      `json:"session_id"`
	Cursor    string      `json:"cursor"`
	Table     string      `json:"table"`
	Page      int64       `json:"page"`
	Rows      []jetdb.Row `json:"rows"`
	Done      bool        `json:"done"`
}

// Session streams one table's rows to a websocket connection.
type Session struct {
	ID    string
	conn  *websocket.Conn
	db    *jetdb.Handle
	table string
	ids   *sqids.Sqids
}

// NewSession prepares a streaming session for table over db. The
// caller supplies an already-upgraded websocket connection.
func NewSession(conn *websocket.Conn, db *jetdb.Handle, table string) (*Session, error) {
	ids, err := sqids.New()
	if err != nil {
		return nil, fmt.Errorf("jetstream: building id encoder: %w", err)
	}

	return &Session{
		ID:    uuid.NewString(),
		conn:  conn,
		db:    db,
		table: table,
		ids:   ids,
	}, nil
}

// Run streams every data page of the session's table, in used-pages-map
// order, as one compressed JSON Frame per websocket message.
func (s *Session) Run() error {
	pages, err := s.db.DataPages(s.table)
	if err != nil {
		return fmt.Errorf("jetstream: listing data pages: %w", err)
	}

	for i, page := range pages {
		rows, err := s.db.DecodePage(s.table, page)
		if err != nil {
			return fmt.Errorf("jetstream: decoding page %d: %w", page, err)
		}

		cursor, err := s.ids.Encode([]uint64{uint64(page), 0})
		if err != nil {
			return fmt.Errorf("jetstream: encoding cursor: %w", err)
		}

		frame := Frame{
			SessionID: s.ID,
			Cursor:    cursor,
			Table:     s.table,
			Page:      page,
			Rows:      rows,
			Done:      i == len(pages)-1,
		}

		if err := s.writeFrame(frame); err != nil {
			return err
		}
	}

	if len(pages) == 0 {
		return s.writeFrame(Frame{SessionID: s.ID, Table: s.table, Done: true})
	}

	return nil
}

func (s *Session) writeFrame(frame Frame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("jetstream: encoding frame: %w", err)
	}

	compressed := s2.Encode(nil, payload)

	return s.conn.WriteMessage(websocket.BinaryMessage, compressed)
}

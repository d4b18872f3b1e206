// Package jet wires the core decoder in pkg/jetdb to the local-file
// source in pkg/jetsource/local, giving the single "open a path, get a
// Handle" entrypoint described in spec.md §6.
package jet

import (
	"github.com/martti/tsjetdb/pkg/jetconfig"
	"github.com/martti/tsjetdb/pkg/jetdb"
	"github.com/martti/tsjetdb/pkg/jetdb/pagecache"
	"github.com/martti/tsjetdb/pkg/jetsource/local"
)

// Open opens the JET database at path and returns a ready-to-use
// Handle. The returned Handle owns the underlying file and must be
// closed by the caller.
func Open(path string, cfg *jetconfig.Config) (*jetdb.Handle, error) {
	if cfg == nil {
		cfg = jetconfig.NewConfig()
	}

	src, err := local.Open(path)
	if err != nil {
		return nil, err
	}

	header, err := src.Header()
	if err != nil {
		src.Close()
		return nil, err
	}

	dbConfig, err := jetdb.DecodeHeader(header)
	if err != nil {
		src.Close()
		return nil, err
	}

	var reader jetdb.PageReader = src.NewPageReader(dbConfig.PageSize)

	if cfg.PageCacheSize > 0 {
		reader = pagecache.New(reader, cfg.PageCacheSize)
	}

	var opts []jetdb.Option
	if cfg.IsCP1252() {
		opts = append(opts, jetdb.WithCP1252())
	}
	if cfg.RejectJET3 {
		opts = append(opts, jetdb.WithRejectJET3())
	}

	handle, err := jetdb.Open(reader, dbConfig, opts...)
	if err != nil {
		reader.Close()
		return nil, err
	}

	return handle, nil
}

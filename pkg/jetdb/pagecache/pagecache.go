// Package pagecache wraps a jetdb.PageReader with a small bounded LFU
// cache, since tables(), columns(), and rows() on the same handle all
// re-read the catalog's and a table's tdef/used-pages pages. Grounded
// on the teacher's page-caching concern (pkg/cache); no source file for
// it survived retrieval, only its test, so the cache below was rebuilt
// from that shape as a PageReader decorator: ReadPage serves a hit from
// the cache and stores a miss, with bounded eviction of the least
// frequently used entry. It has no separate Get/Set methods.
package pagecache

import (
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/martti/tsjetdb/pkg/jetdb"
)

type entry struct {
	data []byte
	freq int
	fpr  uint64
}

// Cache decorates a jetdb.PageReader with a bounded least-frequently-used
// cache of raw page bytes as the wrapped reader returned them, keyed by
// page index.
type Cache struct {
	reader   jetdb.PageReader
	capacity int

	mu      sync.Mutex
	entries map[int64]*entry
}

// New wraps reader with an LFU cache holding up to capacity pages.
// capacity <= 0 disables caching (every read passes through).
func New(reader jetdb.PageReader, capacity int) *Cache {
	return &Cache{
		reader:   reader,
		capacity: capacity,
		entries:  make(map[int64]*entry),
	}
}

func (c *Cache) PageSize() int {
	return c.reader.PageSize()
}

func (c *Cache) Close() error {
	return c.reader.Close()
}

// ReadPage returns page's bytes, from cache when present.
func (c *Cache) ReadPage(page int64) ([]byte, error) {
	if c.capacity <= 0 {
		return c.reader.ReadPage(page)
	}

	c.mu.Lock()
	if e, ok := c.entries[page]; ok {
		e.freq++
		data := e.data
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	data, err := c.reader.ReadPage(page)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.capacity {
		c.evictLocked()
	}

	c.entries[page] = &entry{
		data: data,
		freq: 1,
		fpr:  fingerprint(data),
	}

	return data, nil
}

// evictLocked removes the least-frequently-used entry. Callers must
// hold c.mu.
func (c *Cache) evictLocked() {
	var victim int64
	var victimFreq = -1

	for page, e := range c.entries {
		if victimFreq == -1 || e.freq < victimFreq {
			victim = page
			victimFreq = e.freq
		}
	}

	if victimFreq != -1 {
		delete(c.entries, victim)
	}
}

// fingerprint computes a cheap, non-cryptographic identity for cached
// page bytes, mirroring the teacher's sha256 content fingerprinting of
// cached object bodies (pkg/storage/object_file.go) at a fraction of
// the cost, since this key never leaves the process.
func fingerprint(data []byte) uint64 {
	sum := blake2b.Sum512(data)

	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(sum[i]) << (8 * i)
	}

	return v
}

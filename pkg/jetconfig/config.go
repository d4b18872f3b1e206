// Package jetconfig holds the handful of environment-driven knobs that
// shape how a jetdb handle is opened, independent of the file being
// read.
package jetconfig

import (
	"os"
	"strconv"
)

const (
	TextEncodingLatin1 = "latin1"
	TextEncodingCP1252 = "cp1252"
)

// Config is a flat struct of environment-derived settings, in the
// shape the teacher's own config package uses.
type Config struct {
	// Debug is read from JETDB_DEBUG. Nothing in this module consults
	// it: jet.Open does not change slog's level or handler from it.
	Debug bool

	// RejectJET3 implements the UnsupportedVersion policy error: JET3
	// is fully decodable, but some deployments want to refuse it
	// anyway.
	RejectJET3 bool

	// TextEncoding selects the JET3 single-byte text approximation.
	// One of TextEncodingLatin1 (default) or TextEncodingCP1252.
	TextEncoding string

	// PageCacheSize bounds the optional LFU page cache. Zero disables
	// caching.
	PageCacheSize int
}

func env(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return defaultValue
}

func envBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)

	if v == "" {
		return defaultValue
	}

	return v == "true" || v == "1"
}

func envInt(key string, defaultValue int) int {
	v := os.Getenv(key)

	if v == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}

	return n
}

// NewConfig builds a Config from the process environment, falling back
// to defaults for anything unset.
func NewConfig() *Config {
	return &Config{
		Debug:         envBool("JETDB_DEBUG", false),
		RejectJET3:    envBool("JETDB_REJECT_JET3", false),
		TextEncoding:  env("JETDB_TEXT_ENCODING", TextEncodingLatin1),
		PageCacheSize: envInt("JETDB_PAGE_CACHE_SIZE", 64),
	}
}

// IsCP1252 reports whether the configured text encoding is cp1252
// rather than the default latin1 approximation.
func (c *Config) IsCP1252() bool {
	return c != nil && c.TextEncoding == TextEncodingCP1252
}

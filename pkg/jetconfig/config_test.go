package jetconfig_test

import (
	"testing"

	"github.com/martti/tsjetdb/pkg/jetconfig"
)

func TestNewConfigDefaults(t *testing.T) {
	c := jetconfig.NewConfig()

	if c == nil {
		t.Fatalf("expected a config instance")
	}

	if c.TextEncoding != jetconfig.TextEncodingLatin1 {
		t.Fatalf("expected default text encoding %q, got %q", jetconfig.TextEncodingLatin1, c.TextEncoding)
	}

	if c.RejectJET3 {
		t.Fatalf("expected RejectJET3 to default to false")
	}

	if c.IsCP1252() {
		t.Fatalf("expected IsCP1252 to be false by default")
	}

	if c.PageCacheSize != 64 {
		t.Fatalf("expected default page cache size 64, got %d", c.PageCacheSize)
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("JETDB_TEXT_ENCODING", jetconfig.TextEncodingCP1252)
	t.Setenv("JETDB_REJECT_JET3", "true")
	t.Setenv("JETDB_DEBUG", "1")
	t.Setenv("JETDB_PAGE_CACHE_SIZE", "128")

	c := jetconfig.NewConfig()

	if !c.IsCP1252() {
		t.Fatalf("expected cp1252 text encoding from env")
	}

	if !c.RejectJET3 {
		t.Fatalf("expected RejectJET3 true from env")
	}

	if !c.Debug {
		t.Fatalf("expected Debug true from env")
	}

	if c.PageCacheSize != 128 {
		t.Fatalf("expected page cache size 128 from env, got %d", c.PageCacheSize)
	}
}

func TestNewConfigFromEnvInvalidPageCacheSize(t *testing.T) {
	t.Setenv("JETDB_PAGE_CACHE_SIZE", "not-a-number")

	c := jetconfig.NewConfig()

	if c.PageCacheSize != 64 {
		t.Fatalf("expected invalid page cache size to fall back to default 64, got %d", c.PageCacheSize)
	}
}

package cache

import (
	"path/filepath"
	"testing"
)

func TestKeyIsStableAndBackendSensitive(t *testing.T) {
	src := []byte("var input a : [2];")
	k1 := Key(src, "text")
	k2 := Key(src, "text")
	if k1 != k2 {
		t.Fatalf("Key must be deterministic for identical input")
	}
	if Key(src, "gorgonia") == k1 {
		t.Fatalf("Key must differ across backends for the same source")
	}
	if Key([]byte("different"), "text") == k1 {
		t.Fatalf("Key must differ for different source bytes")
	}
}

func TestStoreAndLookupRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	key := Key([]byte("source"), "text")
	if _, hit, err := c.Lookup(key); err != nil || hit {
		t.Fatalf("Lookup on an empty cache should miss cleanly, got hit=%v err=%v", hit, err)
	}

	if err := c.Store(key, "rendered output"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	out, hit, err := c.Lookup(key)
	if err != nil || !hit {
		t.Fatalf("Lookup after Store should hit, got hit=%v err=%v", hit, err)
	}
	if out != "rendered output" {
		t.Fatalf("Lookup returned %q, want %q", out, "rendered output")
	}
}

func TestStoreOverwritesExistingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	key := Key([]byte("source"), "text")
	if err := c.Store(key, "first"); err != nil {
		t.Fatalf("first Store failed: %v", err)
	}
	if err := c.Store(key, "second"); err != nil {
		t.Fatalf("second Store failed: %v", err)
	}

	out, _, _ := c.Lookup(key)
	if out != "second" {
		t.Fatalf("Lookup after overwrite = %q, want %q", out, "second")
	}
}

package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type payload struct {
	Value string `json:"value"`
}

func TestDisk_PutGetRoundTrip(t *testing.T) {
	d, err := NewDisk(t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}

	var out payload
	if d.Get("AAPL", &out) {
		t.Fatalf("expected miss on empty cache")
	}

	d.Put("AAPL", payload{Value: "x"})
	if !d.Get("AAPL", &out) || out.Value != "x" {
		t.Fatalf("expected hit with value 'x', got %+v", out)
	}
}

func TestDisk_Expiry(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDisk(dir, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}

	d.Put("MSFT", payload{Value: "y"})

	// Age the entry past its TTL instead of sleeping.
	old := time.Now().Add(-time.Second)
	if err := os.Chtimes(filepath.Join(dir, "MSFT.json"), old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	var out payload
	if d.Get("MSFT", &out) {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestDisk_KeySanitization(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDisk(dir, time.Minute)
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}

	d.Put("BRK/B", payload{Value: "z"})

	var out payload
	if !d.Get("BRK/B", &out) || out.Value != "z" {
		t.Fatalf("expected hit for sanitized key, got %+v", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "BRK_B.json")); err != nil {
		t.Fatalf("expected sanitized file name: %v", err)
	}
}

func TestDisk_NilAndDisabled(t *testing.T) {
	var d *Disk
	var out payload
	if d.Get("k", &out) {
		t.Fatalf("nil cache must miss")
	}
	d.Put("k", payload{}) // must not panic
	if err := d.Ping(); err != nil {
		t.Fatalf("nil cache ping: %v", err)
	}

	zero, err := NewDisk(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	zero.Put("k", payload{Value: "v"})
	if zero.Get("k", &out) {
		t.Fatalf("ttl<=0 disables the cache")
	}
}

func TestNewDisk_EmptyDir(t *testing.T) {
	if _, err := NewDisk("", time.Minute); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}

package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tranvictor/allowance/util/cache"
)

func TestSetThenGetAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.json")

	c := cache.NewSimpleCache(path)
	if _, found := c.Get("0xABC_symbol"); found {
		t.Fatal("fresh cache should be empty")
	}
	if err := c.Set("0xABC_symbol", "FOO"); err != nil {
		t.Fatalf("Set: %s", err)
	}

	reopened := cache.NewSimpleCache(path)
	value, found := reopened.Get("0xabc_SYMBOL")
	if !found || value != "FOO" {
		t.Fatalf("Get after reopen = %q, %v; want FOO, true", value, found)
	}
}

func TestCorruptFileIsTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := cache.NewSimpleCache(path).Set("k", "v"); err != nil {
		t.Fatalf("Set: %s", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := cache.NewSimpleCache(path)
	if _, found := c.Get("k"); found {
		t.Fatal("corrupt cache should read as empty")
	}
	if err := c.Set("k", "w"); err != nil {
		t.Fatalf("Set over corrupt file: %s", err)
	}
	if value, _ := cache.NewSimpleCache(path).Get("k"); value != "w" {
		t.Fatalf("Get = %q, want w", value)
	}
}

package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLLMCache_SaveGet(t *testing.T) {
	tmp := t.TempDir()
	c := &LLMCache{Dir: tmp}
	key := KeyFrom("https://api.example/v1", "sk-test")
	data := []byte(`["gpt-4","gpt-4o"]`)
	if err := c.Save(context.Background(), key, data); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := c.Get(context.Background(), key)
	if err != nil || !ok {
		t.Fatalf("get: %v ok=%v", err, ok)
	}
	if string(got) != string(data) {
		t.Fatalf("mismatch: %s", got)
	}
}

func TestLLMCache_MissIsNotError(t *testing.T) {
	c := &LLMCache{Dir: t.TempDir()}
	_, ok, err := c.Get(context.Background(), KeyFrom("a", "b"))
	if err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
}

func TestLLMCache_Delete(t *testing.T) {
	c := &LLMCache{Dir: t.TempDir()}
	key := KeyFrom("a", "b")
	if err := c.Save(context.Background(), key, []byte("1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := c.Delete(context.Background(), key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := c.Get(context.Background(), key); ok {
		t.Fatal("expected entry removed")
	}
	if err := c.Delete(context.Background(), key); err != nil {
		t.Fatalf("second delete should succeed: %v", err)
	}
}

func TestKeyFrom_DoesNotLeakInputs(t *testing.T) {
	k := KeyFrom("https://api.example/v1", "sk-secret")
	if len(k) != 64 {
		t.Fatalf("unexpected key length %d", len(k))
	}
	if k == KeyFrom("https://api.example/v1", "sk-other") {
		t.Fatal("different credentials must not share a key")
	}
}

func TestLLMCache_StrictPerms(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "llm")
	c := &LLMCache{Dir: dir, StrictPerms: true}
	key := KeyFrom("scope", "subject")
	if err := c.Save(context.Background(), key, []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat dir: %v", err)
	}
	if got := info.Mode() & 0o777; got != 0o700 {
		t.Fatalf("dir mode = %o, want 0700", got)
	}
	finfo, err := os.Stat(filepath.Join(dir, key+".json"))
	if err != nil {
		t.Fatalf("stat file: %v", err)
	}
	if got := finfo.Mode() & 0o777; got != 0o600 {
		t.Fatalf("file mode = %o, want 0600", got)
	}
}

func TestPurgeLLMCacheByAge(t *testing.T) {
	dir := t.TempDir()
	c := &LLMCache{Dir: dir}
	oldKey, newKey := KeyFrom("m", "old"), KeyFrom("m", "new")
	for _, k := range []string{oldKey, newKey} {
		if err := c.Save(context.Background(), k, []byte("x")); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(filepath.Join(dir, oldKey+".json"), past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	removed, err := PurgeLLMCacheByAge(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed=%d want 1", removed)
	}
	if _, ok, _ := c.Get(context.Background(), oldKey); ok {
		t.Fatal("expected old entry purged")
	}
	if _, ok, _ := c.Get(context.Background(), newKey); !ok {
		t.Fatal("expected fresh entry kept")
	}
}

func TestPurgeLLMCacheByAge_MissingDir(t *testing.T) {
	n, err := PurgeLLMCacheByAge(filepath.Join(t.TempDir(), "nope"), time.Hour)
	if err != nil || n != 0 {
		t.Fatalf("expected no-op, got n=%d err=%v", n, err)
	}
}

func TestClearDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := &LLMCache{Dir: dir}
	if err := c.Save(context.Background(), "k", []byte("x")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := ClearDir(dir); err != nil {
		t.Fatalf("clear: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty dir, got %d entries", len(entries))
	}
	if err := ClearDir("  "); err == nil {
		t.Fatal("expected error for blank dir")
	}
}

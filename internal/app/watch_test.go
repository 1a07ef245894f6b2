package app

import (
	"context"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestWatch_RelinksOnEdit(t *testing.T) {
	srv, chats := stubLLM(t, replyWith("Paris\nRome"))
	a := newTestApp(t, srv, func(c *Config) { c.WatchDebounce = 50 * time.Millisecond })
	note := writeNote(t, "Paris in spring.\n")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx, note) }()
	defer func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("watch did not stop")
		}
	}()

	if !waitFor(t, 5*time.Second, func() bool { return strings.Contains(readNote(t, note), "[[Paris]]") }) {
		t.Fatalf("initial run did not link: %q", readNote(t, note))
	}
	// Let the event from our own write settle so it is not mistaken for an edit.
	time.Sleep(200 * time.Millisecond)
	callsAfterFirst := atomic.LoadInt32(chats)
	if callsAfterFirst != 1 {
		t.Fatalf("own write triggered a run: %d calls", callsAfterFirst)
	}

	edited := readNote(t, note) + "Rome in autumn.\n"
	if err := os.WriteFile(note, []byte(edited), 0o600); err != nil {
		t.Fatalf("edit note: %v", err)
	}
	if !waitFor(t, 5*time.Second, func() bool { return strings.Contains(readNote(t, note), "[[Rome]]") }) {
		t.Fatalf("edit did not relink: %q", readNote(t, note))
	}
	if got := readNote(t, note); got != "[[Paris]] in spring.\n[[Rome]] in autumn.\n" {
		t.Fatalf("note=%q", got)
	}
}

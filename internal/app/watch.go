package app

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watch runs once immediately and then again whenever the note at path is
// written, until ctx is done. Bursts of events are coalesced by the
// configured debounce, runs never overlap, and the write performed by a run
// does not trigger another one. Provider errors are logged and watching
// continues.
func (a *App) Watch(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve note path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	// Watch the directory: editors often save by renaming a temp file over
	// the note, which drops a watch placed on the file itself.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	log.Info().Str("note", abs).Dur("debounce", a.cfg.WatchDebounce).Msg("watching note")

	var lastWritten [sha256.Size]byte
	runOnce := func() {
		b, err := os.ReadFile(abs)
		if err != nil {
			log.Warn().Err(err).Str("note", abs).Msg("read note failed")
			return
		}
		if sha256.Sum256(b) == lastWritten {
			log.Debug().Str("note", abs).Msg("skipping own write")
			return
		}
		out, err := a.Run(ctx, abs)
		if err != nil {
			return
		}
		if out.Written {
			lastWritten = sha256.Sum256([]byte(out.Text))
		}
	}
	runOnce()

	timer := time.NewTimer(a.cfg.WatchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			timer.Reset(a.cfg.WatchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")
		case <-timer.C:
			runOnce()
		}
	}
}

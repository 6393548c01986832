// internal/watcher/watcher.go
package watcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Tap is one RFID tap record written by the BLE bridge:
// {"uid": "...", "mcc": "5411", "ts": 1700000000}.
type Tap struct {
	UID string
	MCC string
	TS  int64
}

// UnmarshalJSON accepts mcc as either a string or a bare number; some
// bridge builds emit the fallback code unquoted.
func (t *Tap) UnmarshalJSON(data []byte) error {
	var raw struct {
		UID string          `json:"uid"`
		MCC json.RawMessage `json:"mcc"`
		TS  int64           `json:"ts"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.UID = raw.UID
	t.TS = raw.TS
	if len(raw.MCC) > 0 {
		var s string
		if err := json.Unmarshal(raw.MCC, &s); err == nil {
			t.MCC = s
			return nil
		}
		var n int64
		if err := json.Unmarshal(raw.MCC, &n); err != nil {
			return fmt.Errorf("mcc is neither string nor number: %s", raw.MCC)
		}
		t.MCC = strconv.FormatInt(n, 10)
	}
	return nil
}

// Handler processes one new tap. Returning an error leaves the tap
// unacknowledged so the next file event retries it.
type Handler func(ctx context.Context, tap Tap) error

// Watcher tails a single tap file and invokes the handler once per new
// timestamp. The last processed timestamp is held here, per watcher
// instance, so concurrent watchers never share state.
type Watcher struct {
	path    string
	handler Handler
	lastTS  int64
}

func New(path string, handler Handler) *Watcher {
	return &Watcher{path: path, handler: handler}
}

// Run blocks watching the file's directory until ctx is cancelled. The
// directory is watched rather than the file itself so atomic
// rename-over-write still delivers events.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	slog.Info("watching tap file", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Give the bridge a moment to finish the write.
			time.Sleep(100 * time.Millisecond)
			w.processFile(ctx)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) processFile(ctx context.Context) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		slog.Error("read tap file", "error", err, "path", w.path)
		return
	}

	var tap Tap
	if err := json.Unmarshal(data, &tap); err != nil {
		slog.Error("malformed tap file", "error", err, "path", w.path)
		return
	}

	if tap.TS == w.lastTS {
		// Same tap re-delivered (editors and bridges both fire multiple
		// events per write); skip it.
		return
	}

	if err := w.handler(ctx, tap); err != nil {
		slog.Error("tap handler failed, will retry on next change", "error", err, "uid", tap.UID, "ts", tap.TS)
		return
	}
	w.lastTS = tap.TS
}

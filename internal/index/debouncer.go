package index

import (
	"context"
	"os"
	"sync"
	"time"
)

// tickInterval is the wake-tick cadence the debouncer polls at; kept
// well under any reasonable debounce window so promotion latency is
// bounded by debounceMs, not by the tick itself.
const tickInterval = 50 * time.Millisecond

// debouncer coalesces rapid-fire raw events per path into a single
// promoted event once the path has been quiet for debounceMs. Keyed by
// absolute path; each raw event refreshes the path's last-seen clock
// rather than emitting immediately, which absorbs editor save-swarms
// (write, rename, write again) into one re-index per settle.
type debouncer struct {
	mu         sync.Mutex
	lastSeen   map[string]time.Time
	debounceMs int

	out chan Event
}

func newDebouncer(debounceMs int, out chan Event) *debouncer {
	if debounceMs <= 0 {
		debounceMs = 150
	}
	return &debouncer{
		lastSeen:   make(map[string]time.Time),
		debounceMs: debounceMs,
		out:        out,
	}
}

// record updates the last-seen clock for path. The event's Kind is not
// stored: at promotion time the debouncer re-derives Deleted vs
// Changed from whether the path still exists (Created is never
// emitted), so a create-then-
// delete-then-recreate swarm within one window still resolves to
// whatever is actually on disk when it settles.
func (d *debouncer) record(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastSeen[path] = time.Now()
}

// run polls at tickInterval, promoting any path whose last-seen clock
// is older than debounceMs into a promoted event on out. Stops when ctx
// is cancelled; does not attempt to flush pending paths on shutdown,
// matching the teacher's deliberate choice not to risk a deadlock
// against a concurrent close.
func (d *debouncer) run(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.promoteStale()
		}
	}
}

func (d *debouncer) promoteStale() {
	cutoff := time.Duration(d.debounceMs) * time.Millisecond

	d.mu.Lock()
	var ready []string
	now := time.Now()
	for path, seen := range d.lastSeen {
		if now.Sub(seen) >= cutoff {
			ready = append(ready, path)
		}
	}
	for _, path := range ready {
		delete(d.lastSeen, path)
	}
	d.mu.Unlock()

	for _, path := range ready {
		kind := Changed
		if _, err := os.Stat(path); err != nil {
			kind = Deleted
		}
		d.out <- Event{Path: path, Kind: kind}
	}
}

// Package index implements the Incremental Indexer: a filesystem
// watcher, a debouncer, and a per-file re-indexer wired together by
// channels, grounded on original_source/crates/arbor-server/src/
// sync_server.rs's run_file_watcher/run_background_indexer three-stage
// pipeline and on the teacher's internal/indexing eventDebouncer shape.
package index

// Kind identifies what happened to a watched path.
type Kind int

const (
	Changed Kind = iota
	Created
	Deleted
)

func (k Kind) String() string {
	switch k {
	case Created:
		return "Created"
	case Deleted:
		return "Deleted"
	default:
		return "Changed"
	}
}

// Event is a raw or promoted filesystem notification for one absolute
// path.
type Event struct {
	Path string
	Kind Kind
}

// Delta describes one committed re-index, handed to whatever consumes
// the incremental indexer's output (the broadcast hub wraps this into
// a GraphUpdate with is_delta = true).
type Delta struct {
	Path      string
	Kind      Kind
	NodeCount int
	EdgeCount int
	Err       error
}

package carousel

import (
	"context"
	"sync"
)

// Loader fetches a panel source and reports its natural size. A returned error
// is not fatal: the source is recorded as loaded with auto sizing.
type Loader interface {
	Load(ctx context.Context, source string) (Dimensions, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, source string) (Dimensions, error)

func (f LoaderFunc) Load(ctx context.Context, source string) (Dimensions, error) {
	return f(ctx, source)
}

// LoadResult is one completed load, delivered by Tracker.Drain.
type LoadResult struct {
	Source     string
	Dimensions Dimensions
	Err        error

	generation int
}

// TrackerStats summarises tracker activity.
type TrackerStats struct {
	Requested int
	Loaded    int
	Failed    int
	Pending   int
}

// Tracker records which sources have loaded and issues loads for the missing
// sources around the current index. Loads run in background goroutines; their
// results are queued and applied only when the owner calls Drain, so the
// loaded set is never mutated concurrently with readers.
type Tracker struct {
	loader  Loader
	ctx     context.Context
	cancel  context.CancelFunc
	results chan LoadResult
	wg      sync.WaitGroup

	loaded     map[string]Dimensions
	pending    map[string]bool
	generation int
	stats      TrackerStats
}

// NewTracker creates a tracker backed by loader. A nil loader marks every
// source loaded with auto sizing without any I/O.
func NewTracker(loader Loader) *Tracker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Tracker{
		loader:  loader,
		ctx:     ctx,
		cancel:  cancel,
		results: make(chan LoadResult, 64),
		loaded:  make(map[string]Dimensions),
		pending: make(map[string]bool),
	}
}

// Missing returns the sources within the prefetch window of k panels around
// current that are neither loaded nor in flight, in window order.
func (t *Tracker) Missing(panels []Panel, current, k int) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, idx := range prefetchIndices(current, len(panels), k) {
		src := panels[idx].Source
		if src == "" || seen[src] {
			continue
		}
		seen[src] = true
		if _, ok := t.loaded[src]; ok || t.pending[src] {
			continue
		}
		missing = append(missing, src)
	}
	return missing
}

// Fetch issues one load per missing source and returns the sources issued.
func (t *Tracker) Fetch(panels []Panel, current, k int) []string {
	if t.ctx.Err() != nil {
		return nil
	}
	missing := t.Missing(panels, current, k)
	for _, src := range missing {
		t.stats.Requested++
		if t.loader == nil {
			t.loaded[src] = Dimensions{Auto: true}
			t.stats.Loaded++
			continue
		}
		t.pending[src] = true
		t.wg.Add(1)
		go t.load(t.generation, src)
	}
	if t.loader == nil {
		// Nothing is in flight; callers treat the window as ready.
		return nil
	}
	return missing
}

func (t *Tracker) load(generation int, src string) {
	defer t.wg.Done()
	dims, err := t.loader.Load(t.ctx, src)
	if err != nil {
		dims = Dimensions{Auto: true}
	}
	if dims.Width <= 0 || dims.Height <= 0 {
		dims.Auto = true
	}
	select {
	case t.results <- LoadResult{Source: src, Dimensions: dims, Err: err, generation: generation}:
	case <-t.ctx.Done():
	}
}

// Drain applies every completed load and returns them. Results belonging to a
// panel set that has since been replaced are dropped.
func (t *Tracker) Drain() []LoadResult {
	var out []LoadResult
	for {
		select {
		case r := <-t.results:
			if r.generation != t.generation {
				continue
			}
			delete(t.pending, r.Source)
			t.loaded[r.Source] = r.Dimensions
			if r.Err != nil {
				t.stats.Failed++
			} else {
				t.stats.Loaded++
			}
			out = append(out, r)
		default:
			return out
		}
	}
}

// Prune forgets sources that no longer appear in panels and abandons loads in
// flight for the previous panel set.
func (t *Tracker) Prune(panels []Panel) {
	keep := sourcesOf(panels)
	for src := range t.loaded {
		if _, ok := keep[src]; !ok {
			delete(t.loaded, src)
		}
	}
	t.generation++
	clear(t.pending)
}

// Dimensions returns the recorded size of src.
func (t *Tracker) Dimensions(src string) (Dimensions, bool) {
	d, ok := t.loaded[src]
	return d, ok
}

// Loaded returns the loaded set. Callers must not modify it.
func (t *Tracker) Loaded() map[string]Dimensions {
	return t.loaded
}

// Stats returns a copy of the tracker counters.
func (t *Tracker) Stats() TrackerStats {
	s := t.stats
	s.Pending = len(t.pending)
	return s
}

// Close cancels in-flight loads. Results arriving afterwards are discarded.
func (t *Tracker) Close() {
	t.cancel()
}

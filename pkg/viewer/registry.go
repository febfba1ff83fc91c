package viewer

import (
	"sync"

	"github.com/supercuration/supercon/pkg/models"
)

// Registry holds the last committed view of every document. Each request for a document
// is given a generation; only the view of the latest generation may be committed, so a
// slow request can never overwrite the result of a newer one.
type Registry struct {
	mu          sync.Mutex
	next        uint64
	generations map[string]uint64
	views       map[string]*View
	order       []string
}

func NewRegistry() *Registry {
	return &Registry{
		generations: make(map[string]uint64),
		views:       make(map[string]*View),
	}
}

// Begin starts a request for hash and returns its generation.
func (r *Registry) Begin(hash string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.generations[hash] = r.next
	return r.next
}

// Current reports whether generation is still the latest request for hash.
func (r *Registry) Current(hash string, generation uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generations[hash] == generation
}

// Commit publishes view unless a newer request for the same document has begun.
func (r *Registry) Commit(view *View) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.generations[view.Hash] != view.Generation {
		return models.ErrStaleRequest
	}
	if _, ok := r.views[view.Hash]; !ok {
		r.order = append(r.order, view.Hash)
	}
	r.views[view.Hash] = view
	return nil
}

// Get returns the committed view of hash.
func (r *Registry) Get(hash string) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	view, ok := r.views[hash]
	if !ok {
		return nil, models.NewNotFoundError("document " + hash)
	}
	return view, nil
}

// Views returns the committed views, oldest document first.
func (r *Registry) Views() []*View {
	r.mu.Lock()
	defer r.mu.Unlock()

	views := make([]*View, 0, len(r.order))
	for _, hash := range r.order {
		views = append(views, r.views[hash])
	}
	return views
}

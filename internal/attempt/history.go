package attempt

import (
	"context"
	"sync"
)

// Repo is the persistence boundary for the attempt history. Implementations
// must tolerate a corrupted stored blob by returning an empty history rather
// than an error.
type Repo interface {
	Load(ctx context.Context) ([]Attempt, error)
	Save(ctx context.Context, attempts []Attempt) error
	Clear(ctx context.Context) error
}

// History is the ordered, bounded collection of attempt records, newest
// first. Every mutation re-persists the full store through the Repo so a
// restart mid-enrichment resumes from the last persisted state.
//
// All methods are safe for concurrent use; the enrichment phases patch
// records from goroutines while the UI reads.
type History struct {
	mu       sync.Mutex
	repo     Repo
	attempts []Attempt
}

// NewHistory creates an empty history backed by repo.
func NewHistory(repo Repo) *History {
	return &History{repo: repo}
}

// Load replaces the in-memory state with the persisted one.
func (h *History) Load(ctx context.Context) error {
	attempts, err := h.repo.Load(ctx)
	if err != nil {
		return err
	}
	if len(attempts) > HistoryCap {
		attempts = attempts[:HistoryCap]
	}

	h.mu.Lock()
	h.attempts = attempts
	h.mu.Unlock()
	return nil
}

// Insert prepends a and truncates to the capacity, then persists. The write
// completes before Insert returns so the record is visible before any
// enrichment begins.
func (h *History) Insert(ctx context.Context, a Attempt) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.attempts = append([]Attempt{a}, h.attempts...)
	if len(h.attempts) > HistoryCap {
		h.attempts = h.attempts[:HistoryCap]
	}
	return h.repo.Save(ctx, h.attempts)
}

// Update applies fn to the record with the given id against the current
// state and persists the result. It reports whether the record was found;
// a miss (evicted or cleared while an enrichment call was in flight) is not
// an error and writes nothing.
func (h *History) Update(ctx context.Context, id string, fn func(*Attempt)) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.attempts {
		if h.attempts[i].ID == id {
			fn(&h.attempts[i])
			return true, h.repo.Save(ctx, h.attempts)
		}
	}
	return false, nil
}

// All returns a snapshot of the current records, newest first. Each
// record is deep-copied so callers can hold it across later Update
// patches.
func (h *History) All() []Attempt {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Attempt, len(h.attempts))
	for i := range h.attempts {
		out[i] = h.attempts[i].Clone()
	}
	return out
}

// Len returns the number of stored records.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.attempts)
}

// Clear empties the store and removes the persisted blob.
func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.attempts = nil
	return h.repo.Clear(ctx)
}

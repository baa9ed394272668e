package session

import (
	"sync"

	"github.com/abhisek/lingua/internal/attempt"
)

// DifficultyTracker holds the working difficulty for each practice
// module. Levels are session-scoped: every launch starts at Medium.
type DifficultyTracker struct {
	mu     sync.Mutex
	levels map[attempt.ModuleKind]attempt.Difficulty
}

// NewDifficultyTracker creates a tracker with every module at Medium.
func NewDifficultyTracker() *DifficultyTracker {
	return &DifficultyTracker{
		levels: make(map[attempt.ModuleKind]attempt.Difficulty),
	}
}

// Get returns the current difficulty for the module.
func (t *DifficultyTracker) Get(module attempt.ModuleKind) attempt.Difficulty {
	t.mu.Lock()
	defer t.mu.Unlock()
	if d, ok := t.levels[module]; ok {
		return d
	}
	return attempt.Medium
}

// Set records a new difficulty for the module.
func (t *DifficultyTracker) Set(module attempt.ModuleKind, d attempt.Difficulty) {
	if !d.Valid() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.levels[module] = d
}

package attempt

import (
	"context"
	"sync"
)

// Enricher is the slice of the content provider the controller depends on
// for post-hoc commentary.
type Enricher interface {
	// OverallSuggestion returns a short study suggestion for a completed
	// batch.
	OverallSuggestion(ctx context.Context, module ModuleKind, score, totalItems int, difficulty Difficulty) (string, error)

	// TipsForIncorrect returns per-question tips keyed by question id. A
	// partial result (fewer entries than requested) is valid.
	TipsForIncorrect(ctx context.Context, details []IncorrectDetail) (map[string]string, error)
}

// Controller records completed batches and drives their two-phase
// asynchronous enrichment. The record is inserted and persisted before
// either phase starts; each phase patches only its own fields through
// History.Update so the phases cannot lose each other's writes regardless
// of completion order.
type Controller struct {
	history  *History
	enricher Enricher

	// notify, if set, is invoked after each persisted enrichment patch so
	// the UI can refresh. It must be safe to call from any goroutine.
	notify func()

	wg sync.WaitGroup
}

// NewController creates a controller writing to history and enriching
// through enricher. notify may be nil; a nil enricher resolves both
// phases with their failure sentinels.
func NewController(history *History, enricher Enricher, notify func()) *Controller {
	return &Controller{history: history, enricher: enricher, notify: notify}
}

// CompleteAttempt records a finished batch and kicks off enrichment. It
// returns the inserted record and true, or a zero Attempt and false when
// nothing was recorded: an invalid module, or the zero-valued (score=0,
// totalItems=0) signal a session sends when the user abandons a set.
//
// The insert is persisted synchronously; the suggestion phase and, for
// choice modules with wrong answers, the tips phase then resolve in the
// background. Enrichment failures are absorbed into the record as fixed
// sentinel texts, never surfaced as errors.
func (c *Controller) CompleteAttempt(ctx context.Context, module ModuleKind, score, totalItems int, difficulty Difficulty, incorrect []IncorrectDetail) (Attempt, bool) {
	if !module.Valid() {
		return Attempt{}, false
	}
	if score == 0 && totalItems == 0 {
		return Attempt{}, false
	}

	a := New(module, score, totalItems, difficulty, incorrect)
	if err := c.history.Insert(ctx, a); err != nil {
		return Attempt{}, false
	}

	// The stored record is patched in place by the phases below; hand
	// out a detached copy instead.
	snapshot := a.Clone()

	c.wg.Add(1)
	go c.enrichSuggestion(ctx, a)

	if module.Choice() && len(incorrect) > 0 {
		c.wg.Add(1)
		go c.enrichTips(ctx, a.ID, snapshot.DetailedFeedback)
	}

	return snapshot, true
}

// Wait blocks until all in-flight enrichment phases have resolved. Used at
// shutdown so pending patches still reach the store.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) enrichSuggestion(ctx context.Context, a Attempt) {
	defer c.wg.Done()

	text := SuggestionUnavailable
	if c.enricher != nil {
		if got, err := c.enricher.OverallSuggestion(ctx, a.Module, a.Score, a.TotalItems, a.Difficulty); err == nil && got != "" {
			text = got
		}
	}

	// Locate by id against the current store; a miss means the record was
	// cleared or evicted while the call was in flight.
	c.history.Update(ctx, a.ID, func(rec *Attempt) {
		rec.Suggestion = text
	})
	if c.notify != nil {
		c.notify()
	}
}

func (c *Controller) enrichTips(ctx context.Context, id string, details []IncorrectDetail) {
	defer c.wg.Done()

	var tips map[string]string
	failed := c.enricher == nil
	if !failed {
		var err error
		tips, err = c.enricher.TipsForIncorrect(ctx, details)
		failed = err != nil
	}

	c.history.Update(ctx, id, func(rec *Attempt) {
		for i := range rec.DetailedFeedback {
			if failed {
				rec.DetailedFeedback[i].AITip = TipFailed
				continue
			}
			if tip, ok := tips[rec.DetailedFeedback[i].QuestionID]; ok && tip != "" {
				rec.DetailedFeedback[i].AITip = tip
			} else {
				rec.DetailedFeedback[i].AITip = TipUnavailable
			}
		}
	})
	if c.notify != nil {
		c.notify()
	}
}

package attempt

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// HistoryCap bounds the history store; the oldest records beyond it are
// dropped on insert.
const HistoryCap = 50

// Placeholder and failure texts for the two enrichment phases. The pending
// values are written with the optimistic insert and must always be replaced
// when the corresponding phase resolves, success or not.
const (
	SuggestionPending     = "Generating suggestion..."
	SuggestionUnavailable = "Could not generate an overall suggestion."
	TipPending            = "Generating tip..."
	TipUnavailable        = "Specific tip not available."
	TipFailed             = "Error generating specific tip."
	TipMissing            = "Tip not available."
)

// IncorrectDetail captures one wrong answer within a multiple-choice batch.
type IncorrectDetail struct {
	QuestionID    string `json:"questionId"`
	QuestionText  string `json:"questionText"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
	AITip         string `json:"aiTip"`
}

// Attempt is one persisted outcome of a completed practice batch.
//
// Module, Date, Score, TotalItems, Difficulty and Percentage are immutable
// once written; only Suggestion and the AITip fields inside DetailedFeedback
// are patched, and only by the enrichment phases.
type Attempt struct {
	ID         string     `json:"id"`
	Module     ModuleKind `json:"moduleId"`
	Date       time.Time  `json:"date"`
	Score      int        `json:"score"`
	TotalItems int        `json:"totalItems"`
	Difficulty Difficulty `json:"difficulty"`
	Percentage int        `json:"percentage"`
	Suggestion string     `json:"learningSuggestion"`

	// DetailedFeedback is absent for pronunciation attempts.
	DetailedFeedback []IncorrectDetail `json:"detailedFeedback,omitempty"`
}

// New builds an Attempt for a completed batch with every enrichment field
// set to its pending placeholder. Pronunciation scores are already on the
// 0-100 scale, so Percentage is the score itself rather than a recomputed
// ratio.
func New(module ModuleKind, score, totalItems int, difficulty Difficulty, incorrect []IncorrectDetail) Attempt {
	a := Attempt{
		ID:         uuid.NewString(),
		Module:     module,
		Date:       time.Now(),
		Score:      score,
		TotalItems: totalItems,
		Difficulty: difficulty,
		Percentage: percentage(module, score, totalItems),
		Suggestion: SuggestionPending,
	}

	if module.Choice() && len(incorrect) > 0 {
		a.DetailedFeedback = make([]IncorrectDetail, len(incorrect))
		copy(a.DetailedFeedback, incorrect)
		for i := range a.DetailedFeedback {
			a.DetailedFeedback[i].AITip = TipPending
		}
	}

	return a
}

// Clone returns a copy whose DetailedFeedback does not share backing
// memory with the receiver. Snapshots handed outside the store must not
// alias records the enrichment phases patch in place.
func (a Attempt) Clone() Attempt {
	if len(a.DetailedFeedback) > 0 {
		fb := make([]IncorrectDetail, len(a.DetailedFeedback))
		copy(fb, a.DetailedFeedback)
		a.DetailedFeedback = fb
	}
	return a
}

func percentage(module ModuleKind, score, totalItems int) int {
	if module == ModulePronunciation {
		return score
	}
	if totalItems == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(totalItems) * 100))
}

package attempt

import "math"

// NextDifficulty computes the tier for the next batch from a completed
// batch's performance. It is a pure function; tiers move at most one step
// per call and stay put at the boundaries.
//
// For choice modules score is the correct-answer count out of totalItems.
// For pronunciation score is the 0-100 average over totalItems scored
// attempts, and a demotion requires at least one scored attempt.
func NextDifficulty(module ModuleKind, score, totalItems int, current Difficulty) Difficulty {
	switch module {
	case ModulePronunciation:
		if score >= 75 {
			return current.promote()
		}
		if score <= 40 && totalItems > 0 {
			return current.demote()
		}
	case ModuleGrammar, ModuleVocabulary, ModuleListening, ModuleReading:
		pct := 0
		if totalItems > 0 {
			pct = int(math.Round(float64(score) / float64(totalItems) * 100))
		}
		if pct >= 80 {
			return current.promote()
		}
		if pct <= 40 {
			return current.demote()
		}
	}
	return current
}

package session

import (
	"math"
	"strings"

	"github.com/abhisek/lingua/internal/attempt"
	"github.com/abhisek/lingua/internal/content"
)

// PronPhase is the current phase of a pronunciation slot.
type PronPhase int

const (
	PronLoading   PronPhase = iota // fetching the phrase for this slot
	PronError                      // phrase fetch failed, retry available
	PronReady                      // phrase shown, awaiting a recording
	PronRecording                  // capturing the learner's speech
	PronAnalyzing                  // scoring the captured utterance
	PronReviewed                   // feedback shown for this slot
	PronDone                       // all slots reviewed
)

// PronunciationSession drives a fixed-size set of phrase slots through
// load, record, analyze, review, tracking the set-level accumulators the
// final average is computed from.
type PronunciationSession struct {
	Difficulty attempt.Difficulty
	BatchSize  int

	Phase PronPhase
	Slot  int

	Phrase     string
	Transcript string
	Feedback   content.UtteranceFeedback

	// Attempts and Cumulative only count successfully scored slots;
	// failed analyses reach PronReviewed without touching them.
	Attempts   int
	Cumulative int

	Err error
}

// NewPronunciationSession creates a session loading its first phrase.
func NewPronunciationSession(difficulty attempt.Difficulty) *PronunciationSession {
	return &PronunciationSession{
		Difficulty: difficulty,
		BatchSize:  content.BatchSize,
		Phase:      PronLoading,
	}
}

// BeginPhrase installs a fetched phrase for the current slot.
func (s *PronunciationSession) BeginPhrase(phrase string) {
	s.Phrase = phrase
	s.Transcript = ""
	s.Feedback = content.UtteranceFeedback{}
	s.Err = nil
	s.Phase = PronReady
}

// Fail moves the slot to the retryable error phase.
func (s *PronunciationSession) Fail(err error) {
	s.Err = err
	s.Phase = PronError
}

// ReloadPhrase requests a different phrase for the same slot. Allowed from
// the ready, reviewed, and error phases; the accumulators are unaffected.
func (s *PronunciationSession) ReloadPhrase() bool {
	switch s.Phase {
	case PronReady, PronReviewed, PronError:
		s.Phase = PronLoading
		s.Err = nil
		return true
	}
	return false
}

// StartRecording begins speech capture. A no-op unless the slot is ready.
func (s *PronunciationSession) StartRecording() bool {
	if s.Phase != PronReady {
		return false
	}
	s.Transcript = ""
	s.Phase = PronRecording
	return true
}

// AppendTranscript accumulates recognized speech while recording.
func (s *PronunciationSession) AppendTranscript(text string) {
	if s.Phase != PronRecording {
		return
	}
	if s.Transcript != "" && text != "" {
		s.Transcript += " "
	}
	s.Transcript += text
}

// StopRecording ends capture. With a non-empty transcript the slot moves
// to analysis and true is returned; an empty transcript returns to ready
// without penalty.
func (s *PronunciationSession) StopRecording() bool {
	if s.Phase != PronRecording {
		return false
	}
	if strings.TrimSpace(s.Transcript) == "" {
		s.Phase = PronReady
		return false
	}
	s.Phase = PronAnalyzing
	return true
}

// Review records a successful analysis result and shows the feedback.
func (s *PronunciationSession) Review(fb content.UtteranceFeedback) bool {
	if s.Phase != PronAnalyzing {
		return false
	}
	s.Feedback = fb
	s.Attempts++
	s.Cumulative += fb.Score
	s.Phase = PronReviewed
	return true
}

// ReviewFailed records a failed analysis: a zero score and the failure
// reason are shown, but the accumulators are not incremented.
func (s *PronunciationSession) ReviewFailed(reason string) bool {
	if s.Phase != PronAnalyzing {
		return false
	}
	s.Feedback = content.UtteranceFeedback{Score: 0, Feedback: reason}
	s.Phase = PronReviewed
	return true
}

// NextPhrase advances to the next slot, or to PronDone after the last
// one.
func (s *PronunciationSession) NextPhrase() bool {
	if s.Phase != PronReviewed {
		return false
	}
	if s.Slot+1 < s.BatchSize {
		s.Slot++
		s.Phase = PronLoading
		return true
	}
	s.Phase = PronDone
	return true
}

// AverageScore is the rounded mean over successfully scored slots, 0 when
// none were scored.
func (s *PronunciationSession) AverageScore() int {
	if s.Attempts == 0 {
		return 0
	}
	return int(math.Round(float64(s.Cumulative) / float64(s.Attempts)))
}

// NextDifficulty computes the tier for the next set from the average
// score.
func (s *PronunciationSession) NextDifficulty() attempt.Difficulty {
	return attempt.NextDifficulty(attempt.ModulePronunciation, s.AverageScore(), s.Attempts, s.Difficulty)
}

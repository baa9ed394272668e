package session

import (
	"github.com/abhisek/lingua/internal/attempt"
	"github.com/abhisek/lingua/internal/content"
)

// MCQPhase is the current phase of a multiple-choice session.
type MCQPhase int

const (
	MCQLoading    MCQPhase = iota // fetching the batch
	MCQError                      // batch fetch failed, retry available
	MCQPresenting                 // current question shown, awaiting an answer
	MCQAnswered                   // feedback shown for the current question
	MCQComplete                   // all questions answered
)

// MCQSession drives a fixed-size batch of multiple-choice questions through
// present, answer, feedback/retry, advance. It is pure state transition
// logic; fetching and reporting are the caller's job.
type MCQSession struct {
	Module     attempt.ModuleKind
	Difficulty attempt.Difficulty

	// Passage is the listening script or reading text, empty for grammar
	// and vocabulary.
	Passage   string
	Questions []content.Question

	Phase MCQPhase
	Index int

	Score     int
	Incorrect []attempt.IncorrectDetail

	// Selected is the option chosen for the current question, valid in
	// MCQAnswered.
	Selected        int
	LastCorrect     bool
	ShowExplanation bool

	Err error

	// scored marks slots whose first answer has been recorded. Retries
	// are for learning, not rescoring: later submissions on a scored
	// slot never change Score or Incorrect.
	scored []bool
}

// NewMCQSession creates a session in the loading phase.
func NewMCQSession(module attempt.ModuleKind, difficulty attempt.Difficulty) *MCQSession {
	return &MCQSession{Module: module, Difficulty: difficulty, Phase: MCQLoading}
}

// Begin installs a fetched batch and presents the first question.
func (s *MCQSession) Begin(questions []content.Question, passage string) {
	s.Questions = questions
	s.Passage = passage
	s.scored = make([]bool, len(questions))
	s.Index = 0
	s.Score = 0
	s.Incorrect = nil
	s.Err = nil
	s.ShowExplanation = false
	s.Phase = MCQPresenting
}

// Fail moves the session to the retryable error phase.
func (s *MCQSession) Fail(err error) {
	s.Err = err
	s.Phase = MCQError
}

// Reload returns the session to the loading phase for a fresh batch at the
// same difficulty.
func (s *MCQSession) Reload() {
	s.Phase = MCQLoading
	s.Err = nil
}

// Current returns the question being presented, or nil outside an active
// slot.
func (s *MCQSession) Current() *content.Question {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Index]
}

// Submit records an answer for the current question and moves to the
// feedback phase. Only the first submission per slot counts toward the
// score and the incorrect list. Returns false outside MCQPresenting.
func (s *MCQSession) Submit(choice int) bool {
	if s.Phase != MCQPresenting {
		return false
	}
	q := s.Current()
	if q == nil || choice < 0 || choice >= len(q.Options) {
		return false
	}

	correct := choice == q.CorrectIndex
	s.Selected = choice
	s.LastCorrect = correct
	s.ShowExplanation = false

	if !s.scored[s.Index] {
		s.scored[s.Index] = true
		if correct {
			s.Score++
		} else {
			s.Incorrect = append(s.Incorrect, attempt.IncorrectDetail{
				QuestionID:    q.ID,
				QuestionText:  q.Text,
				UserAnswer:    q.Options[choice],
				CorrectAnswer: q.Options[q.CorrectIndex],
				Explanation:   q.Explanation,
			})
		}
	}

	s.Phase = MCQAnswered
	return true
}

// Retry clears the submission and re-presents the same question. Only
// offered after a wrong answer; the recorded score is unaffected.
func (s *MCQSession) Retry() bool {
	if s.Phase != MCQAnswered || s.LastCorrect {
		return false
	}
	s.ShowExplanation = false
	s.Phase = MCQPresenting
	return true
}

// Advance moves to the next question, or to MCQComplete after the last
// one.
func (s *MCQSession) Advance() bool {
	if s.Phase != MCQAnswered {
		return false
	}
	s.ShowExplanation = false
	if s.Index+1 < len(s.Questions) {
		s.Index++
		s.Phase = MCQPresenting
	} else {
		s.Phase = MCQComplete
	}
	return true
}

// NextDifficulty computes the tier for the next batch from the final
// score.
func (s *MCQSession) NextDifficulty() attempt.Difficulty {
	return attempt.NextDifficulty(s.Module, s.Score, len(s.Questions), s.Difficulty)
}

package practice

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/attempt"
	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	sess "github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/speech"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
)

// PracticeScreen drives one multiple-choice practice set for a single
// module: grammar, vocabulary, listening, or reading.
type PracticeScreen struct {
	generator   content.Generator
	controller  *attempt.Controller
	tracker     *sess.DifficultyTracker
	contextRepo *store.ContextRepo
	synth       speech.Synthesizer

	session *sess.MCQSession
	choice  components.MultiChoice

	// seq identifies the in-flight fetch; bumped whenever a pending
	// batch must be discarded.
	seq      int
	recorded bool
	next     attempt.Difficulty
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a practice screen for the given module at the tracker's
// current difficulty.
func New(module attempt.ModuleKind, generator content.Generator, controller *attempt.Controller, tracker *sess.DifficultyTracker, contextRepo *store.ContextRepo, synth speech.Synthesizer) *PracticeScreen {
	return &PracticeScreen{
		generator:   generator,
		controller:  controller,
		tracker:     tracker,
		contextRepo: contextRepo,
		synth:       synth,
		session:     sess.NewMCQSession(module, tracker.Get(module)),
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return s.fetchBatch()
}

func (s *PracticeScreen) Title() string {
	return s.session.Module.Title()
}

// Difficulty returns the tier of the current set, for the header.
func (s *PracticeScreen) Difficulty() string {
	return string(s.session.Difficulty)
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	switch s.session.Phase {
	case sess.MCQError:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	case sess.MCQPresenting:
		hints := []layout.KeyHint{
			{Key: "↑↓", Description: "Select"},
			{Key: "Enter", Description: "Answer"},
		}
		if s.canPlayPassage() {
			hints = append(hints, layout.KeyHint{Key: "P", Description: "Play audio"})
		}
		return append(hints,
			layout.KeyHint{Key: "N", Description: "New set"},
			layout.KeyHint{Key: "Esc", Description: "Quit set"},
		)
	case sess.MCQAnswered:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
		}
		if !s.session.LastCorrect {
			hints = append(hints,
				layout.KeyHint{Key: "R", Description: "Try again"},
				layout.KeyHint{Key: "E", Description: "Explanation"},
			)
		}
		return append(hints, layout.KeyHint{Key: "N", Description: "New set"})
	case sess.MCQComplete:
		return []layout.KeyHint{
			{Key: "N", Description: "New set"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case batchReadyMsg:
		return s.handleBatchReady(msg)

	case attemptSavedMsg:
		s.recorded = msg.Recorded
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PracticeScreen) handleBatchReady(msg batchReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Seq != s.seq {
		return s, nil
	}
	if msg.Err != nil {
		s.session.Fail(msg.Err)
		return s, nil
	}
	s.session.Begin(msg.Questions, msg.Passage)
	s.presentCurrent()

	// Listening sets read the script aloud as soon as they load.
	if s.session.Module == attempt.ModuleListening && s.canPlayPassage() {
		return s, s.playPassage()
	}
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "esc" {
		s.seq++
		s.synth.Cancel()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch s.session.Phase {
	case sess.MCQError:
		if key == "r" || key == "R" {
			s.seq++
			s.session.Reload()
			return s, s.fetchBatch()
		}

	case sess.MCQPresenting:
		if (key == "p" || key == "P") && s.canPlayPassage() {
			return s, s.playPassage()
		}
		if key == "n" || key == "N" {
			return s.abandonSet()
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			s.session.Submit(s.choice.ChosenIndex)
		}
		return s, cmd

	case sess.MCQAnswered:
		switch key {
		case "r", "R":
			if s.session.Retry() {
				s.presentCurrent()
			}
		case "e", "E":
			if !s.session.LastCorrect {
				s.session.ShowExplanation = !s.session.ShowExplanation
			}
		case "n", "N":
			return s.abandonSet()
		case "enter":
			return s.advance()
		}

	case sess.MCQComplete:
		if key == "n" || key == "N" {
			return s.startNewSet()
		}
	}

	return s, nil
}

// advance moves to the next question, finishing the set after the last
// one.
func (s *PracticeScreen) advance() (screen.Screen, tea.Cmd) {
	if !s.session.Advance() {
		return s, nil
	}
	if s.session.Phase == sess.MCQComplete {
		s.next = s.session.NextDifficulty()
		s.tracker.Set(s.session.Module, s.next)
		return s, s.recordAttempt()
	}
	s.presentCurrent()
	return s, nil
}

// startNewSet discards the finished session and fetches a fresh batch
// at the updated difficulty.
func (s *PracticeScreen) startNewSet() (screen.Screen, tea.Cmd) {
	s.seq++
	s.recorded = false
	s.session = sess.NewMCQSession(s.session.Module, s.tracker.Get(s.session.Module))
	return s, s.fetchBatch()
}

// abandonSet drops an unfinished set and loads a fresh one at the same
// tier. The zero-item completion tells the controller the set never
// finished; nothing is saved and the tracker is untouched.
func (s *PracticeScreen) abandonSet() (screen.Screen, tea.Cmd) {
	s.seq++
	s.recorded = false
	s.synth.Cancel()
	module := s.session.Module
	difficulty := s.session.Difficulty
	s.controller.CompleteAttempt(context.Background(), module, 0, 0, difficulty, nil)
	s.session = sess.NewMCQSession(module, difficulty)
	return s, s.fetchBatch()
}

// presentCurrent rebuilds the option selector for the question now
// being shown.
func (s *PracticeScreen) presentCurrent() {
	q := s.session.Current()
	if q == nil {
		return
	}
	s.choice = components.NewMultiChoice(q.Text, q.Options, q.CorrectIndex)
}

func (s *PracticeScreen) canPlayPassage() bool {
	return s.session.Passage != "" && s.synth.Supported()
}

// playPassage speaks the listening script or reading text aloud.
func (s *PracticeScreen) playPassage() tea.Cmd {
	passage := s.session.Passage
	return func() tea.Msg {
		s.synth.Cancel()
		_ = s.synth.Speak(context.Background(), passage)
		return nil
	}
}

// fetchBatch generates the question set asynchronously. The reply
// carries the sequence number so late replies from a cancelled fetch
// are ignored.
func (s *PracticeScreen) fetchBatch() tea.Cmd {
	seq := s.seq
	module := s.session.Module
	difficulty := s.session.Difficulty
	return func() tea.Msg {
		ctx := context.Background()
		contextText, _ := s.contextRepo.Load(ctx)

		if module.Passage() {
			task, err := s.generator.PassageTask(ctx, module, difficulty, contextText)
			if err != nil {
				return batchReadyMsg{Seq: seq, Err: err}
			}
			return batchReadyMsg{Seq: seq, Questions: task.Questions, Passage: task.Passage}
		}

		questions, err := s.generator.QuestionBatch(ctx, module, difficulty, content.BatchSize, contextText)
		if err != nil {
			return batchReadyMsg{Seq: seq, Err: err}
		}
		return batchReadyMsg{Seq: seq, Questions: questions}
	}
}

// recordAttempt hands the finished set to the controller, which saves
// it and starts enrichment in the background.
func (s *PracticeScreen) recordAttempt() tea.Cmd {
	session := s.session
	return func() tea.Msg {
		_, ok := s.controller.CompleteAttempt(
			context.Background(),
			session.Module,
			session.Score,
			len(session.Questions),
			session.Difficulty,
			session.Incorrect,
		)
		return attemptSavedMsg{Recorded: ok}
	}
}

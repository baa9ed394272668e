package pronunciation

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/attempt"
	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	sess "github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/speech"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
)

// PronunciationScreen drives one pronunciation practice set: five
// phrases, each spoken back by the learner and scored. Capture runs
// through the recognizer; with the typed recognizer each submitted line
// becomes a transcript segment, and an empty line finishes the take.
type PronunciationScreen struct {
	generator  content.Generator
	controller *attempt.Controller
	tracker    *sess.DifficultyTracker
	synth      speech.Synthesizer
	recognizer *speech.TypedRecognizer

	session *sess.PronunciationSession
	input   components.TextInput

	seq        int
	captureErr error
	recorded   bool
	next       attempt.Difficulty
}

var _ screen.Screen = (*PronunciationScreen)(nil)
var _ screen.KeyHintProvider = (*PronunciationScreen)(nil)

// New creates a pronunciation screen at the tracker's current
// difficulty.
func New(generator content.Generator, controller *attempt.Controller, tracker *sess.DifficultyTracker, synth speech.Synthesizer, recognizer *speech.TypedRecognizer) *PronunciationScreen {
	return &PronunciationScreen{
		generator:  generator,
		controller: controller,
		tracker:    tracker,
		synth:      synth,
		recognizer: recognizer,
		session:    sess.NewPronunciationSession(tracker.Get(attempt.ModulePronunciation)),
	}
}

func (s *PronunciationScreen) Init() tea.Cmd {
	return s.fetchPhrase()
}

func (s *PronunciationScreen) Title() string {
	return attempt.ModulePronunciation.Title()
}

// Difficulty returns the tier of the current set, for the header.
func (s *PronunciationScreen) Difficulty() string {
	return string(s.session.Difficulty)
}

func (s *PronunciationScreen) KeyHints() []layout.KeyHint {
	switch s.session.Phase {
	case sess.PronError:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	case sess.PronReady:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Start speaking"},
		}
		if s.synth.Supported() {
			hints = append(hints, layout.KeyHint{Key: "P", Description: "Hear it"})
		}
		return append(hints,
			layout.KeyHint{Key: "S", Description: "Skip phrase"},
			layout.KeyHint{Key: "Esc", Description: "Back"},
		)
	case sess.PronRecording:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Commit line"},
			{Key: "empty + Enter", Description: "Finish"},
		}
	case sess.PronReviewed:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next phrase"},
			{Key: "S", Description: "Different phrase"},
		}
	case sess.PronDone:
		return []layout.KeyHint{
			{Key: "N", Description: "New set"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *PronunciationScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case phraseReadyMsg:
		if msg.Seq != s.seq {
			return s, nil
		}
		if msg.Err != nil {
			s.session.Fail(msg.Err)
			return s, nil
		}
		s.session.BeginPhrase(msg.Phrase)
		return s, nil

	case analysisDoneMsg:
		if msg.Seq != s.seq {
			return s, nil
		}
		if msg.FailReason != "" {
			s.session.ReviewFailed(msg.FailReason)
		} else {
			s.session.Review(msg.Feedback)
		}
		return s, nil

	case attemptSavedMsg:
		s.recorded = msg.Recorded
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.session.Phase == sess.PronRecording {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PronunciationScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "esc" && s.session.Phase != sess.PronRecording {
		s.seq++
		s.synth.Cancel()
		s.recognizer.Stop()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch s.session.Phase {
	case sess.PronError:
		if key == "r" || key == "R" {
			if s.session.ReloadPhrase() {
				s.seq++
				return s, s.fetchPhrase()
			}
		}

	case sess.PronReady:
		switch key {
		case "enter":
			return s, s.startRecording()
		case "p", "P":
			if s.synth.Supported() {
				return s, s.speakPhrase()
			}
		case "s", "S":
			if s.session.ReloadPhrase() {
				s.seq++
				return s, s.fetchPhrase()
			}
		}

	case sess.PronRecording:
		if key == "esc" {
			// Abort the take; an empty transcript returns to ready.
			s.recognizer.Stop()
			s.session.Transcript = ""
			s.session.StopRecording()
			return s, nil
		}
		if key == "enter" {
			line := s.input.Value()
			if line == "" {
				return s, s.finishRecording()
			}
			s.recognizer.Push(line)
			s.input = components.NewTextInput("Keep speaking, or press Enter to finish...", false, 0)
			return s, s.input.Init()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case sess.PronReviewed:
		switch key {
		case "enter", "n", "N":
			return s.advance()
		case "s", "S":
			if s.session.ReloadPhrase() {
				s.seq++
				return s, s.fetchPhrase()
			}
		}

	case sess.PronDone:
		if key == "n" || key == "N" {
			return s.startNewSet()
		}
	}

	return s, nil
}

// startRecording opens a capture session and routes typed lines into
// the transcript.
func (s *PronunciationScreen) startRecording() tea.Cmd {
	if !s.session.StartRecording() {
		return nil
	}
	s.captureErr = nil
	err := s.recognizer.Start(
		func(text string, final bool) {
			if final {
				s.session.AppendTranscript(text)
			}
		},
		func(err error) {
			s.captureErr = &speech.CaptureError{Err: err}
		},
	)
	if err != nil {
		s.captureErr = &speech.CaptureError{Err: err}
	}
	s.input = components.NewTextInput("Type what you would say aloud...", false, 0)
	return s.input.Init()
}

// finishRecording closes capture and hands the transcript to analysis.
// An empty transcript returns to ready without penalty.
func (s *PronunciationScreen) finishRecording() tea.Cmd {
	s.recognizer.Stop()
	if !s.session.StopRecording() {
		return nil
	}
	return s.analyze()
}

// analyze scores the captured utterance. A broken capture pipeline
// reports a failure reason instead; those slots never reach the
// accumulators.
func (s *PronunciationScreen) analyze() tea.Cmd {
	seq := s.seq
	utterance := s.session.Transcript
	reference := s.session.Phrase
	captureErr := s.captureErr
	return func() tea.Msg {
		if captureErr != nil {
			return analysisDoneMsg{Seq: seq, FailReason: "Could not capture your speech. This phrase won't count toward your average."}
		}
		fb := s.generator.AnalyzeUtterance(context.Background(), utterance, reference)
		return analysisDoneMsg{Seq: seq, Feedback: fb}
	}
}

// advance moves to the next slot, finishing the set after the last
// one.
func (s *PronunciationScreen) advance() (screen.Screen, tea.Cmd) {
	if !s.session.NextPhrase() {
		return s, nil
	}
	if s.session.Phase == sess.PronDone {
		s.next = s.session.NextDifficulty()
		s.tracker.Set(attempt.ModulePronunciation, s.next)
		return s, s.recordAttempt()
	}
	s.seq++
	return s, s.fetchPhrase()
}

// startNewSet begins a fresh set at the updated difficulty.
func (s *PronunciationScreen) startNewSet() (screen.Screen, tea.Cmd) {
	s.seq++
	s.recorded = false
	s.session = sess.NewPronunciationSession(s.tracker.Get(attempt.ModulePronunciation))
	return s, s.fetchPhrase()
}

// speakPhrase reads the reference phrase aloud.
func (s *PronunciationScreen) speakPhrase() tea.Cmd {
	phrase := s.session.Phrase
	return func() tea.Msg {
		s.synth.Cancel()
		_ = s.synth.Speak(context.Background(), phrase)
		return nil
	}
}

// fetchPhrase generates the phrase for the current slot asynchronously.
func (s *PronunciationScreen) fetchPhrase() tea.Cmd {
	seq := s.seq
	difficulty := s.session.Difficulty
	return func() tea.Msg {
		phrase, err := s.generator.Phrase(context.Background(), difficulty)
		if err != nil {
			return phraseReadyMsg{Seq: seq, Err: err}
		}
		return phraseReadyMsg{Seq: seq, Phrase: phrase}
	}
}

// recordAttempt hands the finished set to the controller. TotalItems is
// the phrase count for the whole set, even when some analyses failed and
// were excluded from the average.
func (s *PronunciationScreen) recordAttempt() tea.Cmd {
	session := s.session
	return func() tea.Msg {
		_, ok := s.controller.CompleteAttempt(
			context.Background(),
			attempt.ModulePronunciation,
			session.AverageScore(),
			session.BatchSize,
			session.Difficulty,
			nil,
		)
		return attemptSavedMsg{Recorded: ok}
	}
}

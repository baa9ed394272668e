package pronunciation

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/attempt"
	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	sess "github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/speech"
)

// memRepo implements attempt.Repo in memory for testing.
type memRepo struct {
	attempts []attempt.Attempt
}

func (m *memRepo) Load(_ context.Context) ([]attempt.Attempt, error) {
	return m.attempts, nil
}
func (m *memRepo) Save(_ context.Context, attempts []attempt.Attempt) error {
	m.attempts = append([]attempt.Attempt(nil), attempts...)
	return nil
}
func (m *memRepo) Clear(_ context.Context) error {
	m.attempts = nil
	return nil
}

// mockGenerator implements content.Generator for testing.
type mockGenerator struct {
	phrase   string
	feedback content.UtteranceFeedback
	err      error
}

func (m *mockGenerator) QuestionBatch(_ context.Context, _ attempt.ModuleKind, _ attempt.Difficulty, _ int, _ string) ([]content.Question, error) {
	return nil, errors.New("not a choice test")
}
func (m *mockGenerator) PassageTask(_ context.Context, _ attempt.ModuleKind, _ attempt.Difficulty, _ string) (*content.PassageTask, error) {
	return nil, errors.New("not a choice test")
}
func (m *mockGenerator) Phrase(_ context.Context, _ attempt.Difficulty) (string, error) {
	return m.phrase, m.err
}
func (m *mockGenerator) AnalyzeUtterance(_ context.Context, _, _ string) content.UtteranceFeedback {
	return m.feedback
}
func (m *mockGenerator) OverallSuggestion(_ context.Context, _ attempt.ModuleKind, _, _ int, _ attempt.Difficulty) (string, error) {
	return "keep practicing", nil
}
func (m *mockGenerator) TipsForIncorrect(_ context.Context, _ []attempt.IncorrectDetail) (map[string]string, error) {
	return nil, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testPronunciationScreen(score int) (*PronunciationScreen, *attempt.History, *attempt.Controller) {
	gen := &mockGenerator{
		phrase:   "The quick brown fox",
		feedback: content.UtteranceFeedback{Score: score, Feedback: "Clear delivery."},
	}
	history := attempt.NewHistory(&memRepo{})
	controller := attempt.NewController(history, nil, nil)
	tracker := sess.NewDifficultyTracker()
	s := New(gen, controller, tracker, speech.NoopSynthesizer{}, speech.NewTypedRecognizer())
	return s, history, controller
}

func beginPhrase(s *PronunciationScreen) {
	s.Update(phraseReadyMsg{Seq: s.seq, Phrase: "The quick brown fox"})
}

// speakAndReview drives one slot through record, analyze, review.
func speakAndReview(s *PronunciationScreen, line string) {
	var scr screen.Screen = s
	scr.Update(specialKey(tea.KeyEnter)) // start recording
	s.input.Model.SetValue(line)
	scr.Update(specialKey(tea.KeyEnter)) // commit line
	s.input.Model.SetValue("")
	_, cmd := scr.Update(specialKey(tea.KeyEnter)) // empty line finishes
	if cmd != nil {
		scr.Update(cmd())
	}
}

func TestPronunciationScreen_Title(t *testing.T) {
	s, _, _ := testPronunciationScreen(80)
	if s.Title() != "Pronunciation" {
		t.Errorf("Title = %q, want %q", s.Title(), "Pronunciation")
	}
}

func TestPronunciationScreen_PhraseReady(t *testing.T) {
	s, _, _ := testPronunciationScreen(80)
	beginPhrase(s)

	if s.session.Phase != sess.PronReady {
		t.Fatalf("phase = %v, want ready", s.session.Phase)
	}
	if s.View(80, 24) == "" {
		t.Error("expected non-empty phrase view")
	}
}

func TestPronunciationScreen_StalePhraseIgnored(t *testing.T) {
	s, _, _ := testPronunciationScreen(80)
	s.seq++

	s.Update(phraseReadyMsg{Seq: s.seq - 1, Phrase: "late"})
	if s.session.Phase != sess.PronLoading {
		t.Errorf("phase = %v, want loading after stale phrase", s.session.Phase)
	}
}

func TestPronunciationScreen_RecordAndReview(t *testing.T) {
	s, _, _ := testPronunciationScreen(82)
	beginPhrase(s)
	speakAndReview(s, "the quick brown fox")

	if s.session.Phase != sess.PronReviewed {
		t.Fatalf("phase = %v, want reviewed", s.session.Phase)
	}
	if s.session.Feedback.Score != 82 {
		t.Errorf("score = %d, want 82", s.session.Feedback.Score)
	}
	if s.session.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", s.session.Attempts)
	}
}

func TestPronunciationScreen_EmptyTakeReturnsToReady(t *testing.T) {
	s, _, _ := testPronunciationScreen(80)
	beginPhrase(s)

	var scr screen.Screen = s
	scr.Update(specialKey(tea.KeyEnter)) // start recording
	scr.Update(specialKey(tea.KeyEnter)) // nothing typed, finish

	if s.session.Phase != sess.PronReady {
		t.Errorf("phase = %v, want ready after empty take", s.session.Phase)
	}
	if s.session.Attempts != 0 {
		t.Errorf("attempts = %d, want 0", s.session.Attempts)
	}
}

func TestPronunciationScreen_CaptureFailureSkipsScoring(t *testing.T) {
	s, _, _ := testPronunciationScreen(80)
	beginPhrase(s)

	var scr screen.Screen = s
	scr.Update(specialKey(tea.KeyEnter)) // start recording
	s.captureErr = &speech.CaptureError{Err: errors.New("mic gone")}
	s.input.Model.SetValue("half a phrase")
	scr.Update(specialKey(tea.KeyEnter))
	s.input.Model.SetValue("")
	_, cmd := scr.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected an analysis command")
	}
	scr.Update(cmd())

	if s.session.Phase != sess.PronReviewed {
		t.Fatalf("phase = %v, want reviewed", s.session.Phase)
	}
	if s.session.Feedback.Feedback == "" {
		t.Error("expected a failure reason on the slot")
	}
	if s.session.Feedback.Score != 0 {
		t.Errorf("score = %d, want 0", s.session.Feedback.Score)
	}
	if s.session.Attempts != 0 {
		t.Errorf("attempts = %d, want 0 for a failed capture", s.session.Attempts)
	}
}

func TestPronunciationScreen_CompleteSet_RecordsAverage(t *testing.T) {
	s, history, controller := testPronunciationScreen(90)

	var cmd tea.Cmd
	for i := 0; i < content.BatchSize; i++ {
		beginPhrase(s)
		speakAndReview(s, "the quick brown fox")
		var scr screen.Screen = s
		_, cmd = scr.Update(specialKey(tea.KeyEnter)) // next phrase
	}

	if s.session.Phase != sess.PronDone {
		t.Fatalf("phase = %v, want done", s.session.Phase)
	}
	if s.next != attempt.Hard {
		t.Errorf("next difficulty = %v, want Hard", s.next)
	}
	if cmd == nil {
		t.Fatal("expected a record command after the last phrase")
	}
	msg := cmd()
	if saved, ok := msg.(attemptSavedMsg); !ok || !saved.Recorded {
		t.Errorf("record result = %#v, want recorded", msg)
	}
	controller.Wait()

	attempts := history.All()
	if len(attempts) != 1 {
		t.Fatalf("history size = %d, want 1", len(attempts))
	}
	if attempts[0].Score != 90 {
		t.Errorf("score = %d, want 90", attempts[0].Score)
	}
	if attempts[0].TotalItems != content.BatchSize {
		t.Errorf("total items = %d, want %d", attempts[0].TotalItems, content.BatchSize)
	}
}

func TestPronunciationScreen_AllTakesFailed_RecordsZeroSet(t *testing.T) {
	s, history, controller := testPronunciationScreen(0)

	var cmd tea.Cmd
	for i := 0; i < content.BatchSize; i++ {
		beginPhrase(s)
		var scr screen.Screen = s
		scr.Update(specialKey(tea.KeyEnter)) // start recording
		s.captureErr = &speech.CaptureError{Err: errors.New("mic gone")}
		s.input.Model.SetValue("noise")
		scr.Update(specialKey(tea.KeyEnter))
		s.input.Model.SetValue("")
		_, analyze := scr.Update(specialKey(tea.KeyEnter))
		scr.Update(analyze())
		_, cmd = scr.Update(specialKey(tea.KeyEnter)) // next phrase
	}

	if s.session.Phase != sess.PronDone {
		t.Fatalf("phase = %v, want done", s.session.Phase)
	}

	// A set where every analysis failed still covers the full phrase
	// count, so it records as a zero-score attempt rather than hitting
	// the abandoned-set discard.
	if cmd == nil {
		t.Fatal("expected a record command after the last phrase")
	}
	if saved, ok := cmd().(attemptSavedMsg); !ok || !saved.Recorded {
		t.Error("expected the all-failed set to be recorded")
	}
	controller.Wait()

	attempts := history.All()
	if len(attempts) != 1 {
		t.Fatalf("history size = %d, want 1", len(attempts))
	}
	if attempts[0].Score != 0 || attempts[0].TotalItems != content.BatchSize {
		t.Errorf("recorded %d/%d, want 0/%d", attempts[0].Score, attempts[0].TotalItems, content.BatchSize)
	}
	// With nothing scored the tier must hold rather than demote.
	if s.next != attempt.Medium {
		t.Errorf("next difficulty = %v, want Medium", s.next)
	}
}

func TestPronunciationScreen_FailedSlotExcludedFromAverage(t *testing.T) {
	gen := &mockGenerator{phrase: "The quick brown fox"}
	history := attempt.NewHistory(&memRepo{})
	controller := attempt.NewController(history, nil, nil)
	tracker := sess.NewDifficultyTracker()
	s := New(gen, controller, tracker, speech.NoopSynthesizer{}, speech.NewTypedRecognizer())

	scores := []int{90, 85, 0, 70, 95}
	var cmd tea.Cmd
	for i, score := range scores {
		beginPhrase(s)
		var scr screen.Screen = s
		if i == 2 {
			// This slot's analysis fails outright.
			scr.Update(specialKey(tea.KeyEnter))
			s.captureErr = &speech.CaptureError{Err: errors.New("mic gone")}
			s.input.Model.SetValue("noise")
			scr.Update(specialKey(tea.KeyEnter))
			s.input.Model.SetValue("")
			_, analyze := scr.Update(specialKey(tea.KeyEnter))
			scr.Update(analyze())
		} else {
			gen.feedback = content.UtteranceFeedback{Score: score, Feedback: "ok"}
			speakAndReview(s, "the quick brown fox")
		}
		_, cmd = scr.Update(specialKey(tea.KeyEnter)) // next phrase
	}

	if s.session.Attempts != 4 {
		t.Fatalf("attempts = %d, want 4", s.session.Attempts)
	}
	if got := s.session.AverageScore(); got != 85 {
		t.Fatalf("average = %d, want 85", got)
	}

	if saved, ok := cmd().(attemptSavedMsg); !ok || !saved.Recorded {
		t.Fatal("expected the set to be recorded")
	}
	controller.Wait()

	rec := history.All()[0]
	if rec.Score != 85 {
		t.Errorf("score = %d, want 85", rec.Score)
	}
	if rec.TotalItems != content.BatchSize {
		t.Errorf("total items = %d, want %d (phrase count, not scored count)", rec.TotalItems, content.BatchSize)
	}
	if s.next != attempt.Hard {
		t.Errorf("next difficulty = %v, want Hard", s.next)
	}
}

func TestPronunciationScreen_Esc_PopsAndInvalidatesFetch(t *testing.T) {
	s, _, _ := testPronunciationScreen(80)
	beginPhrase(s)
	seq := s.seq

	var scr screen.Screen = s
	_, cmd := scr.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("cmd msg = %#v, want PopScreenMsg", cmd())
	}
	if s.seq == seq {
		t.Error("expected seq bump so pending replies are discarded")
	}
}

func TestPronunciationScreen_EscDuringRecording_AbortsTake(t *testing.T) {
	s, _, _ := testPronunciationScreen(80)
	beginPhrase(s)

	var scr screen.Screen = s
	scr.Update(specialKey(tea.KeyEnter)) // start recording
	s.input.Model.SetValue("half typed")
	scr.Update(specialKey(tea.KeyEscape))

	if s.session.Phase != sess.PronReady {
		t.Errorf("phase = %v, want ready after aborting the take", s.session.Phase)
	}
	if s.session.Attempts != 0 {
		t.Errorf("attempts = %d, want 0", s.session.Attempts)
	}
}

func TestPronunciationScreen_KeyHints(t *testing.T) {
	s, _, _ := testPronunciationScreen(80)
	beginPhrase(s)

	if len(s.KeyHints()) == 0 {
		t.Error("expected non-empty key hints")
	}
}

package session

import (
	"errors"
	"testing"

	"github.com/abhisek/lingua/internal/attempt"
	"github.com/abhisek/lingua/internal/content"
)

func readySession(t *testing.T) *PronunciationSession {
	t.Helper()
	s := NewPronunciationSession(attempt.Medium)
	s.BeginPhrase("The quick brown fox jumps over the lazy dog.")
	return s
}

func record(t *testing.T, s *PronunciationSession, transcript string) {
	t.Helper()
	if !s.StartRecording() {
		t.Fatalf("StartRecording failed in phase %d", s.Phase)
	}
	s.AppendTranscript(transcript)
	if !s.StopRecording() {
		t.Fatalf("StopRecording did not reach analysis (transcript %q)", transcript)
	}
}

func TestPron_SlotFlow(t *testing.T) {
	s := readySession(t)

	record(t, s, "the quick brown fox")
	if s.Phase != PronAnalyzing {
		t.Fatalf("phase = %d, want analyzing", s.Phase)
	}

	s.Review(content.UtteranceFeedback{Score: 90, Feedback: "Good pace."})
	if s.Phase != PronReviewed {
		t.Fatalf("phase = %d, want reviewed", s.Phase)
	}
	if s.Attempts != 1 || s.Cumulative != 90 {
		t.Errorf("attempts=%d cumulative=%d", s.Attempts, s.Cumulative)
	}

	if !s.NextPhrase() {
		t.Fatal("NextPhrase failed")
	}
	if s.Slot != 1 || s.Phase != PronLoading {
		t.Errorf("slot=%d phase=%d", s.Slot, s.Phase)
	}
}

func TestPron_EmptyTranscriptReturnsToReady(t *testing.T) {
	s := readySession(t)

	s.StartRecording()
	s.AppendTranscript("   ")
	if s.StopRecording() {
		t.Error("empty transcript must not reach analysis")
	}
	if s.Phase != PronReady {
		t.Errorf("phase = %d, want ready", s.Phase)
	}
	if s.Attempts != 0 {
		t.Error("no penalty for an empty recording")
	}
}

func TestPron_StartRecordingOnlyWhenReady(t *testing.T) {
	s := NewPronunciationSession(attempt.Easy)
	if s.StartRecording() {
		t.Error("recording must not start while loading")
	}
	s.BeginPhrase("Hello there.")
	s.StartRecording()
	if s.StartRecording() {
		t.Error("recording start while active must be a no-op")
	}
}

func TestPron_FailedAnalysisSkipsAccumulators(t *testing.T) {
	scores := []int{90, 85, 0, 70, 95}
	failed := map[int]bool{2: true}

	s := NewPronunciationSession(attempt.Medium)
	for i := 0; i < s.BatchSize; i++ {
		s.BeginPhrase("phrase")
		record(t, s, "an attempt")
		if failed[i] {
			s.ReviewFailed("Analysis failed due to an error.")
		} else {
			s.Review(content.UtteranceFeedback{Score: scores[i], Feedback: "ok"})
		}
		s.NextPhrase()
	}

	if s.Phase != PronDone {
		t.Fatalf("phase = %d, want done", s.Phase)
	}
	if s.Attempts != 4 || s.Cumulative != 340 {
		t.Fatalf("attempts=%d cumulative=%d, want 4/340", s.Attempts, s.Cumulative)
	}
	if got := s.AverageScore(); got != 85 {
		t.Fatalf("AverageScore = %d, want 85", got)
	}
	if got := s.NextDifficulty(); got != attempt.Hard {
		t.Errorf("NextDifficulty = %s, want Hard", got)
	}
}

func TestPron_ReviewFailedShowsSentinel(t *testing.T) {
	s := readySession(t)
	record(t, s, "mumble")
	s.ReviewFailed("Analysis failed due to an error.")

	if s.Phase != PronReviewed {
		t.Fatalf("phase = %d, want reviewed", s.Phase)
	}
	if s.Feedback.Score != 0 || s.Feedback.Feedback == "" {
		t.Errorf("feedback = %+v", s.Feedback)
	}
}

func TestPron_ReloadPhraseKeepsAccumulators(t *testing.T) {
	s := readySession(t)
	record(t, s, "good try")
	s.Review(content.UtteranceFeedback{Score: 80})

	if !s.ReloadPhrase() {
		t.Fatal("ReloadPhrase failed from reviewed")
	}
	if s.Phase != PronLoading || s.Slot != 0 {
		t.Errorf("phase=%d slot=%d", s.Phase, s.Slot)
	}
	if s.Attempts != 1 || s.Cumulative != 80 {
		t.Error("reload must not touch accumulators")
	}

	s.BeginPhrase("another phrase")
	if s.ReloadPhrase() && s.Phase != PronLoading {
		t.Error("reload from ready should re-enter loading")
	}
}

func TestPron_NoAttemptsAverageZero(t *testing.T) {
	s := NewPronunciationSession(attempt.Medium)
	if got := s.AverageScore(); got != 0 {
		t.Errorf("AverageScore = %d, want 0", got)
	}
	// No scored attempts means no demotion either.
	if got := s.NextDifficulty(); got != attempt.Medium {
		t.Errorf("NextDifficulty = %s, want Medium", got)
	}
}

func TestPron_FailAndRetryFetch(t *testing.T) {
	s := NewPronunciationSession(attempt.Hard)
	s.Fail(errors.New("boom"))
	if s.Phase != PronError {
		t.Fatalf("phase = %d", s.Phase)
	}
	if !s.ReloadPhrase() {
		t.Fatal("retry from error phase failed")
	}
	if s.Phase != PronLoading || s.Err != nil {
		t.Errorf("phase=%d err=%v", s.Phase, s.Err)
	}
}

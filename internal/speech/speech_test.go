package speech

import (
	"context"
	"errors"
	"testing"
)

func TestTypedRecognizerLifecycle(t *testing.T) {
	r := NewTypedRecognizer()
	if r.Active() {
		t.Fatal("new recognizer must be inactive")
	}

	var got []string
	onTranscript := func(text string, final bool) {
		if !final {
			t.Error("typed segments are always final")
		}
		got = append(got, text)
	}

	if err := r.Start(onTranscript, nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !r.Active() {
		t.Fatal("expected active after Start")
	}

	// Starting again while active is a no-op and keeps the first callback.
	r.Start(func(string, bool) { t.Error("second callback must not be installed") }, nil)

	r.Push("the quick brown fox")
	r.Push("")
	r.Push("jumps over")
	if len(got) != 2 || got[0] != "the quick brown fox" {
		t.Errorf("transcripts = %v", got)
	}

	r.Stop()
	if r.Active() {
		t.Error("expected inactive after Stop")
	}
	r.Push("after stop")
	if len(got) != 2 {
		t.Error("pushes after Stop must be dropped")
	}

	// Stopping when inactive is a no-op.
	r.Stop()
}

func TestNoopRecognizer(t *testing.T) {
	r := NoopRecognizer{}
	if r.Supported() {
		t.Error("noop recognizer must report unsupported")
	}
	if err := r.Start(nil, nil); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Start = %v, want ErrUnsupported", err)
	}
	r.Stop()
}

func TestNoopSynthesizer(t *testing.T) {
	s := NoopSynthesizer{}
	if s.Supported() || s.Speaking() {
		t.Error("noop synthesizer must be inert")
	}
	if err := s.Speak(context.Background(), "hello"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Speak = %v, want ErrUnsupported", err)
	}
	s.Cancel()
}

func TestCaptureErrorUnwraps(t *testing.T) {
	inner := errors.New("device busy")
	err := &CaptureError{Err: inner}
	if !errors.Is(err, inner) {
		t.Error("CaptureError must unwrap to the device error")
	}
}

// Package speech wraps the optional text-to-speech and speech-capture
// device capabilities behind injectable interfaces. Absence of a
// capability degrades the affected UI affordance instead of erroring
// per-action.
package speech

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnsupported indicates the device capability is absent. Callers hide
// or disable the affected affordance.
var ErrUnsupported = errors.New("speech capability not available")

// CaptureError indicates the capability is present but failed
// mid-operation. Recoverable by retrying the capture action.
type CaptureError struct {
	Err error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("speech capture: %v", e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// Synthesizer plays reference text aloud. Playback is a shared device
// resource: starting new playback cancels any active one first.
type Synthesizer interface {
	Supported() bool
	Speak(ctx context.Context, text string) error
	Cancel()
	Speaking() bool
}

// Recognizer captures one learner utterance as a transcript. Capture is
// an exclusive resource: starting while active and stopping while
// inactive are both no-ops.
//
// Transcript segments stream through the onTranscript callback; final
// marks the end of an utterance. Capture failures arrive through onError
// as *CaptureError.
type Recognizer interface {
	Supported() bool
	Start(onTranscript func(text string, final bool), onError func(error)) error
	Stop()
	Active() bool
}

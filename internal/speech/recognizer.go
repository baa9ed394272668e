package speech

import "sync"

// TypedRecognizer is a Recognizer fed by typed text instead of a
// microphone. The terminal has no audio capture pipeline, so the learner
// types out their spoken attempt and each submitted line is delivered as
// a final transcript segment. The downstream analysis treats the
// transcript as an opaque utterance representation either way.
type TypedRecognizer struct {
	mu           sync.Mutex
	active       bool
	onTranscript func(text string, final bool)
}

// NewTypedRecognizer creates an inactive recognizer.
func NewTypedRecognizer() *TypedRecognizer {
	return &TypedRecognizer{}
}

func (r *TypedRecognizer) Supported() bool { return true }

// Start begins a capture session. A no-op if one is already active.
func (r *TypedRecognizer) Start(onTranscript func(text string, final bool), _ func(error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active {
		return nil
	}
	r.active = true
	r.onTranscript = onTranscript
	return nil
}

// Push delivers one typed line as a final transcript segment. Ignored
// while inactive.
func (r *TypedRecognizer) Push(text string) {
	r.mu.Lock()
	callback := r.onTranscript
	active := r.active
	r.mu.Unlock()

	if active && callback != nil && text != "" {
		callback(text, true)
	}
}

// Stop ends the capture session. A no-op if none is active.
func (r *TypedRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = false
	r.onTranscript = nil
}

func (r *TypedRecognizer) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// NoopRecognizer reports capture as unsupported; the recording affordance
// is hidden.
type NoopRecognizer struct{}

func (NoopRecognizer) Supported() bool { return false }
func (NoopRecognizer) Start(func(string, bool), func(error)) error {
	return ErrUnsupported
}
func (NoopRecognizer) Stop()        {}
func (NoopRecognizer) Active() bool { return false }

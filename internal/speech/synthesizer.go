package speech

import (
	"context"
	"os/exec"
	"sync"
)

// speakCommands are probed in order for a usable TTS binary.
var speakCommands = []string{"say", "espeak-ng", "espeak"}

// NewSynthesizer returns a Synthesizer backed by the first TTS command
// found on PATH, or a NoopSynthesizer when none is available.
func NewSynthesizer() Synthesizer {
	for _, name := range speakCommands {
		if path, err := exec.LookPath(name); err == nil {
			return &commandSynthesizer{path: path}
		}
	}
	return NoopSynthesizer{}
}

// commandSynthesizer shells out to a local TTS binary.
type commandSynthesizer struct {
	mu   sync.Mutex
	path string
	cmd  *exec.Cmd
}

func (s *commandSynthesizer) Supported() bool { return true }

// Speak starts playback of text, cancelling any active playback first.
// It returns once playback has started.
func (s *commandSynthesizer) Speak(ctx context.Context, text string) error {
	s.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := exec.CommandContext(ctx, s.path, text)
	if err := cmd.Start(); err != nil {
		return &CaptureError{Err: err}
	}
	s.cmd = cmd

	go func() {
		cmd.Wait()
		s.mu.Lock()
		if s.cmd == cmd {
			s.cmd = nil
		}
		s.mu.Unlock()
	}()

	return nil
}

func (s *commandSynthesizer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd != nil && s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.cmd = nil
}

func (s *commandSynthesizer) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cmd != nil
}

// NoopSynthesizer is used when no TTS command is available. Callers check
// Supported and hide the playback affordance.
type NoopSynthesizer struct{}

func (NoopSynthesizer) Supported() bool                     { return false }
func (NoopSynthesizer) Speak(context.Context, string) error { return ErrUnsupported }
func (NoopSynthesizer) Cancel()                             {}
func (NoopSynthesizer) Speaking() bool                      { return false }

package actions

import (
	"fmt"
	"os/exec"
	"sync"
)

// Speaker is the text-to-speech capability. At most one utterance is active
// system-wide: starting a new one supersedes any other active utterance.
type Speaker interface {
	// Speak starts reading text aloud. The returned channel closes when
	// playback ends, whether it completed naturally or was cancelled.
	Speak(text string) (<-chan struct{}, error)
	// Cancel stops the active utterance, if any.
	Cancel()
}

// speechCommands are tried in order when no command is configured.
var speechCommands = []string{"say", "espeak", "spd-say"}

// CommandSpeaker speaks by running a system text-to-speech command with the
// text as its argument.
type CommandSpeaker struct {
	command string

	mu      sync.Mutex
	current *exec.Cmd
}

// NewCommandSpeaker resolves the speech command on PATH. An empty command
// tries the known ones in order.
func NewCommandSpeaker(command string) (*CommandSpeaker, error) {
	if command != "" {
		if _, err := exec.LookPath(command); err != nil {
			return nil, fmt.Errorf("speech command not found: %w", err)
		}
		return &CommandSpeaker{command: command}, nil
	}
	for _, candidate := range speechCommands {
		if _, err := exec.LookPath(candidate); err == nil {
			return &CommandSpeaker{command: candidate}, nil
		}
	}
	return nil, fmt.Errorf("no text-to-speech command found (tried %v)", speechCommands)
}

func (s *CommandSpeaker) Speak(text string) (<-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Supersede whatever is playing.
	if s.current != nil && s.current.Process != nil {
		_ = s.current.Process.Kill()
	}

	cmd := exec.Command(s.command, text)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start speech command: %w", err)
	}
	s.current = cmd

	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(done)
	}()
	return done, nil
}

func (s *CommandSpeaker) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.Process != nil {
		_ = s.current.Process.Kill()
	}
}

// NullSpeaker is used when no text-to-speech command is available; speaking
// completes immediately.
type NullSpeaker struct{}

func (NullSpeaker) Speak(string) (<-chan struct{}, error) {
	done := make(chan struct{})
	close(done)
	return done, nil
}

func (NullSpeaker) Cancel() {}

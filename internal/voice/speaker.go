package voice

import (
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// CommandSpeaker synthesizes speech by running a TTS binary (espeak-ng by
// default). The voice is pinned to the configured language with a fallback
// to whatever default voice the binary picks, and the rate sits slightly
// below normal pace.
type CommandSpeaker struct {
	mu       sync.Mutex
	path     string
	language string
	rate     int
	current  *exec.Cmd
}

// NewCommandSpeaker creates a speaker for the resolved binary path.
func NewCommandSpeaker(path, language string, rate int) *CommandSpeaker {
	return &CommandSpeaker{
		path:     path,
		language: language,
		rate:     rate,
	}
}

// Speak reads text aloud. Any in-flight utterance is cancelled first; spoken
// lines are never queued.
func (s *CommandSpeaker) Speak(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	cmd := exec.Command(s.path, s.args(text)...)
	if err := cmd.Start(); err != nil {
		return err
	}
	s.current = cmd

	go func() {
		// Reap the process; the exit status does not matter.
		_ = cmd.Wait()
	}()
	return nil
}

// args maps the configuration onto espeak-ng style flags. The voice tag is
// lowercased (espeak-ng knows "pt-br", not "pt-BR").
func (s *CommandSpeaker) args(text string) []string {
	return []string{
		"-v", strings.ToLower(s.language),
		"-s", strconv.Itoa(s.rate),
		text,
	}
}

// Stop cancels the in-flight utterance, if any.
func (s *CommandSpeaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *CommandSpeaker) stopLocked() {
	if s.current != nil && s.current.Process != nil {
		_ = s.current.Process.Kill()
	}
	s.current = nil
}

// Available reports true.
func (s *CommandSpeaker) Available() bool { return true }

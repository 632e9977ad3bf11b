// Package voice provides the optional speech capabilities: text-to-speech
// readback and single-shot speech-to-text dictation. Both are feature
// detected independently at startup; a missing capability degrades to a
// silent no-op variant, never a hard failure.
package voice

import (
	"context"
	"os/exec"

	"github.com/ljmonteiro/companheiro/internal/config"
	"github.com/ljmonteiro/companheiro/internal/errors"
	"github.com/ljmonteiro/companheiro/internal/logging"
)

// Speaker is the text-to-speech capability.
type Speaker interface {
	// Speak reads text aloud, cancelling any in-flight utterance first.
	Speak(text string) error
	// Stop cancels the in-flight utterance, if any.
	Stop()
	// Available reports whether synthesis is present on this platform.
	Available() bool
}

// Recognizer is the speech-to-text capability. Recognition is single-shot:
// one utterance per Listen call, no streaming.
type Recognizer interface {
	// Listen captures one utterance and returns the transcript.
	Listen(ctx context.Context) (string, error)
	// Available reports whether recognition is present on this platform.
	Available() bool
}

// Detect probes both capabilities once and returns the matching variants.
func Detect(cfg config.VoiceConfig) (Speaker, Recognizer) {
	var speaker Speaker = UnavailableSpeaker{}
	if cfg.SpeakCommand != "" {
		if path, err := exec.LookPath(cfg.SpeakCommand); err == nil {
			speaker = NewCommandSpeaker(path, cfg.Language, cfg.SpeakRate)
		} else {
			logging.DebugLog("text-to-speech not available", "command", cfg.SpeakCommand)
		}
	}

	var recognizer Recognizer = UnavailableRecognizer{}
	if cfg.ListenCommand != "" {
		if path, err := exec.LookPath(cfg.ListenCommand); err == nil {
			recognizer = NewCommandRecognizer(path, cfg.Language)
		} else {
			logging.DebugLog("speech-to-text not available", "command", cfg.ListenCommand)
		}
	}

	return speaker, recognizer
}

// UnavailableSpeaker is the no-op Speaker variant.
type UnavailableSpeaker struct{}

// Speak reports the capability as unavailable.
func (UnavailableSpeaker) Speak(string) error { return errors.ErrVoiceUnavailable }

// Stop does nothing.
func (UnavailableSpeaker) Stop() {}

// Available reports false.
func (UnavailableSpeaker) Available() bool { return false }

// UnavailableRecognizer is the no-op Recognizer variant.
type UnavailableRecognizer struct{}

// Listen reports the capability as unavailable.
func (UnavailableRecognizer) Listen(context.Context) (string, error) {
	return "", errors.ErrVoiceUnavailable
}

// Available reports false.
func (UnavailableRecognizer) Available() bool { return false }

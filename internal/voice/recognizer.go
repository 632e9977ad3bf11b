package voice

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/ljmonteiro/companheiro/internal/errors"
)

// CommandRecognizer captures one utterance by running an STT binary that
// records from the microphone and prints the transcript to stdout.
type CommandRecognizer struct {
	path     string
	language string
}

// NewCommandRecognizer creates a recognizer for the resolved binary path.
func NewCommandRecognizer(path, language string) *CommandRecognizer {
	return &CommandRecognizer{path: path, language: language}
}

// Listen runs one single-shot recognition session. Empty output maps to
// ErrNoSpeech and a microphone access failure maps to ErrMicrophoneDenied;
// anything else surfaces as a generic error. The session always ends when
// Listen returns.
func (r *CommandRecognizer) Listen(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, r.path, "--language", strings.ToLower(r.language), "--single")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if isMicrophoneDenied(stderr.String()) {
			return "", errors.ErrMicrophoneDenied
		}
		return "", err
	}

	text := strings.TrimSpace(stdout.String())
	if text == "" {
		return "", errors.ErrNoSpeech
	}
	return text, nil
}

// isMicrophoneDenied matches the access-denied wording of the common
// recorder backends.
func isMicrophoneDenied(stderr string) bool {
	lower := strings.ToLower(stderr)
	return strings.Contains(lower, "permission denied") ||
		strings.Contains(lower, "access denied") ||
		strings.Contains(lower, "device busy")
}

// Available reports true.
func (r *CommandRecognizer) Available() bool { return true }

// GuidanceFor maps a recognition error to the one-line pt-BR message shown
// to the user. The two known causes get specific wording; everything else
// gets the generic line.
func GuidanceFor(err error) string {
	switch {
	case errors.Is(err, errors.ErrNoSpeech):
		return "Não ouvi nada. Pode falar de novo?"
	case errors.Is(err, errors.ErrMicrophoneDenied):
		return "Preciso da permissão do microfone para te ouvir."
	default:
		return "Não consegui te ouvir agora. Tente de novo em instantes."
	}
}

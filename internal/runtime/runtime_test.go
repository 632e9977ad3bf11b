package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljmonteiro/companheiro/internal/config"
	"github.com/ljmonteiro/companheiro/internal/output"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	cfg := config.DefaultRuntimeConfig()
	cfg.Store.Path = t.TempDir()
	// Unreachable commands keep capability detection deterministic.
	cfg.Voice.SpeakCommand = "companheiro-test-no-such-tts"
	cfg.Voice.ListenCommand = ""

	opts := DefaultOptions()
	opts.Config = cfg
	return opts
}

func TestNewAndClose(t *testing.T) {
	ctx, err := New(testOptions(t))
	require.NoError(t, err)

	assert.NotNil(t, ctx.Store)
	assert.NotNil(t, ctx.Session)
	assert.NotNil(t, ctx.Dispatcher)
	assert.False(t, ctx.Speaker.Available())
	assert.False(t, ctx.Recognizer.Available())

	require.NoError(t, ctx.Close())
}

func TestFormatterModes(t *testing.T) {
	ctx, err := New(testOptions(t))
	require.NoError(t, err)
	defer ctx.Close()

	assert.True(t, ctx.IsCLI())
	assert.False(t, ctx.IsJSON())

	ctx.Formatter.Format = output.FormatJSON
	assert.True(t, ctx.IsJSON())
	assert.False(t, ctx.IsCLI())

	assert.NotNil(t, ctx.CLIFormatter())
	assert.NotNil(t, ctx.JSONFormatter())
}

func TestNewConversationUsesProfileName(t *testing.T) {
	ctx, err := New(testOptions(t))
	require.NoError(t, err)
	defer ctx.Close()

	conv := ctx.NewConversation()
	assert.NotNil(t, conv)
	assert.Empty(t, conv.Messages())
}

func TestSessionSurvivesReopen(t *testing.T) {
	opts := testOptions(t)

	ctx, err := New(opts)
	require.NoError(t, err)
	ctx.Session.AddMedication(context.Background(), "Losartana", "08:00")
	require.NoError(t, ctx.Close())

	ctx2, err := New(opts)
	require.NoError(t, err)
	defer ctx2.Close()

	meds := ctx2.Session.Medications()
	require.Len(t, meds, 1)
	assert.Equal(t, "Losartana", meds[0].Name)
}

// Package config provides centralized configuration for Companheiro runtime values.
package config

import (
	"os"
	"strconv"
	"time"
)

// Store backend names.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// RuntimeConfig holds all runtime configuration values. Defaults match the
// observed behavior of the app; everything can be overridden through
// COMPANHEIRO_* environment variables.
type RuntimeConfig struct {
	// Store configuration
	Store StoreConfig

	// Chat configuration
	Chat ChatConfig

	// Scheduler configuration
	Scheduler SchedulerConfig

	// Voice configuration
	Voice VoiceConfig

	// Daemon configuration
	Daemon DaemonConfig

	// EmergencyNumber is the number dialed by the SOS action.
	EmergencyNumber string
}

// StoreConfig holds key/value store configuration.
type StoreConfig struct {
	// Backend selects the store implementation: "local" or "remote".
	// The selection is made once at startup and never revisited.
	Backend string

	// Path is the local database directory. Empty uses the XDG default.
	Path string

	// RemoteURL is the base URL of the shared key/value service.
	RemoteURL string

	// RemoteTimeout bounds each remote store call.
	// Default: 10s
	RemoteTimeout time.Duration
}

// ChatConfig holds conversational endpoint configuration.
type ChatConfig struct {
	// Endpoint is the messages API URL.
	Endpoint string

	// APIKey authenticates against the endpoint.
	APIKey string

	// Model is the model identifier sent with every request.
	Model string

	// MaxTokens caps the reply length.
	// Default: 1000
	MaxTokens int

	// ReadbackDelay is how long to wait after appending a reply before
	// speaking it, so the printed text lands first.
	// Default: 400ms
	ReadbackDelay time.Duration
}

// SchedulerConfig holds reminder scheduler configuration.
type SchedulerConfig struct {
	// TickSpec is the cron expression for the reminder check.
	// Default: every minute on the minute.
	TickSpec string

	// SleepThreshold is the time gap that indicates the system was
	// suspended. Ticks after a longer gap are skipped, not caught up.
	// Default: 1h
	SleepThreshold time.Duration
}

// VoiceConfig holds speech capability configuration.
type VoiceConfig struct {
	// Language pins both recognition and synthesis.
	// Default: pt-BR
	Language string

	// SpeakCommand is the text-to-speech binary probed at startup.
	// Default: espeak-ng
	SpeakCommand string

	// SpeakRate is the synthesis rate in words per minute, kept slightly
	// below normal pace.
	// Default: 140
	SpeakRate int

	// ListenCommand is the speech-to-text binary probed at startup. It must
	// capture one utterance and print the transcript to stdout.
	ListenCommand string
}

// DaemonConfig holds background daemon configuration.
type DaemonConfig struct {
	// StartupWait is how long to wait for a background daemon to come up
	// before checking its PID file.
	// Default: 500ms
	StartupWait time.Duration

	// KillTimeout is how long to wait for a graceful stop before forcing.
	// Default: 5s
	KillTimeout time.Duration
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Store: StoreConfig{
			Backend:       BackendLocal,
			RemoteTimeout: 10 * time.Second,
		},
		Chat: ChatConfig{
			Endpoint:      "https://api.anthropic.com/v1/messages",
			Model:         "claude-sonnet-4-20250514",
			MaxTokens:     1000,
			ReadbackDelay: 400 * time.Millisecond,
		},
		Scheduler: SchedulerConfig{
			TickSpec:       "0 * * * * *",
			SleepThreshold: 1 * time.Hour,
		},
		Voice: VoiceConfig{
			Language:     "pt-BR",
			SpeakCommand: "espeak-ng",
			SpeakRate:    140,
		},
		Daemon: DaemonConfig{
			StartupWait: 500 * time.Millisecond,
			KillTimeout: 5 * time.Second,
		},
		EmergencyNumber: "190",
	}
}

// Global holds the global runtime configuration instance.
// It is initialized with defaults and can be overridden via environment variables.
var Global = initGlobal()

// initGlobal initializes the global config with defaults and environment overrides.
func initGlobal() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

// loadFromEnv loads configuration overrides from environment variables.
func (c *RuntimeConfig) loadFromEnv() {
	// Store configuration
	if v := os.Getenv("COMPANHEIRO_STORE_BACKEND"); v == BackendLocal || v == BackendRemote {
		c.Store.Backend = v
	}
	if v := os.Getenv("COMPANHEIRO_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("COMPANHEIRO_STORE_URL"); v != "" {
		c.Store.RemoteURL = v
	}
	if v := os.Getenv("COMPANHEIRO_STORE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Store.RemoteTimeout = d
		}
	}

	// Chat configuration
	if v := os.Getenv("COMPANHEIRO_CHAT_ENDPOINT"); v != "" {
		c.Chat.Endpoint = v
	}
	if v := os.Getenv("COMPANHEIRO_API_KEY"); v != "" {
		c.Chat.APIKey = v
	}
	if v := os.Getenv("COMPANHEIRO_CHAT_MODEL"); v != "" {
		c.Chat.Model = v
	}
	if v := os.Getenv("COMPANHEIRO_CHAT_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Chat.MaxTokens = n
		}
	}
	if v := os.Getenv("COMPANHEIRO_CHAT_READBACK_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Chat.ReadbackDelay = d
		}
	}

	// Scheduler configuration
	if v := os.Getenv("COMPANHEIRO_TICK_SPEC"); v != "" {
		c.Scheduler.TickSpec = v
	}
	if v := os.Getenv("COMPANHEIRO_SLEEP_THRESHOLD"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Scheduler.SleepThreshold = d
		}
	}

	// Voice configuration
	if v := os.Getenv("COMPANHEIRO_VOICE_LANGUAGE"); v != "" {
		c.Voice.Language = v
	}
	if v := os.Getenv("COMPANHEIRO_SPEAK_COMMAND"); v != "" {
		c.Voice.SpeakCommand = v
	}
	if v := os.Getenv("COMPANHEIRO_SPEAK_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Voice.SpeakRate = n
		}
	}
	if v := os.Getenv("COMPANHEIRO_LISTEN_COMMAND"); v != "" {
		c.Voice.ListenCommand = v
	}

	// Daemon configuration
	if v := os.Getenv("COMPANHEIRO_DAEMON_STARTUP_WAIT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Daemon.StartupWait = d
		}
	}
	if v := os.Getenv("COMPANHEIRO_DAEMON_KILL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Daemon.KillTimeout = d
		}
	}

	if v := os.Getenv("COMPANHEIRO_EMERGENCY_NUMBER"); v != "" {
		c.EmergencyNumber = v
	}
}

// ReloadFromEnv reloads configuration from environment variables.
// This is useful for testing or when environment variables change.
func (c *RuntimeConfig) ReloadFromEnv() {
	c.loadFromEnv()
}

// Reset resets the configuration to defaults.
// This is primarily useful for testing.
func (c *RuntimeConfig) Reset() {
	defaults := DefaultRuntimeConfig()
	*c = *defaults
}

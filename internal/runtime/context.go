// Package runtime provides application runtime context for Companheiro.
package runtime

import (
	"context"

	"github.com/ljmonteiro/companheiro/internal/chat"
	"github.com/ljmonteiro/companheiro/internal/config"
	"github.com/ljmonteiro/companheiro/internal/notify"
	"github.com/ljmonteiro/companheiro/internal/output"
	"github.com/ljmonteiro/companheiro/internal/session"
	"github.com/ljmonteiro/companheiro/internal/storage"
	"github.com/ljmonteiro/companheiro/internal/voice"
)

// Context holds the application runtime context: the store, the loaded
// session and the detected capabilities. One Context lives per process.
type Context struct {
	Store     storage.Store
	Session   *session.Session
	Formatter *output.Formatter

	Dispatcher *notify.Dispatcher
	Speaker    voice.Speaker
	Recognizer voice.Recognizer

	Config *config.RuntimeConfig

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	Config    *config.RuntimeConfig
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Config:    config.Global,
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
		Debug:     false,
	}
}

// New creates a new runtime context: opens the configured store backend,
// loads the session and probes the optional capabilities once.
func New(opts Options) (*Context, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Global
	}

	store, err := storage.Open(cfg.Store)
	if err != nil {
		return nil, err
	}

	sess := session.New(storage.NewRecordsRepo(store), storage.NewProfileRepo(store))
	sess.Load(context.Background())

	speaker, recognizer := voice.Detect(cfg.Voice)
	dispatcher := notify.NewDispatcher(notify.Detect(), speaker)

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	return &Context{
		Store:      store,
		Session:    sess,
		Formatter:  formatter,
		Dispatcher: dispatcher,
		Speaker:    speaker,
		Recognizer: recognizer,
		Config:     cfg,
		Debug:      opts.Debug,
	}, nil
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}

// NewConversation creates a chat conversation bound to this runtime.
func (c *Context) NewConversation() *chat.Conversation {
	sender := chat.NewClient(c.Config.Chat)
	return chat.NewConversation(sender, c.Speaker, c.Config.Chat, c.Session.Profile().Name)
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsCLI returns true if output format is CLI.
func (c *Context) IsCLI() bool {
	return c.Formatter.Format == output.FormatCLI
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...interface{}) {
	if c.Debug {
		c.Formatter.Printf("[DEBUG] "+format+"\n", args...)
	}
}

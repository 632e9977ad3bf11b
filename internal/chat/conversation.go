package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ljmonteiro/companheiro/internal/config"
	"github.com/ljmonteiro/companheiro/internal/errors"
	"github.com/ljmonteiro/companheiro/internal/logging"
	"github.com/ljmonteiro/companheiro/internal/model"
	"github.com/ljmonteiro/companheiro/internal/voice"
)

// Conversation owns the in-memory transcript for one chat session. It
// serializes sends through a busy flag so there is never more than one
// in-flight request; a second send while busy is rejected, not queued.
type Conversation struct {
	mu       sync.Mutex
	busy     bool
	messages []model.Message

	sender   Sender
	speaker  voice.Speaker
	cfg      config.ChatConfig
	userName string
}

// NewConversation creates an empty conversation bound to the given sender
// and speaker. The user name is baked into the persona for the session.
func NewConversation(sender Sender, speaker voice.Speaker, cfg config.ChatConfig, userName string) *Conversation {
	return &Conversation{
		sender:   sender,
		speaker:  speaker,
		cfg:      cfg,
		userName: userName,
	}
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Busy reports whether a send is in flight.
func (c *Conversation) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Send appends the user turn, requests a reply and appends it. A whitespace
// only input is ignored and leaves the transcript untouched. Endpoint
// failures never surface as errors: the assistant turn becomes a fallback
// apology and the transcript stays consistent. The one real error is
// ErrChatBusy when a previous send has not finished.
//
// When readBack is true and the speaker is available, the reply is read
// aloud after a short delay so the printed text lands first.
func (c *Conversation) Send(ctx context.Context, text string, readBack bool) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return "", errors.ErrChatBusy
	}
	c.busy = true
	c.messages = append(c.messages, model.Message{Role: model.RoleUser, Content: text})
	transcript := make([]model.Message, len(c.messages))
	copy(transcript, c.messages)
	c.mu.Unlock()

	reply, err := c.sender.Send(ctx, SystemPrompt(c.userName), transcript)
	switch {
	case err != nil:
		logging.Warn("chat request failed", logging.KeyError, err)
		reply = ReplyRequestError
	case reply == "":
		reply = ReplyEmptyAnswer
	}

	c.mu.Lock()
	c.messages = append(c.messages, model.Message{Role: model.RoleAssistant, Content: reply})
	c.busy = false
	c.mu.Unlock()

	if readBack && c.speaker != nil && c.speaker.Available() {
		delay := c.cfg.ReadbackDelay
		go func() {
			time.Sleep(delay)
			if err := c.speaker.Speak(reply); err != nil {
				logging.DebugLog("reply readback failed", logging.KeyError, err)
			}
		}()
	}

	return reply, nil
}

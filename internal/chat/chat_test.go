package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljmonteiro/companheiro/internal/config"
	apperrors "github.com/ljmonteiro/companheiro/internal/errors"
	"github.com/ljmonteiro/companheiro/internal/model"
)

func testChatConfig(endpoint string) config.ChatConfig {
	return config.ChatConfig{
		Endpoint:  endpoint,
		APIKey:    "test-key",
		Model:     "claude-sonnet-4-20250514",
		MaxTokens: 1000,
	}
}

func textReply(text string) string {
	return `{"content":[{"type":"text","text":` + mustJSON(text) + `}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestClientSend(t *testing.T) {
	var gotBody map[string]any
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(textReply("Oi, vô! Como você está?")))
	}))
	defer srv.Close()

	client := NewClient(testChatConfig(srv.URL))
	reply, err := client.Send(context.Background(), "persona", []model.Message{
		{Role: model.RoleUser, Content: "Oi"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Oi, vô! Como você está?", reply)
	assert.Equal(t, "test-key", gotHeaders.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", gotHeaders.Get("anthropic-version"))
	assert.Equal(t, "claude-sonnet-4-20250514", gotBody["model"])
	assert.Equal(t, float64(1000), gotBody["max_tokens"])
	assert.Equal(t, "persona", gotBody["system"])
}

func TestClientSendSkipsNonTextBlocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[{"type":"thinking","text":"hm"},{"type":"text","text":"resposta"}]}`))
	}))
	defer srv.Close()

	client := NewClient(testChatConfig(srv.URL))
	reply, err := client.Send(context.Background(), "", []model.Message{{Role: model.RoleUser, Content: "Oi"}})
	require.NoError(t, err)
	assert.Equal(t, "resposta", reply)
}

func TestClientSendNoTextBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	client := NewClient(testChatConfig(srv.URL))
	reply, err := client.Send(context.Background(), "", []model.Message{{Role: model.RoleUser, Content: "Oi"}})
	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestClientSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()

	client := NewClient(testChatConfig(srv.URL))
	_, err := client.Send(context.Background(), "", []model.Message{{Role: model.RoleUser, Content: "Oi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "slow down")
}

func TestSystemPrompt(t *testing.T) {
	anon := SystemPrompt("")
	named := SystemPrompt("Maria")

	assert.Contains(t, anon, "Você é o IAn")
	assert.NotContains(t, anon, "avô/avó é")
	assert.Contains(t, named, "O nome do seu avô/avó é Maria.")
}

// fakeSender returns scripted replies or an error.
type fakeSender struct {
	mu      sync.Mutex
	reply   string
	err     error
	calls   int
	system  string
	lastMsg []model.Message
	block   chan struct{}
}

func (f *fakeSender) Send(_ context.Context, system string, msgs []model.Message) (string, error) {
	f.mu.Lock()
	f.calls++
	f.system = system
	f.lastMsg = msgs
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.reply, f.err
}

func TestConversationSend(t *testing.T) {
	sender := &fakeSender{reply: "Que bom te ver, vó!"}
	conv := NewConversation(sender, nil, config.ChatConfig{}, "Maria")

	reply, err := conv.Send(context.Background(), "Oi, tudo bem?", false)
	require.NoError(t, err)
	assert.Equal(t, "Que bom te ver, vó!", reply)

	msgs := conv.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.Message{Role: model.RoleUser, Content: "Oi, tudo bem?"}, msgs[0])
	assert.Equal(t, model.Message{Role: model.RoleAssistant, Content: "Que bom te ver, vó!"}, msgs[1])
	assert.Contains(t, sender.system, "Maria")
}

func TestConversationSendsFullTranscript(t *testing.T) {
	sender := &fakeSender{reply: "resposta"}
	conv := NewConversation(sender, nil, config.ChatConfig{}, "")

	_, err := conv.Send(context.Background(), "primeira", false)
	require.NoError(t, err)
	_, err = conv.Send(context.Background(), "segunda", false)
	require.NoError(t, err)

	// The second request carries the whole history plus the new turn.
	require.Len(t, sender.lastMsg, 3)
	assert.Equal(t, "primeira", sender.lastMsg[0].Content)
	assert.Equal(t, "resposta", sender.lastMsg[1].Content)
	assert.Equal(t, "segunda", sender.lastMsg[2].Content)
}

func TestConversationIgnoresBlankInput(t *testing.T) {
	sender := &fakeSender{reply: "resposta"}
	conv := NewConversation(sender, nil, config.ChatConfig{}, "")

	reply, err := conv.Send(context.Background(), "   \t ", false)
	require.NoError(t, err)
	assert.Empty(t, reply)
	assert.Empty(t, conv.Messages())
	assert.Zero(t, sender.calls)
}

func TestConversationRequestErrorBecomesApology(t *testing.T) {
	sender := &fakeSender{err: assert.AnError}
	conv := NewConversation(sender, nil, config.ChatConfig{}, "")

	reply, err := conv.Send(context.Background(), "Oi", false)
	require.NoError(t, err)
	assert.Equal(t, ReplyRequestError, reply)

	msgs := conv.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, ReplyRequestError, msgs[1].Content)
	assert.False(t, conv.Busy(), "busy flag clears after a failed send")
}

func TestConversationEmptyReplyBecomesApology(t *testing.T) {
	sender := &fakeSender{reply: ""}
	conv := NewConversation(sender, nil, config.ChatConfig{}, "")

	reply, err := conv.Send(context.Background(), "Oi", false)
	require.NoError(t, err)
	assert.Equal(t, ReplyEmptyAnswer, reply)
}

func TestConversationRejectsConcurrentSend(t *testing.T) {
	block := make(chan struct{})
	sender := &fakeSender{reply: "resposta", block: block}
	conv := NewConversation(sender, nil, config.ChatConfig{}, "")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := conv.Send(context.Background(), "primeira", false)
		assert.NoError(t, err)
	}()

	require.Eventually(t, conv.Busy, time.Second, 5*time.Millisecond)

	_, err := conv.Send(context.Background(), "segunda", false)
	assert.ErrorIs(t, err, apperrors.ErrChatBusy)

	close(block)
	<-done
	assert.Len(t, conv.Messages(), 2)
}

// chanSpeaker reports spoken lines on a channel.
type chanSpeaker struct{ spoken chan string }

func (s *chanSpeaker) Speak(text string) error { s.spoken <- text; return nil }
func (s *chanSpeaker) Stop()                   {}
func (s *chanSpeaker) Available() bool         { return true }

func TestConversationReadBack(t *testing.T) {
	sender := &fakeSender{reply: "resposta falada"}
	speaker := &chanSpeaker{spoken: make(chan string, 1)}
	conv := NewConversation(sender, speaker, config.ChatConfig{ReadbackDelay: time.Millisecond}, "")

	_, err := conv.Send(context.Background(), "Oi", true)
	require.NoError(t, err)

	select {
	case line := <-speaker.spoken:
		assert.Equal(t, "resposta falada", line)
	case <-time.After(time.Second):
		t.Fatal("reply was never read back")
	}
}

func TestConversationNoReadBackWhenDisabled(t *testing.T) {
	sender := &fakeSender{reply: "resposta"}
	speaker := &chanSpeaker{spoken: make(chan string, 1)}
	conv := NewConversation(sender, speaker, config.ChatConfig{ReadbackDelay: time.Millisecond}, "")

	_, err := conv.Send(context.Background(), "Oi", false)
	require.NoError(t, err)

	select {
	case <-speaker.spoken:
		t.Fatal("reply was read back with voice disabled")
	case <-time.After(50 * time.Millisecond):
	}
}

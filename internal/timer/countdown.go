// Package timer provides the one-off countdown reminder.
package timer

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// State represents the current state of a countdown.
type State struct {
	Label       string
	Remaining   time.Duration
	Total       time.Duration
	Paused      bool
	StartTime   time.Time
	PauseTime   time.Time
	CancelledAt *time.Time // Set if the user cancelled early
}

// Event represents events from the countdown.
type Event int

const (
	EventTick Event = iota
	EventDone
	EventPaused
	EventResumed
	EventCancelled
)

// Callback is called when events occur.
type Callback func(event Event, state State)

// Countdown manages a one-off countdown reminder.
type Countdown struct {
	state    State
	display  *Display
	callback Callback

	mu       sync.RWMutex
	cancelFn context.CancelFunc

	// Control channels
	pauseCh chan struct{}
	quitCh  chan struct{}
}

// NewCountdown creates a countdown for the given label and duration.
func NewCountdown(label string, d time.Duration) *Countdown {
	return &Countdown{
		display: NewDisplay(),
		state: State{
			Label:     label,
			Remaining: d,
			Total:     d,
		},
		pauseCh: make(chan struct{}, 1),
		quitCh:  make(chan struct{}, 1),
	}
}

// SetCallback sets the event callback.
func (c *Countdown) SetCallback(cb Callback) {
	c.callback = cb
}

// SetDisplay sets the countdown display.
func (c *Countdown) SetDisplay(display *Display) {
	c.display = display
}

// GetState returns a copy of the current state.
func (c *Countdown) GetState() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Pause toggles pause.
func (c *Countdown) Pause() {
	select {
	case c.pauseCh <- struct{}{}:
	default:
	}
}

// Cancel cancels the countdown.
func (c *Countdown) Cancel() {
	select {
	case c.quitCh <- struct{}{}:
	default:
	}
}

// Run starts the countdown and blocks until it runs out or is cancelled.
func (c *Countdown) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	c.cancelFn = cancel
	defer cancel()

	// Raw terminal mode for keyboard input
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go c.listenKeyboard(ctx)

	c.mu.Lock()
	c.state.StartTime = time.Now()
	c.mu.Unlock()

	event := c.loop(ctx, sigCh)

	c.display.ClearScreen()
	switch event {
	case EventDone:
		if c.callback != nil {
			c.callback(EventDone, c.GetState())
		}
		os.Stdout.WriteString(c.display.RenderDone(c.state.Label, c.state.Total) + "\n")

	case EventCancelled:
		c.mu.Lock()
		now := time.Now()
		c.state.CancelledAt = &now
		remaining := c.state.Remaining
		c.mu.Unlock()
		if c.callback != nil {
			c.callback(EventCancelled, c.GetState())
		}
		os.Stdout.WriteString(c.display.RenderCancelled(remaining) + "\n")
	}

	return nil
}

// loop drives the ticker until the countdown finishes or is cancelled.
func (c *Countdown) loop(ctx context.Context, sigCh <-chan os.Signal) Event {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	lastUpdate := time.Now()

	for {
		select {
		case <-ctx.Done():
			return EventCancelled

		case <-sigCh:
			return EventCancelled

		case <-c.quitCh:
			return EventCancelled

		case <-c.pauseCh:
			paused := c.togglePause()
			if c.callback != nil {
				if paused {
					c.callback(EventPaused, c.GetState())
				} else {
					c.callback(EventResumed, c.GetState())
				}
			}
			lastUpdate = time.Now()
			c.render()

		case now := <-ticker.C:
			if c.advance(now.Sub(lastUpdate)) {
				c.render()
				return EventDone
			}
			lastUpdate = now

			if c.callback != nil {
				c.callback(EventTick, c.GetState())
			}
			c.render()
		}
	}
}

// togglePause flips the paused flag and returns the new value.
func (c *Countdown) togglePause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Paused = !c.state.Paused
	if c.state.Paused {
		c.state.PauseTime = time.Now()
	}
	return c.state.Paused
}

// advance subtracts elapsed time and reports whether the countdown finished.
// Paused countdowns do not advance.
func (c *Countdown) advance(elapsed time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Paused {
		return false
	}

	c.state.Remaining -= elapsed
	if c.state.Remaining <= 0 {
		c.state.Remaining = 0
		return true
	}
	return false
}

// WasCancelled returns true if the countdown was cancelled early.
func (c *Countdown) WasCancelled() bool {
	return c.GetState().CancelledAt != nil
}

// render updates the display.
func (c *Countdown) render() {
	state := c.GetState()

	c.display.MoveCursorHome()
	c.display.ClearScreen()

	output := c.display.Render(state.Label, state.Remaining, state.Total, state.Paused)
	os.Stdout.WriteString(output)
}

// listenKeyboard listens for keyboard input.
func (c *Countdown) listenKeyboard(ctx context.Context) {
	buf := make([]byte, 1)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			os.Stdin.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
			n, err := os.Stdin.Read(buf)
			if err != nil || n == 0 {
				continue
			}

			switch buf[0] {
			case ' ': // Space - pause/resume
				c.Pause()
			case 'q', 'Q', 3: // Q or Ctrl+C - cancel
				c.Cancel()
			}
		}
	}
}

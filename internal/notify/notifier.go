// Package notify delivers reminder alerts to the user.
package notify

import (
	"github.com/ljmonteiro/companheiro/internal/model"
)

// Notifier is the platform notification capability. Exactly one variant is
// selected at startup and injected wherever alerts are raised; the
// unavailable variant swallows everything silently.
type Notifier interface {
	// Notify shows a desktop notification with a title and body.
	Notify(alert *model.Alert) error
	// Chime plays the short audio cue that accompanies a notification.
	Chime() error
	// Available reports whether the platform capability is present.
	Available() bool
}

// Unavailable is the no-op Notifier used when the platform has no
// notification support or it was disabled.
type Unavailable struct{}

// Notify does nothing.
func (Unavailable) Notify(*model.Alert) error { return nil }

// Chime does nothing.
func (Unavailable) Chime() error { return nil }

// Available reports false.
func (Unavailable) Available() bool { return false }

package notify

import (
	"github.com/ljmonteiro/companheiro/internal/logging"
	"github.com/ljmonteiro/companheiro/internal/model"
	"github.com/ljmonteiro/companheiro/internal/voice"
)

// Dispatcher fans a reminder alert out to the delivery channels: the
// platform notification, the spoken alert when voice output is enabled, and
// the audio cue. The three are independent; a failure in one is logged and
// never stops the others, and nothing escapes Deliver.
type Dispatcher struct {
	notifier Notifier
	speaker  voice.Speaker
}

// NewDispatcher creates a dispatcher over the detected capabilities.
func NewDispatcher(notifier Notifier, speaker voice.Speaker) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		speaker:  speaker,
	}
}

// DeliverResult records which channels were attempted and which failed.
type DeliverResult struct {
	Notified bool
	Spoken   bool
	Chimed   bool
}

// Deliver sends one alert through every channel in order.
func (d *Dispatcher) Deliver(alert *model.Alert, voiceEnabled bool) DeliverResult {
	var result DeliverResult

	if err := d.notifier.Notify(alert); err != nil {
		logging.Warn("notification failed",
			logging.KeyAlertType, string(alert.Type),
			logging.KeyError, err)
	} else {
		result.Notified = true
	}

	if voiceEnabled && d.speaker.Available() {
		if err := d.speaker.Speak(alert.Spoken); err != nil {
			logging.Warn("spoken alert failed",
				logging.KeyAlertType, string(alert.Type),
				logging.KeyError, err)
		} else {
			result.Spoken = true
		}
	}

	if err := d.notifier.Chime(); err != nil {
		// Audio is commonly blocked; debug only.
		logging.DebugLog("audio cue failed", logging.KeyError, err)
	} else {
		result.Chimed = true
	}

	return result
}

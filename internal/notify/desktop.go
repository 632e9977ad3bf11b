package notify

import (
	"os"

	"github.com/gen2brain/beeep"

	"github.com/ljmonteiro/companheiro/internal/model"
)

// Desktop sends notifications through the platform notification service.
type Desktop struct{}

// Detect probes the platform once at startup and returns the matching
// Notifier variant. COMPANHEIRO_NO_NOTIFY disables it explicitly; the probe
// is never repeated afterwards.
func Detect() Notifier {
	if os.Getenv("COMPANHEIRO_NO_NOTIFY") != "" {
		return Unavailable{}
	}
	return &Desktop{}
}

// Notify shows a desktop notification.
func (d *Desktop) Notify(alert *model.Alert) error {
	return beeep.Notify(alert.Title, alert.Body, "")
}

// Chime plays the short notification sound.
func (d *Desktop) Chime() error {
	return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
}

// Available reports true.
func (d *Desktop) Available() bool { return true }

package model

// Profile holds the process-wide user settings. Each field is persisted
// under its own store key; a missing name is the first-run signal.
type Profile struct {
	Name         string
	DarkMode     bool
	VoiceEnabled bool
}

// FirstRun reports whether onboarding is still needed.
func (p Profile) FirstRun() bool {
	return p.Name == ""
}

// Package model defines the domain records for Companheiro.
package model

// Store keys. The two record collections are always written as a pair under
// KeyMedications and KeyAppointments; the profile fields each get their own key.
const (
	KeyMedications  = "medications"
	KeyAppointments = "appointments"
	KeyUserName     = "userName"
	KeyDarkMode     = "darkMode"
	KeyVoiceEnabled = "voiceEnabled"
)

package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Preference is a user's conversion setting.
type Preference struct {
	UserID  uuid.UUID `json:"user_id"`
	Name    string    `json:"name,omitempty"`
	Enabled bool      `json:"enabled"`
}

// Status returns the preference as a Status.
func (p Preference) Status() Status {
	return StatusOf(p.Enabled)
}

// Status is the user-facing form of a conversion toggle.
type Status string

const (
	StatusEnable  Status = "enable"
	StatusDisable Status = "disable"
)

// StatusOf converts a boolean toggle.
func StatusOf(enabled bool) Status {
	if enabled {
		return StatusEnable
	}
	return StatusDisable
}

// Bool reports whether the status enables conversion.
func (s Status) Bool() bool {
	return s == StatusEnable
}

// ParseStatus accepts enable/disable and a few common synonyms.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "enable", "enabled", "on", "true":
		return StatusEnable, nil
	case "disable", "disabled", "off", "false":
		return StatusDisable, nil
	}
	return "", fmt.Errorf("unknown status %q: expected enable or disable", s)
}

package domain

import (
	"errors"

	"github.com/aretw0/japanizer/pkg/richtext"
	"github.com/aretw0/japanizer/pkg/romaji"
)

// ErrPreferenceNotFound is returned when a store has no preference for a user.
var ErrPreferenceNotFound = errors.New("preference not found")

// ErrInvalidCondition is returned when the trigger condition does not compile.
var ErrInvalidCondition = errors.New("invalid trigger condition")

// ErrInvalidTemplate is returned when the message template cannot be parsed.
var ErrInvalidTemplate = richtext.ErrInvalidTemplate

// ErrDuplicateRule is returned when the rule table defines a key twice.
var ErrDuplicateRule = romaji.ErrDuplicateRule

package ports

import (
	"context"

	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/google/uuid"
)

// PreferenceStore persists per-user conversion preferences.
type PreferenceStore interface {
	// Save persists the preference, replacing any previous value for the same user.
	Save(ctx context.Context, pref domain.Preference) error

	// Load retrieves the preference of a user.
	// Returns domain.ErrPreferenceNotFound if the user has none stored.
	Load(ctx context.Context, userID uuid.UUID) (domain.Preference, error)

	// Delete removes the preference of a user. Deleting a missing user is not an error.
	Delete(ctx context.Context, userID uuid.UUID) error
}

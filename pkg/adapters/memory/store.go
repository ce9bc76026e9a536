package memory

import (
	"context"
	"sync"

	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/google/uuid"
)

// Store implements ports.PreferenceStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[uuid.UUID]domain.Preference
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[uuid.UUID]domain.Preference),
	}
}

// Save stores the preference.
func (s *Store) Save(ctx context.Context, pref domain.Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[pref.UserID] = pref
	return nil
}

// Load retrieves the preference of a user.
func (s *Store) Load(ctx context.Context, userID uuid.UUID) (domain.Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pref, ok := s.data[userID]
	if !ok {
		return domain.Preference{}, domain.ErrPreferenceNotFound
	}
	return pref, nil
}

// Delete removes the preference.
func (s *Store) Delete(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}

// Len returns the number of stored preferences.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

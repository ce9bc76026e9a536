package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/aretw0/japanizer/pkg/ports"
	"github.com/google/uuid"
)

// Mask replaces a display name that matched a PII pattern.
const Mask = "***"

type piiMiddleware struct {
	next     ports.PreferenceStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks display names matching any pattern
// before they reach the store, e.g. names that are e-mail addresses.
// The caller's preference is left untouched.
func NewPIIMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		patterns[i] = re
	}
	return func(next ports.PreferenceStore) ports.PreferenceStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *piiMiddleware) Save(ctx context.Context, pref domain.Preference) error {
	for _, p := range m.patterns {
		if p.MatchString(pref.Name) {
			pref.Name = Mask
			break
		}
	}
	return m.next.Save(ctx, pref)
}

func (m *piiMiddleware) Load(ctx context.Context, userID uuid.UUID) (domain.Preference, error) {
	return m.next.Load(ctx, userID)
}

func (m *piiMiddleware) Delete(ctx context.Context, userID uuid.UUID) error {
	return m.next.Delete(ctx, userID)
}

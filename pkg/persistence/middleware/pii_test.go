package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/japanizer/pkg/adapters/memory"
	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/aretw0/japanizer/pkg/persistence/middleware"
	"github.com/google/uuid"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	// Setup
	underlyingStore := memory.NewStore()
	// Mask names that look like e-mail addresses or phone numbers
	mw, err := middleware.NewPIIMiddleware([]string{"@", `^\+?[0-9 ]{7,}$`})
	if err != nil {
		t.Fatal(err)
	}
	secureStore := mw(underlyingStore)
	ctx := context.Background()

	cases := map[string]string{
		"steve":             "steve",
		"steve@example.com": middleware.Mask,
		"+55 11 99999 9999": middleware.Mask,
		"":                  "",
	}
	for name, want := range cases {
		pref := domain.Preference{UserID: uuid.New(), Name: name}
		if err := secureStore.Save(ctx, pref); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		// Verify the caller's value is NOT MODIFIED
		if pref.Name != name {
			t.Error("Middleware modified the caller's preference")
		}

		stored, err := underlyingStore.Load(ctx, pref.UserID)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if stored.Name != want {
			t.Errorf("name %q: expected %q stored, got %q", name, want, stored.Name)
		}
	}
}

func TestPIIMiddleware_InvalidPattern(t *testing.T) {
	if _, err := middleware.NewPIIMiddleware([]string{"("}); err == nil {
		t.Error("Expected error for invalid pattern")
	}
}

func TestChain_Order(t *testing.T) {
	underlyingStore := memory.NewStore()
	pii, err := middleware.NewPIIMiddleware([]string{"@"})
	if err != nil {
		t.Fatal(err)
	}
	enc := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	store := middleware.Chain(underlyingStore, pii, enc)

	ctx := context.Background()
	id := uuid.New()
	if err := store.Save(ctx, domain.Preference{UserID: id, Name: "a@b.c"}); err != nil {
		t.Fatal(err)
	}

	// Masked first, then encrypted
	loaded, err := store.Load(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != middleware.Mask {
		t.Errorf("Expected masked name, got %q", loaded.Name)
	}
}

package tests

import (
	"context"
	"testing"

	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/aretw0/japanizer/pkg/ports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PreferenceStoreContractTest is a reusable test suite that verifies if an adapter complies with ports.PreferenceStore.
func PreferenceStoreContractTest(t *testing.T, store ports.PreferenceStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Save_And_Load", func(t *testing.T) {
		pref := domain.Preference{UserID: uuid.New(), Name: "steve", Enabled: true}
		require.NoError(t, store.Save(ctx, pref))

		loaded, err := store.Load(ctx, pref.UserID)
		require.NoError(t, err)
		assert.Equal(t, pref, loaded)
	})

	t.Run("Save_Overwrites", func(t *testing.T) {
		id := uuid.New()
		require.NoError(t, store.Save(ctx, domain.Preference{UserID: id, Enabled: true}))
		require.NoError(t, store.Save(ctx, domain.Preference{UserID: id, Enabled: false}))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.False(t, loaded.Enabled)
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrPreferenceNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		id := uuid.New()
		require.NoError(t, store.Save(ctx, domain.Preference{UserID: id, Enabled: true}))
		require.NoError(t, store.Delete(ctx, id))

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrPreferenceNotFound, "Load after Delete should return ErrPreferenceNotFound")

		assert.NoError(t, store.Delete(ctx, id), "deleting twice is not an error")
	})
}

package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/japanizer/pkg/adapters/memory"
	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/aretw0/japanizer/pkg/ports/tests"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	tests.PreferenceStoreContractTest(t, memory.NewStore())
}

func TestMemoryStore_Len(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Preference{UserID: uuid.New()}))
	require.NoError(t, store.Save(ctx, domain.Preference{UserID: uuid.New()}))
	assert.Equal(t, 2, store.Len())
}

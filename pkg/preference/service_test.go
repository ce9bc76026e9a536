package preference

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/japanizer/pkg/adapters/memory"
	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/aretw0/japanizer/pkg/ports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Save(ctx context.Context, pref domain.Preference) error {
	return m.Called(ctx, pref).Error(0)
}

func (m *mockStore) Load(ctx context.Context, id uuid.UUID) (domain.Preference, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Preference), args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func newService(t *testing.T, opts ...Option) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc, err := NewService(store, opts...)
	require.NoError(t, err)
	return svc, store
}

func TestService_DefaultIsNotCached(t *testing.T) {
	svc, _ := newService(t, WithDefaultEnabled(false))
	id := uuid.New()

	pref, err := svc.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.Preference{UserID: id, Enabled: false}, pref)
	assert.Equal(t, 0, svc.Cached())
}

func TestService_LoadCachesStoredValue(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	id := uuid.New()
	stored := domain.Preference{UserID: id, Name: "alex", Enabled: false}
	store.On("Load", mock.Anything, id).Return(stored, nil).Once()

	svc, err := NewService(store)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		pref, err := svc.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, stored, pref)
	}
	store.AssertExpectations(t)
}

func TestService_LoadStoreError(t *testing.T) {
	boom := errors.New("boom")
	store := new(mockStore)
	store.On("Load", mock.Anything, mock.Anything).Return(domain.Preference{}, boom)

	svc, err := NewService(store)
	require.NoError(t, err)

	_, err = svc.Load(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, svc.Cached())
}

func TestService_SaveCachesThenPersists(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)
	pref := domain.Preference{UserID: uuid.New(), Enabled: false}

	require.NoError(t, svc.Save(ctx, pref))
	assert.Equal(t, 1, svc.Cached())

	stored, err := store.Load(ctx, pref.UserID)
	require.NoError(t, err)
	assert.Equal(t, pref, stored)
}

func TestService_SaveStoreErrorKeepsCache(t *testing.T) {
	boom := errors.New("boom")
	store := new(mockStore)
	store.On("Save", mock.Anything, mock.Anything).Return(boom)

	svc, err := NewService(store)
	require.NoError(t, err)

	pref := domain.Preference{UserID: uuid.New(), Enabled: true}
	assert.ErrorIs(t, svc.Save(context.Background(), pref), boom)

	got, err := svc.Load(context.Background(), pref.UserID)
	require.NoError(t, err)
	assert.Equal(t, pref, got)
}

func TestService_SetEnabled(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)
	id := uuid.New()

	pref, err := svc.SetEnabled(ctx, id, false)
	require.NoError(t, err)
	assert.False(t, pref.Enabled)

	stored, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.False(t, stored.Enabled)
}

func TestService_ExpireAfterAccess(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t, WithCacheTTL(500*time.Millisecond))
	id := uuid.New()
	require.NoError(t, svc.Save(ctx, domain.Preference{UserID: id, Enabled: false}))
	// Only the cache knows the user from here on.
	require.NoError(t, store.Delete(ctx, id))

	time.Sleep(300 * time.Millisecond)
	pref, err := svc.Load(ctx, id)
	require.NoError(t, err)
	require.False(t, pref.Enabled)

	time.Sleep(300 * time.Millisecond)
	pref, err = svc.Load(ctx, id)
	require.NoError(t, err)
	assert.False(t, pref.Enabled, "access renews the entry")

	time.Sleep(800 * time.Millisecond)
	svc.sweep()
	assert.Equal(t, 0, svc.Cached())

	pref, err = svc.Load(ctx, id)
	require.NoError(t, err)
	assert.True(t, pref.Enabled, "expired entry falls back to the store, then the default")
}

func TestService_EvictsLeastRecentlyAccessed(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, WithMaxEntries(2))
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	require.NoError(t, svc.Save(ctx, domain.Preference{UserID: a}))
	require.NoError(t, svc.Save(ctx, domain.Preference{UserID: b}))
	require.NotNil(t, svc.cache.Get(a))
	require.NoError(t, svc.Save(ctx, domain.Preference{UserID: c}))

	assert.Equal(t, 2, svc.Cached())
	assert.Nil(t, svc.cache.Get(b), "b was the least recently accessed")
	assert.NotNil(t, svc.cache.Get(a))
	assert.NotNil(t, svc.cache.Get(c))
}

func TestService_Invalidate(t *testing.T) {
	svc, _ := newService(t)
	id := uuid.New()
	require.NoError(t, svc.Save(context.Background(), domain.Preference{UserID: id}))

	svc.Invalidate(id)
	assert.Equal(t, 0, svc.Cached())
}

func TestService_InvalidSchedule(t *testing.T) {
	_, err := NewService(memory.NewStore(), WithSweepSchedule("not a schedule"))
	assert.Error(t, err)
}

func TestService_StartStop(t *testing.T) {
	svc, _ := newService(t, WithSweepSchedule("@every 1s"))
	svc.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	svc.Stop(ctx)
}

type fakeLocker struct {
	mu     sync.Mutex
	locked []string
	held   bool
	err    error
}

func (l *fakeLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	l.locked = append(l.locked, key)
	l.held = true
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.held = false
		return nil
	}, nil
}

func TestService_UpdateWithLocker(t *testing.T) {
	ctx := context.Background()
	locker := &fakeLocker{}
	svc, store := newService(t, WithLocker(locker, time.Second))
	id := uuid.New()

	require.NoError(t, svc.Save(ctx, domain.Preference{UserID: id, Enabled: true}))
	// Another replica changed the stored value behind our cache.
	require.NoError(t, store.Save(ctx, domain.Preference{UserID: id, Name: "steve", Enabled: true}))

	pref, err := svc.Update(ctx, id, func(p *domain.Preference) {
		assert.True(t, locker.held, "fn runs under the lock")
		p.Enabled = false
	})
	require.NoError(t, err)

	assert.Equal(t, domain.Preference{UserID: id, Name: "steve", Enabled: false}, pref)
	assert.Equal(t, []string{id.String()}, locker.locked)
	assert.False(t, locker.held)
}

func TestService_UpdateLockFailure(t *testing.T) {
	store := new(mockStore)
	svc, err := NewService(store, WithLocker(&fakeLocker{err: errors.New("busy")}, 0))
	require.NoError(t, err)

	_, err = svc.SetEnabled(context.Background(), uuid.New(), false)
	assert.Error(t, err)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

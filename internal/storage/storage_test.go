package storage

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/citizen_report/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore проверяет общий контракт Store для любой реализации
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "a", []byte(`"one"`)))
	require.NoError(t, store.Set(ctx, "b", []byte(`"two"`)))
	require.NoError(t, store.Set(ctx, "a", []byte(`"uno"`)))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, `"uno"`, string(got))

	require.NoError(t, store.Delete(ctx, "a"))
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	value := []byte("abc")

	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(context.Background(), ":memory:")
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}

func TestKV_SessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewKV(NewMemoryStore())
	session := models.Session{
		Credential: models.Credential{Scheme: models.SchemeBasic, Value: "dXNlcjpwYXNz"},
		User:       models.UserProfile{ID: 7, Username: "jane", Email: "jane@example.org", DisplayName: "Jane"},
	}

	require.NoError(t, kv.SaveSession(ctx, session))

	restored, err := kv.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, session, *restored)
}

func TestKV_SessionWithoutSchemeIsIgnored(t *testing.T) {
	ctx := context.Background()
	kv := NewKV(NewMemoryStore())
	require.NoError(t, kv.Save(ctx, KeyAuthToken, "legacy-token"))
	require.NoError(t, kv.Save(ctx, KeyUser, models.UserProfile{ID: 1}))

	_, err := kv.Session(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKV_SettingsDefaults(t *testing.T) {
	ctx := context.Background()
	kv := NewKV(NewMemoryStore())

	settings, err := kv.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)

	require.NoError(t, kv.SaveSettings(ctx, models.Settings{Notifications: false, AutoRefresh: true}))
	settings, err = kv.Settings(ctx)
	require.NoError(t, err)
	assert.False(t, settings.Notifications)
	assert.True(t, settings.AutoRefresh)
}

func TestKV_CachedIncidentsFreshness(t *testing.T) {
	ctx := context.Background()
	kv := NewKV(NewMemoryStore())
	writtenAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	incidents := []models.Incident{{ID: 1, Title: "Fire on Main St", Category: []string{"fire"}}}

	_, err := kv.CachedIncidents(ctx, 5*time.Minute, writtenAt)
	assert.ErrorIs(t, err, models.ErrCacheMiss)

	require.NoError(t, kv.CacheIncidents(ctx, incidents, writtenAt))

	cached, err := kv.CachedIncidents(ctx, 5*time.Minute, writtenAt.Add(4*time.Minute+59*time.Second))
	require.NoError(t, err)
	assert.Equal(t, incidents[0].Title, cached.Data[0].Title)
	assert.Equal(t, writtenAt.UnixMilli(), cached.Timestamp)

	_, err = kv.CachedIncidents(ctx, 5*time.Minute, writtenAt.Add(5*time.Minute+time.Second))
	assert.ErrorIs(t, err, models.ErrCacheExpired)
}

func TestKV_PushToken(t *testing.T) {
	ctx := context.Background()
	kv := NewKV(NewMemoryStore())

	_, err := kv.PushToken(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.SavePushToken(ctx, "fcm-123"))
	token, err := kv.PushToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fcm-123", token)
}

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/app", pgx5URL("postgres://u:p@db:5432/app"))
	assert.Equal(t, "pgx5://u:p@db/app?sslmode=disable", pgx5URL("postgresql://u:p@db/app?sslmode=disable"))
	assert.Equal(t, "pgx5://db/app", pgx5URL("pgx5://db/app"))
}

func TestRedisStore_UnreachableIsNotMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	store := NewRedisStore(client, "")

	_, err := store.Get(context.Background(), KeyAuthToken)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "citizen_report:auth_token", store.key(KeyAuthToken))
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shenikar/citizen_report/internal/models"
)

// CachedIncidents - запись кэша инцидентов в постоянном хранилище
type CachedIncidents struct {
	Data      []models.Incident `json:"data"`
	Timestamp int64             `json:"timestamp"` // unix millis
}

// FetchedAt возвращает момент записи кэша
func (c *CachedIncidents) FetchedAt() time.Time {
	return time.UnixMilli(c.Timestamp)
}

// KV - типизированные JSON-операции поверх Store
type KV struct {
	store Store
}

func NewKV(store Store) *KV {
	return &KV{store: store}
}

// Save сохраняет значение в виде JSON
func (kv *KV) Save(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return kv.store.Set(ctx, key, payload)
}

// Load читает JSON-значение; отсутствующий ключ дает ErrNotFound
func (kv *KV) Load(ctx context.Context, key string, dst any) error {
	payload, err := kv.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

func (kv *KV) Remove(ctx context.Context, key string) error {
	return kv.store.Delete(ctx, key)
}

func (kv *KV) Clear(ctx context.Context) error {
	return kv.store.Clear(ctx)
}

// SaveSession сохраняет токен, его схему и профиль пользователя
func (kv *KV) SaveSession(ctx context.Context, session models.Session) error {
	if err := kv.Save(ctx, KeyAuthToken, session.Credential.Value); err != nil {
		return err
	}
	if err := kv.Save(ctx, KeyAuthScheme, session.Credential.Scheme); err != nil {
		return err
	}
	return kv.Save(ctx, KeyUser, session.User)
}

// Session восстанавливает сессию. Токен без сохраненной схемы считается отсутствующим.
func (kv *KV) Session(ctx context.Context) (*models.Session, error) {
	var session models.Session
	if err := kv.Load(ctx, KeyAuthToken, &session.Credential.Value); err != nil {
		return nil, err
	}
	if err := kv.Load(ctx, KeyAuthScheme, &session.Credential.Scheme); err != nil {
		return nil, err
	}
	if !session.Credential.Scheme.Valid() || session.Credential.Value == "" {
		return nil, ErrNotFound
	}
	if err := kv.Load(ctx, KeyUser, &session.User); err != nil {
		return nil, err
	}
	return &session, nil
}

// Settings возвращает настройки или значения по умолчанию
func (kv *KV) Settings(ctx context.Context) (models.Settings, error) {
	settings := models.DefaultSettings()
	if err := kv.Load(ctx, KeySettings, &settings); err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.DefaultSettings(), nil
		}
		return settings, err
	}
	return settings, nil
}

func (kv *KV) SaveSettings(ctx context.Context, settings models.Settings) error {
	return kv.Save(ctx, KeySettings, settings)
}

func (kv *KV) SavePushToken(ctx context.Context, token string) error {
	return kv.Save(ctx, KeyPushToken, token)
}

func (kv *KV) PushToken(ctx context.Context) (string, error) {
	var token string
	if err := kv.Load(ctx, KeyPushToken, &token); err != nil {
		return "", err
	}
	return token, nil
}

// CacheIncidents целиком заменяет кэш инцидентов
func (kv *KV) CacheIncidents(ctx context.Context, incidents []models.Incident, now time.Time) error {
	if incidents == nil {
		incidents = []models.Incident{}
	}
	return kv.Save(ctx, KeyCachedIncidents, CachedIncidents{
		Data:      incidents,
		Timestamp: now.UnixMilli(),
	})
}

// CachedIncidents возвращает кэш, если он моложе maxAge.
// Нет кэша - models.ErrCacheMiss, устарел - models.ErrCacheExpired.
func (kv *KV) CachedIncidents(ctx context.Context, maxAge time.Duration, now time.Time) (*CachedIncidents, error) {
	var cached CachedIncidents
	if err := kv.Load(ctx, KeyCachedIncidents, &cached); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, models.ErrCacheMiss
		}
		return nil, err
	}
	if now.Sub(cached.FetchedAt()) >= maxAge {
		return nil, models.ErrCacheExpired
	}
	return &cached, nil
}

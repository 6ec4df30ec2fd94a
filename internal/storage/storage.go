package storage

import (
	"context"
	"errors"
)

// ErrNotFound возвращается, если ключ отсутствует в хранилище
var ErrNotFound = errors.New("storage: key not found")

// Ключи, под которыми клиент хранит свое состояние
const (
	KeyAuthToken       = "auth_token"
	KeyAuthScheme      = "auth_scheme"
	KeyUser            = "user"
	KeySettings        = "settings"
	KeyCachedIncidents = "cached_incidents"
	KeyPushToken       = "push_token"
)

// Store - контракт для постоянного key-value хранилища клиента
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Clear удаляет все ключи клиента
	Clear(ctx context.Context) error
	Close() error
}

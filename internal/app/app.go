package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/citizen_report/internal/config"
	"github.com/shenikar/citizen_report/internal/geocode"
	"github.com/shenikar/citizen_report/internal/notify"
	"github.com/shenikar/citizen_report/internal/service"
	"github.com/shenikar/citizen_report/internal/storage"
	"github.com/shenikar/citizen_report/internal/wpapi"
	"github.com/shenikar/citizen_report/pkg/postgres"
	redisclient "github.com/shenikar/citizen_report/pkg/redis"
	"github.com/sirupsen/logrus"
)

// App связывает хранилище, API-клиент и сервисы клиента в одно целое
type App struct {
	Config *config.Config
	Logger *logrus.Logger

	KV          *storage.KV
	API         *wpapi.Client
	Geocoder    *geocode.Client
	Auth        service.AuthService
	Incidents   service.IncidentService
	Preferences service.PreferencesService

	store       storage.Store
	redisClient *redis.Client
	worker      *notify.Worker
}

// Open собирает приложение по конфигурации и восстанавливает сохраненную сессию
func Open(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: log}

	if cfg.NeedsRedis() {
		rdb, err := redisclient.NewRedisClient(ctx, redisclient.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		a.redisClient = rdb
		log.Info("Successfully connected to Redis")
	}

	store, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store = store
	a.KV = storage.NewKV(store)

	a.API = wpapi.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, log)
	a.Geocoder = geocode.NewClient(cfg.GeocodeURL, cfg.HTTPTimeout, log)

	var notifier service.Notifier
	switch cfg.NotifyMode {
	case config.NotifyQueue:
		notifier = notify.NewRedisQueueNotifier(a.redisClient)
		a.worker = notify.NewWorker(a.redisClient, a.API, log, notify.WorkerOptions{
			MaxRetries: cfg.NotifyMaxRetries,
			BaseDelay:  cfg.NotifyBaseDelay,
		})
	default:
		notifier = notify.NewDirectNotifier(a.API, log)
	}

	a.Auth = service.NewAuthService(a.API, a.KV, log)
	a.Incidents = service.NewIncidentService(a.API, a.Auth, a.KV, notifier, log, service.IncidentOptions{
		PerPage:     cfg.PerPage,
		CacheMaxAge: cfg.CacheMaxAge,
	})
	a.Preferences = service.NewPreferencesService(a.KV, log)

	if a.Auth.Restore(ctx) {
		log.WithField("user", a.Auth.CurrentUser().Username).Info("Session restored")
	}
	return a, nil
}

func (a *App) openStore(ctx context.Context) (storage.Store, error) {
	cfg := a.Config
	log := a.Logger.WithField("driver", cfg.StorageDriver)

	switch cfg.StorageDriver {
	case config.StorageMemory:
		return storage.NewMemoryStore(), nil

	case config.StorageSQLite:
		store, err := storage.NewSQLiteStore(ctx, cfg.StorageDSN)
		if err != nil {
			return nil, err
		}
		log.WithField("path", cfg.StorageDSN).Info("Opened SQLite store")
		return store, nil

	case config.StorageRedis:
		return storage.NewRedisStore(a.redisClient, ""), nil

	case config.StoragePostgres:
		log.Info("Running database migrations...")
		if err := storage.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Info("Successfully connected to PostgreSQL")
		return storage.NewPostgresStore(dbpool), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// StartWorkers запускает фоновую доставку уведомлений, если включена очередь
func (a *App) StartWorkers(ctx context.Context) {
	if a.worker == nil {
		return
	}
	a.worker.Start(ctx)
}

// Close освобождает хранилище и соединение с Redis
func (a *App) Close() error {
	var errs []error
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

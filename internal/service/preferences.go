package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shenikar/citizen_report/internal/models"
	"github.com/shenikar/citizen_report/internal/storage"
	"github.com/sirupsen/logrus"
)

// Geocoder определяет название места по координатам
type Geocoder interface {
	LocationName(ctx context.Context, lat, lon float64) string
}

// PreferencesService определяет контракт настроек и регистрации push-уведомлений
type PreferencesService interface {
	Settings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error
	RegisterPush(ctx context.Context, registrationID string) error
	PushToken(ctx context.Context) (string, error)
}

type preferencesService struct {
	kv     *storage.KV
	logger *logrus.Logger
}

func NewPreferencesService(kv *storage.KV, logger *logrus.Logger) PreferencesService {
	return &preferencesService{
		kv:     kv,
		logger: logger,
	}
}

func (s *preferencesService) Settings(ctx context.Context) (models.Settings, error) {
	settings, err := s.kv.Settings(ctx)
	if err != nil {
		return models.DefaultSettings(), fmt.Errorf("service: could not load settings: %w", err)
	}
	return settings, nil
}

func (s *preferencesService) SaveSettings(ctx context.Context, settings models.Settings) error {
	if err := s.kv.SaveSettings(ctx, settings); err != nil {
		s.logger.WithError(err).Error("Failed to save settings")
		return fmt.Errorf("service: could not save settings: %w", err)
	}
	return nil
}

// RegisterPush сохраняет идентификатор регистрации устройства
func (s *preferencesService) RegisterPush(ctx context.Context, registrationID string) error {
	registrationID = strings.TrimSpace(registrationID)
	if registrationID == "" {
		return errors.New("service: empty push registration id")
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":    "preferences",
		"method":     "RegisterPush",
		"push_token": maskToken(registrationID),
	})
	if err := s.kv.SavePushToken(ctx, registrationID); err != nil {
		log.WithError(err).Error("Failed to save push token")
		return fmt.Errorf("service: could not save push token: %w", err)
	}
	log.Info("Push token registered")
	return nil
}

// PushToken возвращает сохраненный идентификатор или пустую строку
func (s *preferencesService) PushToken(ctx context.Context) (string, error) {
	token, err := s.kv.PushToken(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("service: could not load push token: %w", err)
	}
	return token, nil
}

// maskToken скрывает токен в логах
func maskToken(token string) string {
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

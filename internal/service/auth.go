package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/shenikar/citizen_report/internal/models"
	"github.com/shenikar/citizen_report/internal/storage"
	"github.com/shenikar/citizen_report/internal/wpapi"
	"github.com/sirupsen/logrus"
)

// AuthAPI определяет контракт удаленных вызовов аутентификации
type AuthAPI interface {
	Token(ctx context.Context, username, password string) (*wpapi.TokenResponse, error)
	ValidateToken(ctx context.Context, headers map[string]string) error
	Me(ctx context.Context, headers map[string]string) (*wpapi.UserResponse, error)
}

// AuthService определяет контракт хранилища учетных данных
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) bool
	Validate(ctx context.Context) (bool, error)
	IsAuthenticated() bool
	AuthHeaders() map[string]string
	CurrentUser() *models.UserProfile
}

type authService struct {
	api    AuthAPI
	kv     *storage.KV
	logger *logrus.Logger

	mu      sync.RWMutex
	session *models.Session
}

func NewAuthService(api AuthAPI, kv *storage.KV, logger *logrus.Logger) AuthService {
	return &authService{
		api:    api,
		kv:     kv,
		logger: logger,
	}
}

// Login сначала пробует JWT-токен, при отказе проверяет логин и пароль через Basic
func (s *authService) Login(ctx context.Context, username, password string) (*models.Session, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "auth",
		"method":   "Login",
		"username": username,
	})
	log.Info("Attempting token login")

	resp, err := s.api.Token(ctx, username, password)
	if err != nil {
		if errors.Is(err, models.ErrNetworkUnavailable) {
			log.WithError(err).Warn("Token endpoint unreachable")
			return nil, fmt.Errorf("service: could not log in: %w", err)
		}
		log.WithError(err).Info("Token login rejected, falling back to basic auth")
		return s.loginBasic(ctx, username, password)
	}
	// Успешный ответ без токена означает отказ, Basic не пробуется
	if resp.Token == "" {
		log.Warn("Token response without token")
		return nil, fmt.Errorf("service: could not log in: %w", models.ErrInvalidCredentials)
	}

	session := &models.Session{
		Credential: models.Credential{Scheme: models.SchemeBearer, Value: resp.Token},
		User:       resp.Profile(),
	}
	s.setSession(ctx, session)

	log.WithField("user_id", session.User.ID).Info("Logged in with bearer token")
	return session, nil
}

func (s *authService) loginBasic(ctx context.Context, username, password string) (*models.Session, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "auth",
		"method":   "loginBasic",
		"username": username,
	})

	credential := models.Credential{
		Scheme: models.SchemeBasic,
		Value:  base64.StdEncoding.EncodeToString([]byte(username + ":" + password)),
	}
	user, err := s.api.Me(ctx, map[string]string{"Authorization": credential.HeaderValue()})
	if err != nil {
		log.WithError(err).Warn("Basic auth probe failed")
		return nil, fmt.Errorf("service: could not log in: %w: %v", models.ErrInvalidCredentials, err)
	}

	session := &models.Session{
		Credential: credential,
		User:       user.Profile(),
	}
	s.setSession(ctx, session)

	log.WithField("user_id", session.User.ID).Info("Logged in with basic auth")
	return session, nil
}

func (s *authService) setSession(ctx context.Context, session *models.Session) {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	if err := s.kv.SaveSession(ctx, *session); err != nil {
		s.logger.WithError(err).Warn("Failed to persist session")
	}
}

// Logout сбрасывает сессию и очищает все хранилище, включая кэш инцидентов
func (s *authService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	if err := s.kv.Clear(ctx); err != nil {
		s.logger.WithError(err).Error("Failed to clear storage on logout")
		return fmt.Errorf("service: could not clear storage: %w", err)
	}
	s.logger.WithField("service", "auth").Info("Logged out")
	return nil
}

// Restore загружает сохраненную сессию
func (s *authService) Restore(ctx context.Context) bool {
	session, err := s.kv.Session(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.WithError(err).Warn("Failed to restore session")
		}
		return false
	}

	if !session.Complete() {
		s.logger.Warn("Stored session has no user profile")
		return false
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	return true
}

// Validate проверяет, принимает ли сервер текущие учетные данные
func (s *authService) Validate(ctx context.Context) (bool, error) {
	s.mu.RLock()
	session := s.session
	s.mu.RUnlock()
	if session == nil {
		return false, nil
	}

	headers := map[string]string{"Authorization": session.Credential.HeaderValue()}
	var err error
	switch session.Credential.Scheme {
	case models.SchemeBearer:
		err = s.api.ValidateToken(ctx, headers)
	case models.SchemeBasic:
		_, err = s.api.Me(ctx, headers)
	}

	if err == nil {
		return true, nil
	}
	if errors.Is(err, models.ErrNetworkUnavailable) {
		return false, fmt.Errorf("service: could not validate credentials: %w", err)
	}
	return false, nil
}

func (s *authService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil && s.session.Complete()
}

// AuthHeaders возвращает заголовок Authorization по сохраненной схеме
func (s *authService) AuthHeaders() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil || s.session.Credential.Value == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": s.session.Credential.HeaderValue()}
}

func (s *authService) CurrentUser() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}
	user := s.session.User
	return &user
}

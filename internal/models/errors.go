package models

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNetworkUnavailable = errors.New("network unavailable")
	ErrAuthRejected       = errors.New("authentication rejected")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("not found")
	ErrCacheExpired       = errors.New("cached incidents expired")
	ErrCacheMiss          = errors.New("no cached incidents")
	ErrSuperseded         = errors.New("superseded by a newer request")
	ErrNoMorePages        = errors.New("no more pages")
	ErrInvalidDraft       = errors.New("invalid incident draft")
)

// HTTPError - ответ API с неуспешным статусом
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status %d", e.Status)
	}
	return fmt.Sprintf("http status %d: %s", e.Status, e.Body)
}

// Unwrap сводит статусы к категориям ошибок
func (e *HTTPError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthRejected
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

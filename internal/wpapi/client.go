package wpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shenikar/citizen_report/internal/models"
	"github.com/sirupsen/logrus"
)

const maxErrorBody = 512

// Client - HTTP-клиент REST API WordPress с плагином citizen-report
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient создает клиент для baseURL вида https://site/wp-json
func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Token запрашивает JWT-токен
func (c *Client) Token(ctx context.Context, username, password string) (*TokenResponse, error) {
	var resp TokenResponse
	err := c.do(ctx, http.MethodPost, "/jwt-auth/v1/token", nil, TokenRequest{Username: username, Password: password}, nil, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateToken проверяет JWT-токен на сервере
func (c *Client) ValidateToken(ctx context.Context, headers map[string]string) error {
	return c.do(ctx, http.MethodPost, "/jwt-auth/v1/token/validate", nil, nil, headers, nil)
}

// Me возвращает текущего пользователя; используется как проверка Basic-авторизации
func (c *Client) Me(ctx context.Context, headers map[string]string) (*UserResponse, error) {
	var resp UserResponse
	if err := c.do(ctx, http.MethodGet, "/wp/v2/users/me", nil, nil, headers, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListIncidents возвращает страницу инцидентов, опционально по категории
func (c *Client) ListIncidents(ctx context.Context, page, perPage int, category string) (*IncidentsPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))
	if category != "" {
		query.Set("category", category)
	}

	var resp IncidentsPage
	if err := c.do(ctx, http.MethodGet, "/citizen-report/v1/incidents", query, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MyIncidents возвращает инциденты текущего пользователя
func (c *Client) MyIncidents(ctx context.Context, headers map[string]string) ([]models.Incident, error) {
	var resp incidentsEnvelope
	if err := c.do(ctx, http.MethodGet, "/citizen-report/v1/my-incidents", nil, nil, headers, &resp); err != nil {
		return nil, err
	}
	return resp.Incidents, nil
}

// CreateIncident отправляет новый инцидент
func (c *Client) CreateIncident(ctx context.Context, headers map[string]string, draft models.IncidentDraft) (*models.Incident, error) {
	var resp models.Incident
	if err := c.do(ctx, http.MethodPost, "/citizen-report/v1/incidents", nil, draft, headers, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Notify просит сервер разослать уведомление
func (c *Client) Notify(ctx context.Context, notification models.Notification) error {
	return c.do(ctx, http.MethodPost, "/citizen-report/v1/notify", nil, notification, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, headers map[string]string, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	log := c.logger.WithFields(logrus.Fields{"method": method, "path": path})
	log.Debug("Sending API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("API request failed")
		return fmt.Errorf("%w: %w", models.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.WithField("status", resp.StatusCode).Warn("API request returned non-success status")
		return &models.HTTPError{Status: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

package wpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shenikar/citizen_report/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return NewClient(srv.URL, 5*time.Second, logger)
}

func TestToken_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/jwt-auth/v1/token", r.URL.Path)

		var req TokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "jane", req.Username)
		assert.Equal(t, "secret", req.Password)

		_ = json.NewEncoder(w).Encode(TokenResponse{Token: "jwt", UserID: 3, UserNicename: "jane"})
	})

	resp, err := client.Token(context.Background(), "jane", "secret")

	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.Token)
	assert.Equal(t, models.UserProfile{ID: 3, Username: "jane"}, resp.Profile())
}

func TestToken_Rejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code":"[jwt_auth] incorrect_password"}`))
	})

	_, err := client.Token(context.Background(), "jane", "wrong")

	require.Error(t, err)
	var httpErr *models.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
	assert.ErrorIs(t, err, models.ErrAuthRejected)
}

func TestListIncidents_QueryParameters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/citizen-report/v1/incidents", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		assert.Equal(t, "fire", r.URL.Query().Get("category"))
		_, _ = w.Write([]byte(`{"incidents":[{"id":5,"title":"Smoke","category":["fire"]}],"pages":3}`))
	})

	page, err := client.ListIncidents(context.Background(), 2, 10, "fire")

	require.NoError(t, err)
	assert.Equal(t, 3, page.Pages)
	require.Len(t, page.Incidents, 1)
	assert.Equal(t, int64(5), page.Incidents[0].ID)
}

func TestListIncidents_NoCategoryParam(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["category"]
		assert.False(t, ok)
		_, _ = w.Write([]byte(`{"incidents":[],"pages":1}`))
	})

	_, err := client.ListIncidents(context.Background(), 1, 10, "")
	require.NoError(t, err)
}

func TestMyIncidents_SendsAuthHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer jwt", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"incidents":[{"id":1},{"id":2}]}`))
	})

	incidents, err := client.MyIncidents(context.Background(), map[string]string{"Authorization": "Bearer jwt"})

	require.NoError(t, err)
	assert.Len(t, incidents, 2)
}

func TestCreateIncident_PostsDraft(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Car crash", body["title"])
		assert.Equal(t, "accident", body["category"])
		assert.Equal(t, 10.5, body["latitude"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":42,"title":"Car crash","category":["accident"],"author":"jane"}`))
	})

	draft := models.IncidentDraft{Title: "Car crash", Category: "accident", Latitude: models.NewCoordinate(10.5)}
	incident, err := client.CreateIncident(context.Background(), nil, draft)

	require.NoError(t, err)
	assert.Equal(t, int64(42), incident.ID)
	assert.Equal(t, "jane", incident.Author)
}

func TestNotify_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.Notify(context.Background(), models.Notification{Title: "t", Body: "b"})

	var httpErr *models.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestDo_TransportFailure(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, time.Second, logger)

	_, err := client.ListIncidents(context.Background(), 1, 10, "")

	assert.ErrorIs(t, err, models.ErrNetworkUnavailable)
}

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shenikar/citizen_report/internal/models"
	"github.com/shenikar/citizen_report/internal/service/mocks"
	"github.com/shenikar/citizen_report/internal/storage"
	"github.com/shenikar/citizen_report/internal/wpapi"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

const defaultMaxAge = 5 * time.Minute

var errOffline = fmt.Errorf("%w: dial tcp: connection refused", models.ErrNetworkUnavailable)

type incidentDeps struct {
	api      *mocks.MockIncidentAPI
	auth     *mocks.MockHeaderProvider
	notifier *mocks.MockNotifier
	kv       *storage.KV
}

// newTestIncidentService создает сервис с моками
func newTestIncidentService(t *testing.T) (*incidentService, incidentDeps) {
	ctrl := gomock.NewController(t)
	deps := incidentDeps{
		api:      mocks.NewMockIncidentAPI(ctrl),
		auth:     mocks.NewMockHeaderProvider(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
		kv:       storage.NewKV(storage.NewMemoryStore()),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	svc := NewIncidentService(deps.api, deps.auth, deps.kv, deps.notifier, logger, IncidentOptions{
		PerPage:     10,
		CacheMaxAge: defaultMaxAge,
	})
	concrete := svc.(*incidentService)
	concrete.clock = func() time.Time { return fixedNow }
	return concrete, deps
}

func incident(id int64, category ...string) models.Incident {
	return models.Incident{
		ID:       id,
		Title:    fmt.Sprintf("Incident %d", id),
		Category: category,
		Date:     "2024-05-10T11:00:00",
	}
}

func TestFetchIncidents_FirstPageIsCached(t *testing.T) {
	// Подготовка
	svc, deps := newTestIncidentService(t)
	ctx := context.Background()
	items := []models.Incident{incident(1, "fire"), incident(2, "theft")}

	// Ожидания
	deps.api.EXPECT().
		ListIncidents(ctx, 1, 10, "").
		Return(&wpapi.IncidentsPage{Incidents: items, Pages: 3}, nil).
		Times(1)

	// Действие
	result, err := svc.FetchIncidents(ctx, 1, "")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.SourceFetched, result.Source)
	assert.False(t, result.Stale())
	assert.Equal(t, items, result.Items)
	assert.Equal(t, models.Cursor{Page: 1, TotalPages: 3}, svc.Cursor())
	assert.Equal(t, items, svc.Incidents())

	cached, err := deps.kv.CachedIncidents(ctx, defaultMaxAge, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, items, cached.Data)
	assert.Equal(t, fixedNow.UnixMilli(), cached.Timestamp)
}

func TestFetchIncidents_CacheScope(t *testing.T) {
	testCases := []struct {
		name     string
		page     int
		category string
	}{
		{name: "second page", page: 2, category: ""},
		{name: "filtered first page", page: 1, category: "fire"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, deps := newTestIncidentService(t)
			ctx := context.Background()

			deps.api.EXPECT().
				ListIncidents(ctx, tc.page, 10, tc.category).
				Return(&wpapi.IncidentsPage{Incidents: []models.Incident{incident(7, "fire")}, Pages: 2}, nil).
				Times(1)

			_, err := svc.FetchIncidents(ctx, tc.page, tc.category)
			require.NoError(t, err)

			_, err = deps.kv.CachedIncidents(ctx, defaultMaxAge, fixedNow)
			assert.ErrorIs(t, err, models.ErrCacheMiss)
		})
	}
}

func TestFetchIncidents_StaleFallback(t *testing.T) {
	testCases := []struct {
		name        string
		cachedAgo   time.Duration
		expectCache bool
		expectErr   error
	}{
		{name: "fresh cache is served", cachedAgo: 4*time.Minute + 59*time.Second, expectCache: true},
		{name: "expired cache is rejected", cachedAgo: 5*time.Minute + 1*time.Second, expectErr: models.ErrCacheExpired},
		{name: "exact max age is rejected", cachedAgo: 5 * time.Minute, expectErr: models.ErrCacheExpired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Подготовка
			svc, deps := newTestIncidentService(t)
			ctx := context.Background()
			cachedItems := []models.Incident{incident(1, "fire")}
			require.NoError(t, deps.kv.CacheIncidents(ctx, cachedItems, fixedNow.Add(-tc.cachedAgo)))

			// Ожидания
			deps.api.EXPECT().ListIncidents(ctx, 1, 10, "").Return(nil, errOffline).Times(1)

			// Действие
			result, err := svc.FetchIncidents(ctx, 1, "")

			// Проверки
			if !tc.expectCache {
				require.Error(t, err)
				assert.Nil(t, result)
				assert.ErrorIs(t, err, tc.expectErr)
				assert.ErrorIs(t, err, models.ErrNetworkUnavailable)
				return
			}
			require.NoError(t, err)
			assert.True(t, result.Stale())
			assert.Equal(t, cachedItems, result.Items)
			assert.Equal(t, 1, result.Page)
			assert.Equal(t, 1, result.TotalPages)
			assert.Equal(t, fixedNow.Add(-tc.cachedAgo).UnixMilli(), result.FetchedAt.UnixMilli())
		})
	}
}

func TestFetchIncidents_FallbackLeavesCursorUntouched(t *testing.T) {
	svc, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.api.EXPECT().
		ListIncidents(ctx, 1, 10, "").
		Return(&wpapi.IncidentsPage{Incidents: []models.Incident{incident(1, "fire")}, Pages: 4}, nil).
		Times(1)
	_, err := svc.FetchIncidents(ctx, 1, "")
	require.NoError(t, err)

	deps.api.EXPECT().
		ListIncidents(ctx, 2, 10, "").
		Return(nil, &models.HTTPError{Status: http.StatusInternalServerError}).
		Times(1)
	result, err := svc.FetchIncidents(ctx, 2, "")

	require.NoError(t, err)
	assert.True(t, result.Stale())
	assert.Equal(t, models.Cursor{Page: 1, TotalPages: 4}, svc.Cursor())
}

func TestFetchIncidents_NoCache(t *testing.T) {
	svc, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.api.EXPECT().ListIncidents(ctx, 1, 10, "").Return(nil, errOffline).Times(1)

	result, err := svc.FetchIncidents(ctx, 1, "")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrCacheMiss)
	assert.ErrorIs(t, err, models.ErrNetworkUnavailable)
}

func TestFetchIncidents_ClampsPages(t *testing.T) {
	svc, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.api.EXPECT().
		ListIncidents(ctx, 3, 10, "").
		Return(&wpapi.IncidentsPage{Pages: 0}, nil).
		Times(1)

	result, err := svc.FetchIncidents(ctx, 3, "")

	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalPages)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Equal(t, models.Cursor{Page: 1, TotalPages: 1}, svc.Cursor())
	assert.False(t, svc.Cursor().HasMore())
}

func TestFetchIncidents_Superseded(t *testing.T) {
	// Подготовка
	svc, deps := newTestIncidentService(t)
	ctx := context.Background()

	// Пока первый запрос в полете, пользователь меняет категорию
	deps.api.EXPECT().
		ListIncidents(ctx, 1, 10, "").
		DoAndReturn(func(ctx context.Context, page, perPage int, category string) (*wpapi.IncidentsPage, error) {
			svc.SetCategory("fire")
			return &wpapi.IncidentsPage{Incidents: []models.Incident{incident(1, "theft")}, Pages: 5}, nil
		}).
		Times(1)

	// Действие
	result, err := svc.FetchIncidents(ctx, 1, "")

	// Проверки
	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrSuperseded)
	assert.Equal(t, models.Cursor{Page: 1, TotalPages: 1, Category: "fire"}, svc.Cursor())
	assert.Empty(t, svc.Incidents())

	_, err = deps.kv.CachedIncidents(ctx, defaultMaxAge, fixedNow)
	assert.ErrorIs(t, err, models.ErrCacheMiss)
}

func TestFetchIncidents_NewerFetchWins(t *testing.T) {
	svc, deps := newTestIncidentService(t)
	ctx := context.Background()
	newer := []models.Incident{incident(2, "fire")}

	gomock.InOrder(
		deps.api.EXPECT().
			ListIncidents(ctx, 1, 10, "").
			DoAndReturn(func(ctx context.Context, page, perPage int, category string) (*wpapi.IncidentsPage, error) {
				// Второй запрос завершается раньше первого
				result, err := svc.FetchIncidents(ctx, 1, "fire")
				require.NoError(t, err)
				require.Equal(t, newer, result.Items)
				return &wpapi.IncidentsPage{Incidents: []models.Incident{incident(1, "theft")}, Pages: 3}, nil
			}),
		deps.api.EXPECT().
			ListIncidents(ctx, 1, 10, "fire").
			Return(&wpapi.IncidentsPage{Incidents: newer, Pages: 2}, nil),
	)

	_, err := svc.FetchIncidents(ctx, 1, "")

	assert.ErrorIs(t, err, models.ErrSuperseded)
	assert.Equal(t, models.Cursor{Page: 1, TotalPages: 2, Category: "fire"}, svc.Cursor())
	assert.Equal(t, newer, svc.Incidents())
}

func TestLoadMore(t *testing.T) {
	svc, deps := newTestIncidentService(t)
	ctx := context.Background()

	_, err := svc.LoadMore(ctx)
	assert.ErrorIs(t, err, models.ErrNoMorePages)

	gomock.InOrder(
		deps.api.EXPECT().
			ListIncidents(ctx, 1, 10, "theft").
			Return(&wpapi.IncidentsPage{Incidents: []models.Incident{incident(1, "theft")}, Pages: 2}, nil),
		deps.api.EXPECT().
			ListIncidents(ctx, 2, 10, "theft").
			Return(&wpapi.IncidentsPage{Incidents: []models.Incident{incident(2, "theft")}, Pages: 2}, nil),
	)

	_, err = svc.FetchIncidents(ctx, 1, "theft")
	require.NoError(t, err)

	result, err := svc.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, models.Cursor{Page: 2, TotalPages: 2, Category: "theft"}, svc.Cursor())

	_, err = svc.LoadMore(ctx)
	assert.ErrorIs(t, err, models.ErrNoMorePages)
}

func TestSetCategory(t *testing.T) {
	svc, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.api.EXPECT().
		ListIncidents(ctx, 1, 10, "").
		Return(&wpapi.IncidentsPage{Incidents: []models.Incident{incident(1)}, Pages: 3}, nil).
		Times(1)
	_, err := svc.FetchIncidents(ctx, 1, "")
	require.NoError(t, err)

	svc.SetCategory("")
	assert.Equal(t, models.Cursor{Page: 1, TotalPages: 3}, svc.Cursor(), "same category keeps cursor")

	svc.SetCategory("rioting")
	assert.Equal(t, models.Cursor{Page: 1, TotalPages: 1, Category: "rioting"}, svc.Cursor())
	assert.Empty(t, svc.Incidents())
}

func TestFetchMine(t *testing.T) {
	svc, deps := newTestIncidentService(t)
	ctx := context.Background()
	headers := map[string]string{"Authorization": "Bearer jwt"}

	deps.auth.EXPECT().AuthHeaders().Return(headers).Times(2)
	gomock.InOrder(
		deps.api.EXPECT().MyIncidents(ctx, headers).Return(nil, nil),
		deps.api.EXPECT().MyIncidents(ctx, headers).Return(nil, &models.HTTPError{Status: http.StatusUnauthorized}),
	)

	mine, err := svc.FetchMine(ctx)
	require.NoError(t, err)
	assert.NotNil(t, mine)
	assert.Empty(t, mine)

	_, err = svc.FetchMine(ctx)
	assert.ErrorIs(t, err, models.ErrAuthRejected)
}

func TestCreateIncident(t *testing.T) {
	validDraft := models.IncidentDraft{
		Title:       "Car crash on Main St",
		Category:    "Accident",
		Description: "Two cars",
		Latitude:    models.NewCoordinate(6.5244),
		Longitude:   models.NewCoordinate(3.3792),
	}
	headers := map[string]string{"Authorization": "Basic abc"}

	testCases := []struct {
		name          string
		draft         models.IncidentDraft
		mockBehavior  func(deps incidentDeps)
		expectedErr   error
		expectedTitle string
	}{
		{
			name:  "success with notification",
			draft: validDraft,
			mockBehavior: func(deps incidentDeps) {
				deps.auth.EXPECT().AuthHeaders().Return(headers)
				deps.api.EXPECT().
					CreateIncident(gomock.Any(), headers, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ map[string]string, d models.IncidentDraft) (*models.Incident, error) {
						assert.Equal(t, "accident", d.Category)
						return &models.Incident{ID: 42, Title: d.Title}, nil
					})
				deps.notifier.EXPECT().
					Notify(gomock.Any(), models.Notification{Title: "New Incident Reported", Body: "Car crash on Main St"}).
					Return(nil)
			},
			expectedTitle: "Car crash on Main St",
		},
		{
			name:  "notification failure is swallowed",
			draft: validDraft,
			mockBehavior: func(deps incidentDeps) {
				deps.auth.EXPECT().AuthHeaders().Return(headers)
				deps.api.EXPECT().CreateIncident(gomock.Any(), headers, gomock.Any()).Return(&models.Incident{ID: 43, Title: validDraft.Title}, nil)
				deps.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errors.New("push gateway down"))
			},
			expectedTitle: "Car crash on Main St",
		},
		{
			name:  "server rejects",
			draft: validDraft,
			mockBehavior: func(deps incidentDeps) {
				deps.auth.EXPECT().AuthHeaders().Return(headers)
				deps.api.EXPECT().CreateIncident(gomock.Any(), headers, gomock.Any()).Return(nil, &models.HTTPError{Status: http.StatusForbidden})
				deps.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)
			},
			expectedErr: models.ErrAuthRejected,
		},
		{
			name:         "missing title",
			draft:        models.IncidentDraft{Category: "fire"},
			mockBehavior: func(deps incidentDeps) {},
			expectedErr:  models.ErrInvalidDraft,
		},
		{
			name:         "unknown category",
			draft:        models.IncidentDraft{Title: "Flood", Category: "flood"},
			mockBehavior: func(deps incidentDeps) {},
			expectedErr:  models.ErrInvalidDraft,
		},
		{
			name:         "single coordinate",
			draft:        models.IncidentDraft{Title: "Fire", Category: "fire", Latitude: models.NewCoordinate(1)},
			mockBehavior: func(deps incidentDeps) {},
			expectedErr:  models.ErrInvalidDraft,
		},
		{
			name: "latitude out of range",
			draft: models.IncidentDraft{
				Title: "Fire", Category: "fire",
				Latitude: models.NewCoordinate(91), Longitude: models.NewCoordinate(0),
			},
			mockBehavior: func(deps incidentDeps) {},
			expectedErr:  models.ErrInvalidDraft,
		},
		{
			name:         "image is not a data uri",
			draft:        models.IncidentDraft{Title: "Fire", Category: "fire", Image: "http://example.org/a.png"},
			mockBehavior: func(deps incidentDeps) {},
			expectedErr:  models.ErrInvalidDraft,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, deps := newTestIncidentService(t)
			tc.mockBehavior(deps)

			created, err := svc.CreateIncident(context.Background(), tc.draft)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedTitle, created.Title)
		})
	}
}

func TestCreateIncident_WithoutNotifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockIncidentAPI(ctrl)
	auth := mocks.NewMockHeaderProvider(ctrl)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	svc := NewIncidentService(api, auth, storage.NewKV(storage.NewMemoryStore()), nil, logger, IncidentOptions{})

	auth.EXPECT().AuthHeaders().Return(map[string]string{})
	api.EXPECT().CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).Return(&models.Incident{ID: 1}, nil)

	created, err := svc.CreateIncident(context.Background(), models.IncidentDraft{Title: "Brawl", Category: "fighting"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestCategoryTally(t *testing.T) {
	svc, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.api.EXPECT().
		ListIncidents(ctx, 1, 10, "").
		Return(&wpapi.IncidentsPage{
			Incidents: []models.Incident{
				incident(1, "fire"),
				incident(2, "FIRE"),
				incident(3, "unknown"),
				incident(4, "theft", "fire"),
				incident(5),
			},
			Pages: 1,
		}, nil).
		Times(1)

	counts, err := svc.CategoryTally(ctx)

	require.NoError(t, err)
	assert.Len(t, counts, len(models.Categories))
	assert.Equal(t, 2, counts[models.CategoryFire])
	assert.Equal(t, 1, counts[models.CategoryTheft])
	assert.Equal(t, 0, counts[models.CategoryOther])
	assert.Equal(t, 0, counts[models.CategoryAccident])
}

func TestCategoryTally_PropagatesFailure(t *testing.T) {
	svc, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.api.EXPECT().ListIncidents(ctx, 1, 10, "").Return(nil, errOffline).Times(1)

	counts, err := svc.CategoryTally(ctx)

	assert.Nil(t, counts)
	assert.ErrorIs(t, err, models.ErrNetworkUnavailable)
}

func TestCategoryTally_KeepsListState(t *testing.T) {
	// Подготовка
	svc, deps := newTestIncidentService(t)
	ctx := context.Background()
	fires := []models.Incident{incident(1, "fire")}

	// Ожидания
	gomock.InOrder(
		deps.api.EXPECT().
			ListIncidents(ctx, 1, 10, "fire").
			Return(&wpapi.IncidentsPage{Incidents: fires, Pages: 3}, nil),
		deps.api.EXPECT().
			ListIncidents(ctx, 1, 10, "").
			Return(&wpapi.IncidentsPage{Incidents: []models.Incident{incident(2, "theft")}, Pages: 5}, nil),
		deps.api.EXPECT().
			ListIncidents(ctx, 2, 10, "fire").
			Return(&wpapi.IncidentsPage{Incidents: []models.Incident{incident(3, "fire")}, Pages: 3}, nil),
	)

	// Действие
	_, err := svc.FetchIncidents(ctx, 1, "fire")
	require.NoError(t, err)
	_, err = svc.CategoryTally(ctx)
	require.NoError(t, err)

	// Проверки
	assert.Equal(t, models.Cursor{Page: 1, TotalPages: 3, Category: "fire"}, svc.Cursor())
	assert.Equal(t, fires, svc.Incidents())

	// Первая страница без фильтра попадает в кэш
	cached, err := deps.kv.CachedIncidents(ctx, defaultMaxAge, fixedNow)
	require.NoError(t, err)
	assert.Len(t, cached.Data, 1)

	result, err := svc.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, "fire", result.Category)
}

func TestCategoryTally_DoesNotSupersedeListFetch(t *testing.T) {
	svc, deps := newTestIncidentService(t)
	ctx := context.Background()
	fires := []models.Incident{incident(1, "fire")}

	gomock.InOrder(
		deps.api.EXPECT().
			ListIncidents(ctx, 1, 10, "fire").
			DoAndReturn(func(ctx context.Context, page, perPage int, category string) (*wpapi.IncidentsPage, error) {
				// Подсчет категорий завершается, пока запрос списка в полете
				_, err := svc.CategoryTally(ctx)
				require.NoError(t, err)
				return &wpapi.IncidentsPage{Incidents: fires, Pages: 2}, nil
			}),
		deps.api.EXPECT().
			ListIncidents(ctx, 1, 10, "").
			Return(&wpapi.IncidentsPage{Incidents: []models.Incident{incident(2, "theft")}, Pages: 1}, nil),
	)

	result, err := svc.FetchIncidents(ctx, 1, "fire")

	require.NoError(t, err)
	assert.Equal(t, fires, result.Items)
	assert.Equal(t, models.Cursor{Page: 1, TotalPages: 2, Category: "fire"}, svc.Cursor())
}

func TestCategoryTally_FallsBackToCache(t *testing.T) {
	svc, deps := newTestIncidentService(t)
	ctx := context.Background()
	require.NoError(t, deps.kv.CacheIncidents(ctx, []models.Incident{incident(1, "fire")}, fixedNow.Add(-time.Minute)))

	deps.api.EXPECT().ListIncidents(ctx, 1, 10, "").Return(nil, errOffline).Times(1)

	counts, err := svc.CategoryTally(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, counts[models.CategoryFire])
	assert.Equal(t, models.Cursor{Page: 1, TotalPages: 1}, svc.Cursor())
}

func TestReset(t *testing.T) {
	svc, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.api.EXPECT().
		ListIncidents(ctx, 1, 10, "fire").
		Return(&wpapi.IncidentsPage{Incidents: []models.Incident{incident(1, "fire")}, Pages: 3}, nil).
		Times(1)
	_, err := svc.FetchIncidents(ctx, 1, "fire")
	require.NoError(t, err)

	svc.Reset()

	assert.Equal(t, models.Cursor{Page: 1, TotalPages: 1}, svc.Cursor())
	assert.Empty(t, svc.Incidents())
}

func TestReset_DiscardsInFlightFetch(t *testing.T) {
	// Подготовка
	svc, deps := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	// Выход из аккаунта происходит, пока запрос в полете
	deps.api.EXPECT().
		ListIncidents(ctx, 1, 10, "").
		DoAndReturn(func(ctx context.Context, page, perPage int, category string) (*wpapi.IncidentsPage, error) {
			svc.Reset()
			require.NoError(t, deps.kv.Clear(ctx))
			return &wpapi.IncidentsPage{Incidents: []models.Incident{incident(1, "fire")}, Pages: 1}, nil
		}).
		Times(1)

	// Действие
	result, err := svc.FetchIncidents(ctx, 1, "")

	// Проверки
	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrSuperseded)
	assert.Empty(t, svc.Incidents())
	_, err = deps.kv.CachedIncidents(ctx, defaultMaxAge, fixedNow)
	assert.ErrorIs(t, err, models.ErrCacheMiss)
}

func TestReset_DiscardsInFlightTallyCacheWrite(t *testing.T) {
	svc, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.api.EXPECT().
		ListIncidents(ctx, 1, 10, "").
		DoAndReturn(func(ctx context.Context, page, perPage int, category string) (*wpapi.IncidentsPage, error) {
			svc.Reset()
			require.NoError(t, deps.kv.Clear(ctx))
			return &wpapi.IncidentsPage{Incidents: []models.Incident{incident(1, "fire")}, Pages: 1}, nil
		}).
		Times(1)

	counts, err := svc.CategoryTally(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, counts[models.CategoryFire])
	_, err = deps.kv.CachedIncidents(ctx, defaultMaxAge, fixedNow)
	assert.ErrorIs(t, err, models.ErrCacheMiss)
}

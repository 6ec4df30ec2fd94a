package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shenikar/citizen_report/internal/metrics"
	"github.com/shenikar/citizen_report/internal/models"
	"github.com/shenikar/citizen_report/internal/storage"
	"github.com/shenikar/citizen_report/internal/wpapi"
	"github.com/sirupsen/logrus"
)

// IncidentAPI определяет контракт удаленных вызовов для инцидентов
type IncidentAPI interface {
	ListIncidents(ctx context.Context, page, perPage int, category string) (*wpapi.IncidentsPage, error)
	MyIncidents(ctx context.Context, headers map[string]string) ([]models.Incident, error)
	CreateIncident(ctx context.Context, headers map[string]string, draft models.IncidentDraft) (*models.Incident, error)
}

// Notifier рассылает уведомление о новом инциденте
type Notifier interface {
	Notify(ctx context.Context, notification models.Notification) error
}

// HeaderProvider отдает заголовки авторизации текущей сессии
type HeaderProvider interface {
	AuthHeaders() map[string]string
}

// IncidentService определяет контракт клиента кэша и синхронизации инцидентов
type IncidentService interface {
	FetchIncidents(ctx context.Context, page int, category string) (*models.FetchResult, error)
	LoadMore(ctx context.Context) (*models.FetchResult, error)
	SetCategory(category string)
	Reset()
	Cursor() models.Cursor
	Incidents() []models.Incident
	FetchMine(ctx context.Context) ([]models.Incident, error)
	CreateIncident(ctx context.Context, draft models.IncidentDraft) (*models.Incident, error)
	CategoryTally(ctx context.Context) (models.CategoryCounts, error)
}

// IncidentOptions - параметры клиента инцидентов
type IncidentOptions struct {
	PerPage     int
	CacheMaxAge time.Duration
}

type incidentService struct {
	api      IncidentAPI
	auth     HeaderProvider
	kv       *storage.KV
	notifier Notifier
	logger   *logrus.Logger
	validate *validator.Validate
	opts     IncidentOptions
	clock    func() time.Time

	mu     sync.Mutex
	seq    uint64 // последний выданный номер запроса списка
	epoch  uint64 // растет при каждом Reset
	cursor models.Cursor
	mirror []models.Incident
}

func NewIncidentService(api IncidentAPI, auth HeaderProvider, kv *storage.KV, notifier Notifier, logger *logrus.Logger, opts IncidentOptions) IncidentService {
	if opts.PerPage < 1 {
		opts.PerPage = 10
	}
	if opts.CacheMaxAge <= 0 {
		opts.CacheMaxAge = 5 * time.Minute
	}
	return &incidentService{
		api:      api,
		auth:     auth,
		kv:       kv,
		notifier: notifier,
		logger:   logger,
		validate: newDraftValidator(),
		opts:     opts,
		clock:    time.Now,
		cursor:   models.Cursor{Page: 1, TotalPages: 1},
	}
}

// FetchIncidents загружает страницу инцидентов. При ошибке сети или API отдает
// постоянный кэш, если он моложе CacheMaxAge. Ответ на запрос, после которого уже
// был выдан более новый, отбрасывается с models.ErrSuperseded.
func (s *incidentService) FetchIncidents(ctx context.Context, page int, category string) (*models.FetchResult, error) {
	if page < 1 {
		page = 1
	}
	log := s.logger.WithFields(logrus.Fields{
		"service":  "incident",
		"method":   "FetchIncidents",
		"page":     page,
		"category": category,
	})

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	log.Info("Fetching incidents")
	resp, fetchErr := s.api.ListIncidents(ctx, page, s.opts.PerPage, category)
	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		log.WithField("seq", seq).Info("Discarding superseded incidents response")
		metrics.FetchOutcomes.WithLabelValues(metrics.OutcomeSuperseded).Inc()
		return nil, fmt.Errorf("service: incidents page %d: %w", page, models.ErrSuperseded)
	}

	if fetchErr != nil {
		log.WithError(fetchErr).Warn("Failed to fetch incidents, trying cache")
		return s.fallbackLocked(ctx, log, now, fetchErr)
	}

	items := resp.Incidents
	if items == nil {
		items = []models.Incident{}
	}
	total := resp.Pages
	if total < 1 {
		total = 1
	}
	current := page
	if current > total {
		current = total
	}

	s.cursor = models.Cursor{Page: current, TotalPages: total, Category: category}
	s.mirror = items

	// Постоянный кэш хранит только первую страницу без фильтра
	if page == 1 && category == "" {
		if err := s.kv.CacheIncidents(ctx, items, now); err != nil {
			log.WithError(err).Warn("Failed to cache incidents")
		}
	}

	metrics.FetchOutcomes.WithLabelValues(metrics.OutcomeFetched).Inc()
	log.WithField("count", len(items)).Info("Incidents fetched successfully")
	return &models.FetchResult{
		Items:      cloneIncidents(items),
		Page:       current,
		TotalPages: total,
		Category:   category,
		Source:     models.SourceFetched,
		FetchedAt:  now,
	}, nil
}

func (s *incidentService) fallbackLocked(ctx context.Context, log *logrus.Entry, now time.Time, fetchErr error) (*models.FetchResult, error) {
	cached, err := s.kv.CachedIncidents(ctx, s.opts.CacheMaxAge, now)
	if err != nil {
		log.WithError(err).Warn("No usable cached incidents")
		metrics.FetchOutcomes.WithLabelValues(metrics.OutcomeMiss).Inc()
		return nil, fmt.Errorf("service: could not fetch incidents: %w (fallback: %w)", fetchErr, err)
	}

	metrics.FetchOutcomes.WithLabelValues(metrics.OutcomeCached).Inc()
	log.WithField("count", len(cached.Data)).Info("Serving stale incidents from cache")
	return &models.FetchResult{
		Items:      cached.Data,
		Page:       1,
		TotalPages: 1,
		Source:     models.SourceCached,
		FetchedAt:  cached.FetchedAt(),
	}, nil
}

// LoadMore загружает следующую страницу по текущему курсору
func (s *incidentService) LoadMore(ctx context.Context) (*models.FetchResult, error) {
	cursor := s.Cursor()
	if !cursor.HasMore() {
		return nil, models.ErrNoMorePages
	}
	return s.FetchIncidents(ctx, cursor.Page+1, cursor.Category)
}

// SetCategory меняет фильтр и сбрасывает курсор на первую страницу.
// Незавершенные запросы списка после этого считаются устаревшими.
func (s *incidentService) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category == s.cursor.Category {
		return
	}
	s.seq++
	s.cursor = models.Cursor{Page: 1, TotalPages: 1, Category: category}
	s.mirror = nil
}

func (s *incidentService) Cursor() models.Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Reset забывает курсор и загруженную страницу. Незавершенные запросы списка
// после этого отбрасываются и не пишут в кэш.
func (s *incidentService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.epoch++
	s.cursor = models.Cursor{Page: 1, TotalPages: 1}
	s.mirror = nil
}

// Incidents возвращает копию последней загруженной страницы
func (s *incidentService) Incidents() []models.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneIncidents(s.mirror)
}

// FetchMine возвращает инциденты текущего пользователя без кэширования
func (s *incidentService) FetchMine(ctx context.Context) ([]models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "FetchMine",
	})
	log.Info("Fetching user incidents")

	incidents, err := s.api.MyIncidents(ctx, s.auth.AuthHeaders())
	if err != nil {
		log.WithError(err).Error("Failed to fetch user incidents")
		return nil, fmt.Errorf("service: could not fetch user incidents: %w", err)
	}
	if incidents == nil {
		incidents = []models.Incident{}
	}

	log.WithField("count", len(incidents)).Info("User incidents fetched successfully")
	return incidents, nil
}

// CreateIncident отправляет инцидент и после успеха рассылает уведомление.
// Ошибка уведомления только логируется.
func (s *incidentService) CreateIncident(ctx context.Context, draft models.IncidentDraft) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "incident",
		"method":   "CreateIncident",
		"title":    draft.Title,
		"category": draft.Category,
	})
	log.Info("Attempting to create a new incident")

	draft.Category = strings.ToLower(strings.TrimSpace(draft.Category))
	if err := s.validate.Struct(draft); err != nil {
		log.WithError(err).Warn("Draft validation failed")
		return nil, fmt.Errorf("service: %w: %v", models.ErrInvalidDraft, err)
	}

	incident, err := s.api.CreateIncident(ctx, s.auth.AuthHeaders(), draft)
	if err != nil {
		log.WithError(err).Error("Failed to create incident")
		return nil, fmt.Errorf("service: could not create incident: %w", err)
	}
	log.WithField("incident_id", incident.ID).Info("Incident created successfully")

	if s.notifier != nil {
		notification := models.Notification{Title: models.NewIncidentTitle, Body: draft.Title}
		if err := s.notifier.Notify(ctx, notification); err != nil {
			log.WithError(err).Warn("Failed to send new incident notification")
		}
	}
	return incident, nil
}

// CategoryTally считает категории первой страницы без фильтра. Курсор,
// загруженная страница и нумерация запросов списка не меняются.
func (s *incidentService) CategoryTally(ctx context.Context) (models.CategoryCounts, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "CategoryTally",
	})

	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()

	resp, err := s.api.ListIncidents(ctx, 1, s.opts.PerPage, "")
	now := s.clock()
	if err != nil {
		log.WithError(err).Warn("Failed to fetch incidents for tally, trying cache")
		cached, cacheErr := s.kv.CachedIncidents(ctx, s.opts.CacheMaxAge, now)
		if cacheErr != nil {
			metrics.FetchOutcomes.WithLabelValues(metrics.OutcomeMiss).Inc()
			return nil, fmt.Errorf("service: could not count categories: %w (fallback: %w)", err, cacheErr)
		}
		metrics.FetchOutcomes.WithLabelValues(metrics.OutcomeCached).Inc()
		return CountByCategory(cached.Data), nil
	}

	items := resp.Incidents
	if items == nil {
		items = []models.Incident{}
	}

	// Не перезаписываем кэш, если после начала запроса был выход из аккаунта
	s.mu.Lock()
	if epoch == s.epoch {
		if err := s.kv.CacheIncidents(ctx, items, now); err != nil {
			log.WithError(err).Warn("Failed to cache incidents")
		}
	}
	s.mu.Unlock()

	metrics.FetchOutcomes.WithLabelValues(metrics.OutcomeFetched).Inc()
	return CountByCategory(items), nil
}

// CountByCategory считает инциденты по основной категории.
// Неизвестные категории не учитываются нигде, в том числе в "other".
func CountByCategory(incidents []models.Incident) models.CategoryCounts {
	counts := make(models.CategoryCounts, len(models.Categories))
	for _, c := range models.Categories {
		counts[c] = 0
	}
	for i := range incidents {
		primary := incidents[i].PrimaryCategory()
		if primary == "" {
			continue
		}
		if c, ok := models.ParseCategory(primary); ok {
			counts[c]++
		}
	}
	return counts
}

func cloneIncidents(src []models.Incident) []models.Incident {
	if src == nil {
		return []models.Incident{}
	}
	out := make([]models.Incident, len(src))
	copy(out, src)
	return out
}

// newDraftValidator добавляет к стандартным правилам проверку координат черновика
func newDraftValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		draft := sl.Current().Interface().(models.IncidentDraft)
		if draft.Latitude.Valid != draft.Longitude.Valid {
			sl.ReportError(draft.Latitude, "Latitude", "latitude", "both_coordinates", "")
			return
		}
		if draft.Latitude.Valid && (draft.Latitude.Value < -90 || draft.Latitude.Value > 90) {
			sl.ReportError(draft.Latitude.Value, "Latitude", "latitude", "latitude", "")
		}
		if draft.Longitude.Valid && (draft.Longitude.Value < -180 || draft.Longitude.Value > 180) {
			sl.ReportError(draft.Longitude.Value, "Longitude", "longitude", "longitude", "")
		}
	}, models.IncidentDraft{})
	return v
}

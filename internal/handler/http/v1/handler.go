package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/citizen_report/internal/config"
	"github.com/shenikar/citizen_report/internal/models"
	"github.com/shenikar/citizen_report/internal/service"
	"github.com/sirupsen/logrus"
)

const dataSourceHeader = "X-Data-Source"

type Handler struct {
	authService       service.AuthService
	incidentService   service.IncidentService
	preferenceService service.PreferencesService
	geocoder          service.Geocoder
	logger            *logrus.Logger
	validate          *validator.Validate
	cfg               *config.Config
	now               func() time.Time
}

func NewHandler(
	authService service.AuthService,
	incidentService service.IncidentService,
	preferenceService service.PreferencesService,
	geocoder service.Geocoder,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authService:       authService,
		incidentService:   incidentService,
		preferenceService: preferenceService,
		geocoder:          geocoder,
		logger:            logger,
		validate:          validator.New(),
		cfg:               cfg,
		now:               time.Now,
	}
}

// respondError переводит ошибку сервиса в HTTP-статус
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	var status int
	var message string

	switch {
	case errors.Is(err, models.ErrInvalidDraft):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "invalid username or password"
	case errors.Is(err, models.ErrAuthRejected):
		status, message = http.StatusUnauthorized, "authentication rejected by server"
	case errors.Is(err, models.ErrNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, models.ErrSuperseded):
		status, message = http.StatusConflict, "superseded by a newer request"
	case errors.Is(err, models.ErrNoMorePages):
		status, message = http.StatusConflict, "no more pages"
	case errors.Is(err, models.ErrNetworkUnavailable):
		status, message = http.StatusBadGateway, "server unreachable"
	default:
		var httpErr *models.HTTPError
		if errors.As(err, &httpErr) {
			status, message = http.StatusBadGateway, "upstream error"
		} else {
			status, message = http.StatusInternalServerError, "internal server error"
		}
	}

	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
	} else {
		log.WithError(err).Warn("Request failed")
	}
	c.JSON(status, gin.H{"error": message})
}

// requireSession прерывает запрос, если пользователь не вошел
func (h *Handler) requireSession(c *gin.Context) bool {
	if h.authService.IsAuthenticated() {
		return true
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
	return false
}

// @Summary Log in
// @Description Log in to the WordPress server. JWT is tried first, Basic credentials are the fallback.
// @Tags Auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param credentials body LoginRequest true "Username and password"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 502 {object} map[string]string "Server unreachable"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	log := h.logger.WithField("method", "login")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.authService.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, SessionToResponse(session))
}

// @Summary Log out
// @Description Clear the session and every locally stored value.
// @Tags Auth
// @Security ApiKeyAuth
// @Success 204 "No Content"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	log := h.logger.WithField("method", "logout")

	h.incidentService.Reset()
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Current user
// @Description Get the profile of the logged in user.
// @Tags Auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} map[string]string "Not logged in"
// @Router /auth/me [get]
func (h *Handler) me(c *gin.Context) {
	user := h.authService.CurrentUser()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	c.JSON(http.StatusOK, UserToResponse(user))
}

// @Summary Get a page of incidents
// @Description Fetch a page of incidents, optionally filtered by category. When the server is unreachable the cached first page is served with cached=true.
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param category query string false "Category filter"
// @Success 200 {object} IncidentListResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 409 {object} map[string]string "Superseded by a newer request"
// @Failure 502 {object} map[string]string "Server unreachable and no usable cache"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	var query ListIncidentsQuery
	log := h.logger.WithField("method", "listIncidents")

	if err := c.ShouldBindQuery(&query); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}
	if err := h.validate.Struct(query); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if query.Page == 0 {
		query.Page = 1
	}

	h.incidentService.SetCategory(query.Category)
	result, err := h.incidentService.FetchIncidents(c.Request.Context(), query.Page, query.Category)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	h.writeFetchResult(c, result)
}

// @Summary Load the next page
// @Description Fetch the page after the current cursor.
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} IncidentListResponse
// @Failure 409 {object} map[string]string "No more pages"
// @Failure 502 {object} map[string]string "Server unreachable and no usable cache"
// @Router /incidents/more [post]
func (h *Handler) loadMore(c *gin.Context) {
	log := h.logger.WithField("method", "loadMore")

	result, err := h.incidentService.LoadMore(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	h.writeFetchResult(c, result)
}

func (h *Handler) writeFetchResult(c *gin.Context, result *models.FetchResult) {
	if result.Stale() {
		c.Header(dataSourceHeader, "cache")
	} else {
		c.Header(dataSourceHeader, "network")
	}
	c.JSON(http.StatusOK, FetchResultToResponse(result, h.incidentService.Cursor(), h.now()))
}

// @Summary My incidents
// @Description Get incidents reported by the logged in user.
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Not logged in"
// @Failure 502 {object} map[string]string "Server unreachable"
// @Router /incidents/mine [get]
func (h *Handler) myIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "myIncidents")
	if !h.requireSession(c) {
		return
	}

	incidents, err := h.incidentService.FetchMine(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents, h.now()))
}

// @Summary Report a new incident
// @Description Submit an incident. A "New Incident Reported" notification is sent after the server accepts it.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param incident body CreateIncidentRequest true "Incident draft"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Not logged in"
// @Failure 502 {object} map[string]string "Server unreachable"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.requireSession(c) {
		return
	}

	created, err := h.incidentService.CreateIncident(c.Request.Context(), DTOToDraftModel(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(created, h.now()))
}

// @Summary Incidents per category
// @Description Count the first unfiltered page of incidents by primary category.
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} CategoryCountsResponse
// @Failure 502 {object} map[string]string "Server unreachable and no usable cache"
// @Router /categories [get]
func (h *Handler) categoryCounts(c *gin.Context) {
	log := h.logger.WithField("method", "categoryCounts")

	counts, err := h.incidentService.CategoryTally(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, CountsToResponse(counts))
}

// @Summary Get settings
// @Tags Settings
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} SettingsResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /settings [get]
func (h *Handler) getSettings(c *gin.Context) {
	log := h.logger.WithField("method", "getSettings")

	settings, err := h.preferenceService.Settings(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, SettingsResponse{Notifications: settings.Notifications, AutoRefresh: settings.AutoRefresh})
}

// @Summary Update settings
// @Tags Settings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param settings body SettingsRequest true "Settings"
// @Success 200 {object} SettingsResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /settings [put]
func (h *Handler) updateSettings(c *gin.Context) {
	var input SettingsRequest
	log := h.logger.WithField("method", "updateSettings")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := models.Settings{Notifications: *input.Notifications, AutoRefresh: *input.AutoRefresh}
	if err := h.preferenceService.SaveSettings(c.Request.Context(), settings); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, SettingsResponse{Notifications: settings.Notifications, AutoRefresh: settings.AutoRefresh})
}

// @Summary Register for push notifications
// @Tags Settings
// @Accept json
// @Security ApiKeyAuth
// @Param registration body PushRegisterRequest true "Device registration id"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Router /push/register [post]
func (h *Handler) registerPush(c *gin.Context) {
	var input PushRegisterRequest
	log := h.logger.WithField("method", "registerPush")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.preferenceService.RegisterPush(c.Request.Context(), input.RegistrationID); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Name a location
// @Description Reverse geocode coordinates. Falls back to "lat, lon" when the geocoder fails.
// @Tags Location
// @Produce json
// @Security ApiKeyAuth
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Success 200 {object} LocationNameResponse
// @Failure 400 {object} map[string]string "Invalid coordinates"
// @Router /location/name [get]
func (h *Handler) locationName(c *gin.Context) {
	var query LocationQuery
	log := h.logger.WithField("method", "locationName")

	if err := c.ShouldBindQuery(&query); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
		return
	}
	if err := h.validate.Struct(query); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := h.geocoder.LocationName(c.Request.Context(), *query.Lat, *query.Lon)
	c.JSON(http.StatusOK, LocationNameResponse{Name: name})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "authenticated": h.authService.IsAuthenticated()})
}

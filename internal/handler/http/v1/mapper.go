package v1

import (
	"time"

	"github.com/shenikar/citizen_report/internal/models"
	"github.com/shenikar/citizen_report/internal/service"
)

// DTOToDraftModel преобразует DTO создания в черновик инцидента
func DTOToDraftModel(dto CreateIncidentRequest) models.IncidentDraft {
	draft := models.IncidentDraft{
		Title:        dto.Title,
		Category:     dto.Category,
		Description:  dto.Description,
		LocationName: dto.LocationName,
		Image:        dto.Image,
	}
	if dto.Latitude != nil {
		draft.Latitude = models.NewCoordinate(*dto.Latitude)
	}
	if dto.Longitude != nil {
		draft.Longitude = models.NewCoordinate(*dto.Longitude)
	}
	return draft
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident, now time.Time) IncidentResponse {
	category := model.Category
	if category == nil {
		category = []string{}
	}
	return IncidentResponse{
		ID:           model.ID,
		Title:        model.Title,
		Content:      model.Content,
		Category:     category,
		Author:       model.Author,
		Date:         model.Date,
		RelativeDate: service.RelativeTime(model.Date, now),
		Image:        model.Image,
		Latitude:     coordinatePtr(model.Latitude),
		Longitude:    coordinatePtr(model.Longitude),
		LocationName: model.LocationName,
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(items []models.Incident, now time.Time) []IncidentResponse {
	responses := make([]IncidentResponse, len(items))
	for i := range items {
		responses[i] = ModelToIncidentResponse(&items[i], now)
	}
	return responses
}

// FetchResultToResponse преобразует результат выборки в DTO страницы
func FetchResultToResponse(result *models.FetchResult, cursor models.Cursor, now time.Time) IncidentListResponse {
	return IncidentListResponse{
		Incidents:  ModelsToIncidentResponses(result.Items, now),
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Category:   result.Category,
		HasMore:    !result.Stale() && cursor.HasMore(),
		Cached:     result.Stale(),
		FetchedAt:  result.FetchedAt,
	}
}

func SessionToResponse(session *models.Session) SessionResponse {
	return SessionResponse{
		Scheme: string(session.Credential.Scheme),
		User:   UserToResponse(&session.User),
	}
}

func UserToResponse(user *models.UserProfile) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}
}

func CountsToResponse(counts models.CategoryCounts) CategoryCountsResponse {
	out := make(map[string]int, len(counts))
	for c, n := range counts {
		out[string(c)] = n
	}
	return CategoryCountsResponse{Counts: out}
}

func coordinatePtr(c models.Coordinate) *float64 {
	if !c.Valid {
		return nil
	}
	v := c.Value
	return &v
}

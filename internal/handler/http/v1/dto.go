package v1

import "time"

// LoginRequest DTO для входа
// @Description DTO для входа
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse DTO профиля пользователя
// @Description DTO профиля пользователя
type UserResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// SessionResponse DTO активной сессии
// @Description DTO активной сессии
type SessionResponse struct {
	Scheme string       `json:"scheme"`
	User   UserResponse `json:"user"`
}

// IncidentResponse DTO инцидента
// @Description DTO инцидента
type IncidentResponse struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Category     []string `json:"category"`
	Author       string   `json:"author"`
	Date         string   `json:"date"`
	RelativeDate string   `json:"relative_date"`
	Image        string   `json:"image,omitempty"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	LocationName string   `json:"location_name,omitempty"`
}

// IncidentListResponse DTO страницы инцидентов
// @Description DTO страницы инцидентов; cached=true, если данные взяты из кэша
type IncidentListResponse struct {
	Incidents  []IncidentResponse `json:"incidents"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
	Category   string             `json:"category"`
	HasMore    bool               `json:"has_more"`
	Cached     bool               `json:"cached"`
	FetchedAt  time.Time          `json:"fetched_at"`
}

// ListIncidentsQuery параметры списка инцидентов
type ListIncidentsQuery struct {
	Page     int    `form:"page" validate:"omitempty,min=1"`
	Category string `form:"category" validate:"omitempty,oneof=accident fighting rioting fire theft other"`
}

// CreateIncidentRequest DTO для создания инцидента
// @Description DTO для создания инцидента
type CreateIncidentRequest struct {
	Title        string   `json:"title" validate:"required,min=2,max=255"`
	Category     string   `json:"category" validate:"required"`
	Description  string   `json:"description,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	LocationName string   `json:"location_name,omitempty"`
	Image        string   `json:"image,omitempty"`
}

// CategoryCountsResponse DTO количества инцидентов по категориям
// @Description DTO количества инцидентов по категориям
type CategoryCountsResponse struct {
	Counts map[string]int `json:"counts"`
}

// SettingsRequest DTO настроек
// @Description DTO настроек
type SettingsRequest struct {
	Notifications *bool `json:"notifications" validate:"required"`
	AutoRefresh   *bool `json:"auto_refresh" validate:"required"`
}

// SettingsResponse DTO настроек
// @Description DTO настроек
type SettingsResponse struct {
	Notifications bool `json:"notifications"`
	AutoRefresh   bool `json:"auto_refresh"`
}

// PushRegisterRequest DTO регистрации push-уведомлений
// @Description DTO регистрации push-уведомлений
type PushRegisterRequest struct {
	RegistrationID string `json:"registration_id" validate:"required"`
}

// LocationQuery параметры обратного геокодирования
type LocationQuery struct {
	Lat *float64 `form:"lat" validate:"required,latitude"`
	Lon *float64 `form:"lon" validate:"required,longitude"`
}

// LocationNameResponse DTO названия места
// @Description DTO названия места
type LocationNameResponse struct {
	Name string `json:"name"`
}

package wpapi

import "github.com/shenikar/citizen_report/internal/models"

// TokenRequest - тело запроса к /jwt-auth/v1/token
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse - ответ плагина JWT Authentication
type TokenResponse struct {
	Token           string `json:"token"`
	UserID          int64  `json:"user_id"`
	UserNicename    string `json:"user_nicename"`
	UserEmail       string `json:"user_email"`
	UserDisplayName string `json:"user_display_name"`
}

// Profile переводит ответ в профиль пользователя
func (r *TokenResponse) Profile() models.UserProfile {
	return models.UserProfile{
		ID:          r.UserID,
		Username:    r.UserNicename,
		Email:       r.UserEmail,
		DisplayName: r.UserDisplayName,
	}
}

// UserResponse - ответ /wp/v2/users/me
type UserResponse struct {
	ID    int64  `json:"id"`
	Slug  string `json:"slug"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Profile переводит ответ в профиль пользователя
func (r *UserResponse) Profile() models.UserProfile {
	return models.UserProfile{
		ID:          r.ID,
		Username:    r.Slug,
		Email:       r.Email,
		DisplayName: r.Name,
	}
}

// IncidentsPage - страница списка инцидентов
type IncidentsPage struct {
	Incidents []models.Incident `json:"incidents"`
	Pages     int               `json:"pages"`
}

type incidentsEnvelope struct {
	Incidents []models.Incident `json:"incidents"`
}

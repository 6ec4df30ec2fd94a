package models

// NewIncidentTitle - заголовок уведомления о новом инциденте
const NewIncidentTitle = "New Incident Reported"

// Notification - уведомление для других пользователей
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

package models

// AuthScheme - способ аутентификации, которым был получен токен
type AuthScheme string

const (
	SchemeBearer AuthScheme = "bearer"
	SchemeBasic  AuthScheme = "basic"
)

// Valid сообщает, является ли схема одной из известных
func (s AuthScheme) Valid() bool {
	return s == SchemeBearer || s == SchemeBasic
}

// Credential - токен вместе с явной схемой; схема никогда не выводится из значения
type Credential struct {
	Scheme AuthScheme `json:"scheme"`
	Value  string     `json:"value"`
}

// HeaderValue возвращает значение заголовка Authorization
func (c Credential) HeaderValue() string {
	switch c.Scheme {
	case SchemeBearer:
		return "Bearer " + c.Value
	case SchemeBasic:
		return "Basic " + c.Value
	}
	return ""
}

// UserProfile - профиль пользователя WordPress
type UserProfile struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Empty сообщает, что профиль не заполнен
func (u UserProfile) Empty() bool {
	return u.ID == 0 && u.Username == ""
}

// Session - активная сессия пользователя
type Session struct {
	Credential Credential  `json:"credential"`
	User       UserProfile `json:"user"`
}

// Complete сообщает, что у сессии есть и учетные данные, и профиль
func (s Session) Complete() bool {
	return s.Credential.Value != "" && !s.User.Empty()
}

// Settings - пользовательские настройки клиента
type Settings struct {
	Notifications bool `json:"notifications"`
	AutoRefresh   bool `json:"autoRefresh"`
}

// DefaultSettings возвращает настройки по умолчанию
func DefaultSettings() Settings {
	return Settings{
		Notifications: true,
		AutoRefresh:   true,
	}
}

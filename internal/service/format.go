package service

import (
	"fmt"
	"time"

	"github.com/shenikar/citizen_report/internal/models"
)

// RelativeTime форматирует дату инцидента относительно now.
// Нераспознанная дата возвращается как есть.
func RelativeTime(date string, now time.Time) string {
	t, err := models.ParseDate(date)
	if err != nil {
		return date
	}

	diff := now.Sub(t)
	mins := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return fmt.Sprintf("%d min%s ago", mins, plural(mins))
	case hours < 24:
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	case days < 7:
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	}
	return t.Format("2006-01-02")
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

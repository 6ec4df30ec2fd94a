package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Category - одна из фиксированных категорий инцидентов
type Category string

const (
	CategoryAccident Category = "accident"
	CategoryFighting Category = "fighting"
	CategoryRioting  Category = "rioting"
	CategoryFire     Category = "fire"
	CategoryTheft    Category = "theft"
	CategoryOther    Category = "other"
)

// Categories - закрытый набор категорий в порядке отображения
var Categories = []Category{
	CategoryAccident,
	CategoryFighting,
	CategoryRioting,
	CategoryFire,
	CategoryTheft,
	CategoryOther,
}

// ParseCategory сопоставляет строку с известной категорией без учета регистра
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// CategoryCounts - количество инцидентов по основной категории, все ключи присутствуют
type CategoryCounts map[Category]int

// Coordinate - координата, которую WordPress может отдавать числом, строкой или null
type Coordinate struct {
	Value float64
	Valid bool
}

// NewCoordinate создает заданную координату
func NewCoordinate(v float64) Coordinate {
	return Coordinate{Value: v, Valid: true}
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = Coordinate{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*c = Coordinate{}
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", s, err)
		}
		*c = NewCoordinate(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid coordinate %s: %w", data, err)
	}
	*c = NewCoordinate(v)
	return nil
}

// Incident - инцидент в том виде, в каком его отдает сервер
type Incident struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Category     []string   `json:"category"`
	Author       string     `json:"author"`
	Date         string     `json:"date"`
	Image        string     `json:"image,omitempty"`
	Latitude     Coordinate `json:"latitude"`
	Longitude    Coordinate `json:"longitude"`
	LocationName string     `json:"location_name,omitempty"`
}

// PrimaryCategory возвращает первую категорию инцидента или пустую строку
func (i *Incident) PrimaryCategory() string {
	if len(i.Category) == 0 {
		return ""
	}
	return i.Category[0]
}

// HasLocation сообщает, заданы ли обе координаты
func (i *Incident) HasLocation() bool {
	return i.Latitude.Valid && i.Longitude.Valid
}

// dateLayouts - форматы дат, которые встречаются в ответах WordPress
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate разбирает ISO-дату инцидента; даты без зоны считаются UTC
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized incident date %q", s)
}

// IncidentDraft - инцидент, подготовленный клиентом до подтверждения сервером
type IncidentDraft struct {
	Title        string     `json:"title" validate:"required,min=2,max=255"`
	Category     string     `json:"category" validate:"required,oneof=accident fighting rioting fire theft other"`
	Description  string     `json:"description" validate:"max=10000"`
	Latitude     Coordinate `json:"latitude"`
	Longitude    Coordinate `json:"longitude"`
	LocationName string     `json:"location_name,omitempty" validate:"max=500"`
	Image        string     `json:"image,omitempty" validate:"omitempty,startswith=data:"`
}

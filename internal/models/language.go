package models

import (
	"strings"
	"time"
)

// Level is a CEFR proficiency level.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"

	DefaultLevel = LevelA1
)

var levels = map[Level]struct{}{
	LevelA1: {}, LevelA2: {}, LevelB1: {}, LevelB2: {}, LevelC1: {}, LevelC2: {},
}

// ParseLevel accepts any casing ("b2" -> B2).
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := levels[l]
	return l, ok
}

func (l Level) Valid() bool {
	_, ok := levels[l]
	return ok
}

type UserLanguage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_language;not null" json:"user_id"`
	Language  string    `gorm:"size:64;uniqueIndex:idx_user_language;not null" json:"language"`
	Level     Level     `gorm:"size:2;not null" json:"level"`
	Progress  float64   `gorm:"not null;default:0" json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserLanguage) TableName() string { return "user_languages" }

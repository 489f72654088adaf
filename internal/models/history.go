package models

import "time"

// UserLearningHistory is one finished learning activity. Rows are never updated.
type UserLearningHistory struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"-"`
	ActivityType string    `gorm:"size:64;not null" json:"activity_type"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `json:"description,omitempty"`
	Language     string    `gorm:"size:64;not null" json:"language"`
	Level        Level     `gorm:"size:2" json:"level,omitempty"`
	Duration     float64   `gorm:"not null;default:0" json:"duration"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

func (UserLearningHistory) TableName() string { return "user_learning_history" }

const ActivityReading = "reading"

type UserVocabulary struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"-"`
	Word         string    `gorm:"size:255;not null" json:"word"`
	Translation  string    `gorm:"size:255;not null" json:"translation"`
	Language     string    `gorm:"size:64;not null" json:"language"`
	Example      string    `json:"example,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	MasteryLevel int       `gorm:"not null;default:0" json:"mastery_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (UserVocabulary) TableName() string { return "user_vocabulary" }

const MaxMasteryLevel = 5

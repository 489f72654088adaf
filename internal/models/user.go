package models

import "time"

// User is a registered account. HashedPassword never leaves the server.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"not null" json:"-"`
	IsActive       bool      `gorm:"not null" json:"is_active"`
	IsSuperuser    bool      `gorm:"not null" json:"is_superuser"`
	Avatar         string    `gorm:"size:512" json:"avatar,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// UserStatistics holds the aggregate counters shown on the profile.
type UserStatistics struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	UserID       uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	StudyTime    float64   `gorm:"not null;default:0" json:"study_time"`
	WordsLearned int       `gorm:"not null;default:0" json:"words_learned"`
	ArticlesRead int       `gorm:"not null;default:0" json:"articles_read"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (UserStatistics) TableName() string { return "user_statistics" }

// StatisticsDelta is added to a user's counters.
type StatisticsDelta struct {
	StudyTime    float64
	WordsLearned int
	ArticlesRead int
}

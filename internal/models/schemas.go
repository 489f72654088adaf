package models

// Request and response shapes shared by services and handlers.

type UserCreate struct {
	Username string `json:"username" binding:"required,min=3,max=64" example:"lily"`
	Email    string `json:"email" binding:"required,email" example:"lily@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
}

// UserUpdate is a partial update; nil fields are left alone.
type UserUpdate struct {
	Username *string `json:"username,omitempty" binding:"omitempty,min=3,max=64"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=6"`
	Avatar   *string `json:"avatar,omitempty" binding:"omitempty,max=512"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type ProfileResponse struct {
	Username          string            `json:"username"`
	Email             string            `json:"email"`
	Avatar            string            `json:"avatar"`
	LearningLanguages []string          `json:"learningLanguages"`
	Level             map[string]string `json:"level"`
	StudyTime         float64           `json:"studyTime"`
	WordsLearned      int               `json:"wordsLearned"`
	ArticlesRead      int               `json:"articlesRead"`
}

// ProfileUpdate replaces the language set when LearningLanguages is non-nil.
type ProfileUpdate struct {
	Username          *string           `json:"username,omitempty" binding:"omitempty,min=3,max=64"`
	Email             *string           `json:"email,omitempty" binding:"omitempty,email"`
	Avatar            *string           `json:"avatar,omitempty" binding:"omitempty,max=512"`
	LearningLanguages []string          `json:"learningLanguages,omitempty"`
	Level             map[string]string `json:"level,omitempty"`
}

type ActivityCreate struct {
	ActivityType string  `json:"activity_type" binding:"required,max=64" example:"reading"`
	Title        string  `json:"title" binding:"required,max=255" example:"A day in Paris"`
	Description  string  `json:"description"`
	Language     string  `json:"language" binding:"required,max=64" example:"french"`
	Level        string  `json:"level" example:"A2"`
	Duration     float64 `json:"duration" binding:"gte=0" example:"15"`
}

type WordCreate struct {
	Word         string `json:"word" binding:"required,max=255" example:"bonjour"`
	Translation  string `json:"translation" binding:"required,max=255" example:"你好"`
	Language     string `json:"language" binding:"required,max=64" example:"french"`
	Example      string `json:"example"`
	Notes        string `json:"notes"`
	MasteryLevel int    `json:"mastery_level" binding:"gte=0,lte=5"`
}

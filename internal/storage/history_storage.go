package storage

import (
	"context"

	"github.com/lianruiying/Language-Tutor/internal/models"
)

func (s *Store) CreateHistory(ctx context.Context, h *models.UserLearningHistory) error {
	return translate(s.conn(ctx).Create(h).Error)
}

// RecentHistory returns up to limit entries, newest first.
func (s *Store) RecentHistory(ctx context.Context, userID uint, limit int) ([]models.UserLearningHistory, error) {
	entries := []models.UserLearningHistory{}
	err := s.conn(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, translate(err)
}

func (s *Store) CreateWord(ctx context.Context, w *models.UserVocabulary) error {
	return translate(s.conn(ctx).Create(w).Error)
}

// ListWords returns the user's words, newest first. An empty language matches all.
func (s *Store) ListWords(ctx context.Context, userID uint, language string) ([]models.UserVocabulary, error) {
	q := s.conn(ctx).Where("user_id = ?", userID)
	if language != "" {
		q = q.Where("language = ?", language)
	}
	words := []models.UserVocabulary{}
	err := q.Order("created_at DESC").Order("id DESC").Find(&words).Error
	return words, translate(err)
}

package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lianruiying/Language-Tutor/internal/apperrors"
	"github.com/lianruiying/Language-Tutor/internal/models"
	"github.com/lianruiying/Language-Tutor/internal/storage"
	"github.com/lianruiying/Language-Tutor/internal/validation"
)

const HistoryLimit = 10

// LearningService records activities and saved words, keeping the
// statistics counters in step with them.
type LearningService struct {
	store *storage.Store
	log   *logrus.Logger
}

func NewLearningService(store *storage.Store, log *logrus.Logger) *LearningService {
	return &LearningService{store: store, log: log}
}

func (s *LearningService) RecordActivity(ctx context.Context, user *models.User, in models.ActivityCreate) (*models.UserLearningHistory, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	entry := &models.UserLearningHistory{
		UserID:       user.ID,
		ActivityType: strings.TrimSpace(in.ActivityType),
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Language:     strings.TrimSpace(in.Language),
		Duration:     in.Duration,
	}
	if in.Level != "" {
		level, ok := models.ParseLevel(in.Level)
		if !ok {
			return nil, apperrors.BadRequest("Invalid level " + in.Level)
		}
		entry.Level = level
	}

	delta := models.StatisticsDelta{StudyTime: in.Duration}
	if entry.ActivityType == models.ActivityReading {
		delta.ArticlesRead = 1
	}

	err := s.store.WithTx(ctx, func(tx *storage.Store) error {
		if err := tx.CreateHistory(ctx, entry); err != nil {
			return err
		}
		return tx.AddStatistics(ctx, user.ID, delta)
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"activity": entry.ActivityType,
		"language": entry.Language,
	}).Debug("activity recorded")
	return entry, nil
}

// RecentHistory returns the newest entries first. limit <= 0 uses HistoryLimit.
func (s *LearningService) RecentHistory(ctx context.Context, user *models.User, limit int) ([]models.UserLearningHistory, error) {
	if limit <= 0 {
		limit = HistoryLimit
	}
	entries, err := s.store.RecentHistory(ctx, user.ID, limit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return entries, nil
}

func (s *LearningService) AddWord(ctx context.Context, user *models.User, in models.WordCreate) (*models.UserVocabulary, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	word := &models.UserVocabulary{
		UserID:       user.ID,
		Word:         strings.TrimSpace(in.Word),
		Translation:  strings.TrimSpace(in.Translation),
		Language:     strings.TrimSpace(in.Language),
		Example:      in.Example,
		Notes:        in.Notes,
		MasteryLevel: in.MasteryLevel,
	}
	err := s.store.WithTx(ctx, func(tx *storage.Store) error {
		if err := tx.CreateWord(ctx, word); err != nil {
			return err
		}
		return tx.AddStatistics(ctx, user.ID, models.StatisticsDelta{WordsLearned: 1})
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return word, nil
}

func (s *LearningService) ListWords(ctx context.Context, user *models.User, language string) ([]models.UserVocabulary, error) {
	words, err := s.store.ListWords(ctx, user.ID, strings.TrimSpace(language))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return words, nil
}

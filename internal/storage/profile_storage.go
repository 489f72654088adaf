package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/lianruiying/Language-Tutor/internal/models"
)

func (s *Store) GetStatistics(ctx context.Context, userID uint) (*models.UserStatistics, error) {
	var st models.UserStatistics
	if err := s.conn(ctx).Where("user_id = ?", userID).First(&st).Error; err != nil {
		return nil, translate(err)
	}
	return &st, nil
}

// EnsureStatistics returns the user's statistics row, creating a zeroed one if absent.
func (s *Store) EnsureStatistics(ctx context.Context, userID uint) (*models.UserStatistics, error) {
	var st models.UserStatistics
	err := s.conn(ctx).Where(models.UserStatistics{UserID: userID}).FirstOrCreate(&st).Error
	if err != nil {
		return nil, translate(err)
	}
	return &st, nil
}

// AddStatistics increments the counters in place.
func (s *Store) AddStatistics(ctx context.Context, userID uint, d models.StatisticsDelta) error {
	if _, err := s.EnsureStatistics(ctx, userID); err != nil {
		return err
	}
	err := s.conn(ctx).Model(&models.UserStatistics{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"study_time":    gorm.Expr("study_time + ?", d.StudyTime),
			"words_learned": gorm.Expr("words_learned + ?", d.WordsLearned),
			"articles_read": gorm.Expr("articles_read + ?", d.ArticlesRead),
		}).Error
	return translate(err)
}

func (s *Store) ListLanguages(ctx context.Context, userID uint) ([]models.UserLanguage, error) {
	langs := []models.UserLanguage{}
	err := s.conn(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&langs).Error
	return langs, translate(err)
}

// ReplaceLanguages deletes every language of the user and inserts langs.
// Call it inside WithTx so a failed insert keeps the old set.
func (s *Store) ReplaceLanguages(ctx context.Context, userID uint, langs []models.UserLanguage) error {
	if err := s.conn(ctx).Where("user_id = ?", userID).Delete(&models.UserLanguage{}).Error; err != nil {
		return translate(err)
	}
	if len(langs) == 0 {
		return nil
	}
	for i := range langs {
		langs[i].ID = 0
		langs[i].UserID = userID
	}
	return translate(s.conn(ctx).Create(&langs).Error)
}

func (s *Store) UpdateLanguageLevel(ctx context.Context, userID uint, language string, level models.Level) error {
	err := s.conn(ctx).Model(&models.UserLanguage{}).
		Where("user_id = ? AND language = ?", userID, language).
		Update("level", level).Error
	return translate(err)
}

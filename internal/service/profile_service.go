package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lianruiying/Language-Tutor/internal/apperrors"
	"github.com/lianruiying/Language-Tutor/internal/models"
	"github.com/lianruiying/Language-Tutor/internal/storage"
	"github.com/lianruiying/Language-Tutor/internal/validation"
)

// GetProfile flattens the user, statistics and language rows into one view.
func (s *UserService) GetProfile(ctx context.Context, user *models.User) (*models.ProfileResponse, error) {
	profile := &models.ProfileResponse{
		Username:          user.Username,
		Email:             user.Email,
		Avatar:            user.Avatar,
		LearningLanguages: []string{},
		Level:             map[string]string{},
	}

	stats, err := s.store.GetStatistics(ctx, user.ID)
	switch {
	case err == nil:
		profile.StudyTime = stats.StudyTime
		profile.WordsLearned = stats.WordsLearned
		profile.ArticlesRead = stats.ArticlesRead
	case !errors.Is(err, storage.ErrNotFound):
		return nil, apperrors.Internal(err)
	}

	langs, err := s.store.ListLanguages(ctx, user.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	for _, l := range langs {
		profile.LearningLanguages = append(profile.LearningLanguages, l.Language)
		profile.Level[l.Language] = string(l.Level)
	}
	return profile, nil
}

// UpdateProfile changes scalar fields in place and, when a language list is
// given, replaces the whole language set. Everything commits or nothing does.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, in models.ProfileUpdate) (*models.ProfileResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	levels, err := parseLevels(in.Level)
	if err != nil {
		return nil, err
	}

	updated := *user
	err = s.store.WithTx(ctx, func(tx *storage.Store) error {
		if err := s.applyIdentity(ctx, tx, &updated, in.Username, in.Email); err != nil {
			return err
		}
		if in.Avatar != nil {
			updated.Avatar = strings.TrimSpace(*in.Avatar)
		}
		if updated != *user {
			if err := tx.SaveUser(ctx, &updated); err != nil {
				if errors.Is(err, storage.ErrDuplicate) {
					return s.duplicateError(ctx, tx, updated.Username, updated.ID)
				}
				return apperrors.Internal(err)
			}
		}

		if _, err := tx.EnsureStatistics(ctx, user.ID); err != nil {
			return apperrors.Internal(err)
		}

		if in.LearningLanguages != nil {
			langs := buildLanguages(in.LearningLanguages, levels)
			if err := tx.ReplaceLanguages(ctx, user.ID, langs); err != nil {
				return apperrors.Internal(err)
			}
			return nil
		}
		for lang, level := range levels {
			if err := tx.UpdateLanguageLevel(ctx, user.ID, lang, level); err != nil {
				return apperrors.Internal(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	*user = updated
	return s.GetProfile(ctx, user)
}

func parseLevels(raw map[string]string) (map[string]models.Level, error) {
	levels := make(map[string]models.Level, len(raw))
	for lang, value := range raw {
		lang = strings.TrimSpace(lang)
		if lang == "" {
			continue
		}
		level, ok := models.ParseLevel(value)
		if !ok {
			return nil, apperrors.BadRequest(fmt.Sprintf("Invalid level %q for %s, expected one of A1, A2, B1, B2, C1, C2", value, lang))
		}
		levels[lang] = level
	}
	return levels, nil
}

// buildLanguages keeps the first occurrence of each non-empty code.
func buildLanguages(codes []string, levels map[string]models.Level) []models.UserLanguage {
	seen := make(map[string]struct{}, len(codes))
	langs := make([]models.UserLanguage, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}

		level, ok := levels[code]
		if !ok {
			level = models.DefaultLevel
		}
		langs = append(langs, models.UserLanguage{Language: code, Level: level})
	}
	return langs
}

package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lianruiying/Language-Tutor/internal/apperrors"
	"github.com/lianruiying/Language-Tutor/internal/models"
)

func TestStruct_ReportsJSONNames(t *testing.T) {
	err := Struct(models.UserCreate{Username: "ab", Email: "not-an-email"})
	require.Error(t, err)

	appErr := apperrors.From(err)
	assert.Equal(t, apperrors.KindBadRequest, appErr.Kind)
	assert.Equal(t, "min", appErr.Fields["username"])
	assert.Equal(t, "email", appErr.Fields["email"])
	assert.Equal(t, "required", appErr.Fields["password"])
}

func TestStruct_OptionalPointers(t *testing.T) {
	assert.NoError(t, Struct(models.UserUpdate{}))

	bad := "x"
	err := Struct(models.UserUpdate{Password: &bad})
	require.Error(t, err)
	assert.Equal(t, "min", apperrors.From(err).Fields["password"])
}

func TestStruct_WordMastery(t *testing.T) {
	err := Struct(models.WordCreate{Word: "hola", Translation: "hi", Language: "spanish", MasteryLevel: 6})
	require.Error(t, err)
	assert.Equal(t, "lte", apperrors.From(err).Fields["mastery_level"])
}

func TestTranslate_NonValidationError(t *testing.T) {
	var v map[string]any
	jsonErr := json.Unmarshal([]byte("{"), &v)

	appErr := Translate(jsonErr)
	assert.Equal(t, "Invalid request body", appErr.Detail)
	assert.ErrorIs(t, appErr, jsonErr)
}

package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/lianruiying/Language-Tutor/internal/apperrors"
)

var (
	validate = newValidator()
	ginOnce  sync.Once
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// same tag gin binds with, so request structs are declared once
	v.SetTagName("binding")
	v.RegisterTagNameFunc(jsonFieldName)
	return v
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// RegisterGin makes gin's binding validator report JSON field names.
func RegisterGin() {
	ginOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonFieldName)
		}
	})
}

// Struct validates s against its binding tags.
func Struct(s any) error {
	if err := validate.Struct(s); err != nil {
		return Translate(err)
	}
	return nil
}

// Translate turns a binding or validation failure into a 400 AppError.
func Translate(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return apperrors.Validation(fields)
	}
	return apperrors.Wrap(err, apperrors.KindBadRequest, "Invalid request body")
}

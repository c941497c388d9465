package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator настраивает validator так, чтобы в ошибках фигурировали JSON-имена полей.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct проверяет s и возвращает *domain.ValidationError для первого нарушения.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate: %w", err)
	}

	f := verrs[0]
	switch f.Tag() {
	case "required":
		return domain.MissingField(f.Field())
	case "max":
		return &domain.ValidationError{Field: f.Field(), Message: fmt.Sprintf("%s is too long", f.Field())}
	default:
		return &domain.ValidationError{Field: f.Field(), Message: fmt.Sprintf("%s is invalid", f.Field())}
	}
}

package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrValidation — запись не прошла проверку на границе API.
var ErrValidation = errors.New("validation failed")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		err := v.RegisterValidation("stage", func(fl validator.FieldLevel) bool {
			return Stage(fl.Field().String()).Valid()
		})
		if err != nil {
			panic(fmt.Sprintf("models: register stage validation: %v", err))
		}
		validate = v
	})

	return validate
}

// Validate проверяет структуру по тегам validate.
// Ошибка оборачивает ErrValidation и перечисляет поля в виде field:tag.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+":"+fe.Tag())
	}

	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, ", "))
}

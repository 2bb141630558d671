// Package validator adapts go-playground/validator to the domain ValidationError,
// translating each failed constraint into a user-facing field message.
package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	domainerrors "accounts/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// fieldLabels maps json field names to the labels shown in messages.
var fieldLabels = map[string]string{
	"id":       "Id",
	"name":     "Nome",
	"email":    "E-mail",
	"password": "Senha",
}

// maxBytesTag bounds the encoded length of a string. bcrypt rejects passwords over 72 bytes.
const maxBytesTag = "maxbytes"

// CustomValidator validates GraphQL and CLI inputs.
type CustomValidator struct {
	validate *validator.Validate
}

// New builds a validator that reports fields by their json names.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})
	if err := v.RegisterValidation(maxBytesTag, validateMaxBytes); err != nil {
		panic(err)
	}

	return &CustomValidator{validate: v}
}

// Validate checks the struct and returns a *domainerrors.ValidationError listing every failed field.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(err, "failed to validate input")
	}

	fields := make([]domainerrors.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, domainerrors.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}

	return domainerrors.NewValidationError(fields...)
}

func message(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Campo %s não pode estar vazio", label)
	case "email":
		return fmt.Sprintf("Campo %s deve ser um e-mail válido!", label)
	case "min":
		if fe.Param() == "1" {
			return fmt.Sprintf("Campo %s não pode estar vazio", label)
		}

		return fmt.Sprintf("%s deve ter no mínimo %s digitos", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s deve ter no máximo %s caracteres", label, fe.Param())
	case maxBytesTag:
		return fmt.Sprintf("%s deve ter no máximo %s bytes", label, fe.Param())
	default:
		return fmt.Sprintf("Campo %s é inválido", label)
	}
}

func validateMaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	return len(field.String()) <= limit
}

func fieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}

	return field
}

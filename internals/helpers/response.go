package helper

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ✅ Khusus error validasi (validator.v10) → 422 dengan pesan per field
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, "Input tidak valid")
	}

	errorsMap := make(map[string][]string, len(ve))
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = append(errorsMap[fieldErr.Field()], tagMessage(fieldErr))
	}
	return JsonValidationError(c, errorsMap)
}

// FieldErrorsToMap: map field→pesan (dari layer domain) ke bentuk response.
func FieldErrorsToMap(m map[string]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = []string{v}
	}
	return out
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s wajib diisi", fe.Field())
	case "max":
		return fmt.Sprintf("%s maksimal %s karakter", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s harus salah satu dari: %s", fe.Field(), fe.Param())
	case "numeric":
		return fmt.Sprintf("%s harus berupa angka", fe.Field())
	default:
		return fmt.Sprintf("%s tidak valid (%s)", fe.Field(), fe.Tag())
	}
}

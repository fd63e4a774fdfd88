package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError mengubah error (biasanya *fiber.Error) menjadi response JSON
// konsisten via JsonError. Jika bukan *fiber.Error, fallback ke 500 dengan pesan asli.
// Dipakai juga sebagai fiber.Config.ErrorHandler.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}

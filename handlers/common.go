package handlers

import (
	"errors"
	"log"

	"challenge-hub-system/utils"

	"github.com/gofiber/fiber/v2"
)

// writeError maps service error kinds to HTTP statuses. The status word
// mirrors the legacy API: "fail" for 4xx, "error" for everything else.
func writeError(c *fiber.Ctx, err error) error {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		var code int
		switch appErr.Kind {
		case utils.KindValidation:
			code = fiber.StatusBadRequest
		case utils.KindNotFound:
			code = fiber.StatusNotFound
		case utils.KindConflict:
			code = fiber.StatusConflict
		default:
			code = fiber.StatusInternalServerError
		}
		status := "error"
		if code < 500 {
			status = "fail"
		}
		return c.Status(code).JSON(fiber.Map{"status": status, "message": appErr.Message})
	}

	log.Printf("[HTTP] unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": "Internal server error",
	})
}

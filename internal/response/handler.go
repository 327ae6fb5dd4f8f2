package response

import (
	"github.com/gofiber/fiber/v2"
)

// The API speaks the plain wire shapes the editor front-end expects:
// bare arrays for listings, {"success":true} for writes and {"error":...}
// for rejections. No envelope.

func Success(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}

func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{"error": message})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

func InternalError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{Error: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return errorJSON(c, fiber.StatusBadRequest, message)
}

func processingFailed(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusInternalServerError, services.ErrProcessingFailed.Error())
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ErrorHandler renders framework errors (unknown routes, oversized bodies,
// recovered panics) in the same envelope as handler errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := services.ErrProcessingFailed.Error()

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return errorJSON(c, code, message)
}

package delivery

import (
	"github.com/gofiber/fiber/v2"

	"schoolhealth/config"
	"schoolhealth/domain"
)

func statusFromError(err error) int {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindConflict:
		return fiber.StatusConflict
	case domain.KindInvalidState:
		return fiber.StatusUnprocessableEntity
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindAuthzDenied:
		return fiber.StatusForbidden
	}
	return fiber.StatusInternalServerError
}

// fail renders a usecase error with the status its kind maps to.
func fail(c *fiber.Ctx, username *string, fn, message string, err error) error {
	status := statusFromError(err)
	config.PrintLogInfo(username, status, fn)
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"message": message,
	})
}

// badRequest renders a body-parsing or struct-validation failure.
func badRequest(c *fiber.Ctx, username *string, fn, message string, err error) error {
	config.PrintLogInfo(username, fiber.StatusBadRequest, fn)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"message": message,
	})
}

func ok(c *fiber.Ctx, username *string, fn, message string, data interface{}) error {
	config.PrintLogInfo(username, fiber.StatusOK, fn)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func created(c *fiber.Ctx, username *string, fn, message string, data interface{}) error {
	config.PrintLogInfo(username, fiber.StatusCreated, fn)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func claimsFromCtx(c *fiber.Ctx) *domain.Claims {
	claims, _ := c.Locals("user").(*domain.Claims)
	return claims
}

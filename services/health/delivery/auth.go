package delivery

import (
	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"

	"schoolhealth/domain"
)

type authHandler struct {
	uc domain.AuthUseCase
}

func NewAuthHandler(app *fiber.App, useCase domain.AuthUseCase, auth fiber.Handler) {
	handler := &authHandler{
		uc: useCase,
	}

	route := app.Group("/auth")
	route.Post("/login", handler.Login)
	route.Post("/register", handler.RegisterParent)
	route.Get("/me", auth, handler.Me)
}

func (h *authHandler) Login(c *fiber.Ctx) error {
	var req domain.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, nil, "Login", "Invalid request body", err)
	}

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return badRequest(c, &req.Username, "Login", "Invalid request body", err)
	}

	resp, err := h.uc.Login(c.Context(), &req)
	if err != nil {
		return fail(c, &req.Username, "Login", "Login failed", err)
	}

	return ok(c, &req.Username, "Login", "Login successful", resp)
}

func (h *authHandler) RegisterParent(c *fiber.Ctx) error {
	var req domain.RegisterParentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, nil, "RegisterParent", "Invalid request body", err)
	}

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return badRequest(c, &req.Username, "RegisterParent", "Invalid request body", err)
	}

	user, err := h.uc.RegisterParent(c.Context(), &req)
	if err != nil {
		return fail(c, &req.Username, "RegisterParent", "Registration failed", err)
	}

	return created(c, &req.Username, "RegisterParent", "Parent account registered", user)
}

func (h *authHandler) Me(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	user, err := h.uc.Me(c.Context(), userToken.UserID)
	if err != nil {
		return fail(c, &userToken.Username, "Me", "Failed to load profile", err)
	}

	return ok(c, &userToken.Username, "Me", "Profile retrieved successfully", user)
}

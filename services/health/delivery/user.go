package delivery

import (
	"strconv"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"

	"schoolhealth/domain"
	"schoolhealth/middleware"
)

type userHandler struct {
	uc domain.UserUseCase
}

func NewUserHandler(app *fiber.App, useCase domain.UserUseCase, auth fiber.Handler) {
	handler := &userHandler{
		uc: useCase,
	}

	route := app.Group("/admin", auth, middleware.RoleRequired(domain.RoleAdmin))
	route.Post("/students", handler.CreateStudent)
	route.Post("/staff", handler.CreateStaff)
	route.Get("/users", handler.ListUsers)
	route.Get("/users/:id", handler.GetUser)
	route.Put("/users/:id", handler.UpdateUser)
	route.Delete("/users/:id", handler.DeactivateUser)
	route.Put("/users/:id/activate", handler.ReactivateUser)

	student := app.Group("/student", auth, middleware.RoleRequired(domain.RoleStudent))
	student.Get("/profile", handler.OwnProfile)
}

func (h *userHandler) CreateStudent(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	var req domain.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, &userToken.Username, "CreateStudent", "Invalid request body", err)
	}

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return badRequest(c, &userToken.Username, "CreateStudent", "Invalid student request body", err)
	}

	student, err := h.uc.CreateStudent(c.Context(), &req)
	if err != nil {
		return fail(c, &userToken.Username, "CreateStudent", "Failed to create student", err)
	}

	return created(c, &userToken.Username, "CreateStudent", "Student created successfully", student)
}

func (h *userHandler) CreateStaff(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	var req domain.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, &userToken.Username, "CreateStaff", "Invalid request body", err)
	}

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return badRequest(c, &userToken.Username, "CreateStaff", "Invalid staff request body", err)
	}

	staff, err := h.uc.CreateStaff(c.Context(), &req)
	if err != nil {
		return fail(c, &userToken.Username, "CreateStaff", "Failed to create staff account", err)
	}

	return created(c, &userToken.Username, "CreateStaff", "Staff account created successfully", staff)
}

func (h *userHandler) ListUsers(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	users, err := h.uc.ListUsers(c.Context(), c.Query("role"))
	if err != nil {
		return fail(c, &userToken.Username, "ListUsers", "Failed to list users", err)
	}

	return ok(c, &userToken.Username, "ListUsers", "Users retrieved successfully", users)
}

func (h *userHandler) GetUser(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return badRequest(c, &userToken.Username, "GetUser", "Invalid user ID", err)
	}

	user, err := h.uc.GetUser(c.Context(), id)
	if err != nil {
		return fail(c, &userToken.Username, "GetUser", "Failed to get user", err)
	}

	return ok(c, &userToken.Username, "GetUser", "User retrieved successfully", user)
}

func (h *userHandler) UpdateUser(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return badRequest(c, &userToken.Username, "UpdateUser", "Invalid user ID", err)
	}

	var req domain.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, &userToken.Username, "UpdateUser", "Invalid request body", err)
	}

	user, err := h.uc.UpdateUser(c.Context(), id, &req)
	if err != nil {
		return fail(c, &userToken.Username, "UpdateUser", "Failed to update user", err)
	}

	return ok(c, &userToken.Username, "UpdateUser", "User updated successfully", user)
}

func (h *userHandler) DeactivateUser(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return badRequest(c, &userToken.Username, "DeactivateUser", "Invalid user ID", err)
	}

	if err := h.uc.DeactivateUser(c.Context(), id); err != nil {
		return fail(c, &userToken.Username, "DeactivateUser", "Failed to deactivate user", err)
	}

	return ok(c, &userToken.Username, "DeactivateUser", "User deactivated successfully", nil)
}

func (h *userHandler) OwnProfile(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	user, err := h.uc.GetUser(c.Context(), userToken.UserID)
	if err != nil {
		return fail(c, &userToken.Username, "OwnProfile", "Failed to load profile", err)
	}

	return ok(c, &userToken.Username, "OwnProfile", "Profile retrieved successfully", user)
}

func (h *userHandler) ReactivateUser(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return badRequest(c, &userToken.Username, "ReactivateUser", "Invalid user ID", err)
	}

	if err := h.uc.ReactivateUser(c.Context(), id); err != nil {
		return fail(c, &userToken.Username, "ReactivateUser", "Failed to reactivate user", err)
	}

	return ok(c, &userToken.Username, "ReactivateUser", "User reactivated successfully", nil)
}

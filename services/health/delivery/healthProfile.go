package delivery

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"schoolhealth/domain"
	"schoolhealth/middleware"
)

type healthProfileHandler struct {
	uc domain.HealthProfileUseCase
}

// NewHealthProfileHandler exposes the same profile to three audiences: staff
// by student ID, parents behind the relation gate, and students read-only on
// their own record.
func NewHealthProfileHandler(app *fiber.App, useCase domain.HealthProfileUseCase, auth fiber.Handler) {
	handler := &healthProfileHandler{
		uc: useCase,
	}

	nurse := app.Group("/nurse/health-profiles", auth, middleware.RoleRequired(domain.RoleMedicalStaff))
	nurse.Get("/:studentId", handler.GetByStudent)
	nurse.Put("/:studentId", handler.UpsertByStudent)

	parent := app.Group("/parent/students/:studentId/health-profile", auth, middleware.RoleRequired(domain.RoleParent))
	parent.Get("/", handler.GetByStudent)
	parent.Put("/", handler.UpsertByStudent)

	student := app.Group("/student", auth, middleware.RoleRequired(domain.RoleStudent))
	student.Get("/health-profile", handler.GetOwn)
}

func (h *healthProfileHandler) GetByStudent(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	studentID, err := strconv.Atoi(c.Params("studentId"))
	if err != nil {
		return badRequest(c, &userToken.Username, "GetHealthProfile", "Invalid student ID", err)
	}

	profile, err := h.uc.Get(c.Context(), userToken, studentID)
	if err != nil {
		return fail(c, &userToken.Username, "GetHealthProfile", "Failed to get health profile", err)
	}

	return ok(c, &userToken.Username, "GetHealthProfile", "Health profile retrieved successfully", profile)
}

func (h *healthProfileHandler) UpsertByStudent(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	studentID, err := strconv.Atoi(c.Params("studentId"))
	if err != nil {
		return badRequest(c, &userToken.Username, "UpsertHealthProfile", "Invalid student ID", err)
	}

	var payload domain.HealthProfilePayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, &userToken.Username, "UpsertHealthProfile", "Invalid request body", err)
	}

	profile, err := h.uc.Upsert(c.Context(), userToken, studentID, &payload)
	if err != nil {
		return fail(c, &userToken.Username, "UpsertHealthProfile", "Failed to update health profile", err)
	}

	return ok(c, &userToken.Username, "UpsertHealthProfile", "Health profile updated successfully", profile)
}

func (h *healthProfileHandler) GetOwn(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	profile, err := h.uc.Get(c.Context(), userToken, userToken.UserID)
	if err != nil {
		return fail(c, &userToken.Username, "GetOwnHealthProfile", "Failed to get health profile", err)
	}

	return ok(c, &userToken.Username, "GetOwnHealthProfile", "Health profile retrieved successfully", profile)
}

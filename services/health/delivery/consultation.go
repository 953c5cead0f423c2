package delivery

import (
	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"

	"schoolhealth/domain"
	"schoolhealth/middleware"
)

type consultationHandler struct {
	uc domain.ConsultationUseCase
}

func NewConsultationHandler(app *fiber.App, useCase domain.ConsultationUseCase, auth fiber.Handler) {
	handler := &consultationHandler{
		uc: useCase,
	}

	nurse := app.Group("/nurse/consultations", auth, middleware.RoleRequired(domain.RoleMedicalStaff))
	nurse.Post("/", handler.Schedule)
	nurse.Get("/", handler.List)
	nurse.Put("/:id/status", handler.UpdateStatus)

	parent := app.Group("/parent", auth, middleware.RoleRequired(domain.RoleParent))
	parent.Get("/consultations", handler.ListForParent)

	student := app.Group("/student", auth, middleware.RoleRequired(domain.RoleStudent))
	student.Get("/consultations", handler.ListForStudent)
}

func (h *consultationHandler) Schedule(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	var req domain.ConsultationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, &userToken.Username, "ScheduleConsultation", "Invalid request body", err)
	}

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return badRequest(c, &userToken.Username, "ScheduleConsultation", "Invalid consultation body", err)
	}

	consultation, err := h.uc.Schedule(c.Context(), userToken.UserID, &req)
	if err != nil {
		return fail(c, &userToken.Username, "ScheduleConsultation", "Failed to schedule consultation", err)
	}

	return created(c, &userToken.Username, "ScheduleConsultation", "Consultation scheduled successfully", consultation)
}

func (h *consultationHandler) List(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	consultations, err := h.uc.List(c.Context())
	if err != nil {
		return fail(c, &userToken.Username, "ListConsultations", "Failed to list consultations", err)
	}

	return ok(c, &userToken.Username, "ListConsultations", "Consultations retrieved successfully", consultations)
}

func (h *consultationHandler) UpdateStatus(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	var req domain.ConsultationStatusUpdate
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, &userToken.Username, "UpdateConsultationStatus", "Invalid request body", err)
	}

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return badRequest(c, &userToken.Username, "UpdateConsultationStatus", "Invalid status body", err)
	}

	consultation, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), &req)
	if err != nil {
		return fail(c, &userToken.Username, "UpdateConsultationStatus", "Failed to update consultation", err)
	}

	return ok(c, &userToken.Username, "UpdateConsultationStatus", "Consultation updated successfully", consultation)
}

func (h *consultationHandler) ListForParent(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	consultations, err := h.uc.ListForParent(c.Context(), userToken.UserID)
	if err != nil {
		return fail(c, &userToken.Username, "ListConsultations", "Failed to list consultations", err)
	}

	return ok(c, &userToken.Username, "ListConsultations", "Consultations retrieved successfully", consultations)
}

func (h *consultationHandler) ListForStudent(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	consultations, err := h.uc.ListForStudent(c.Context(), userToken.UserID)
	if err != nil {
		return fail(c, &userToken.Username, "ListConsultations", "Failed to list consultations", err)
	}

	return ok(c, &userToken.Username, "ListConsultations", "Consultations retrieved successfully", consultations)
}

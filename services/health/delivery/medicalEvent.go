package delivery

import (
	"strconv"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"

	"schoolhealth/domain"
	"schoolhealth/middleware"
)

type medicalEventHandler struct {
	uc domain.MedicalEventUseCase
}

func NewMedicalEventHandler(app *fiber.App, useCase domain.MedicalEventUseCase, auth fiber.Handler) {
	handler := &medicalEventHandler{
		uc: useCase,
	}

	nurse := app.Group("/nurse/medical-events", auth, middleware.RoleRequired(domain.RoleMedicalStaff))
	nurse.Post("/", handler.Create)
	nurse.Get("/", handler.List)
	nurse.Get("/:id", handler.Get)
	nurse.Put("/:id/status", handler.UpdateStatus)
	nurse.Post("/:id/medications", handler.AddMedication)
	nurse.Put("/:id/notify-parent", handler.NotifyParent)

	parent := app.Group("/parent/students/:studentId/medical-events", auth, middleware.RoleRequired(domain.RoleParent))
	parent.Get("/", handler.ListForParent)

	student := app.Group("/student", auth, middleware.RoleRequired(domain.RoleStudent))
	student.Get("/medical-events", handler.ListOwn)
}

func (h *medicalEventHandler) Create(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	var event domain.MedicalEvent
	if err := c.BodyParser(&event); err != nil {
		return badRequest(c, &userToken.Username, "CreateMedicalEvent", "Invalid request body", err)
	}

	if _, err := govalidator.ValidateStruct(event); err != nil {
		return badRequest(c, &userToken.Username, "CreateMedicalEvent", "Invalid medical event body", err)
	}

	createdEvent, err := h.uc.CreateEvent(c.Context(), userToken.UserID, &event)
	if err != nil {
		return fail(c, &userToken.Username, "CreateMedicalEvent", "Failed to create medical event", err)
	}

	return created(c, &userToken.Username, "CreateMedicalEvent", "Medical event created successfully", createdEvent)
}

func (h *medicalEventHandler) List(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	studentID, _ := strconv.Atoi(c.Query("student_id"))

	events, err := h.uc.ListEvents(c.Context(), studentID)
	if err != nil {
		return fail(c, &userToken.Username, "ListMedicalEvents", "Failed to list medical events", err)
	}

	return ok(c, &userToken.Username, "ListMedicalEvents", "Medical events retrieved successfully", events)
}

func (h *medicalEventHandler) Get(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return badRequest(c, &userToken.Username, "GetMedicalEvent", "Invalid event ID", err)
	}

	event, err := h.uc.GetEvent(c.Context(), id)
	if err != nil {
		return fail(c, &userToken.Username, "GetMedicalEvent", "Failed to get medical event", err)
	}

	return ok(c, &userToken.Username, "GetMedicalEvent", "Medical event retrieved successfully", event)
}

func (h *medicalEventHandler) UpdateStatus(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return badRequest(c, &userToken.Username, "UpdateEventStatus", "Invalid event ID", err)
	}

	var req domain.EventStatusUpdate
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, &userToken.Username, "UpdateEventStatus", "Invalid request body", err)
	}

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return badRequest(c, &userToken.Username, "UpdateEventStatus", "Invalid status body", err)
	}

	event, err := h.uc.UpdateStatus(c.Context(), id, userToken.UserID, &req)
	if err != nil {
		return fail(c, &userToken.Username, "UpdateEventStatus", "Failed to update event status", err)
	}

	return ok(c, &userToken.Username, "UpdateEventStatus", "Event status updated successfully", event)
}

func (h *medicalEventHandler) AddMedication(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return badRequest(c, &userToken.Username, "AddEventMedication", "Invalid event ID", err)
	}

	var entry domain.MedicationEntry
	if err := c.BodyParser(&entry); err != nil {
		return badRequest(c, &userToken.Username, "AddEventMedication", "Invalid request body", err)
	}

	if _, err := govalidator.ValidateStruct(entry); err != nil {
		return badRequest(c, &userToken.Username, "AddEventMedication", "Invalid medication body", err)
	}

	event, err := h.uc.AddMedication(c.Context(), id, userToken.UserID, &entry)
	if err != nil {
		return fail(c, &userToken.Username, "AddEventMedication", "Failed to record medication", err)
	}

	return created(c, &userToken.Username, "AddEventMedication", "Medication recorded successfully", event)
}

func (h *medicalEventHandler) NotifyParent(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return badRequest(c, &userToken.Username, "NotifyParent", "Invalid event ID", err)
	}

	event, err := h.uc.NotifyParent(c.Context(), id, userToken.UserID)
	if err != nil {
		return fail(c, &userToken.Username, "NotifyParent", "Failed to notify parent", err)
	}

	return ok(c, &userToken.Username, "NotifyParent", "Parent notification recorded", event)
}

func (h *medicalEventHandler) ListForParent(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	studentID, err := strconv.Atoi(c.Params("studentId"))
	if err != nil {
		return badRequest(c, &userToken.Username, "ListStudentMedicalEvents", "Invalid student ID", err)
	}

	events, err := h.uc.ListEventsForParent(c.Context(), userToken.UserID, studentID)
	if err != nil {
		return fail(c, &userToken.Username, "ListStudentMedicalEvents", "Failed to list medical events", err)
	}

	return ok(c, &userToken.Username, "ListStudentMedicalEvents", "Medical events retrieved successfully", events)
}

func (h *medicalEventHandler) ListOwn(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	events, err := h.uc.ListEvents(c.Context(), userToken.UserID)
	if err != nil {
		return fail(c, &userToken.Username, "ListOwnMedicalEvents", "Failed to list medical events", err)
	}

	return ok(c, &userToken.Username, "ListOwnMedicalEvents", "Medical events retrieved successfully", events)
}

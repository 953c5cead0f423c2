package delivery

import (
	"strconv"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"

	"schoolhealth/domain"
	"schoolhealth/middleware"
)

type medicineRequestHandler struct {
	uc domain.MedicineRequestUseCase
}

func NewMedicineRequestHandler(app *fiber.App, useCase domain.MedicineRequestUseCase, auth fiber.Handler) {
	handler := &medicineRequestHandler{
		uc: useCase,
	}

	parent := app.Group("/parent/medicine-requests", auth, middleware.RoleRequired(domain.RoleParent))
	parent.Post("/", handler.Create)
	parent.Get("/", handler.ListOwn)

	nurse := app.Group("/nurse/medicine-requests", auth, middleware.RoleRequired(domain.RoleMedicalStaff))
	nurse.Get("/", handler.ListAll)
	nurse.Put("/:id/status", handler.Review)
}

func (h *medicineRequestHandler) Create(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	var payload domain.MedicineRequestPayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, &userToken.Username, "CreateMedicineRequest", "Invalid request body", err)
	}

	if _, err := govalidator.ValidateStruct(payload); err != nil {
		return badRequest(c, &userToken.Username, "CreateMedicineRequest", "Invalid medicine request body", err)
	}

	request, err := h.uc.Create(c.Context(), userToken.UserID, &payload)
	if err != nil {
		return fail(c, &userToken.Username, "CreateMedicineRequest", "Failed to create medicine request", err)
	}

	return created(c, &userToken.Username, "CreateMedicineRequest", "Medicine request submitted", request)
}

func (h *medicineRequestHandler) ListOwn(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	requests, err := h.uc.ListByParent(c.Context(), userToken.UserID)
	if err != nil {
		return fail(c, &userToken.Username, "ListMedicineRequests", "Failed to list medicine requests", err)
	}

	return ok(c, &userToken.Username, "ListMedicineRequests", "Medicine requests retrieved successfully", requests)
}

func (h *medicineRequestHandler) ListAll(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	studentID, _ := strconv.Atoi(c.Query("student_id"))

	requests, err := h.uc.ListAll(c.Context(), studentID)
	if err != nil {
		return fail(c, &userToken.Username, "ListMedicineRequests", "Failed to list medicine requests", err)
	}

	return ok(c, &userToken.Username, "ListMedicineRequests", "Medicine requests retrieved successfully", requests)
}

func (h *medicineRequestHandler) Review(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return badRequest(c, &userToken.Username, "ReviewMedicineRequest", "Invalid request ID", err)
	}

	var review domain.MedicineRequestReview
	if err := c.BodyParser(&review); err != nil {
		return badRequest(c, &userToken.Username, "ReviewMedicineRequest", "Invalid request body", err)
	}

	if _, err := govalidator.ValidateStruct(review); err != nil {
		return badRequest(c, &userToken.Username, "ReviewMedicineRequest", "Invalid review body", err)
	}

	request, err := h.uc.Review(c.Context(), id, userToken.UserID, &review)
	if err != nil {
		return fail(c, &userToken.Username, "ReviewMedicineRequest", "Failed to review medicine request", err)
	}

	return ok(c, &userToken.Username, "ReviewMedicineRequest", "Medicine request reviewed", request)
}

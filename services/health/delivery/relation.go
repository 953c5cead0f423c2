package delivery

import (
	"strconv"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"

	"schoolhealth/domain"
	"schoolhealth/middleware"
)

type relationHandler struct {
	uc domain.RelationUseCase
}

// NewRelationHandler wires the link workflow for all three roles that touch
// it: parents request, admins and medical staff decide.
func NewRelationHandler(app *fiber.App, useCase domain.RelationUseCase, auth fiber.Handler) {
	handler := &relationHandler{
		uc: useCase,
	}

	admin := app.Group("/admin/relations", auth, middleware.RoleRequired(domain.RoleAdmin))
	admin.Post("/", handler.CreateApproved)
	admin.Get("/pending", handler.ListPending)
	admin.Put("/:id/respond", handler.Respond)

	nurse := app.Group("/nurse/relations", auth, middleware.RoleRequired(domain.RoleMedicalStaff))
	nurse.Get("/pending", handler.ListPending)
	nurse.Put("/:id/respond", handler.Respond)

	parent := app.Group("/parent", auth, middleware.RoleRequired(domain.RoleParent))
	parent.Post("/relations", handler.RequestLink)
	parent.Get("/relations", handler.ListOwn)
	parent.Get("/students", handler.LinkedStudents)
}

func (h *relationHandler) RequestLink(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	var req domain.LinkRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, &userToken.Username, "RequestLink", "Invalid request body", err)
	}

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return badRequest(c, &userToken.Username, "RequestLink", "Invalid link request body", err)
	}

	relation, err := h.uc.RequestLink(c.Context(), userToken.UserID, &req)
	if err != nil {
		return fail(c, &userToken.Username, "RequestLink", "Failed to request link", err)
	}

	return created(c, &userToken.Username, "RequestLink", "Link request submitted", relation)
}

func (h *relationHandler) CreateApproved(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	var req struct {
		ParentID int `json:"parent_id" valid:"required~Parent ID is required"`
		domain.LinkRequest
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, &userToken.Username, "CreateApprovedRelation", "Invalid request body", err)
	}

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return badRequest(c, &userToken.Username, "CreateApprovedRelation", "Invalid relation body", err)
	}

	relation, err := h.uc.CreateApprovedRelation(c.Context(), userToken.UserID, req.ParentID, &req.LinkRequest)
	if err != nil {
		return fail(c, &userToken.Username, "CreateApprovedRelation", "Failed to create relation", err)
	}

	return created(c, &userToken.Username, "CreateApprovedRelation", "Relation created successfully", relation)
}

func (h *relationHandler) ListPending(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	relations, err := h.uc.ListPending(c.Context())
	if err != nil {
		return fail(c, &userToken.Username, "ListPendingRelations", "Failed to list pending relations", err)
	}

	return ok(c, &userToken.Username, "ListPendingRelations", "Pending relations retrieved successfully", relations)
}

func (h *relationHandler) Respond(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return badRequest(c, &userToken.Username, "RespondToLink", "Invalid relation ID", err)
	}

	var req domain.LinkDecision
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, &userToken.Username, "RespondToLink", "Invalid request body", err)
	}

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return badRequest(c, &userToken.Username, "RespondToLink", "Invalid decision body", err)
	}

	relation, err := h.uc.RespondToLink(c.Context(), id, userToken.UserID, &req)
	if err != nil {
		return fail(c, &userToken.Username, "RespondToLink", "Failed to process link request", err)
	}

	return ok(c, &userToken.Username, "RespondToLink", "Link request processed", relation)
}

func (h *relationHandler) ListOwn(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	relations, err := h.uc.ListByParent(c.Context(), userToken.UserID)
	if err != nil {
		return fail(c, &userToken.Username, "ListRelations", "Failed to list relations", err)
	}

	return ok(c, &userToken.Username, "ListRelations", "Relations retrieved successfully", relations)
}

func (h *relationHandler) LinkedStudents(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	students, err := h.uc.LinkedStudents(c.Context(), userToken.UserID)
	if err != nil {
		return fail(c, &userToken.Username, "LinkedStudents", "Failed to list linked students", err)
	}

	return ok(c, &userToken.Username, "LinkedStudents", "Linked students retrieved successfully", students)
}

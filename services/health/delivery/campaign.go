package delivery

import (
	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"

	"schoolhealth/domain"
	"schoolhealth/middleware"
)

type campaignHandler struct {
	uc domain.CampaignUseCase
}

func NewCampaignHandler(app *fiber.App, useCase domain.CampaignUseCase, auth fiber.Handler) {
	handler := &campaignHandler{
		uc: useCase,
	}

	admin := app.Group("/admin/campaigns", auth, middleware.RoleRequired(domain.RoleAdmin))
	admin.Post("/", handler.Create)
	admin.Get("/", handler.List)
	admin.Get("/:id", handler.Get)
	admin.Put("/:id", handler.Update)

	nurse := app.Group("/nurse/campaigns", auth, middleware.RoleRequired(domain.RoleMedicalStaff))
	nurse.Get("/", handler.List)
	nurse.Get("/:id/consents", handler.ListConsents)
	nurse.Post("/:id/results", handler.RecordResult)
	nurse.Get("/:id/results", handler.ListResults)

	parent := app.Group("/parent/campaigns", auth, middleware.RoleRequired(domain.RoleParent))
	parent.Get("/", handler.ConsentOverview)
	parent.Put("/:campaignId/consent", handler.UpdateConsent)
}

func (h *campaignHandler) Create(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	var campaign domain.Campaign
	if err := c.BodyParser(&campaign); err != nil {
		return badRequest(c, &userToken.Username, "CreateCampaign", "Invalid request body", err)
	}

	if _, err := govalidator.ValidateStruct(campaign); err != nil {
		return badRequest(c, &userToken.Username, "CreateCampaign", "Invalid campaign body", err)
	}

	createdCampaign, err := h.uc.CreateCampaign(c.Context(), userToken.UserID, &campaign)
	if err != nil {
		return fail(c, &userToken.Username, "CreateCampaign", "Failed to create campaign", err)
	}

	return created(c, &userToken.Username, "CreateCampaign", "Campaign created successfully", createdCampaign)
}

func (h *campaignHandler) List(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	campaigns, err := h.uc.ListCampaigns(c.Context())
	if err != nil {
		return fail(c, &userToken.Username, "ListCampaigns", "Failed to list campaigns", err)
	}

	return ok(c, &userToken.Username, "ListCampaigns", "Campaigns retrieved successfully", campaigns)
}

func (h *campaignHandler) Get(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	campaign, err := h.uc.GetCampaign(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, &userToken.Username, "GetCampaign", "Failed to get campaign", err)
	}

	return ok(c, &userToken.Username, "GetCampaign", "Campaign retrieved successfully", campaign)
}

func (h *campaignHandler) Update(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	var req domain.CampaignUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, &userToken.Username, "UpdateCampaign", "Invalid request body", err)
	}

	campaign, err := h.uc.UpdateCampaign(c.Context(), c.Params("id"), &req)
	if err != nil {
		return fail(c, &userToken.Username, "UpdateCampaign", "Failed to update campaign", err)
	}

	return ok(c, &userToken.Username, "UpdateCampaign", "Campaign updated successfully", campaign)
}

func (h *campaignHandler) ListConsents(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	consents, err := h.uc.ListConsentsByCampaign(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, &userToken.Username, "ListCampaignConsents", "Failed to list consents", err)
	}

	return ok(c, &userToken.Username, "ListCampaignConsents", "Consents retrieved successfully", consents)
}

func (h *campaignHandler) RecordResult(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	var result domain.CampaignResult
	if err := c.BodyParser(&result); err != nil {
		return badRequest(c, &userToken.Username, "RecordCampaignResult", "Invalid request body", err)
	}

	recorded, err := h.uc.RecordResult(c.Context(), userToken.UserID, c.Params("id"), &result)
	if err != nil {
		return fail(c, &userToken.Username, "RecordCampaignResult", "Failed to record campaign result", err)
	}

	return created(c, &userToken.Username, "RecordCampaignResult", "Campaign result recorded", recorded)
}

func (h *campaignHandler) ListResults(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	results, err := h.uc.ListResultsByCampaign(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, &userToken.Username, "ListCampaignResults", "Failed to list campaign results", err)
	}

	return ok(c, &userToken.Username, "ListCampaignResults", "Campaign results retrieved successfully", results)
}

func (h *campaignHandler) ConsentOverview(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	overview, err := h.uc.ConsentOverviewForParent(c.Context(), userToken.UserID)
	if err != nil {
		return fail(c, &userToken.Username, "ConsentOverview", "Failed to load campaigns", err)
	}

	return ok(c, &userToken.Username, "ConsentOverview", "Campaigns retrieved successfully", overview)
}

func (h *campaignHandler) UpdateConsent(c *fiber.Ctx) error {
	userToken := claimsFromCtx(c)

	var req domain.ConsentUpdate
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, &userToken.Username, "UpdateConsent", "Invalid request body", err)
	}

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return badRequest(c, &userToken.Username, "UpdateConsent", "Invalid consent body", err)
	}

	consent, err := h.uc.UpdateConsent(c.Context(), userToken.UserID, c.Params("campaignId"), &req)
	if err != nil {
		return fail(c, &userToken.Username, "UpdateConsent", "Failed to update consent", err)
	}

	return ok(c, &userToken.Username, "UpdateConsent", "Consent recorded successfully", consent)
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/placementcell/placement_service/internal/dto"
	"github.com/placementcell/placement_service/internal/helper/utils"
	"github.com/placementcell/placement_service/internal/services"
)

type PlacementHandler struct {
	svc services.PlacementService
}

func NewPlacementHandler(svc services.PlacementService) *PlacementHandler {
	return &PlacementHandler{svc: svc}
}

func (h *PlacementHandler) SetupRoutes(api fiber.Router, authMw, adminMw fiber.Handler) {
	placements := api.Group("/placements", authMw)
	placements.Post("/", h.Submit)
	placements.Get("/mine", h.ListMine)
	placements.Get("/", adminMw, h.ListAll)
	placements.Get("/pending", adminMw, h.ListPending)
	placements.Put("/:id", h.Edit)
	placements.Delete("/:id", h.Delete)

	api.Post("/verify", authMw, adminMw, h.Verify)
}

func (h *PlacementHandler) Submit(ctx *fiber.Ctx) error {
	studentID, _ := ctx.Locals("studentID").(string)

	var requestBody dto.PlacementCreateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	resp, err := h.svc.Submit(studentID, requestBody, ctx.IP())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ResponseError(ctx, fiber.StatusNotFound, "student not found")
		}
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusCreated, resp)
}

func (h *PlacementHandler) ListMine(ctx *fiber.Ctx) error {
	studentID, _ := ctx.Locals("studentID").(string)

	placements, err := h.svc.ListMine(studentID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, placements)
}

func (h *PlacementHandler) ListAll(ctx *fiber.Ctx) error {
	placements, err := h.svc.ListAllPlacements()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, placements)
}

func (h *PlacementHandler) ListPending(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	placements, err := h.svc.ListPending(limit, offset)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, placements)
}

func (h *PlacementHandler) Edit(ctx *fiber.Ctx) error {
	studentID, _ := ctx.Locals("studentID").(string)

	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid placement id")
	}

	var requestBody dto.PlacementUpdateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	resp, err := h.svc.Edit(studentID, uint(id), requestBody, ctx.IP())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return utils.ResponseError(ctx, fiber.StatusNotFound, "placement not found")
		case errors.Is(err, services.ErrForbidden):
			return utils.ResponseError(ctx, fiber.StatusForbidden, "not your placement")
		}
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *PlacementHandler) Delete(ctx *fiber.Ctx) error {
	studentID, _ := ctx.Locals("studentID").(string)

	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid placement id")
	}

	if err := h.svc.Delete(studentID, uint(id), ctx.IP()); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return utils.ResponseError(ctx, fiber.StatusNotFound, "placement not found")
		case errors.Is(err, services.ErrForbidden):
			return utils.ResponseError(ctx, fiber.StatusForbidden, "cannot delete this placement")
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "placement deleted")
}

func (h *PlacementHandler) Verify(ctx *fiber.Ctx) error {
	adminID, _ := ctx.Locals("studentID").(string)

	var requestBody dto.VerifyRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}
	if requestBody.Type == "" || requestBody.ID == "" || requestBody.Action == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "type, id and action are required")
	}

	if err := h.svc.Verify(adminID, requestBody, ctx.IP()); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ResponseError(ctx, fiber.StatusNotFound, "record not found")
		}
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.VerifyResponse{Success: true})
}

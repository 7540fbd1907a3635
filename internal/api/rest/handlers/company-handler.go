package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/placementcell/placement_service/internal/dto"
	"github.com/placementcell/placement_service/internal/helper/utils"
	"github.com/placementcell/placement_service/internal/services"
)

type CompanyHandler struct {
	svc services.CompanyService
}

func NewCompanyHandler(svc services.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

func (h *CompanyHandler) SetupRoutes(api fiber.Router, authMw, adminMw fiber.Handler) {
	companies := api.Group("/companies", authMw, adminMw)
	companies.Get("/", h.List)
	companies.Post("/", h.Create)
	companies.Put("/:id", h.Update)
	companies.Delete("/:id", h.Delete)
}

func (h *CompanyHandler) List(ctx *fiber.Ctx) error {
	companies, err := h.svc.ListCompanies()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, companies)
}

func (h *CompanyHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.CompanyCreateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	resp, err := h.svc.CreateCompany(requestBody, ctx.IP())
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, resp)
}

func (h *CompanyHandler) Update(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid company id")
	}

	var requestBody dto.CompanyUpdateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	resp, err := h.svc.UpdateCompany(uint(id), requestBody, ctx.IP())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ResponseError(ctx, fiber.StatusNotFound, "company not found")
		}
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *CompanyHandler) Delete(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid company id")
	}

	if err := h.svc.DeleteCompany(uint(id), ctx.IP()); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ResponseError(ctx, fiber.StatusNotFound, "company not found")
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "company deleted")
}

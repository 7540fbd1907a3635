package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/placementcell/placement_service/internal/dto"
	"github.com/placementcell/placement_service/internal/helper/utils"
	"github.com/placementcell/placement_service/internal/services"
)

type ReportHandler struct {
	svc services.ReportService
}

func NewReportHandler(svc services.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func (h *ReportHandler) SetupRoutes(api fiber.Router, authMw, adminMw fiber.Handler) {
	reports := api.Group("/reports", authMw, adminMw)
	reports.Get("/placements", h.Export)
}

func (h *ReportHandler) Export(ctx *fiber.Ctx) error {
	filter := ctx.Query("filter", dto.ReportFilterAll)

	b, err := h.svc.ExportXLSX(filter)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	filename := fmt.Sprintf("placements-%s-%s.xlsx", filter, time.Now().Format("2006-01-02"))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Send(b)
}

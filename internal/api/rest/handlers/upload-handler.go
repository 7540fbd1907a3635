package handlers

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/placementcell/placement_service/internal/helper/utils"
	"github.com/placementcell/placement_service/internal/interfaces"
	"github.com/placementcell/placement_service/internal/services"
	pkgutils "github.com/placementcell/placement_service/pkg/utils"
)

const maxPhotoSize = 5 << 20 // 5 MB

var allowedPhotoExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type UploadHandler struct {
	uploader   interfaces.Uploader
	studentSvc services.StudentService
}

func NewUploadHandler(uploader interfaces.Uploader, studentSvc services.StudentService) *UploadHandler {
	return &UploadHandler{uploader: uploader, studentSvc: studentSvc}
}

func (h *UploadHandler) SetupRoutes(api fiber.Router, authMw fiber.Handler) {
	api.Post("/uploads/photo", authMw, h.UploadProfilePhoto)
}

func (h *UploadHandler) UploadProfilePhoto(ctx *fiber.Ctx) error {
	studentID, _ := ctx.Locals("studentID").(string)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file is required")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedPhotoExt[ext] {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "only jpg, jpeg, png and webp files are allowed")
	}
	if fileHeader.Size > maxPhotoSize {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file exceeds the 5MB limit")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot read uploaded file")
	}
	defer f.Close()

	b, err := pkgutils.ReadAllLimit(f, maxPhotoSize)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	cctx, cancel := context.WithTimeout(ctx.UserContext(), 20*time.Second)
	defer cancel()

	url, err := h.uploader.UploadBytes(cctx, "placements/photos", uuid.NewString(), b)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "photo upload failed")
	}

	if err := h.studentSvc.SetPhoto(studentID, url, ctx.IP()); err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"url": url})
}

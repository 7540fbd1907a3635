package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/placementcell/placement_service/internal/dto"
	"github.com/placementcell/placement_service/internal/helper/utils"
	"github.com/placementcell/placement_service/internal/services"
)

type StudentHandler struct {
	svc services.StudentService
}

func NewStudentHandler(svc services.StudentService) *StudentHandler {
	return &StudentHandler{svc: svc}
}

func (h *StudentHandler) SetupRoutes(api fiber.Router, authMw, adminMw fiber.Handler) {
	auth := api.Group("/auth")
	auth.Post("/login", h.Login)

	students := api.Group("/students")
	students.Get("/me", authMw, h.Me)
	students.Post("/", authMw, adminMw, h.CreateStudent)
	students.Get("/", authMw, adminMw, h.ListStudents)
	students.Put("/:studentID", authMw, adminMw, h.UpdateStudent)
}

func (h *StudentHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.LoginRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "student id and password are required")
	}

	resp, err := h.svc.Login(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "invalid student id or password")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *StudentHandler) Me(ctx *fiber.Ctx) error {
	studentID, _ := ctx.Locals("studentID").(string)

	profile, err := h.svc.GetProfile(studentID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ResponseError(ctx, fiber.StatusNotFound, "student not found")
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, profile)
}

func (h *StudentHandler) CreateStudent(ctx *fiber.Ctx) error {
	var requestBody dto.StudentCreateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	resp, err := h.svc.CreateStudent(requestBody, ctx.IP())
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusCreated, resp)
}

func (h *StudentHandler) ListStudents(ctx *fiber.Ctx) error {
	students, err := h.svc.ListStudents()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, students)
}

func (h *StudentHandler) UpdateStudent(ctx *fiber.Ctx) error {
	var requestBody dto.StudentUpdateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	resp, err := h.svc.UpdateStudent(ctx.Params("studentID"), requestBody, ctx.IP())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ResponseError(ctx, fiber.StatusNotFound, "student not found")
		}
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

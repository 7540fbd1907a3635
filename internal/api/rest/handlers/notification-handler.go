package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/placementcell/placement_service/internal/domain"
	"github.com/placementcell/placement_service/internal/dto"
	"github.com/placementcell/placement_service/internal/helper/utils"
	"github.com/placementcell/placement_service/internal/services"
)

type NotificationHandler struct {
	svc services.NotificationService
}

func NewNotificationHandler(svc services.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) SetupRoutes(api fiber.Router, authMw fiber.Handler) {
	notifications := api.Group("/notifications", authMw)
	notifications.Get("/", h.Feed)
	notifications.Post("/read", h.MarkRead)
}

// recipientFor maps the caller to their notification channel: admins
// share the admin channel, students get their own identifier.
func recipientFor(ctx *fiber.Ctx) string {
	user, ok := ctx.Locals("user").(dto.AuthResponse)
	if !ok {
		return ""
	}
	if user.Role == domain.RoleAdmin {
		return domain.RecipientAdmin
	}
	return user.StudentID
}

func (h *NotificationHandler) Feed(ctx *fiber.Ctx) error {
	recipient := recipientFor(ctx)
	if recipient == "" {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	feed, err := h.svc.Feed(recipient)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, feed)
}

func (h *NotificationHandler) MarkRead(ctx *fiber.Ctx) error {
	recipient := recipientFor(ctx)
	if recipient == "" {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.MarkReadRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	if err := h.svc.MarkRead(recipient, requestBody.ID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ResponseError(ctx, fiber.StatusNotFound, "notification not found")
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "marked as read")
}

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/placementcell/placement_service/internal/helper"
	"github.com/placementcell/placement_service/internal/services"
)

func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// cookie first, then Authorization header
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx.Locals("studentID", user.StudentID)
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

// AdminOnly rejects non-admin callers before any core logic runs.
func AdminOnly(svc services.StudentService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		studentID, ok := ctx.Locals("studentID").(string)
		if !ok || studentID == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		isAdmin, err := svc.IsAdmin(studentID)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if !isAdmin {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin only",
			})
		}

		return ctx.Next()
	}
}

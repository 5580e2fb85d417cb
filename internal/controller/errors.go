package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"memo-drafting-be/internal/pkg/serverutils"
	"memo-drafting-be/internal/service"
)

// handleServiceError maps domain errors onto HTTP statuses. Wrong-order
// operations are conflicts; bad input is a 400; everything unexpected is a
// 500.
func handleServiceError(ctx *fiber.Ctx, err error) error {
	var code int
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		code = fiber.StatusUnauthorized
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUnknownStandard),
		errors.Is(err, service.ErrNotPDF):
		code = fiber.StatusBadRequest
	case errors.Is(err, service.ErrNoStandard),
		errors.Is(err, service.ErrNoMemo):
		code = fiber.StatusConflict
	default:
		code = fiber.StatusInternalServerError
	}
	return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
}

func requestUserId(ctx *fiber.Ctx) (string, bool) {
	userIdStr, ok := ctx.Locals("user_id").(string)
	return userIdStr, ok
}

package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"memo-drafting-be/internal/dto"
	"memo-drafting-be/internal/pkg/serverutils"
	"memo-drafting-be/internal/service"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Snapshot(ctx *fiber.Ctx) error
	SelectStandard(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{sessionService: sessionService}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/", c.Snapshot)
	h.Post("/standard", c.SelectStandard)
}

func (c *sessionController) Snapshot(ctx *fiber.Ctx) error {
	userIdStr, ok := requestUserId(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}

	res, err := c.sessionService.Snapshot(ctx.Context(), userId)
	if err != nil {
		return handleServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("session snapshot", res))
}

func (c *sessionController) SelectStandard(ctx *fiber.Ctx) error {
	userIdStr, ok := requestUserId(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}

	var req dto.SelectStandardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.sessionService.SelectStandard(ctx.Context(), userId, &req)
	if err != nil {
		return handleServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("standard selected", res))
}

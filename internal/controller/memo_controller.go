package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"memo-drafting-be/internal/dto"
	"memo-drafting-be/internal/pkg/serverutils"
	"memo-drafting-be/internal/service"
)

type IMemoController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	SeedQuestions(ctx *fiber.Ctx) error
	Accept(ctx *fiber.Ctx) error
	Latest(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type memoController struct {
	memoService service.IMemoService
}

func NewMemoController(memoService service.IMemoService) IMemoController {
	return &memoController{memoService: memoService}
}

func (c *memoController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/memo/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/generate", c.Generate)
	h.Post("/seed-questions", c.SeedQuestions)
	h.Post("/accept", c.Accept)
	h.Get("/", c.Latest)
	h.Get("/history", c.History)
}

func (c *memoController) Generate(ctx *fiber.Ctx) error {
	userIdStr, ok := requestUserId(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}

	var req dto.GenerateMemoRequest
	if err := ctx.BodyParser(&req); err != nil {
		// The body is optional; an empty post means force=false.
		req = dto.GenerateMemoRequest{}
	}

	res, err := c.memoService.Generate(ctx.Context(), userId, req.Force)
	if err != nil {
		return handleServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("memo generation finished", res))
}

func (c *memoController) SeedQuestions(ctx *fiber.Ctx) error {
	userIdStr, ok := requestUserId(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}

	res, err := c.memoService.SeedQuestions(ctx.Context(), userId)
	if err != nil {
		return handleServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("questions seeded", res))
}

func (c *memoController) Accept(ctx *fiber.Ctx) error {
	userIdStr, ok := requestUserId(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}

	res, err := c.memoService.Accept(ctx.Context(), userId)
	if err != nil {
		return handleServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("memo accepted", res))
}

func (c *memoController) Latest(ctx *fiber.Ctx) error {
	userIdStr, ok := requestUserId(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}

	res, err := c.memoService.Latest(ctx.Context(), userId)
	if err != nil {
		return handleServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("latest memo", res))
}

func (c *memoController) History(ctx *fiber.Ctx) error {
	userIdStr, ok := requestUserId(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}

	res, err := c.memoService.History(ctx.Context(), userId)
	if err != nil {
		return handleServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("memo history", res))
}

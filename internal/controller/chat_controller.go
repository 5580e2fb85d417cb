package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"memo-drafting-be/internal/dto"
	"memo-drafting-be/internal/pkg/serverutils"
	"memo-drafting-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	Evaluate(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{chatService: chatService}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/", c.Send)
	h.Post("/evaluate", c.Evaluate)
	h.Get("/history", c.History)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	userIdStr, ok := requestUserId(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.chatService.Chat(ctx.Context(), userId, &req)
	if err != nil {
		return handleServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("message processed", res))
}

func (c *chatController) Evaluate(ctx *fiber.Ctx) error {
	userIdStr, ok := requestUserId(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}

	var req dto.EvaluateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.chatService.Evaluate(ctx.Context(), userId, &req)
	if err != nil {
		return handleServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("message evaluated", res))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	userIdStr, ok := requestUserId(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}

	res, err := c.chatService.History(ctx.Context(), userId)
	if err != nil {
		return handleServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("conversation history", res))
}

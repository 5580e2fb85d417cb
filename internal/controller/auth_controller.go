package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"memo-drafting-be/internal/dto"
	"memo-drafting-be/internal/pkg/serverutils"
	"memo-drafting-be/internal/service"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &authController{authService: authService}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Post("/logout", serverutils.JwtMiddleware, c.Logout)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.authService.Register(ctx.Context(), &req)
	if err != nil {
		return handleServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("registered", res))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.Context(), &req)
	if err != nil {
		return handleServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("logged in", res))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	userIdStr, ok := requestUserId(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}

	if err := c.authService.Logout(ctx.Context(), userId); err != nil {
		return handleServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("logged out", fiber.Map{}))
}

package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"memo-drafting-be/internal/pkg/serverutils"
	"memo-drafting-be/internal/service"
)

// Uploaded agreements are processed in memory; anything past this limit is
// rejected before parsing starts.
const maxAgreementSize = 32 << 20

type IAgreementController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type agreementController struct {
	agreementService service.IAgreementService
}

func NewAgreementController(agreementService service.IAgreementService) IAgreementController {
	return &agreementController{agreementService: agreementService}
}

func (c *agreementController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/agreement/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/upload", c.Upload)
}

func (c *agreementController) Upload(ctx *fiber.Ctx) error {
	userIdStr, ok := requestUserId(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing agreement file")
	}
	if fileHeader.Size > maxAgreementSize {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "agreement file too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unreadable agreement file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unreadable agreement file")
	}

	res, err := c.agreementService.Upload(ctx.Context(), userId, fileHeader.Filename, data)
	if err != nil {
		return handleServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("agreement indexed", res))
}

package controller

import (
	"eldercare-assist-be/internal/dto"
	"eldercare-assist-be/internal/pkg/serverutils"
	"eldercare-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICompanionController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	EndChat(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
}

type companionController struct {
	companionService service.ICompanionService
}

func NewCompanionController(companionService service.ICompanionService) ICompanionController {
	return &companionController{
		companionService: companionService,
	}
}

func (c *companionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/companion/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("chat", c.SendChat)
	h.Post("end", c.EndChat)
	h.Get("history", c.GetChatHistory)
}

func (c *companionController) EndChat(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	if err := c.companionService.EndChat(ctx.Context(), userId); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation ended", nil))
}

func (c *companionController) SendChat(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.companionService.SendChat(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat processed", res))
}

func (c *companionController) GetChatHistory(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	limit := ctx.QueryInt("limit", 100)

	res, err := c.companionService.GetChatHistory(ctx.Context(), userId, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show chat history", res))
}

package controller

import (
	"errors"

	"eldercare-assist-be/internal/dto"
	"eldercare-assist-be/internal/pkg/serverutils"
	"eldercare-assist-be/internal/service"
	"eldercare-assist-be/pkg/companion/emotion"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IVoiceController interface {
	RegisterRoutes(r fiber.Router)
	Utterance(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type voiceController struct {
	voiceService service.IVoiceService
}

func NewVoiceController(voiceService service.IVoiceService) IVoiceController {
	return &voiceController{
		voiceService: voiceService,
	}
}

func (c *voiceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/voice/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("utterance", c.Utterance)
	h.Get("history", c.History)
}

func (c *voiceController) Utterance(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.VoiceUtteranceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if req.Text == "" && len(req.Audio) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "utterance requires text or audio")
	}

	res, err := c.voiceService.HandleUtterance(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, emotion.ErrNoSignal) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "no usable signal in utterance")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Utterance processed", res))
}

func (c *voiceController) History(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	limit := ctx.QueryInt("limit", 50)

	res, err := c.voiceService.History(ctx.Context(), userId, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show voice history", res))
}

package controller

import (
	"time"

	"eldercare-assist-be/internal/dto"
	"eldercare-assist-be/internal/pkg/serverutils"
	"eldercare-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMoodController interface {
	RegisterRoutes(r fiber.Router)
	Log(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type moodController struct {
	moodService service.IMoodService
}

func NewMoodController(moodService service.IMoodService) IMoodController {
	return &moodController{
		moodService: moodService,
	}
}

func (c *moodController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/mood/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Log)
	h.Get("", c.List)
}

func (c *moodController) Log(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.LogMoodRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.moodService.Log(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Mood logged", res))
}

func (c *moodController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var since time.Time
	if sinceStr := ctx.Query("since"); sinceStr != "" {
		parsed, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "since must be RFC3339")
		}
		since = parsed
	}

	res, err := c.moodService.List(ctx.Context(), userId, since)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show moods", res))
}

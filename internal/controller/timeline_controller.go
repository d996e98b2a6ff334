package controller

import (
	"time"

	"eldercare-assist-be/internal/pkg/serverutils"
	"eldercare-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITimelineController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type timelineController struct {
	timelineService service.ITimelineService
}

func NewTimelineController(timelineService service.ITimelineService) ITimelineController {
	return &timelineController{
		timelineService: timelineService,
	}
}

func (c *timelineController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/timeline/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRoles("caregiver", "clinician"))
	h.Get(":patientId", c.List)
}

func (c *timelineController) List(ctx *fiber.Ctx) error {
	patientId, err := uuid.Parse(ctx.Params("patientId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid patient id")
	}

	var since time.Time
	if sinceStr := ctx.Query("since"); sinceStr != "" {
		parsed, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "since must be RFC3339")
		}
		since = parsed
	}
	limit := ctx.QueryInt("limit", 100)

	res, err := c.timelineService.List(ctx.Context(), patientId, since, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show timeline", res))
}

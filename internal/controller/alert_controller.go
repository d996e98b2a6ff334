package controller

import (
	"eldercare-assist-be/internal/pkg/serverutils"
	"eldercare-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAlertController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
}

type alertController struct {
	alertService service.IAlertService
}

func NewAlertController(alertService service.IAlertService) IAlertController {
	return &alertController{
		alertService: alertService,
	}
}

func (c *alertController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/alert/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRoles("caregiver", "clinician"))
	h.Get(":patientId", c.List)
	h.Patch(":id/resolve", c.Resolve)
}

func (c *alertController) List(ctx *fiber.Ctx) error {
	patientId, err := uuid.Parse(ctx.Params("patientId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid patient id")
	}

	status := ctx.Query("status")

	res, err := c.alertService.List(ctx.Context(), patientId, status)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show alerts", res))
}

func (c *alertController) Resolve(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	alertId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid alert id")
	}

	if err := c.alertService.Resolve(ctx.Context(), alertId, userId); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Alert resolved", nil))
}

package controller

import (
	"errors"

	"github.com/cokeastorga/astorgayabogados/internal/entity"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/serverutils"
	"github.com/cokeastorga/astorgayabogados/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuditController interface {
	RegisterRoutes(r fiber.Router)
	Save(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type auditController struct {
	service service.IAuditService
}

func NewAuditController(service service.IAuditService) IAuditController {
	return &auditController{service: service}
}

func (c *auditController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/audit")
	h.Post("", c.Save)
	h.Get(":sessionId", c.Show)
}

func (c *auditController) Save(ctx *fiber.Ctx) error {
	var session entity.ChatSession
	if err := ctx.BodyParser(&session); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	res, err := c.service.Save(ctx.UserContext(), &session)
	if err != nil {
		if errors.Is(err, service.ErrMissingSessionId) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *auditController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.FindBySession(ctx.UserContext(), ctx.Params("sessionId"))
	if err != nil {
		return err
	}
	if len(res) == 0 {
		return fiber.NewError(fiber.StatusNotFound, "no audit records for session")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get audit records", res))
}

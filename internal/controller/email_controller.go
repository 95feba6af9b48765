package controller

import (
	"errors"

	"github.com/cokeastorga/astorgayabogados/internal/dto"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/serverutils"
	"github.com/cokeastorga/astorgayabogados/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IEmailController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
}

type emailController struct {
	service service.INotificationService
}

func NewEmailController(service service.INotificationService) IEmailController {
	return &emailController{service: service}
}

func (c *emailController) RegisterRoutes(r fiber.Router) {
	r.Post("/email", c.Send)
}

func (c *emailController) Send(ctx *fiber.Ctx) error {
	var req dto.EmailRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.EmailResponse{Error: "invalid request body"})
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.EmailResponse{Error: err.Error()})
	}

	if err := c.service.Send(ctx.UserContext(), &req); err != nil {
		if errors.Is(err, service.ErrInvalidEmailPayload) {
			return ctx.Status(fiber.StatusBadRequest).JSON(dto.EmailResponse{Error: err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.EmailResponse{Error: "email could not be sent"})
	}

	return ctx.JSON(dto.EmailResponse{Success: true})
}

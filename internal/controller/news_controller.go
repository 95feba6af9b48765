package controller

import (
	"github.com/cokeastorga/astorgayabogados/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INewsController interface {
	RegisterRoutes(r fiber.Router, limiter fiber.Handler)
	Latest(ctx *fiber.Ctx) error
}

type newsController struct {
	service service.INewsService
}

func NewNewsController(service service.INewsService) INewsController {
	return &newsController{service: service}
}

func (c *newsController) RegisterRoutes(r fiber.Router, limiter fiber.Handler) {
	r.Get("/news", limiter, c.Latest)
}

func (c *newsController) Latest(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Latest(ctx.UserContext()))
}

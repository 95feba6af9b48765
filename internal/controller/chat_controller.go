package controller

import (
	"github.com/cokeastorga/astorgayabogados/internal/constant"
	"github.com/cokeastorga/astorgayabogados/internal/dto"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/serverutils"
	"github.com/cokeastorga/astorgayabogados/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, limiter fiber.Handler)
	Chat(ctx *fiber.Ctx) error
	Summary(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService    service.IChatService
	summaryService service.ISummaryService
}

func NewChatController(chatService service.IChatService, summaryService service.ISummaryService) IChatController {
	return &chatController{chatService: chatService, summaryService: summaryService}
}

func (c *chatController) RegisterRoutes(r fiber.Router, limiter fiber.Handler) {
	r.Post("/chat", limiter, c.Chat)
	r.Post("/summary", limiter, c.Summary)
}

// Chat always answers 200; provider exhaustion is signalled by the degraded flag and header.
func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res := c.chatService.Reply(ctx.UserContext(), &req)
	if res.Degraded {
		ctx.Set(constant.ProviderStatusHeader, constant.ProviderStatusExhausted)
	}
	return ctx.JSON(res)
}

// Summary returns the bare six-field lead record.
func (c *chatController) Summary(ctx *fiber.Ctx) error {
	var req dto.SummaryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.SummaryErrorResponse{Error: "invalid request body"})
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.SummaryErrorResponse{Error: err.Error()})
	}

	res, err := c.summaryService.Summarize(ctx.UserContext(), req.Messages)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.SummaryErrorResponse{Error: err.Error()})
	}
	if res.Degraded {
		ctx.Set(constant.ProviderStatusHeader, constant.ProviderStatusExhausted)
	}
	return ctx.JSON(res.Summary)
}

package controller

import (
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/dto"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/pkg/serverutils"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/service"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/dedupe"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router, accessToken string)
	Message(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type webhookController struct {
	assistantService service.IAssistantService
	deduper          *dedupe.Deduper
}

func NewWebhookController(assistantService service.IAssistantService, deduper *dedupe.Deduper) IWebhookController {
	return &webhookController{
		assistantService: assistantService,
		deduper:          deduper,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router, accessToken string) {
	h := r.Group("/webhook/v1")
	h.Use(serverutils.AccessTokenMiddleware(accessToken))
	h.Post("message", c.Message)
	h.Get("history/:from", c.History)
}

func (c *webhookController) Message(ctx *fiber.Ctx) error {
	var req dto.WebhookMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	// WhatsApp gateways redeliver on slow responses. Answer duplicates
	// without running the turn again.
	if req.MessageId != "" {
		seen, err := c.deduper.Seen(ctx.Context(), req.MessageId)
		if err == nil && seen {
			return ctx.JSON(serverutils.SuccessResponse("Duplicate delivery ignored", &dto.WebhookMessageResponse{
				Duplicate: true,
			}))
		}
	}

	reply, err := c.assistantService.HandleTurn(ctx.Context(), req.From, req.Body)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success handle message", &dto.WebhookMessageResponse{
		Reply: reply,
	}))
}

func (c *webhookController) History(ctx *fiber.Ctx) error {
	from := ctx.Params("from")
	if from == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Missing session identifier"))
	}

	res, err := c.assistantService.GetHistory(ctx.Context(), from)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show conversation history", res))
}

package handler

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/usecase"
	"creacakes/pkg/errors"
	"creacakes/pkg/response"
)

type NewsletterHandler struct {
	newsletterUseCase *usecase.NewsletterUseCase
}

func NewNewsletterHandler(newsletterUseCase *usecase.NewsletterUseCase) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterUseCase: newsletterUseCase,
	}
}

// SendCampaign queues a newsletter for every subscriber and reports how
// many emails were queued.
func (h *NewsletterHandler) SendCampaign(c echo.Context) error {
	var req usecase.NewsletterInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	queued, err := h.newsletterUseCase.SendCampaign(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"queued": queued,
	})
}

func (h *NewsletterHandler) ListSubscribers(c echo.Context) error {
	subscribers, err := h.newsletterUseCase.ListSubscribers(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, subscribers)
}

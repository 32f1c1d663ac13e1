package handler

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/usecase"
	"creacakes/pkg/errors"
	"creacakes/pkg/response"
)

type SettingsHandler struct {
	settingsUseCase *usecase.SettingsUseCase
}

func NewSettingsHandler(settingsUseCase *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{
		settingsUseCase: settingsUseCase,
	}
}

func (h *SettingsHandler) GetSite(c echo.Context) error {
	settings, err := h.settingsUseCase.GetSiteSettings(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, settings)
}

func (h *SettingsHandler) UpdateSite(c echo.Context) error {
	var req usecase.SiteSettingsInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	settings, err := h.settingsUseCase.UpdateSiteSettings(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, settings)
}

// GetPromo serves the public banner; outside the scheduled window it
// returns null data.
func (h *SettingsHandler) GetPromo(c echo.Context) error {
	promo, err := h.settingsUseCase.GetPromo(c.Request().Context(), true)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, promo)
}

// GetPromoAdmin serves the raw promo document regardless of schedule.
func (h *SettingsHandler) GetPromoAdmin(c echo.Context) error {
	promo, err := h.settingsUseCase.GetPromo(c.Request().Context(), false)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, promo)
}

func (h *SettingsHandler) UpdatePromo(c echo.Context) error {
	var req usecase.PromoInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	promo, err := h.settingsUseCase.UpdatePromo(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, promo)
}

package handler

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/infrastructure/firebase"
	"creacakes/pkg/errors"
	"creacakes/pkg/response"
)

// DevTokenHandler mints tokens for local testing. Never routed in
// production.
type DevTokenHandler struct {
	authClient *firebase.FirebaseAuthClient
}

func NewDevTokenHandler(authClient *firebase.FirebaseAuthClient) *DevTokenHandler {
	return &DevTokenHandler{
		authClient: authClient,
	}
}

func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	var req struct {
		UID string `json:"uid" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	token, err := h.authClient.GenerateLongLivedToken(c.Request().Context(), req.UID)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to generate token", err))
	}

	return response.Success(c, map[string]string{"token": token})
}

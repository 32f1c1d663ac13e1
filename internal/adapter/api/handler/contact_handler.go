package handler

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/usecase"
	"creacakes/pkg/errors"
	"creacakes/pkg/response"
	"creacakes/pkg/utils"
)

type ContactHandler struct {
	contactUseCase *usecase.ContactUseCase
}

func NewContactHandler(contactUseCase *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{
		contactUseCase: contactUseCase,
	}
}

func (h *ContactHandler) Submit(c echo.Context) error {
	var req usecase.ContactInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	contact, err := h.contactUseCase.SubmitContact(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, contact)
}

func (h *ContactHandler) List(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	contacts, total, err := h.contactUseCase.ListContacts(c.Request().Context(), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, contacts, total, pagination.Page, pagination.PageSize)
}

func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.contactUseCase.DeleteContact(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Contact deleted"})
}

type newsletterSubscriptionRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *ContactHandler) Subscribe(c echo.Context) error {
	var req newsletterSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.contactUseCase.Subscribe(c.Request().Context(), req.Email); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Subscribed to newsletter"})
}

func (h *ContactHandler) Unsubscribe(c echo.Context) error {
	var req newsletterSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.contactUseCase.Unsubscribe(c.Request().Context(), req.Email); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Unsubscribed from newsletter"})
}

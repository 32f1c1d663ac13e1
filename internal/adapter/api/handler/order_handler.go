package handler

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/usecase"
	"creacakes/pkg/errors"
	"creacakes/pkg/response"
	"creacakes/pkg/utils"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

func (h *OrderHandler) List(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	status := c.QueryParam("status")

	orders, total, err := h.orderUseCase.ListOrders(c.Request().Context(), status, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, pagination.Page, pagination.PageSize)
}

func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.orderUseCase.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.orderUseCase.DeleteOrder(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Order deleted"})
}

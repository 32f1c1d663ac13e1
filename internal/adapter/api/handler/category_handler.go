package handler

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/usecase"
	"creacakes/pkg/errors"
	"creacakes/pkg/response"
)

type CategoryHandler struct {
	categoryUseCase *usecase.CategoryUseCase
}

func NewCategoryHandler(categoryUseCase *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{
		categoryUseCase: categoryUseCase,
	}
}

func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categoryUseCase.ListCategories(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, categories)
}

func (h *CategoryHandler) GetBySlug(c echo.Context) error {
	category, err := h.categoryUseCase.GetCategoryBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, category)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req usecase.CategoryInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.categoryUseCase.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, category)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	var req usecase.CategoryInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.categoryUseCase.UpdateCategory(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, category)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.categoryUseCase.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Category deleted"})
}

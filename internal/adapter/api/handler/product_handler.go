package handler

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/usecase"
	"creacakes/pkg/errors"
	"creacakes/pkg/response"
	"creacakes/pkg/utils"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

// List serves the public catalog. Admin listings pass include_inactive to
// see hidden products too.
func (h *ProductHandler) List(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	categoryID := c.QueryParam("category")
	featuredOnly := c.QueryParam("featured") == "true"
	includeInactive := false

	if c.QueryParam("include_inactive") == "true" {
		_, isAdmin := callerFrom(c)
		includeInactive = isAdmin
	}

	products, total, err := h.productUseCase.ListProducts(c.Request().Context(),
		categoryID, featuredOnly, includeInactive, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.productUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req usecase.ProductInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	var req usecase.ProductInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.UpdateProduct(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.Error(c, errors.BadRequest("Image file is required", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read image", err))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	product, err := h.productUseCase.UploadImage(c.Request().Context(), c.Param("id"), contentType, fileHeader.Filename, file)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.productUseCase.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Product deleted"})
}

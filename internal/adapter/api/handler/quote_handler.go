package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"creacakes/internal/domain/entity"
	"creacakes/internal/usecase"
	"creacakes/pkg/errors"
	"creacakes/pkg/response"
	"creacakes/pkg/utils"
)

type QuoteHandler struct {
	quoteUseCase *usecase.QuoteUseCase
}

func NewQuoteHandler(quoteUseCase *usecase.QuoteUseCase) *QuoteHandler {
	return &QuoteHandler{
		quoteUseCase: quoteUseCase,
	}
}

// Submit handles the public quote request form. Authentication is optional;
// a logged-in caller gets the quote linked to their account.
func (h *QuoteHandler) Submit(c echo.Context) error {
	var req usecase.SubmitQuoteInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID, _ := c.Get("uid").(string)

	quote, err := h.quoteUseCase.SubmitQuote(c.Request().Context(), userID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, quote)
}

func (h *QuoteHandler) List(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	status := c.QueryParam("status")

	quotes, total, err := h.quoteUseCase.ListQuotes(c.Request().Context(), status, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, quotes, total, pagination.Page, pagination.PageSize)
}

func (h *QuoteHandler) ListMine(c echo.Context) error {
	uid, ok := c.Get("uid").(string)
	if !ok {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	pagination := utils.GetPaginationParams(c)

	quotes, total, err := h.quoteUseCase.ListMyQuotes(c.Request().Context(), uid, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, quotes, total, pagination.Page, pagination.PageSize)
}

func (h *QuoteHandler) Get(c echo.Context) error {
	caller, isAdmin := callerFrom(c)
	callerID := ""
	if caller != nil {
		callerID = caller.ID
	}

	quote, err := h.quoteUseCase.GetQuoteFor(c.Request().Context(), c.Param("id"), callerID, isAdmin)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, quote)
}

func (h *QuoteHandler) UpdateStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	quote, err := h.quoteUseCase.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, quote)
}

func (h *QuoteHandler) Delete(c echo.Context) error {
	if err := h.quoteUseCase.DeleteQuote(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Quote deleted"})
}

// Convert runs the quote→order conversion workflow.
func (h *QuoteHandler) Convert(c echo.Context) error {
	order, err := h.quoteUseCase.ConvertToOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, order)
}

// Messages replays the quote thread. The after query parameter is a
// sequence cursor; 0 or absent replays everything.
func (h *QuoteHandler) Messages(c echo.Context) error {
	caller, isAdmin := callerFrom(c)

	afterSeq, _ := strconv.ParseInt(c.QueryParam("after"), 10, 64)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	messages, err := h.quoteUseCase.Messages(c.Request().Context(), c.Param("id"), caller, isAdmin, afterSeq, limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

func (h *QuoteHandler) PostMessage(c echo.Context) error {
	caller, isAdmin := callerFrom(c)
	if caller == nil {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	var req usecase.PostMessageInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.quoteUseCase.PostMessage(c.Request().Context(), c.Param("id"), caller, isAdmin, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

// PostFile accepts a multipart upload and appends it to the thread.
func (h *QuoteHandler) PostFile(c echo.Context) error {
	caller, isAdmin := callerFrom(c)
	if caller == nil {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Attachment file is required", err))
	}

	const maxAttachmentSize = 10 << 20
	if fileHeader.Size > maxAttachmentSize {
		return response.Error(c, errors.BadRequest("Attachment exceeds the 10 MB limit", nil))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read attachment", err))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	caption := c.FormValue("text")

	message, err := h.quoteUseCase.PostFile(c.Request().Context(), c.Param("id"), caller, isAdmin, file, contentType, fileHeader.Filename, caption)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

// callerFrom extracts the stored user from the context when the auth
// middleware put one there.
func callerFrom(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get("user").(*entity.User)
	if !ok {
		return nil, false
	}
	return user, user.IsAdmin()
}

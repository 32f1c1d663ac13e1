package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"creacakes/internal/domain/entity"
	"creacakes/internal/domain/repository"
	"creacakes/pkg/errors"
	"creacakes/pkg/logger"
)

type QuoteUseCase struct {
	quoteRepo        repository.QuoteRepository
	orderRepo        repository.OrderRepository
	productRepo      repository.ProductRepository
	notificationRepo repository.NotificationRepository
	settingsRepo     repository.SettingsRepository
	uploader         FileUploader
	broadcaster      ThreadBroadcaster
	adminEmail       string
}

func NewQuoteUseCase(
	quoteRepo repository.QuoteRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	notificationRepo repository.NotificationRepository,
	settingsRepo repository.SettingsRepository,
	uploader FileUploader,
	broadcaster ThreadBroadcaster,
	adminEmail string,
) *QuoteUseCase {
	return &QuoteUseCase{
		quoteRepo:        quoteRepo,
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		notificationRepo: notificationRepo,
		settingsRepo:     settingsRepo,
		uploader:         uploader,
		broadcaster:      broadcaster,
		adminEmail:       adminEmail,
	}
}

type QuoteProductInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type SubmitQuoteInput struct {
	Name             string              `json:"name" validate:"required"`
	Email            string              `json:"email" validate:"required,email"`
	Phone            string              `json:"phone"`
	EventType        string              `json:"event_type" validate:"required"`
	EventTypeOther   string              `json:"event_type_other"`
	EventDate        string              `json:"event_date" validate:"required"`
	GuestCount       string              `json:"guest_count"`
	Budget           string              `json:"budget"`
	Description      string              `json:"description"`
	SelectedProducts []QuoteProductInput `json:"selected_products"`
}

// SubmitQuote creates a quote from the public form. Product names and prices
// are snapshotted from the catalog at submission time, and an admin alert is
// queued in the outbox.
func (uc *QuoteUseCase) SubmitQuote(ctx context.Context, userID string, input SubmitQuoteInput) (*entity.Quote, error) {
	settings, err := uc.settingsRepo.GetSite(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.QuotesOpen {
		return nil, errors.Forbidden("Quote requests are currently closed", nil)
	}

	if !entity.ValidEventType(input.EventType) {
		return nil, errors.BadRequest("Invalid event type", nil)
	}
	if input.EventType == entity.EventTypeOther && input.EventTypeOther == "" {
		return nil, errors.BadRequest("Event type description is required for other events", nil)
	}

	var products []entity.QuoteProduct
	for _, item := range input.SelectedProducts {
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, errors.BadRequest("Unknown product in selection", err)
		}
		if !product.Active {
			return nil, errors.BadRequest(fmt.Sprintf("Product %s is no longer available", product.Name), nil)
		}
		products = append(products, entity.QuoteProduct{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       product.Price,
		})
	}

	quote := &entity.Quote{
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		EventType:        input.EventType,
		EventTypeOther:   input.EventTypeOther,
		EventDate:        input.EventDate,
		GuestCount:       input.GuestCount,
		Budget:           input.Budget,
		Description:      input.Description,
		UserID:           userID,
		SelectedProducts: products,
		EstimatedTotal:   entity.EstimateTotal(products),
		Status:           entity.QuoteStatusNew,
	}

	if err := uc.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}

	uc.enqueue(ctx, &entity.Notification{
		Type: entity.NotificationNewQuote,
		To:   uc.adminEmail,
		Payload: map[string]interface{}{
			"name":       quote.Name,
			"email":      quote.Email,
			"event_type": quote.EventType,
			"event_date": quote.EventDate,
			"total":      quote.EstimatedTotal,
			"quote_id":   quote.ID,
		},
	})

	return quote, nil
}

func (uc *QuoteUseCase) GetQuote(ctx context.Context, id string) (*entity.Quote, error) {
	return uc.quoteRepo.GetByID(ctx, id)
}

// GetQuoteFor enforces thread access: admins see everything, authenticated
// customers only their own quotes, and anonymous quotes stay admin-only.
func (uc *QuoteUseCase) GetQuoteFor(ctx context.Context, id, callerID string, isAdmin bool) (*entity.Quote, error) {
	quote, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		if quote.UserID == "" || quote.UserID != callerID {
			return nil, errors.Forbidden("You do not have access to this quote", nil)
		}
	}

	return quote, nil
}

func (uc *QuoteUseCase) ListQuotes(ctx context.Context, status string, limit, offset int) ([]*entity.Quote, int64, error) {
	if status != "" && !entity.ValidQuoteStatus(status) {
		return nil, 0, errors.BadRequest("Invalid status filter", nil)
	}
	return uc.quoteRepo.List(ctx, status, limit, offset)
}

func (uc *QuoteUseCase) ListMyQuotes(ctx context.Context, userID string, limit, offset int) ([]*entity.Quote, int64, error) {
	return uc.quoteRepo.ListByUserID(ctx, userID, limit, offset)
}

// UpdateStatus moves a quote through the admin status selector. Converted is
// never reachable here; it is owned by the conversion workflow.
func (uc *QuoteUseCase) UpdateStatus(ctx context.Context, id, newStatus string) (*entity.Quote, error) {
	if newStatus == entity.QuoteStatusConverted {
		return nil, errors.BadRequest("Use the conversion workflow to convert a quote", nil)
	}

	quote, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !quote.CanTransition(newStatus) {
		return nil, errors.BadRequest(
			fmt.Sprintf("Cannot change status from %s to %s", quote.Status, newStatus), nil)
	}

	if err := uc.quoteRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}

	quote.Status = newStatus
	return quote, nil
}

func (uc *QuoteUseCase) DeleteQuote(ctx context.Context, id string) error {
	if _, err := uc.quoteRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.quoteRepo.Delete(ctx, id)
}

type PostMessageInput struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// PostMessage appends a text message to the quote thread, pushes it to live
// subscribers and, for admin messages, queues an email to the customer.
func (uc *QuoteUseCase) PostMessage(ctx context.Context, quoteID string, sender *entity.User, isAdmin bool, input PostMessageInput) (*entity.Message, error) {
	quote, err := uc.authorizeThread(ctx, quoteID, sender, isAdmin)
	if err != nil {
		return nil, err
	}

	message := &entity.Message{
		SenderID:   sender.ID,
		SenderName: sender.Name,
		IsAdmin:    isAdmin,
		Text:       input.Text,
	}

	appended, err := uc.quoteRepo.AppendMessage(ctx, quoteID, message)
	if err != nil {
		return nil, err
	}

	uc.fanOut(ctx, quote, appended, isAdmin)

	return appended, nil
}

// PostFile uploads an attachment and appends it to the thread as a message.
// The attachment is classified as image or document from its content type.
func (uc *QuoteUseCase) PostFile(ctx context.Context, quoteID string, sender *entity.User, isAdmin bool, file io.Reader, contentType, fileName, caption string) (*entity.Message, error) {
	quote, err := uc.authorizeThread(ctx, quoteID, sender, isAdmin)
	if err != nil {
		return nil, err
	}

	folder := fmt.Sprintf("conversations/%s", quoteID)
	url, err := uc.uploader.UploadFile(ctx, file, contentType, folder, fileName)
	if err != nil {
		return nil, errors.Internal("Failed to upload attachment", err)
	}

	if caption == "" {
		caption = fileName
	}

	message := &entity.Message{
		SenderID:   sender.ID,
		SenderName: sender.Name,
		IsAdmin:    isAdmin,
		Text:       caption,
		FileURL:    url,
		FileName:   fileName,
		FileKind:   entity.ClassifyFile(contentType),
	}

	appended, err := uc.quoteRepo.AppendMessage(ctx, quoteID, message)
	if err != nil {
		return nil, err
	}

	uc.fanOut(ctx, quote, appended, isAdmin)

	return appended, nil
}

// Messages replays the thread after the given sequence cursor.
func (uc *QuoteUseCase) Messages(ctx context.Context, quoteID string, caller *entity.User, isAdmin bool, afterSeq int64, limit int) ([]*entity.Message, error) {
	if _, err := uc.authorizeThread(ctx, quoteID, caller, isAdmin); err != nil {
		return nil, err
	}
	return uc.quoteRepo.Messages(ctx, quoteID, afterSeq, limit)
}

// AuthorizeThread is the access check used by the websocket subscribe
// endpoint before a client joins a thread room.
func (uc *QuoteUseCase) AuthorizeThread(ctx context.Context, quoteID string, caller *entity.User, isAdmin bool) error {
	_, err := uc.authorizeThread(ctx, quoteID, caller, isAdmin)
	return err
}

func (uc *QuoteUseCase) authorizeThread(ctx context.Context, quoteID string, caller *entity.User, isAdmin bool) (*entity.Quote, error) {
	quote, err := uc.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	if isAdmin {
		return quote, nil
	}
	if caller == nil {
		return nil, errors.Unauthorized("Authentication required", nil)
	}
	if quote.UserID == "" || quote.UserID != caller.ID {
		// Threads of anonymous quotes are reachable by admins only.
		return nil, errors.Forbidden("You do not have access to this conversation", nil)
	}

	return quote, nil
}

// ConvertToOrder turns an accepted quote into an order. The order creation,
// the status flip and the confirmation email outbox document commit in one
// transaction; converting twice returns the existing order id.
func (uc *QuoteUseCase) ConvertToOrder(ctx context.Context, quoteID string) (*entity.Order, error) {
	orderID, err := uc.quoteRepo.Convert(ctx, quoteID, func(quote *entity.Quote) (*entity.Order, *entity.Notification, error) {
		if !quote.Convertible() {
			// Unreachable; the repository short-circuits converted quotes.
			return nil, nil, errors.Conflict("Quote is already converted")
		}

		order := &entity.Order{
			Name:      quote.Name,
			Email:     quote.Email,
			Phone:     quote.Phone,
			EventType: quote.EventType,
			EventDate: quote.EventDate,
			Products:  quote.SelectedProducts,
			Total:     quote.EstimatedTotal,
			Status:    entity.OrderStatusPending,
		}

		notification := &entity.Notification{
			Type: entity.NotificationOrderConfirmation,
			To:   quote.Email,
			Payload: map[string]interface{}{
				"name":       quote.Name,
				"quote_id":   quote.ID,
				"event_date": quote.EventDate,
				"products":   productLines(quote.SelectedProducts),
				"total":      quote.EstimatedTotal,
			},
		}

		return order, notification, nil
	})
	if err != nil {
		return nil, err
	}

	return uc.orderRepo.GetByID(ctx, orderID)
}

// fanOut pushes the appended message to websocket subscribers and queues an
// email to the other party: admin replies notify the customer, customer
// messages notify the bakery inbox. Both are post-commit side effects and
// never fail the append.
func (uc *QuoteUseCase) fanOut(ctx context.Context, quote *entity.Quote, message *entity.Message, isAdmin bool) {
	if uc.broadcaster != nil {
		payload, err := json.Marshal(message)
		if err == nil {
			uc.broadcaster.SendToThread(quote.ID, message.Seq, payload)
		}
	}

	to := uc.adminEmail
	if isAdmin {
		to = quote.Email
	}

	if to != "" {
		uc.enqueue(ctx, &entity.Notification{
			Type: entity.NotificationQuoteMessage,
			To:   to,
			Payload: map[string]interface{}{
				"name":     quote.Name,
				"message":  message.Text,
				"quote_id": quote.ID,
			},
		})
	}
}

// productLines renders the snapshotted selection as email-ready lines.
func productLines(products []entity.QuoteProduct) []string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("%d × %s", p.Quantity, p.ProductName))
	}
	return lines
}

func (uc *QuoteUseCase) enqueue(ctx context.Context, notification *entity.Notification) {
	if err := uc.notificationRepo.Enqueue(ctx, notification); err != nil {
		logger.Error("Failed to enqueue %s notification: %v", notification.Type, err)
	}
}

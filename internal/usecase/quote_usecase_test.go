package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creacakes/internal/domain/entity"
	"creacakes/pkg/errors"
)

type quoteFixture struct {
	uc            *QuoteUseCase
	quotes        *fakeQuoteRepo
	orders        *fakeOrderRepo
	products      *fakeProductRepo
	notifications *fakeNotificationRepo
	settings      *fakeSettingsRepo
	uploader      *fakeUploader
	broadcaster   *fakeBroadcaster
}

func newQuoteFixture() *quoteFixture {
	quotes := newFakeQuoteRepo()
	orders := newFakeOrderRepo()
	products := newFakeProductRepo()
	notifications := newFakeNotificationRepo()
	settings := newFakeSettingsRepo()
	uploader := &fakeUploader{}
	broadcaster := newFakeBroadcaster()

	quotes.orders = orders
	quotes.notifications = notifications

	return &quoteFixture{
		uc: NewQuoteUseCase(quotes, orders, products, notifications, settings,
			uploader, broadcaster, "contact@creacakes.fr"),
		quotes:        quotes,
		orders:        orders,
		products:      products,
		notifications: notifications,
		settings:      settings,
		uploader:      uploader,
		broadcaster:   broadcaster,
	}
}

func (f *quoteFixture) seedProduct(id string, price float64, active bool) {
	f.products.products[id] = &entity.Product{
		ID:     id,
		Name:   "Gâteau " + id,
		Price:  price,
		Active: active,
	}
}

func submitInput() SubmitQuoteInput {
	return SubmitQuoteInput{
		Name:      "Marie Dupont",
		Email:     "marie@example.com",
		EventType: entity.EventTypeWedding,
		EventDate: "2026-10-17",
		SelectedProducts: []QuoteProductInput{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	}
}

func TestSubmitQuoteSnapshotsCatalogAndQueuesAlert(t *testing.T) {
	f := newQuoteFixture()
	f.seedProduct("p1", 45, true)
	f.seedProduct("p2", 120, true)

	quote, err := f.uc.SubmitQuote(context.Background(), "", submitInput())
	require.NoError(t, err)

	assert.Equal(t, entity.QuoteStatusNew, quote.Status)
	assert.Equal(t, 210.0, quote.EstimatedTotal)
	require.Len(t, quote.SelectedProducts, 2)
	assert.Equal(t, "Gâteau p1", quote.SelectedProducts[0].ProductName)
	assert.Equal(t, 45.0, quote.SelectedProducts[0].Price)

	// Later price changes must not affect the stored snapshot.
	f.products.products["p1"].Price = 99
	stored, err := f.uc.GetQuote(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 45.0, stored.SelectedProducts[0].Price)

	alerts := f.notifications.byType(entity.NotificationNewQuote)
	require.Len(t, alerts, 1)
	assert.Equal(t, "contact@creacakes.fr", alerts[0].To)
	assert.Equal(t, quote.ID, alerts[0].Payload["quote_id"])
}

func TestSubmitQuoteRejectedWhenQuotesClosed(t *testing.T) {
	f := newQuoteFixture()
	f.settings.site.QuotesOpen = false

	_, err := f.uc.SubmitQuote(context.Background(), "", submitInput())
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestSubmitQuoteRejectsInactiveProduct(t *testing.T) {
	f := newQuoteFixture()
	f.seedProduct("p1", 45, true)
	f.seedProduct("p2", 120, false)

	_, err := f.uc.SubmitQuote(context.Background(), "", submitInput())
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestSubmitQuoteRequiresOtherDescription(t *testing.T) {
	f := newQuoteFixture()

	input := submitInput()
	input.SelectedProducts = nil
	input.EventType = entity.EventTypeOther
	input.EventTypeOther = ""

	_, err := f.uc.SubmitQuote(context.Background(), "", input)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestUpdateStatusFollowsPipeline(t *testing.T) {
	f := newQuoteFixture()
	f.quotes.quotes["q1"] = &entity.Quote{ID: "q1", Status: entity.QuoteStatusNew}

	quote, err := f.uc.UpdateStatus(context.Background(), "q1", entity.QuoteStatusContacted)
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusContacted, quote.Status)

	_, err = f.uc.UpdateStatus(context.Background(), "q1", entity.QuoteStatusAccepted)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = f.uc.UpdateStatus(context.Background(), "q1", entity.QuoteStatusConverted)
	assert.True(t, errors.Is(err, errors.CodeBadRequest), "converted is not selectable")
}

func TestPostMessageAutoAdvancesOnFirstAdminReply(t *testing.T) {
	f := newQuoteFixture()
	f.quotes.quotes["q1"] = &entity.Quote{ID: "q1", UserID: "u1", Email: "marie@example.com", Status: entity.QuoteStatusNew}

	admin := &entity.User{ID: "a1", Name: "Sophie", Role: entity.RoleAdmin}

	message, err := f.uc.PostMessage(context.Background(), "q1", admin, true, PostMessageInput{Text: "Bonjour !"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), message.Seq)

	stored := f.quotes.quotes["q1"]
	assert.Equal(t, entity.QuoteStatusContacted, stored.Status)
	assert.Equal(t, "Bonjour !", stored.LastMessage)

	// Admin replies notify the customer by email.
	emails := f.notifications.byType(entity.NotificationQuoteMessage)
	require.Len(t, emails, 1)
	assert.Equal(t, "marie@example.com", emails[0].To)

	// And reach live websocket subscribers, tagged with the thread seq.
	assert.Len(t, f.broadcaster.sent["q1"], 1)
	assert.Equal(t, []int64{1}, f.broadcaster.seqs["q1"])
}

func TestPostMessageFromCustomerNotifiesAdmin(t *testing.T) {
	f := newQuoteFixture()
	f.quotes.quotes["q1"] = &entity.Quote{ID: "q1", UserID: "u1", Name: "Marie Dupont", Email: "marie@example.com", Status: entity.QuoteStatusContacted}

	customer := &entity.User{ID: "u1", Name: "Marie", Role: entity.RoleCustomer}

	_, err := f.uc.PostMessage(context.Background(), "q1", customer, false, PostMessageInput{Text: "Une question"})
	require.NoError(t, err)

	emails := f.notifications.byType(entity.NotificationQuoteMessage)
	require.Len(t, emails, 1)
	assert.Equal(t, "contact@creacakes.fr", emails[0].To)
	assert.Equal(t, "Une question", emails[0].Payload["message"])
}

func TestPostMessageAssignsMonotonicSeq(t *testing.T) {
	f := newQuoteFixture()
	f.quotes.quotes["q1"] = &entity.Quote{ID: "q1", UserID: "u1", Status: entity.QuoteStatusContacted}

	customer := &entity.User{ID: "u1", Name: "Marie", Role: entity.RoleCustomer}

	for i := 1; i <= 3; i++ {
		message, err := f.uc.PostMessage(context.Background(), "q1", customer, false, PostMessageInput{Text: "msg"})
		require.NoError(t, err)
		assert.Equal(t, int64(i), message.Seq)
	}
}

func TestThreadAccessControl(t *testing.T) {
	f := newQuoteFixture()
	f.quotes.quotes["owned"] = &entity.Quote{ID: "owned", UserID: "u1", Status: entity.QuoteStatusNew}
	f.quotes.quotes["anon"] = &entity.Quote{ID: "anon", Status: entity.QuoteStatusNew}

	owner := &entity.User{ID: "u1", Role: entity.RoleCustomer}
	stranger := &entity.User{ID: "u2", Role: entity.RoleCustomer}
	admin := &entity.User{ID: "a1", Role: entity.RoleAdmin}

	assert.NoError(t, f.uc.AuthorizeThread(context.Background(), "owned", owner, false))
	assert.NoError(t, f.uc.AuthorizeThread(context.Background(), "owned", admin, true))
	assert.NoError(t, f.uc.AuthorizeThread(context.Background(), "anon", admin, true))

	err := f.uc.AuthorizeThread(context.Background(), "owned", stranger, false)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	// Anonymous quotes have no owner; no customer can open them.
	err = f.uc.AuthorizeThread(context.Background(), "anon", owner, false)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	err = f.uc.AuthorizeThread(context.Background(), "owned", nil, false)
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
}

func TestMessagesReplayAfterCursor(t *testing.T) {
	f := newQuoteFixture()
	f.quotes.quotes["q1"] = &entity.Quote{ID: "q1", UserID: "u1", Status: entity.QuoteStatusContacted}

	customer := &entity.User{ID: "u1", Role: entity.RoleCustomer}
	for i := 0; i < 5; i++ {
		_, err := f.uc.PostMessage(context.Background(), "q1", customer, false, PostMessageInput{Text: "msg"})
		require.NoError(t, err)
	}

	all, err := f.uc.Messages(context.Background(), "q1", customer, false, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	tail, err := f.uc.Messages(context.Background(), "q1", customer, false, 3, 0)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, int64(4), tail[0].Seq)
	assert.Equal(t, int64(5), tail[1].Seq)
}

func TestPostFileClassifiesAttachment(t *testing.T) {
	f := newQuoteFixture()
	f.quotes.quotes["q1"] = &entity.Quote{ID: "q1", UserID: "u1", Status: entity.QuoteStatusContacted}

	customer := &entity.User{ID: "u1", Name: "Marie", Role: entity.RoleCustomer}

	image, err := f.uc.PostFile(context.Background(), "q1", customer, false,
		strings.NewReader("png-bytes"), "image/png", "inspiration.png", "Comme ça ?")
	require.NoError(t, err)
	assert.Equal(t, entity.FileKindImage, image.FileKind)
	assert.Equal(t, "Comme ça ?", image.Text)
	assert.Contains(t, image.FileURL, "conversations/q1")

	// Without a caption the file name stands in for the message text.
	document, err := f.uc.PostFile(context.Background(), "q1", customer, false,
		strings.NewReader("pdf-bytes"), "application/pdf", "menu.pdf", "")
	require.NoError(t, err)
	assert.Equal(t, entity.FileKindDocument, document.FileKind)
	assert.Equal(t, "menu.pdf", document.Text)
	assert.Equal(t, int64(2), document.Seq)
}

func TestConvertToOrderCreatesOrderAndConfirmation(t *testing.T) {
	f := newQuoteFixture()
	f.quotes.quotes["q1"] = &entity.Quote{
		ID:        "q1",
		Name:      "Marie Dupont",
		Email:     "marie@example.com",
		EventDate: "2026-10-17",
		Status:    entity.QuoteStatusAccepted,
		SelectedProducts: []entity.QuoteProduct{
			{ProductID: "p1", ProductName: "Pièce montée", Quantity: 1, Price: 300},
			{ProductID: "p2", ProductName: "Macarons", Quantity: 2, Price: 15},
		},
		EstimatedTotal: 330,
	}

	order, err := f.uc.ConvertToOrder(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, 330.0, order.Total)
	assert.Equal(t, "q1", order.QuoteID)

	stored := f.quotes.quotes["q1"]
	assert.Equal(t, entity.QuoteStatusConverted, stored.Status)
	assert.Equal(t, order.ID, stored.OrderID)

	// The confirmation email carries the order id, the event date, the
	// product selection and the total.
	confirmations := f.notifications.byType(entity.NotificationOrderConfirmation)
	require.Len(t, confirmations, 1)
	assert.Equal(t, "marie@example.com", confirmations[0].To)
	assert.Equal(t, order.ID, confirmations[0].Payload["order_id"])
	assert.Equal(t, "2026-10-17", confirmations[0].Payload["event_date"])
	assert.Equal(t, []string{"1 × Pièce montée", "2 × Macarons"}, confirmations[0].Payload["products"])
	assert.Equal(t, 330.0, confirmations[0].Payload["total"])
}

func TestConvertToOrderIsIdempotent(t *testing.T) {
	f := newQuoteFixture()
	f.quotes.quotes["q1"] = &entity.Quote{
		ID:             "q1",
		Email:          "marie@example.com",
		Status:         entity.QuoteStatusAccepted,
		EstimatedTotal: 150,
	}

	first, err := f.uc.ConvertToOrder(context.Background(), "q1")
	require.NoError(t, err)

	// A double click must not create a second order or a second email.
	second, err := f.uc.ConvertToOrder(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.orders.orders, 1)
	assert.Len(t, f.notifications.byType(entity.NotificationOrderConfirmation), 1)
}

func TestConvertDeclinedQuoteStillWorks(t *testing.T) {
	f := newQuoteFixture()
	f.quotes.quotes["q1"] = &entity.Quote{
		ID:     "q1",
		Email:  "marie@example.com",
		Status: entity.QuoteStatusDeclined,
	}

	order, err := f.uc.ConvertToOrder(context.Background(), "q1")
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, entity.QuoteStatusConverted, f.quotes.quotes["q1"].Status)
}

package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"creacakes/internal/domain/entity"
	"creacakes/internal/domain/repository"
	"creacakes/pkg/errors"
)

// In-memory fakes mirroring the Firestore repository contracts, including
// the transactional semantics of AppendMessage and Convert.

type fakeQuoteRepo struct {
	quotes        map[string]*entity.Quote
	messages      map[string][]*entity.Message
	nextID        int
	orders        *fakeOrderRepo
	notifications *fakeNotificationRepo
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{
		quotes:   make(map[string]*entity.Quote),
		messages: make(map[string][]*entity.Message),
	}
}

func (r *fakeQuoteRepo) Create(ctx context.Context, quote *entity.Quote) error {
	r.nextID++
	if quote.ID == "" {
		quote.ID = fmt.Sprintf("quote-%d", r.nextID)
	}
	now := time.Now()
	quote.CreatedAt = now
	quote.UpdatedAt = now
	copied := *quote
	r.quotes[quote.ID] = &copied
	return nil
}

func (r *fakeQuoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	quote, ok := r.quotes[id]
	if !ok {
		return nil, errors.NotFound("Quote", nil)
	}
	copied := *quote
	return &copied, nil
}

func (r *fakeQuoteRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Quote, int64, error) {
	var out []*entity.Quote
	for _, quote := range r.quotes {
		if status == "" || quote.Status == status {
			out = append(out, quote)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeQuoteRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Quote, int64, error) {
	var out []*entity.Quote
	for _, quote := range r.quotes {
		if quote.UserID == userID {
			out = append(out, quote)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeQuoteRepo) UpdateStatus(ctx context.Context, id, status string) error {
	quote, ok := r.quotes[id]
	if !ok {
		return errors.NotFound("Quote", nil)
	}
	quote.Status = status
	quote.UpdatedAt = time.Now()
	return nil
}

func (r *fakeQuoteRepo) Delete(ctx context.Context, id string) error {
	delete(r.quotes, id)
	return nil
}

func (r *fakeQuoteRepo) AppendMessage(ctx context.Context, quoteID string, message *entity.Message) (*entity.Message, error) {
	quote, ok := r.quotes[quoteID]
	if !ok {
		return nil, errors.NotFound("Quote", nil)
	}

	appended := *message
	appended.QuoteID = quoteID
	appended.Seq = quote.MessageCount + 1
	appended.CreatedAt = time.Now()
	appended.ID = fmt.Sprintf("msg-%s-%d", quoteID, appended.Seq)

	quote.MessageCount = appended.Seq
	quote.LastMessage = appended.Text
	quote.LastMessageAt = appended.CreatedAt
	if appended.IsAdmin && quote.Status == entity.QuoteStatusNew {
		quote.Status = entity.QuoteStatusContacted
	}

	r.messages[quoteID] = append(r.messages[quoteID], &appended)
	return &appended, nil
}

func (r *fakeQuoteRepo) Messages(ctx context.Context, quoteID string, afterSeq int64, limit int) ([]*entity.Message, error) {
	if _, ok := r.quotes[quoteID]; !ok {
		return nil, errors.NotFound("Quote", nil)
	}

	var out []*entity.Message
	for _, message := range r.messages[quoteID] {
		if message.Seq > afterSeq {
			out = append(out, message)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeQuoteRepo) Convert(ctx context.Context, quoteID string, build repository.ConvertBuilder) (string, error) {
	quote, ok := r.quotes[quoteID]
	if !ok {
		return "", errors.NotFound("Quote", nil)
	}

	if quote.Status == entity.QuoteStatusConverted {
		return quote.OrderID, nil
	}

	copied := *quote
	order, notification, err := build(&copied)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return "", appErr
		}
		return "", errors.Internal("Failed to convert quote", err)
	}

	order.ID = fmt.Sprintf("order-%s", quoteID)
	order.QuoteID = quoteID
	if r.orders != nil {
		r.orders.orders[order.ID] = order
	}
	if notification != nil && r.notifications != nil {
		notification.Status = entity.NotificationStatusPending
		if notification.Payload == nil {
			notification.Payload = map[string]interface{}{}
		}
		notification.Payload["order_id"] = order.ID
		r.notifications.items = append(r.notifications.items, notification)
	}

	quote.Status = entity.QuoteStatusConverted
	quote.OrderID = order.ID
	return order.ID, nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.Order)}
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Order, int64, error) {
	var out []*entity.Order
	for _, order := range r.orders {
		if status == "" || order.Status == status {
			out = append(out, order)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	order, ok := r.orders[id]
	if !ok {
		return errors.NotFound("Order", nil)
	}
	order.Status = status
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id string) error {
	delete(r.orders, id)
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = fmt.Sprintf("product-%d", len(r.products)+1)
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	return product, nil
}

func (r *fakeProductRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Product, int64, error) {
	var out []*entity.Product
	for _, product := range r.products {
		if categoryID, ok := filter["categoryId"].(string); ok && product.CategoryID != categoryID {
			continue
		}
		if active, ok := filter["active"].(bool); ok && product.Active != active {
			continue
		}
		if featured, ok := filter["featured"].(bool); ok && product.Featured != featured {
			continue
		}
		out = append(out, product)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id string) error {
	delete(r.products, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*entity.Category)}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if category.ID == "" {
		category.ID = fmt.Sprintf("category-%d", len(r.categories)+1)
	}
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, errors.NotFound("Category", nil)
	}
	return category, nil
}

func (r *fakeCategoryRepo) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	for _, category := range r.categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return nil, errors.NotFound("Category", nil)
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, category := range r.categories {
		out = append(out, category)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	delete(r.categories, id)
	return nil
}

type fakeContactRepo struct {
	contacts map[string]*entity.Contact
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{contacts: make(map[string]*entity.Contact)}
}

func (r *fakeContactRepo) Create(ctx context.Context, contact *entity.Contact) error {
	if contact.ID == "" {
		contact.ID = fmt.Sprintf("contact-%d", len(r.contacts)+1)
	}
	contact.CreatedAt = time.Now()
	r.contacts[contact.ID] = contact
	return nil
}

func (r *fakeContactRepo) GetByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	for _, contact := range r.contacts {
		if contact.Email == email {
			return contact, nil
		}
	}
	return nil, errors.NotFound("Contact", nil)
}

func (r *fakeContactRepo) List(ctx context.Context, limit, offset int) ([]*entity.Contact, int64, error) {
	var out []*entity.Contact
	for _, contact := range r.contacts {
		out = append(out, contact)
	}
	return out, int64(len(out)), nil
}

func (r *fakeContactRepo) ListSubscribers(ctx context.Context) ([]*entity.Contact, error) {
	var out []*entity.Contact
	for _, contact := range r.contacts {
		if contact.Newsletter {
			out = append(out, contact)
		}
	}
	return out, nil
}

func (r *fakeContactRepo) SetNewsletter(ctx context.Context, email string, subscribed bool) error {
	contact, err := r.GetByEmail(ctx, email)
	if err != nil {
		if !subscribed {
			return nil
		}
		return r.Create(ctx, &entity.Contact{Email: email, Newsletter: true})
	}
	contact.Newsletter = subscribed
	return nil
}

func (r *fakeContactRepo) Delete(ctx context.Context, id string) error {
	delete(r.contacts, id)
	return nil
}

type fakeNotificationRepo struct {
	items      []*entity.Notification
	enqueueErr error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Enqueue(ctx context.Context, notification *entity.Notification) error {
	if r.enqueueErr != nil {
		return r.enqueueErr
	}
	notification.ID = fmt.Sprintf("notif-%d", len(r.items)+1)
	notification.Status = entity.NotificationStatusPending
	notification.CreatedAt = time.Now()
	r.items = append(r.items, notification)
	return nil
}

func (r *fakeNotificationRepo) ListPending(ctx context.Context, limit int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, notification := range r.items {
		if notification.Status == entity.NotificationStatusPending {
			out = append(out, notification)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkSent(ctx context.Context, id string) error {
	for _, notification := range r.items {
		if notification.ID == id {
			now := time.Now()
			notification.Status = entity.NotificationStatusSent
			notification.SentAt = &now
			return nil
		}
	}
	return errors.NotFound("Notification", nil)
}

func (r *fakeNotificationRepo) MarkFailed(ctx context.Context, id string, attempts int, lastError string, terminal bool) error {
	for _, notification := range r.items {
		if notification.ID == id {
			notification.Attempts = attempts
			notification.LastError = lastError
			if terminal {
				notification.Status = entity.NotificationStatusFailed
			}
			return nil
		}
	}
	return errors.NotFound("Notification", nil)
}

func (r *fakeNotificationRepo) byType(t string) []*entity.Notification {
	var out []*entity.Notification
	for _, notification := range r.items {
		if notification.Type == t {
			out = append(out, notification)
		}
	}
	return out
}

type fakeSettingsRepo struct {
	site  entity.SiteSettings
	promo entity.PromoSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		site: entity.SiteSettings{SiteName: "Créa'Cakes", QuotesOpen: true},
	}
}

func (r *fakeSettingsRepo) GetSite(ctx context.Context) (*entity.SiteSettings, error) {
	copied := r.site
	return &copied, nil
}

func (r *fakeSettingsRepo) UpdateSite(ctx context.Context, settings *entity.SiteSettings) error {
	r.site = *settings
	return nil
}

func (r *fakeSettingsRepo) GetPromo(ctx context.Context) (*entity.PromoSettings, error) {
	copied := r.promo
	return &copied, nil
}

func (r *fakeSettingsRepo) UpdatePromo(ctx context.Context, settings *entity.PromoSettings) error {
	r.promo = *settings
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) GetByRole(ctx context.Context, role string, limit int) ([]*entity.User, error) {
	var out []*entity.User
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, user)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	var out []*entity.User
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

type fakeAuthClient struct {
	nextUID   int
	passwords map[string]string // email -> password
	uids      map[string]string // email -> uid
	signInErr error
}

func newFakeAuthClient() *fakeAuthClient {
	return &fakeAuthClient{
		passwords: make(map[string]string),
		uids:      make(map[string]string),
	}
}

func (a *fakeAuthClient) CreateUser(ctx context.Context, email, password, name string) (string, error) {
	a.nextUID++
	uid := fmt.Sprintf("uid-%d", a.nextUID)
	a.passwords[email] = password
	a.uids[email] = uid
	return uid, nil
}

func (a *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	for email, uid := range a.uids {
		if token == "token-"+email {
			return uid, nil
		}
	}
	return "", fmt.Errorf("invalid token")
}

func (a *fakeAuthClient) SignInWithEmailPassword(ctx context.Context, email, password string) (string, error) {
	if a.signInErr != nil {
		return "", a.signInErr
	}
	if stored, ok := a.passwords[email]; !ok || stored != password {
		return "", fmt.Errorf("invalid credentials")
	}
	return "token-" + email, nil
}

func (a *fakeAuthClient) UpdateUserPassword(ctx context.Context, uid, password string) error {
	for email, id := range a.uids {
		if id == uid {
			a.passwords[email] = password
			return nil
		}
	}
	return fmt.Errorf("unknown uid")
}

type fakeUploader struct {
	uploads []string
	err     error
}

func (u *fakeUploader) UploadFile(ctx context.Context, file io.Reader, contentType, folder, originalName string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	url := fmt.Sprintf("https://storage.example.com/%s/%s", folder, originalName)
	u.uploads = append(u.uploads, url)
	return url, nil
}

type fakeBroadcaster struct {
	sent map[string][][]byte
	seqs map[string][]int64
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{
		sent: make(map[string][][]byte),
		seqs: make(map[string][]int64),
	}
}

func (b *fakeBroadcaster) SendToThread(quoteID string, seq int64, message []byte) {
	b.sent[quoteID] = append(b.sent[quoteID], message)
	b.seqs[quoteID] = append(b.seqs[quoteID], seq)
}

type fakeMailer struct {
	sent    []*entity.Notification
	failFor map[string]error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: make(map[string]error)}
}

func (m *fakeMailer) Send(ctx context.Context, notification *entity.Notification) error {
	if err, ok := m.failFor[notification.ID]; ok {
		return err
	}
	m.sent = append(m.sent, notification)
	return nil
}

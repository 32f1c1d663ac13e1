package handler

import (
	"creacakes/internal/adapter/api/middleware"
	"creacakes/internal/infrastructure/firebase"
	ws "creacakes/internal/infrastructure/websocket"
	"creacakes/internal/usecase"
)

var (
	authHandler       *AuthHandler
	userHandler       *UserHandler
	quoteHandler      *QuoteHandler
	orderHandler      *OrderHandler
	productHandler    *ProductHandler
	categoryHandler   *CategoryHandler
	contactHandler    *ContactHandler
	newsletterHandler *NewsletterHandler
	settingsHandler   *SettingsHandler
	websocketHandler  *WebSocketHandler
	devTokenHandler   *DevTokenHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	quoteUseCase *usecase.QuoteUseCase,
	orderUseCase *usecase.OrderUseCase,
	productUseCase *usecase.ProductUseCase,
	categoryUseCase *usecase.CategoryUseCase,
	contactUseCase *usecase.ContactUseCase,
	newsletterUseCase *usecase.NewsletterUseCase,
	settingsUseCase *usecase.SettingsUseCase,
	wsManager *ws.Manager,
	authMiddleware *middleware.AuthMiddleware,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	quoteHandler = NewQuoteHandler(quoteUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	productHandler = NewProductHandler(productUseCase)
	categoryHandler = NewCategoryHandler(categoryUseCase)
	contactHandler = NewContactHandler(contactUseCase)
	newsletterHandler = NewNewsletterHandler(newsletterUseCase)
	settingsHandler = NewSettingsHandler(settingsUseCase)
	websocketHandler = NewWebSocketHandler(wsManager, quoteUseCase, authMiddleware)
}

// SetupDevToken wires the development token endpoint; only called outside
// production.
func SetupDevToken(authClient *firebase.FirebaseAuthClient) {
	devTokenHandler = NewDevTokenHandler(authClient)
}

func GetAuthHandler() *AuthHandler { return authHandler }

func GetUserHandler() *UserHandler { return userHandler }

func GetQuoteHandler() *QuoteHandler { return quoteHandler }

func GetOrderHandler() *OrderHandler { return orderHandler }

func GetProductHandler() *ProductHandler { return productHandler }

func GetCategoryHandler() *CategoryHandler { return categoryHandler }

func GetContactHandler() *ContactHandler { return contactHandler }

func GetNewsletterHandler() *NewsletterHandler { return newsletterHandler }

func GetSettingsHandler() *SettingsHandler { return settingsHandler }

func GetWebSocketHandler() *WebSocketHandler { return websocketHandler }

func GetDevTokenHandler() *DevTokenHandler { return devTokenHandler }

package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"creacakes/internal/adapter/api"
	"creacakes/internal/adapter/api/handler"
	apimiddleware "creacakes/internal/adapter/api/middleware"
	"creacakes/internal/adapter/api/router"
	"creacakes/internal/adapter/repository"
	"creacakes/internal/domain/service"
	"creacakes/internal/infrastructure/firebase"
	"creacakes/internal/infrastructure/ratelimit"
	"creacakes/internal/infrastructure/storage"
	"creacakes/internal/infrastructure/websocket"
	"creacakes/internal/usecase"
	"creacakes/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	credentialsPath := ""

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		credentialsPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if credentialsPath == "" {
			credentialsPath = "./service-account.json"
		}
		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", credentialsPath)
		}
		opt = option.WithCredentialsFile(credentialsPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	quoteRepo := repository.NewFirestoreQuoteRepository(firestoreClient)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient)
	productRepo := repository.NewFirestoreProductRepository(firestoreClient)
	categoryRepo := repository.NewFirestoreCategoryRepository(firestoreClient)
	contactRepo := repository.NewFirestoreContactRepository(firestoreClient)
	settingsRepo := repository.NewFirestoreSettingsRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	mailer := service.NewMailgunMailer(cfg.MailgunDomain, cfg.MailgunApiKey, cfg.MailFrom, cfg.AdminEmail, cfg.PublicBaseURL)

	authUseCase := usecase.NewAuthUseCase(firebaseAuthClient, userRepo, notificationRepo)
	userUseCase := usecase.NewUserUseCase(userRepo)
	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, orderRepo, productRepo, notificationRepo, settingsRepo, storageClient, wsManager, cfg.AdminEmail)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, notificationRepo)
	productUseCase := usecase.NewProductUseCase(productRepo, categoryRepo, storageClient)
	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	contactUseCase := usecase.NewContactUseCase(contactRepo, notificationRepo, cfg.AdminEmail)
	newsletterUseCase := usecase.NewNewsletterUseCase(contactRepo, notificationRepo)
	settingsUseCase := usecase.NewSettingsUseCase(settingsRepo)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, mailer, cfg.OutboxBatchSize, cfg.OutboxMaxTries)

	if err := notificationUseCase.StartDispatcher(ctx); err != nil {
		log.Fatalf("Failed to start notification dispatcher: %v", err)
	}

	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient, userRepo)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	handler.Setup(
		authUseCase,
		userUseCase,
		quoteUseCase,
		orderUseCase,
		productUseCase,
		categoryUseCase,
		contactUseCase,
		newsletterUseCase,
		settingsUseCase,
		wsManager,
		authMiddleware,
	)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	router.Setup(e, authMiddleware, adminMiddleware, limiter)

	if cfg.Environment != "production" {
		handler.SetupDevToken(firebaseAuthClient)
		router.SetupDevRouter(e)
	}

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

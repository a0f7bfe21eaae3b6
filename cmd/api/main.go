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

	"chitchat/internal/adapter/api"
	"chitchat/internal/adapter/api/handler"
	apimiddleware "chitchat/internal/adapter/api/middleware"
	"chitchat/internal/adapter/api/router"
	"chitchat/internal/adapter/repository"
	"chitchat/internal/infrastructure/websocket"
	"chitchat/internal/usecase"
	"chitchat/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	// Service account from environment variable (production) or file path
	// (local development).
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./serviceAccountKey.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
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

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)

	hub := websocket.NewHub()

	chatUseCase := usecase.NewChatUseCase(messageRepo, userRepo, hub, cfg.HistoryLimit)
	presenceUseCase := usecase.NewPresenceUseCase(userRepo, hub)
	callRelay := usecase.NewCallRelay(hub)
	userUseCase := usecase.NewUserUseCase(userRepo)
	friendUseCase := usecase.NewFriendUseCase(userRepo)

	dispatcher := usecase.NewEventDispatcher(chatUseCase, presenceUseCase, callRelay, hub)
	hub.SetHandler(dispatcher)

	e := echo.New()

	allowedOrigins := []string{cfg.ClientURL, "http://localhost:3000"}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
	}))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	chatHandler := handler.NewChatHandler(chatUseCase)
	userHandler := handler.NewUserHandler(userUseCase)
	friendHandler := handler.NewFriendHandler(friendUseCase)
	wsHandler := handler.NewWebSocketHandler(hub, allowedOrigins)

	e.GET("/api/health", handler.HealthCheck)

	router.SetupChatRouter(e, chatHandler, authMiddleware)
	router.SetupUserRouter(e, userHandler, authMiddleware)
	router.SetupFriendRouter(e, friendHandler, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

package main

import (
	"database/sql"
	"log"
	"time"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"dormcareBack/internal/config"
	"dormcareBack/internal/handlers"
	"dormcareBack/internal/repositories"
	"dormcareBack/internal/services"
	"dormcareBack/utils"
)

type application struct {
	errorLog         *log.Logger
	infoLog          *log.Logger
	cfg              config.Config
	db               *sql.DB
	tokenManager     *utils.Manager
	wsManager        *WebSocketManager
	userRepo         *repositories.UserRepository
	complaintHandler *handlers.ComplaintHandler
	userHandler      *handlers.UserHandler
	notifyHandler    *handlers.NotifyHandler
}

func initializeApp(db *sql.DB, rdb *redis.Client, fcmClient *messaging.Client, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	tokenManager, err := utils.NewManager(cfg.JWT.Secret)
	if err != nil {
		errorLog.Fatalf("Token manager init failed: %v", err)
	}

	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	complaintRepo := repositories.ComplaintRepository{DB: db}
	notifyTokenRepo := repositories.NotifyTokenRepository{DB: db}

	// Collaborators
	openaiClient := services.NewOpenAIClient(nil, cfg.OpenAI.APIKey)
	classifier := services.NewClassifierService(openaiClient, rdb, cfg.OpenAI.Model)
	notifyService := &services.NotifyService{Client: fcmClient, TokenRepo: &notifyTokenRepo}
	storage := utils.NewS3Storage(cfg.S3.AccessKey, cfg.S3.SecretKey, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Endpoint)
	wsManager := NewWebSocketManager()

	// Services
	complaintService := &services.ComplaintService{
		ComplaintRepo: &complaintRepo,
		UserRepo:      &userRepo,
		Classifier:    classifier,
		Publisher:     wsManager,
		Notifier:      notifyService,
		Storage:       storage,
	}
	userService := &services.UserService{
		UserRepo:     &userRepo,
		TokenManager: tokenManager,
		AccessTTL:    time.Duration(cfg.JWT.AccessTTLHours) * time.Hour,
		RefreshTTL:   time.Duration(cfg.JWT.RefreshTTLHours) * time.Hour,
	}

	// Handlers
	complaintHandler := &handlers.ComplaintHandler{Service: complaintService}
	userHandler := &handlers.UserHandler{Service: userService}
	notifyHandler := &handlers.NotifyHandler{TokenRepo: &notifyTokenRepo}

	return &application{
		errorLog:         errorLog,
		infoLog:          infoLog,
		cfg:              cfg,
		db:               db,
		tokenManager:     tokenManager,
		wsManager:        wsManager,
		userRepo:         &userRepo,
		complaintHandler: complaintHandler,
		userHandler:      userHandler,
		notifyHandler:    notifyHandler,
	}
}

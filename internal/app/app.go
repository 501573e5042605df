package app

import (
	"skynet/config"
	authController "skynet/internal/controllers/auth"
	clientController "skynet/internal/controllers/clients"
	documentController "skynet/internal/controllers/documents"
	userController "skynet/internal/controllers/users"
	visitController "skynet/internal/controllers/visits"
	"skynet/internal/database"
	"skynet/internal/events"
	"skynet/internal/handlers/middleware"
	"skynet/internal/logger"
	"skynet/internal/repositories"
	"skynet/internal/services"
	"skynet/internal/websockets"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	// Services
	TransactionService  *services.TransactionService
	SessionService      *services.SessionService
	AnalyticsService    *services.AnalyticsService
	NotificationService *services.NotificationService

	// Repositories
	ProfileRepo repositories.ProfileRepository
	ClientRepo  repositories.ClientRepository
	VisitRepo   repositories.VisitRepository
	ReportRepo  repositories.ReportRepository

	// Controllers
	AuthController     *authController.AuthController
	UserController     *userController.UserController
	ClientController   *clientController.ClientController
	VisitController    *visitController.VisitController
	DocumentController *documentController.DocumentController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	// Initialize services
	transactionService := services.NewTransactionService(db)
	sessionService := services.NewSessionService(db, config)
	analyticsService := services.NewAnalyticsService(eventBus, config)
	notificationService := services.NewNotificationService(config)

	// Initialize repositories
	profileRepo := repositories.NewProfile(db)
	clientRepo := repositories.NewClient(db)
	visitRepo := repositories.NewVisit(db)
	reportRepo := repositories.NewReport(db)

	// Initialize controllers with repositories and services
	middleware := middleware.New(sessionService, profileRepo)
	authController := authController.New(profileRepo, sessionService, eventBus)
	userController := userController.New(profileRepo)
	clientController := clientController.New(clientRepo)
	visitController := visitController.New(
		visitRepo, reportRepo, clientRepo, profileRepo,
		transactionService, notificationService, eventBus)
	documentController := documentController.New(visitRepo, reportRepo, clientRepo, profileRepo)

	websocket, err := websockets.New(db, eventBus, config)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:            db,
		Config:              config,
		Middleware:          middleware,
		EventBus:            eventBus,
		Websocket:           websocket,
		TransactionService:  transactionService,
		SessionService:      sessionService,
		AnalyticsService:    analyticsService,
		NotificationService: notificationService,
		ProfileRepo:         profileRepo,
		ClientRepo:          clientRepo,
		VisitRepo:           visitRepo,
		ReportRepo:          reportRepo,
		AuthController:      authController,
		UserController:      userController,
		ClientController:    clientController,
		VisitController:     visitController,
		DocumentController:  documentController,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.TransactionService,
		a.SessionService,
		a.AnalyticsService,
		a.NotificationService,
		a.ProfileRepo,
		a.ClientRepo,
		a.VisitRepo,
		a.ReportRepo,
		a.AuthController,
		a.UserController,
		a.ClientController,
		a.VisitController,
		a.DocumentController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Websocket != nil {
		a.Websocket.Close()
	}

	if a.AnalyticsService != nil {
		a.AnalyticsService.Close()
	}

	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}

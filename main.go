package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"mindhaven/config"
	"mindhaven/database"
	availabilityRepo "mindhaven/database/repository/availability"
	directoryRepo "mindhaven/database/repository/directory"
	sessionRepo "mindhaven/database/repository/session"
	"mindhaven/handlers"
	"mindhaven/middleware"
	"mindhaven/routes"
	"mindhaven/services/booking"
	"mindhaven/services/schedule"
	"mindhaven/utils"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	client, err := database.Connect(ctx, config.AppConfig.DatabaseURL)
	cancel()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := database.Close(client); err != nil {
			logger.Sugar().Errorf("main: failed to close MongoDB connection: %v", err)
		}
	}()

	utils.InitAuthCache()

	db := client.Database(config.AppConfig.DatabaseName)

	// Repositories.
	availRepo := availabilityRepo.NewMongoAvailabilityRepo(db)
	sessRepo := sessionRepo.NewMongoSessionRepo(db)
	dirRepo := directoryRepo.NewMongoDirectoryRepo(db)

	idxCtx, idxCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer idxCancel()
	if err := availRepo.EnsureIndexes(idxCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure availability indexes: %v", err)
	}
	if err := sessRepo.EnsureIndexes(idxCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure session indexes: %v", err)
	}

	// Services.
	clock := utils.SystemClock()
	scheduleService := &schedule.DefaultScheduleService{
		Availability: availRepo,
		Sessions:     sessRepo,
		Directory:    dirRepo,
		Clock:        clock,
	}
	bookingService := &booking.DefaultBookingService{
		Availability: availRepo,
		Sessions:     sessRepo,
		Directory:    dirRepo,
		Clock:        clock,
	}

	// Handlers.
	handlerBundle := &routes.HandlerBundle{
		Schedule: handlers.NewScheduleHandler(scheduleService),
		Booking:  handlers.NewBookingHandler(bookingService),
		Session:  handlers.NewSessionHandler(bookingService),
		Rating:   handlers.NewRatingHandler(bookingService),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

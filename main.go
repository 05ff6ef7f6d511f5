package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rento/config"
	"rento/controllers"
	"rento/jobs"
	"rento/middleware"
	"rento/routes"
	"rento/services"
	"rento/services/logger"
	"rento/services/notification"
	"rento/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: config.ServiceName,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	ctx := context.Background()
	backends, err := config.OpenStorage(ctx, cfg)
	if err != nil {
		appLog.Error("Failed to open %s storage: %v", cfg.Storage.Driver, err)
		os.Exit(1)
	}
	appLog.Info("Storage driver: %s", cfg.Storage.Driver)

	router, m, c := config.InitApp(cfg, appLog)
	notifier := notification.NewMelodyService(m)
	clock := services.RealClock()

	var sessions services.SessionStore
	if backends.Redis != nil {
		sessions = services.NewRedisSessionStore(backends.Redis, cfg.Redis.KeyPrefix, clock)
	} else {
		memSessions := services.NewMemorySessionStore(int64(cfg.Auth.SessionCacheSize), clock)
		defer memSessions.Stop()
		sessions = memSessions
	}

	userService := services.NewUserService(services.UserServiceOptions{
		Store:      backends.Store,
		Sessions:   sessions,
		Clock:      clock,
		Logger:     appLog,
		SessionTTL: cfg.Auth.SessionTTL,
	})
	if err := userService.EnsureDefaultUser(ctx, cfg.Auth.DefaultUserEmail, cfg.Auth.DefaultUserPassword); err != nil {
		appLog.Error("Failed to seed default user: %v", err)
		os.Exit(1)
	}

	propertyService := services.NewPropertyService(services.PropertyServiceOptions{
		Store:  backends.Store,
		Logger: appLog,
	})
	bookingService := services.NewBookingService(services.BookingServiceOptions{
		Properties: propertyService,
		Notifier:   notifier,
		Clock:      clock,
		Logger:     appLog,
	})
	ticketService := services.NewTicketService(services.TicketServiceOptions{
		Store:      backends.Store,
		Properties: propertyService,
		Notifier:   notifier,
		Clock:      clock,
		Logger:     appLog,
	})
	dashboardService := services.NewDashboardService(propertyService, ticketService, clock)

	cld, err := config.ConnectCloudinary(cfg.Cloudinary)
	if err != nil {
		appLog.Warn("Image uploads disabled: %v", err)
	}
	mediaService := services.NewMediaService(cld, appLog)
	links := services.NewTenantLinks(cfg.Server.PublicBaseURL)
	tokens := services.NewTokenService(cfg.Auth.JWTSecret, config.ServiceName)

	if err := validator.RegisterBindings(); err != nil {
		appLog.Error("Failed to register validators: %v", err)
		os.Exit(1)
	}

	routes.SetupRoutes(router, routes.Dependencies{
		Auth:  controllers.NewAuthController(userService, tokens),
		Users: controllers.NewUserController(userService),
		Properties: controllers.NewPropertyController(controllers.PropertyControllerOptions{
			Properties: propertyService,
			Bookings:   bookingService,
			Tickets:    ticketService,
			Links:      links,
			Clock:      clock,
		}),
		Tickets:     controllers.NewTicketController(ticketService),
		Tenant:      controllers.NewTenantController(propertyService, ticketService),
		Dashboard:   controllers.NewDashboardController(dashboardService),
		Media:       controllers.NewMediaController(mediaService),
		RequireAuth: middleware.AuthMiddleware(tokens, userService),
		Melody:      m,
	})

	if err := jobs.InitCronJobs(c, cfg.Jobs.TicketReminderCron, ticketService, notifier, appLog); err != nil {
		appLog.Error("Failed to initialize cron jobs: %v", err)
		os.Exit(1)
	}
	defer c.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("Server starting on port %s...", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	m.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown: %v", err)
	}
	if backends.Redis != nil {
		backends.Redis.Close()
	}
}

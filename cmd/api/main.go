package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/jmcalloway/motoclubs-backend/api/routes"
	"github.com/jmcalloway/motoclubs-backend/internal/auth"
	"github.com/jmcalloway/motoclubs-backend/internal/claims"
	"github.com/jmcalloway/motoclubs-backend/internal/clubs"
	"github.com/jmcalloway/motoclubs-backend/internal/contact"
	"github.com/jmcalloway/motoclubs-backend/internal/favorites"
	"github.com/jmcalloway/motoclubs-backend/internal/messages"
	"github.com/jmcalloway/motoclubs-backend/internal/newsletter"
	"github.com/jmcalloway/motoclubs-backend/internal/notifications"
	"github.com/jmcalloway/motoclubs-backend/internal/reviews"
	"github.com/jmcalloway/motoclubs-backend/internal/users"
	"github.com/jmcalloway/motoclubs-backend/pkg/auth/session"
	"github.com/jmcalloway/motoclubs-backend/pkg/config"
	"github.com/jmcalloway/motoclubs-backend/pkg/db"
	"github.com/jmcalloway/motoclubs-backend/pkg/logger"
	"github.com/jmcalloway/motoclubs-backend/pkg/mailer"
	"github.com/jmcalloway/motoclubs-backend/pkg/migrate"
	"github.com/jmcalloway/motoclubs-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	mail := mailer.New(cfg.Sendgrid, logg)

	userRepo := users.NewRepository(dbClient.DB())
	clubsRepo := clubs.NewRepository(dbClient.DB())
	claimsRepo := claims.NewRepository(dbClient.DB())
	reviewsRepo := reviews.NewRepository(dbClient.DB())
	favoritesRepo := favorites.NewRepository(dbClient.DB())
	messagesRepo := messages.NewRepository(dbClient.DB())
	notificationsRepo := notifications.NewRepository(dbClient.DB())
	contactRepo := contact.NewRepository(dbClient.DB())
	newsletterRepo := newsletter.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		Mailer:         mail,
		Logger:         logg,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	clubsService, err := clubs.NewService(clubs.ServiceParams{
		DB:            dbClient,
		Repo:          clubsRepo,
		Notifications: notificationsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create clubs service", err)
		os.Exit(1)
	}

	claimsService, err := claims.NewService(claims.ServiceParams{
		DB:            dbClient,
		Repo:          claimsRepo,
		Clubs:         clubsRepo,
		Notifications: notificationsRepo,
		Users:         userRepo,
		Mailer:        mail,
		Logger:        logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create claims service", err)
		os.Exit(1)
	}

	reviewsService, err := reviews.NewService(reviews.ServiceParams{
		DB:            dbClient,
		Repo:          reviewsRepo,
		Clubs:         clubsRepo,
		Notifications: notificationsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reviews service", err)
		os.Exit(1)
	}

	favoritesService, err := favorites.NewService(favorites.ServiceParams{
		Repo:  favoritesRepo,
		Clubs: clubsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create favorites service", err)
		os.Exit(1)
	}

	messagesService, err := messages.NewService(messages.ServiceParams{
		Repo:          messagesRepo,
		Users:         userRepo,
		Notifications: notificationsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create messages service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notificationsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	contactService, err := contact.NewService(contact.ServiceParams{Repo: contactRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
		os.Exit(1)
	}

	newsletterService, err := newsletter.NewService(newsletter.ServiceParams{
		Repo:   newsletterRepo,
		Mailer: mail,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create newsletter service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, routes.Services{
			Auth:          authService,
			Clubs:         clubsService,
			Claims:        claimsService,
			Reviews:       reviewsService,
			Favorites:     favoritesService,
			Messages:      messagesService,
			Notifications: notificationsService,
			Contact:       contactService,
			Newsletter:    newsletterService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

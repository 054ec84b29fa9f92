package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jmcalloway/motoclubs-backend/api/controllers"
	"github.com/jmcalloway/motoclubs-backend/api/middleware"
	"github.com/jmcalloway/motoclubs-backend/internal/auth"
	"github.com/jmcalloway/motoclubs-backend/internal/claims"
	"github.com/jmcalloway/motoclubs-backend/internal/clubs"
	"github.com/jmcalloway/motoclubs-backend/internal/contact"
	"github.com/jmcalloway/motoclubs-backend/internal/favorites"
	"github.com/jmcalloway/motoclubs-backend/internal/messages"
	"github.com/jmcalloway/motoclubs-backend/internal/newsletter"
	"github.com/jmcalloway/motoclubs-backend/internal/notifications"
	"github.com/jmcalloway/motoclubs-backend/internal/reviews"
	"github.com/jmcalloway/motoclubs-backend/pkg/auth/session"
	"github.com/jmcalloway/motoclubs-backend/pkg/config"
	"github.com/jmcalloway/motoclubs-backend/pkg/db"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
	"github.com/jmcalloway/motoclubs-backend/pkg/logger"
	"github.com/jmcalloway/motoclubs-backend/pkg/redis"
)

// Services bundles everything the HTTP surface depends on.
type Services struct {
	Auth          auth.Service
	Clubs         clubs.Service
	Claims        claims.Service
	Reviews       reviews.Service
	Favorites     favorites.Service
	Messages      messages.Service
	Notifications notifications.Service
	Contact       contact.Service
	Newsletter    newsletter.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
			r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(svcs.Auth, logg))
			r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(svcs.Auth, cfg.JWT, logg))
		})

		// Public directory surface, no credentials required.
		r.Get("/clubs", controllers.ClubsList(svcs.Clubs, logg))
		r.Get("/clubs/{slug}", controllers.ClubsGetBySlug(svcs.Clubs, logg))
		r.Get("/clubs/{slug}/reviews", controllers.ReviewsListForClub(svcs.Reviews, logg))
		r.Post("/contact", controllers.ContactSubmit(svcs.Contact, logg))
		r.Route("/newsletter", func(r chi.Router) {
			r.Post("/subscribe", controllers.NewsletterSubscribe(svcs.Newsletter, logg))
			r.Post("/unsubscribe", controllers.NewsletterUnsubscribe(svcs.Newsletter, logg))
		})

		// Member surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))

			r.Post("/clubs", controllers.ClubsSubmit(svcs.Clubs, logg))
			r.Post("/clubs/{clubID}/claims", controllers.ClaimsSubmit(svcs.Claims, logg))
			r.Post("/clubs/{clubID}/reviews", controllers.ReviewsSubmit(svcs.Reviews, logg))
			r.Post("/clubs/{clubID}/favorite", controllers.FavoritesAdd(svcs.Favorites, logg))
			r.Delete("/clubs/{clubID}/favorite", controllers.FavoritesRemove(svcs.Favorites, logg))

			r.Get("/favorites", controllers.FavoritesList(svcs.Favorites, logg))
			r.Get("/claims/mine", controllers.ClaimsListMine(svcs.Claims, logg))
			r.Get("/reviews/mine", controllers.ReviewsListMine(svcs.Reviews, logg))

			r.Route("/messages", func(r chi.Router) {
				r.Get("/", controllers.MessagesInbox(svcs.Messages, logg))
				r.Post("/", controllers.MessagesSend(svcs.Messages, logg))
				r.Post("/{messageID}/read", controllers.MessagesMarkRead(svcs.Messages, logg))
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", controllers.NotificationsList(svcs.Notifications, logg))
				r.Post("/read-all", controllers.NotificationsMarkAllRead(svcs.Notifications, logg))
				r.Post("/{notificationID}/read", controllers.NotificationsMarkRead(svcs.Notifications, logg))
			})
		})

		// Back office.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

			r.Route("/submissions", func(r chi.Router) {
				r.Get("/", controllers.AdminSubmissionsList(svcs.Clubs, logg))
				r.Post("/{clubID}/resolve", controllers.AdminSubmissionsResolve(svcs.Clubs, logg))
			})

			r.Route("/claims", func(r chi.Router) {
				r.Get("/", controllers.AdminClaimsList(svcs.Claims, logg))
				r.Post("/{claimID}/resolve", controllers.AdminClaimsResolve(svcs.Claims, logg))
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", controllers.AdminReviewsQueue(svcs.Reviews, logg))
				r.Post("/{reviewID}/resolve", controllers.AdminReviewsResolve(svcs.Reviews, logg))
			})

			r.Route("/clubs", func(r chi.Router) {
				r.Patch("/{clubID}", controllers.AdminClubsUpdate(svcs.Clubs, logg))
				r.Delete("/{clubID}", controllers.AdminClubsDelete(svcs.Clubs, logg))
			})

			r.Route("/contact", func(r chi.Router) {
				r.Get("/", controllers.AdminContactList(svcs.Contact, logg))
				r.Post("/{submissionID}/resolve", controllers.AdminContactResolve(svcs.Contact, logg))
			})

			r.Post("/notifications/broadcast", controllers.AdminNotificationsBroadcast(svcs.Notifications, logg))
			r.Post("/messages", controllers.AdminMessagesSend(svcs.Messages, logg))
		})
	})

	return r
}

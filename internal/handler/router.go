package handler

import (
	"github.com/agrobissau/agrobissau-backend/internal/middleware"
	"github.com/agrobissau/agrobissau-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// Handlers groups all HTTP handlers for route registration
type Handlers struct {
	Auth         *AuthHandler
	Listing      *ListingHandler
	Category     *CategoryHandler
	Favorite     *FavoriteHandler
	Message      *MessageHandler
	Review       *ReviewHandler
	Report       *ReportHandler
	Badge        *BadgeHandler
	Subscription *SubscriptionHandler
	Notification *NotificationHandler
	ShortURL     *ShortURLHandler
}

// SetupRoutes registers all API routes
func SetupRoutes(router *gin.Engine, h *Handlers, jwtManager *jwt.Manager) {
	auth := middleware.JWTAuth(jwtManager)
	optionalAuth := middleware.OptionalAuth(jwtManager)

	// Short link redirect lives outside the API prefix
	router.GET("/s/:code", h.ShortURL.Redirect)

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/me", auth, h.Auth.Me)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
	}

	listings := v1.Group("/listings")
	{
		listings.GET("", optionalAuth, h.Listing.List)
		listings.POST("", auth, h.Listing.Create)
		listings.GET("/mine", auth, h.Listing.ListMine)
		listings.GET("/:id", optionalAuth, h.Listing.Get)
		listings.PUT("/:id", auth, h.Listing.Update)
		listings.PATCH("/:id/status", auth, h.Listing.UpdateStatus)
		listings.DELETE("/:id", auth, h.Listing.Delete)

		listings.POST("/:id/feature", auth, h.Listing.Feature)
		listings.DELETE("/:id/feature", auth, h.Listing.Unfeature)
		listings.POST("/:id/promotion", auth, h.Listing.SetPromotion)
		listings.DELETE("/:id/promotion", auth, h.Listing.ClearPromotion)

		listings.GET("/:id/favorite", optionalAuth, h.Favorite.Check)
		listings.POST("/:id/favorite", auth, h.Favorite.Add)
		listings.DELETE("/:id/favorite", auth, h.Favorite.Remove)

		listings.POST("/:id/contact", auth, h.Message.Contact)
	}

	v1.GET("/favorites", auth, h.Favorite.List)

	messages := v1.Group("/messages", auth)
	{
		messages.POST("", h.Message.Send)
		messages.GET("/conversations", h.Message.Conversations)
		messages.GET("/with/:peerID", h.Message.Thread)
		messages.GET("/unread", h.Message.UnreadCount)
	}

	reviews := v1.Group("/reviews")
	{
		reviews.POST("", auth, h.Review.Create)
		reviews.DELETE("/:id", auth, h.Review.Delete)
	}

	users := v1.Group("/users")
	{
		users.GET("/:id/reviews", h.Review.ListByUser)
		users.GET("/:id/badges", h.Badge.ListByUser)
	}

	v1.GET("/badges", h.Badge.List)

	v1.POST("/reports", auth, h.Report.Create)

	adminReports := v1.Group("/admin/reports", auth, middleware.RequireAdmin())
	{
		adminReports.GET("", h.Report.List)
		adminReports.PATCH("/:id", h.Report.Resolve)
	}

	subscriptions := v1.Group("/subscriptions", auth)
	{
		subscriptions.GET("/me", h.Subscription.Current)
		subscriptions.POST("", h.Subscription.Subscribe)
		subscriptions.GET("/transactions", h.Subscription.ListTransactions)
	}

	// Provider callbacks are authenticated by payload verification, not JWT
	v1.POST("/payments/callback/:provider", h.Subscription.PaymentCallback)

	v1.POST("/short-urls", auth, h.ShortURL.Create)

	notifications := v1.Group("/notifications", auth)
	{
		notifications.GET("", h.Notification.List)
		notifications.PATCH("/read-all", h.Notification.MarkAllRead)
		notifications.PATCH("/:id/read", h.Notification.MarkRead)
		notifications.DELETE("/:id", h.Notification.Delete)
	}
}

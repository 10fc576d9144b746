package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/gdugdh24/matchmaker-backend/internal/config"
	"github.com/gdugdh24/matchmaker-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/matchmaker-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/logger"
)

type Router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	feedHandler    *handler.FeedHandler
	swipeHandler   *handler.SwipeHandler
	matchHandler   *handler.MatchHandler
	authMiddleware *middleware.AuthMiddleware
	cfg            *config.Config
	log            *logger.Logger
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	feedHandler *handler.FeedHandler,
	swipeHandler *handler.SwipeHandler,
	matchHandler *handler.MatchHandler,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
	log *logger.Logger,
) *Router {
	return &Router{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		feedHandler:    feedHandler,
		swipeHandler:   swipeHandler,
		matchHandler:   matchHandler,
		authMiddleware: authMiddleware,
		cfg:            cfg,
		log:            log,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(r.cfg.Server.CORSOrigins))
	if r.cfg.Tracing.Enabled {
		router.Use(otelgin.Middleware(r.cfg.Tracing.ServiceName))
	}
	router.Use(middleware.AttachRequestID())
	router.Use(middleware.RequestLogger(r.log))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	if r.cfg.Metrics.Enabled {
		router.GET(r.cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			if r.cfg.Server.Env != "production" {
				auth.POST("/dev-token", r.authHandler.DevToken)
			}
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			profile := protected.Group("/profile")
			{
				profile.GET("/me/facts", r.profileHandler.GetMyFacts)
				profile.PUT("/me/facts", r.profileHandler.UpdateMyFacts)
			}

			protected.GET("/discover", r.feedHandler.Discover)
			protected.GET("/compatibility/:user_id", r.feedHandler.Compatibility)

			swipe := protected.Group("/swipe")
			{
				swipe.POST("", r.swipeHandler.CreateSwipe)
				swipe.GET("/likes-received", r.swipeHandler.GetLikesReceived)
			}

			matches := protected.Group("/matches")
			{
				matches.GET("", r.matchHandler.ListMatches)
				matches.POST("/reset", r.swipeHandler.ResetMatches)
				matches.DELETE("/:user_id", r.swipeHandler.Unmatch)
			}

			blocks := protected.Group("/blocks")
			{
				blocks.GET("", r.swipeHandler.ListBlocks)
				blocks.POST("", r.swipeHandler.Block)
				blocks.DELETE("/:user_id", r.swipeHandler.Unblock)
			}

			conversations := protected.Group("/conversations")
			{
				conversations.GET("", r.matchHandler.ListConversations)
				conversations.GET("/:id/messages", r.matchHandler.GetMessages)
				conversations.POST("/:id/messages", r.matchHandler.SendMessage)
			}
		}
	}

	return router
}

package router

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/sharkpay/checkout/internal/config"
	"github.com/sharkpay/checkout/internal/server/http/handlers"
	"github.com/sharkpay/checkout/internal/server/http/middleware"
)

// Setup configures the gin router with handlers and middleware. The checkout
// endpoints are called cross-origin by the storefront widget, hence CORS.
func Setup(facade handlers.PaymentFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	checkoutHandler := handlers.NewCheckoutHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade)
	statusHandler := handlers.NewStatusHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.POST("/orders", checkoutHandler.Create)
	engine.GET("/orders/:id", statusHandler.Snapshot)
	engine.GET("/orders/:id/status", statusHandler.Status)
	engine.POST("/webhooks/:provider", webhookHandler.Receive)
	engine.GET("/healthz", healthHandler.Check)

	return engine
}

func corsConfig(origins string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if origins == "" || origins == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, origin := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, trimmed)
		}
	}
	return cfg
}

// Package server assembles the gin engine.
package server

import (
	"time"

	"securecheck-api/catalog"
	"securecheck-api/config"
	"securecheck-api/handlers"
	"securecheck-api/middleware"
	"securecheck-api/services"
	"securecheck-api/web"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps are the collaborators the routes need. A nil Auth leaves the API
// open and skips the /auth routes.
type Deps struct {
	Catalog   *catalog.Catalog
	Ledger    handlers.Ledger
	Cache     *services.CacheService
	Auth      *services.AuthService
	Users     *gorm.DB
	CORS      config.CORSConfig
	ReportTTL time.Duration
}

func NewRouter(d Deps) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.SetupCORS(d.CORS))
	router.SetHTMLTemplate(tmpl)

	reports := handlers.NewReportsHandler(d.Catalog, d.Ledger, d.Cache, d.ReportTTL)
	predictions := handlers.NewPredictionHandler(d.Ledger, d.Cache)
	dashboard := handlers.NewDashboardHandler(d.Ledger, reports, predictions)

	router.GET("/health", handlers.Health(d.Ledger))
	router.GET("/", dashboard.Page)
	router.POST("/predict", dashboard.Predict)

	api := router.Group("/api")
	if d.Auth != nil {
		api.Use(middleware.RequireAuth(d.Auth))
	}
	{
		api.GET("/summary", dashboard.Summary)
		api.GET("/reports", reports.List)
		api.GET("/reports/run", reports.Run)
		api.GET("/predictions/options", predictions.Options)
		api.POST("/predictions", predictions.Predict)
	}

	router.GET("/ws/predictions", handlers.PredictionFeed(d.Cache, d.Auth))

	if d.Auth != nil && d.Users != nil {
		authHandler := handlers.NewAuthHandler(services.NewOfficerService(d.Users, d.Auth))
		auth := router.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(d.Auth), authHandler.Me)
		}
	}

	return router, nil
}

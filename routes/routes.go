package routes

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-plantcare/advisory"
	"go-plantcare/catalog"
	"go-plantcare/controllers"
	"go-plantcare/middleware"
)

// Deps are the collaborators the router wires into controllers.
type Deps struct {
	DB        *sql.DB
	Catalog   catalog.Source
	Advisor   *advisory.Advisor
	Log       *zap.SugaredLogger
	JWTSecret string
	TokenTTL  time.Duration
}

// SetupRouter configures all routes.
func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(deps.Log))

	catalogController := controllers.NewCatalogController(deps.Catalog, deps.Advisor, deps.Log)
	advisoryController := controllers.NewAdvisoryController(deps.Advisor, deps.Log)
	wateringController := controllers.NewWateringController(deps.DB, deps.Catalog, deps.Advisor, deps.Log)
	authController := controllers.NewAuthController(deps.DB, deps.JWTSecret, deps.TokenTTL, deps.Log)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("/")
	{
		public.GET("/plants", catalogController.ListPlants)
		public.GET("/plants/:id", catalogController.GetPlant)

		public.GET("/season", advisoryController.GetSeason)
		public.GET("/seasons", advisoryController.ListSeasons)
		public.GET("/seasons/:season", advisoryController.GetSeasonBand)
		public.GET("/watering/defaults", advisoryController.GetDefaults)
		public.POST("/watering/calculate", advisoryController.Calculate)

		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
	}

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(deps.JWTSecret))
	{
		protected.POST("/plants/refresh", catalogController.Refresh)
		protected.POST("/watering/records", wateringController.SaveRecord)
		protected.GET("/watering/records", wateringController.GetRecords)
		protected.GET("/watering/record", wateringController.GetRecord)
	}

	return r
}

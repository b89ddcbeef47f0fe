package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-busca-trends/internal/analytics"
	"github.com/prefeitura-rio/app-busca-trends/internal/api/handlers"
	"github.com/prefeitura-rio/app-busca-trends/internal/config"
	middlewares "github.com/prefeitura-rio/app-busca-trends/internal/middleware"
	"github.com/prefeitura-rio/app-busca-trends/internal/services"
	"github.com/prefeitura-rio/app-busca-trends/internal/typesense"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies agrupa os serviços construídos no wiring do processo; o
// router não cria nem possui nenhum estado compartilhado.
type Dependencies struct {
	Config          *config.Config
	TypesenseClient *typesense.Client
	IngestService   *services.IngestService
	HotScoreService *services.HotScoreService
	Ranked          *analytics.RankedSet
	Searches        *analytics.SearchTermStore
}

func SetupRouter(deps *Dependencies) *gin.Engine {
	r := gin.Default()

	r.Use(corsMiddleware())
	if deps.Config.TracingEnabled {
		r.Use(middlewares.RequestTiming())
	}

	eventosHandler := handlers.NewEventosHandler(deps.IngestService, deps.Config.Trending.MinUIDLength)
	trendingHandler := handlers.NewTrendingHandler(deps.HotScoreService, deps.Ranked, deps.Searches, deps.Config.Trending.SearchRetention)
	healthHandler := handlers.NewHealthHandler(deps.TypesenseClient)

	api := r.Group("/api/v1")
	{
		api.POST("/eventos", eventosHandler.IngerirEvento)
		api.GET("/trending/documentos", trendingHandler.TopDocumentos)
		api.GET("/trending/buscas", trendingHandler.TrendingBuscas)
		api.POST("/trending/recompute", trendingHandler.RecomputeHotScores)
	}

	r.GET("/liveness", healthHandler.Liveness)
	r.GET("/readiness", healthHandler.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

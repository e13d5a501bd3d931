package server

import (
	"laptop-price-api/config"
	"laptop-price-api/handlers"
	"laptop-price-api/logger"
	"laptop-price-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Broadcaster interface {
	handlers.EventPublisher
	handlers.LiveFeed
}

type Deps struct {
	Config      *config.Config
	Log         *logger.Logger
	Catalog     handlers.OptionLister
	Predictor   handlers.Predictor
	Broadcaster Broadcaster
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(d.Config.Server.ServiceName))
	r.Use(middleware.RequestContext())
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.SetupCORS(d.Config.CORS))

	optionsHandler := handlers.NewOptionsHandler(d.Catalog)
	predictionHandler := handlers.NewPredictionHandler(d.Predictor, d.Broadcaster, d.Log)

	api := r.Group("/api")
	{
		api.GET("/options", optionsHandler.GetOptions)
		api.POST("/predict", predictionHandler.Predict)
		api.GET("/health", handlers.Health(d.Config.Server.ServiceName))
		api.GET("/predictions/live", handlers.LivePredictions(d.Broadcaster, d.Log))
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if !handlers.RegisterFrontend(r, d.Config.Server.StaticDir) {
		d.Log.Warn("frontend not served", "static_dir", d.Config.Server.StaticDir)
	}

	return r
}

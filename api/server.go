package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/manuchak/detecta-core-sub015/gazetteer"
	"github.com/manuchak/detecta-core-sub015/scoring"
	"github.com/manuchak/detecta-core-sub015/util"
)

// Server serves HTTP requests for the custodian compatibility service.
// The scoring core stays a library; this layer only binds, delegates and
// renders.
type Server struct {
	config   util.Config
	gaz      *gazetteer.Gazetteer
	engine   *scoring.Engine
	analyzer *scoring.PatternAnalyzer
	ranker   *scoring.Ranker
	router   *gin.Engine
}

// NewServer creates a new HTTP server and sets up routing.
func NewServer(config util.Config, gaz *gazetteer.Gazetteer) (*Server, error) {
	engine := scoring.NewEngine(gaz, scoring.DefaultWeights())
	analyzer := scoring.NewPatternAnalyzer(gaz)

	server := &Server{
		config:   config,
		gaz:      gaz,
		engine:   engine,
		analyzer: analyzer,
		ranker:   scoring.NewRanker(engine, analyzer, config.ScoringConcurrency),
	}

	server.setupRouter()
	return server, nil
}

func (server *Server) setupRouter() {
	if server.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger())
	router.Use(PrometheusMiddleware())

	timeout := server.config.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	router.Use(TimeoutMiddleware(timeout))

	if len(server.config.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = server.config.AllowedOrigins
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
		router.Use(cors.New(corsConfig))
	}

	router.GET("/health", server.health)
	router.GET("/metrics", MetricsHandler())

	v1 := router.Group("/v1")
	{
		v1.POST("/rankings", server.rankAgents)
		v1.POST("/agents/patterns", server.analyzePatterns)
		v1.GET("/places", server.listPlaces)
		v1.GET("/places/resolve", server.resolvePlace)
		v1.GET("/places/distance", server.placeDistance)
	}

	server.router = router
}

// GetRouter exposes the underlying router for http.Server wiring and tests.
func (server *Server) GetRouter() *gin.Engine {
	return server.router
}

func (server *Server) health(ctx *gin.Context) {
	ctx.JSON(200, gin.H{
		"status": "ok",
		"places": len(server.gaz.Places()),
	})
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}

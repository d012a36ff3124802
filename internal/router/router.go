package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"smartclaim/internal/config"
	"smartclaim/internal/handler"
	"smartclaim/internal/middleware"
	"smartclaim/internal/service"

	_ "smartclaim/docs"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	claimH *handler.ClaimHandler,
	statsH *handler.StatsHandler,
	documentH *handler.DocumentHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	r.GET("/", healthH.Welcome)
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := r.Group("/auth")
	auth.POST("/signup", authH.Signup)
	auth.POST("/login", authH.Login)

	// Per-user routes; the session middleware checks any bearer token against :userId.
	user := r.Group("/:userId")
	user.Use(middleware.Session(authSvc, cfg.Auth.RequireToken))
	user.POST("/add-claim", claimH.AddClaim)
	user.GET("/claims", claimH.List)
	user.GET("/claims/export", claimH.Export)
	user.GET("/claims/:claimNumber", claimH.Get)
	user.DELETE("/claims/:claimNumber", claimH.Delete)
	user.GET("/stats", statsH.GetStats)
	user.GET("/profile", authH.Profile)
	user.POST("/documents", documentH.Upload)

	return r
}

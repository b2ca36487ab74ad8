package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/clausewise/clausewise-backend/internal/handlers"
  "github.com/clausewise/clausewise-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler        *handlers.AuthHandler
  AuthMiddleware     *middleware.AuthMiddleware
  ClientHandler      *handlers.ClientHandler
  ContractHandler    *handlers.ContractHandler
  NegotiationHandler *handlers.NegotiationHandler
  BrainHandler       *handlers.BrainHandler
  AllowOrigins       []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()
  router.Use(otelgin.Middleware("clausewise-backend"))

  // Cors
  origins := cfg.AllowOrigins
  if len(origins) == 0 {
    origins = []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5173",
    }
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     origins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // User
  protected.GET("/user", cfg.AuthHandler.GetMe)

  api := protected.Group("/api")
  // Clients
  api.POST("/clients", cfg.ClientHandler.Create)
  api.GET("/clients", cfg.ClientHandler.List)
  api.GET("/clients/:id", cfg.ClientHandler.Get)
  api.PUT("/clients/:id", cfg.ClientHandler.Update)
  api.DELETE("/clients/:id", cfg.ClientHandler.Delete)
  // Contracts
  api.POST("/contracts", cfg.ContractHandler.Create)
  api.GET("/contracts", cfg.ContractHandler.List)
  api.GET("/contracts/:id", cfg.ContractHandler.Get)
  api.DELETE("/contracts/:id", cfg.ContractHandler.Delete)
  api.POST("/contracts/:id/analyze", cfg.ContractHandler.Analyze)
  api.GET("/contracts/:id/analysis", cfg.ContractHandler.GetAnalysis)
  api.POST("/contracts/:id/negotiation-email", cfg.NegotiationHandler.Compose)
  // Brain
  api.GET("/brain/insights", cfg.BrainHandler.GetInsights)

  return router
}

package main

import (
  "context"
  "fmt"
  "os"
  "time"
  "github.com/clausewise/clausewise-backend/internal/clients/openai"
  "github.com/clausewise/clausewise-backend/internal/clients/redis"
  "github.com/clausewise/clausewise-backend/internal/db"
  "github.com/clausewise/clausewise-backend/internal/handlers"
  "github.com/clausewise/clausewise-backend/internal/logger"
  "github.com/clausewise/clausewise-backend/internal/middleware"
  "github.com/clausewise/clausewise-backend/internal/observability"
  "github.com/clausewise/clausewise-backend/internal/prompts"
  "github.com/clausewise/clausewise-backend/internal/repos"
  "github.com/clausewise/clausewise-backend/internal/risk"
  "github.com/clausewise/clausewise-backend/internal/server"
  "github.com/clausewise/clausewise-backend/internal/services"
  "github.com/clausewise/clausewise-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  weightsPath := utils.GetEnv("RISK_WEIGHTS_PATH", "", log)

  // Tracing
  otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "clausewise-backend",
    Environment: utils.GetEnv("ENVIRONMENT", "development", log),
    Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
  })
  if otelShutdown != nil {
    defer func() {
      ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      _ = otelShutdown(ctx)
    }()
  }

  // Weight table
  weights := risk.DefaultWeightTable()
  if weightsPath != "" {
    loaded, wErr := risk.LoadWeightTable(weightsPath)
    if wErr != nil {
      log.Error("Failed to load weight table", "path", weightsPath, "error", wErr)
      os.Exit(1)
    }
    weights = loaded
  }

  // Prompts
  prompts.RegisterAll()

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  clientRepo := repos.NewClientRepo(thePG, log)
  contractRepo := repos.NewContractRepo(thePG, log)
  analysisRepo := repos.NewContractAnalysisRepo(thePG, log)
  findingRepo := repos.NewRiskFindingRepo(thePG, log)
  callLogRepo := repos.NewAICallLogRepo(thePG, log)

  // Clients
  openaiClient, err := openai.NewClient(log)
  if err != nil {
    log.Error("Could not init OpenAIClient", "error", err)
    os.Exit(1)
  }
  var brainCache redis.Cache
  if cache, cErr := redis.NewCache(log); cErr != nil {
    log.Warn("Redis cache unavailable, continuing without it", "error", cErr)
  } else {
    brainCache = cache
    defer brainCache.Close()
  }

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
  clientService := services.NewClientService(thePG, log, clientRepo)
  contractService := services.NewContractService(thePG, log, contractRepo, analysisRepo, findingRepo)
  extractionService := services.NewExtractionService(thePG, log, openaiClient, contractRepo, analysisRepo, findingRepo, callLogRepo, weights)
  negotiationService := services.NewNegotiationService(thePG, log, openaiClient, contractService, clientRepo, userRepo, callLogRepo)
  brainService := services.NewBrainService(thePG, log, openaiClient, analysisRepo, contractRepo, clientRepo, callLogRepo, brainCache)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  clientHandler := handlers.NewClientHandler(clientService)
  contractHandler := handlers.NewContractHandler(contractService, extractionService)
  negotiationHandler := handlers.NewNegotiationHandler(negotiationService)
  brainHandler := handlers.NewBrainHandler(brainService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:        authHandler,
    AuthMiddleware:     authMiddleware,
    ClientHandler:      clientHandler,
    ContractHandler:    contractHandler,
    NegotiationHandler: negotiationHandler,
    BrainHandler:       brainHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}

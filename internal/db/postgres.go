package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "github.com/clausewise/clausewise-backend/internal/types"
  "github.com/clausewise/clausewise-backend/internal/utils"
  "github.com/clausewise/clausewise-backend/internal/logger"
)

type PostgresService struct {
  db *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  log.Info("Loading environment variables...")
  dbDriver := utils.GetEnv("DB_DRIVER", "postgres", log)

  if dbDriver == "sqlite" {
    sqlitePath := utils.GetEnv("SQLITE_PATH", "clausewise.db", log)
    log.Info("Connecting to SQLite...", "path", sqlitePath)
    db, err := gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{})
    if err != nil {
      log.Error("Failed to connect to SQLite", "error", err)
      return nil, fmt.Errorf("Failed to connect to SQLite: %w", err)
    }
    return &PostgresService{db: db, log: serviceLog}, nil
  }

  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "clausewise", log)
  log.Debug("Environment variables loaded")

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
  }

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.Client{},
    &types.Contract{},
    &types.ContractAnalysis{},
    &types.RiskFinding{},
    &types.AICallLog{},
  )
  if err != nil {
    s.log.Error("Auto migration failed", "error", err)
    return err
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}

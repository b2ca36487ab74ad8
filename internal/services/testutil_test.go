package services

import (
  "context"
  "encoding/json"
  "testing"
  "time"

  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"

  "github.com/clausewise/clausewise-backend/internal/clients/openai"
  "github.com/clausewise/clausewise-backend/internal/clients/redis"
  "github.com/clausewise/clausewise-backend/internal/logger"
  "github.com/clausewise/clausewise-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("init logger: %v", err)
  }
  return log
}

func newTestDB(t *testing.T) *gorm.DB {
  t.Helper()
  db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  if err := db.AutoMigrate(
    &types.User{},
    &types.Client{},
    &types.Contract{},
    &types.ContractAnalysis{},
    &types.RiskFinding{},
    &types.AICallLog{},
  ); err != nil {
    t.Fatalf("migrate: %v", err)
  }
  return db
}

// fakeAI is a scripted openai.Client that records what it was asked.
type fakeAI struct {
  jsonResp map[string]any
  jsonErr  error
  textResp string
  textErr  error

  jsonCalls  int
  textCalls  int
  lastSystem string
  lastUser   string
}

func (f *fakeAI) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, openai.Usage, error) {
  f.jsonCalls++
  f.lastSystem = system
  f.lastUser = user
  if f.jsonErr != nil {
    return nil, openai.Usage{}, f.jsonErr
  }
  return f.jsonResp, openai.Usage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30}, nil
}

func (f *fakeAI) GenerateText(ctx context.Context, system, user string) (string, openai.Usage, error) {
  f.textCalls++
  f.lastSystem = system
  f.lastUser = user
  if f.textErr != nil {
    return "", openai.Usage{}, f.textErr
  }
  return f.textResp, openai.Usage{InputTokens: 5, OutputTokens: 15, TotalTokens: 20}, nil
}

func (f *fakeAI) Model() string {
  return "fake-model"
}

// fakeCache records reads and writes so tests can assert caching behavior.
type fakeCache struct {
  store map[string][]byte
  sets  int
}

func newFakeCache() *fakeCache {
  return &fakeCache{store: map[string][]byte{}}
}

func (f *fakeCache) GetJSON(ctx context.Context, key string, out any) error {
  raw, ok := f.store[key]
  if !ok {
    return redis.ErrCacheMiss
  }
  return json.Unmarshal(raw, out)
}

func (f *fakeCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
  f.sets++
  raw, err := json.Marshal(val)
  if err != nil {
    return err
  }
  f.store[key] = raw
  return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
  delete(f.store, key)
  return nil
}

func (f *fakeCache) Close() error { return nil }

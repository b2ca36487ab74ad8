package services

import (
  "context"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/clausewise/clausewise-backend/internal/logger"
  apperrors "github.com/clausewise/clausewise-backend/internal/pkg/errors"
  "github.com/clausewise/clausewise-backend/internal/repos"
  "github.com/clausewise/clausewise-backend/internal/types"
)

type ClientService interface {
  CreateClient(ctx context.Context, userID uuid.UUID, client *types.Client) (*types.Client, error)
  GetClient(ctx context.Context, userID, clientID uuid.UUID) (*types.Client, error)
  ListClients(ctx context.Context, userID uuid.UUID) ([]*types.Client, error)
  UpdateClient(ctx context.Context, userID uuid.UUID, client *types.Client) (*types.Client, error)
  DeleteClient(ctx context.Context, userID, clientID uuid.UUID) error
}

type clientService struct {
  db         *gorm.DB
  log        *logger.Logger
  clientRepo repos.ClientRepo
}

func NewClientService(db *gorm.DB, log *logger.Logger, clientRepo repos.ClientRepo) ClientService {
  serviceLog := log.With("service", "ClientService")
  return &clientService{db: db, log: serviceLog, clientRepo: clientRepo}
}

func (cs *clientService) CreateClient(ctx context.Context, userID uuid.UUID, client *types.Client) (*types.Client, error) {
  client.Name = strings.TrimSpace(client.Name)
  if client.Name == "" {
    return nil, fmt.Errorf("client name required: %w", apperrors.ErrInvalidArgument)
  }

  client.ID = uuid.New()
  client.UserID = userID
  if client.HealthScore == 0 {
    client.HealthScore = 100
  }
  if strings.TrimSpace(client.SentimentTrend) == "" {
    client.SentimentTrend = "STABLE"
  }

  created, err := cs.clientRepo.Create(ctx, nil, []*types.Client{client})
  if err != nil {
    return nil, fmt.Errorf("Failed to create client: %w", err)
  }
  return created[0], nil
}

func (cs *clientService) GetClient(ctx context.Context, userID, clientID uuid.UUID) (*types.Client, error) {
  client, err := cs.clientRepo.GetByID(ctx, nil, clientID)
  if err != nil {
    return nil, err
  }
  if client.UserID != userID {
    return nil, fmt.Errorf("client not owned by user: %w", apperrors.ErrNotFound)
  }
  return client, nil
}

func (cs *clientService) ListClients(ctx context.Context, userID uuid.UUID) ([]*types.Client, error) {
  return cs.clientRepo.ListByUser(ctx, nil, userID)
}

func (cs *clientService) UpdateClient(ctx context.Context, userID uuid.UUID, client *types.Client) (*types.Client, error) {
  existing, err := cs.GetClient(ctx, userID, client.ID)
  if err != nil {
    return nil, err
  }

  if name := strings.TrimSpace(client.Name); name != "" {
    existing.Name = name
  }
  existing.Company = strings.TrimSpace(client.Company)
  existing.Email = strings.TrimSpace(client.Email)
  existing.Notes = client.Notes
  if client.HealthScore > 0 {
    existing.HealthScore = client.HealthScore
  }
  if trend := strings.TrimSpace(client.SentimentTrend); trend != "" {
    existing.SentimentTrend = trend
  }
  if client.TotalRevenue >= 0 {
    existing.TotalRevenue = client.TotalRevenue
  }

  return cs.clientRepo.Update(ctx, nil, existing)
}

func (cs *clientService) DeleteClient(ctx context.Context, userID, clientID uuid.UUID) error {
  if _, err := cs.GetClient(ctx, userID, clientID); err != nil {
    return err
  }
  return cs.clientRepo.Delete(ctx, nil, clientID)
}

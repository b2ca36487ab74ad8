package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/clausewise/clausewise-backend/internal/logger"
  "github.com/clausewise/clausewise-backend/internal/types"
)

type ClientRepo interface {
  Create(ctx context.Context, tx *gorm.DB, clients []*types.Client) ([]*types.Client, error)
  GetByID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (*types.Client, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Client, error)
  Update(ctx context.Context, tx *gorm.DB, client *types.Client) (*types.Client, error)
  Delete(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) error
}

type clientRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewClientRepo(db *gorm.DB, baseLog *logger.Logger) ClientRepo {
  repoLog := baseLog.With("repo", "ClientRepo")
  return &clientRepo{db: db, log: repoLog}
}

func (cr *clientRepo) Create(ctx context.Context, tx *gorm.DB, clients []*types.Client) ([]*types.Client, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if len(clients) == 0 {
    return []*types.Client{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&clients).Error; err != nil {
    return nil, MapError(err)
  }
  return clients, nil
}

func (cr *clientRepo) GetByID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (*types.Client, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var result types.Client
  if err := transaction.WithContext(ctx).
    Where("id = ?", clientID).
    First(&result).Error; err != nil {
    return nil, MapError(err)
  }
  return &result, nil
}

func (cr *clientRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Client, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Client
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, MapError(err)
  }
  return results, nil
}

func (cr *clientRepo) Update(ctx context.Context, tx *gorm.DB, client *types.Client) (*types.Client, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if err := transaction.WithContext(ctx).Save(client).Error; err != nil {
    return nil, MapError(err)
  }
  return client, nil
}

func (cr *clientRepo) Delete(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if err := transaction.WithContext(ctx).
    Where("id = ?", clientID).
    Delete(&types.Client{}).Error; err != nil {
    return MapError(err)
  }
  return nil
}

package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/clausewise/clausewise-backend/internal/logger"
  "github.com/clausewise/clausewise-backend/internal/types"
)

type ContractRepo interface {
  Create(ctx context.Context, tx *gorm.DB, contracts []*types.Contract) ([]*types.Contract, error)
  GetByID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) (*types.Contract, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Contract, error)
  ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.Contract, error)
  Update(ctx context.Context, tx *gorm.DB, contract *types.Contract) (*types.Contract, error)
  UpdateStatus(ctx context.Context, tx *gorm.DB, contractID uuid.UUID, status string) error
  Delete(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) error
}

type contractRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewContractRepo(db *gorm.DB, baseLog *logger.Logger) ContractRepo {
  repoLog := baseLog.With("repo", "ContractRepo")
  return &contractRepo{db: db, log: repoLog}
}

func (cr *contractRepo) Create(ctx context.Context, tx *gorm.DB, contracts []*types.Contract) ([]*types.Contract, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if len(contracts) == 0 {
    return []*types.Contract{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&contracts).Error; err != nil {
    return nil, MapError(err)
  }
  return contracts, nil
}

func (cr *contractRepo) GetByID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) (*types.Contract, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var result types.Contract
  if err := transaction.WithContext(ctx).
    Where("id = ?", contractID).
    First(&result).Error; err != nil {
    return nil, MapError(err)
  }
  return &result, nil
}

func (cr *contractRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Contract, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  q := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC")
  if limit > 0 {
    q = q.Limit(limit)
  }

  var results []*types.Contract
  if err := q.Find(&results).Error; err != nil {
    return nil, MapError(err)
  }
  return results, nil
}

func (cr *contractRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.Contract, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Contract
  if err := transaction.WithContext(ctx).
    Where("client_id = ?", clientID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, MapError(err)
  }
  return results, nil
}

func (cr *contractRepo) Update(ctx context.Context, tx *gorm.DB, contract *types.Contract) (*types.Contract, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if err := transaction.WithContext(ctx).Save(contract).Error; err != nil {
    return nil, MapError(err)
  }
  return contract, nil
}

func (cr *contractRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, contractID uuid.UUID, status string) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if err := transaction.WithContext(ctx).
    Model(&types.Contract{}).
    Where("id = ?", contractID).
    Update("status", status).Error; err != nil {
    return MapError(err)
  }
  return nil
}

func (cr *contractRepo) Delete(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if err := transaction.WithContext(ctx).
    Where("id = ?", contractID).
    Delete(&types.Contract{}).Error; err != nil {
    return MapError(err)
  }
  return nil
}

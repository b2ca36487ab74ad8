package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/clausewise/clausewise-backend/internal/logger"
  "github.com/clausewise/clausewise-backend/internal/types"
)

type ContractAnalysisRepo interface {
  Create(ctx context.Context, tx *gorm.DB, analysis *types.ContractAnalysis) (*types.ContractAnalysis, error)
  GetByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) (*types.ContractAnalysis, error)
  DeleteByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) error
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ContractAnalysis, error)
}

type contractAnalysisRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewContractAnalysisRepo(db *gorm.DB, baseLog *logger.Logger) ContractAnalysisRepo {
  repoLog := baseLog.With("repo", "ContractAnalysisRepo")
  return &contractAnalysisRepo{db: db, log: repoLog}
}

func (ar *contractAnalysisRepo) Create(ctx context.Context, tx *gorm.DB, analysis *types.ContractAnalysis) (*types.ContractAnalysis, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if err := transaction.WithContext(ctx).Create(analysis).Error; err != nil {
    return nil, MapError(err)
  }
  return analysis, nil
}

func (ar *contractAnalysisRepo) GetByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) (*types.ContractAnalysis, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var result types.ContractAnalysis
  if err := transaction.WithContext(ctx).
    Where("contract_id = ?", contractID).
    First(&result).Error; err != nil {
    return nil, MapError(err)
  }
  return &result, nil
}

func (ar *contractAnalysisRepo) DeleteByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  // Hard delete: the unique contract_id index must be free for the
  // replacement row within the same transaction.
  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("contract_id = ?", contractID).
    Delete(&types.ContractAnalysis{}).Error; err != nil {
    return MapError(err)
  }
  return nil
}

func (ar *contractAnalysisRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ContractAnalysis, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  q := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC")
  if limit > 0 {
    q = q.Limit(limit)
  }

  var results []*types.ContractAnalysis
  if err := q.Find(&results).Error; err != nil {
    return nil, MapError(err)
  }
  return results, nil
}

package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/clausewise/clausewise-backend/internal/logger"
  "github.com/clausewise/clausewise-backend/internal/types"
)

type RiskFindingRepo interface {
  Create(ctx context.Context, tx *gorm.DB, findings []*types.RiskFinding) ([]*types.RiskFinding, error)
  ListByAnalysisID(ctx context.Context, tx *gorm.DB, analysisID uuid.UUID) ([]*types.RiskFinding, error)
  DeleteByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) error
}

type riskFindingRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewRiskFindingRepo(db *gorm.DB, baseLog *logger.Logger) RiskFindingRepo {
  repoLog := baseLog.With("repo", "RiskFindingRepo")
  return &riskFindingRepo{db: db, log: repoLog}
}

func (rr *riskFindingRepo) Create(ctx context.Context, tx *gorm.DB, findings []*types.RiskFinding) ([]*types.RiskFinding, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  if len(findings) == 0 {
    return []*types.RiskFinding{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&findings).Error; err != nil {
    return nil, MapError(err)
  }
  return findings, nil
}

func (rr *riskFindingRepo) ListByAnalysisID(ctx context.Context, tx *gorm.DB, analysisID uuid.UUID) ([]*types.RiskFinding, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var results []*types.RiskFinding
  if err := transaction.WithContext(ctx).
    Where("analysis_id = ?", analysisID).
    Order("position ASC").
    Find(&results).Error; err != nil {
    return nil, MapError(err)
  }
  return results, nil
}

func (rr *riskFindingRepo) DeleteByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  // Hard delete: replaced findings must release their index entries.
  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("contract_id = ?", contractID).
    Delete(&types.RiskFinding{}).Error; err != nil {
    return MapError(err)
  }
  return nil
}

package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

type RiskFinding struct {
  gorm.Model
  ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  AnalysisID        uuid.UUID       `gorm:"type:uuid;index;not null" json:"analysis_id"`
  ContractID        uuid.UUID       `gorm:"type:uuid;index;not null" json:"contract_id"`
  Position          int             `gorm:"column:position;not null" json:"position"`
  Clause            string          `gorm:"column:clause;type:text;not null" json:"clause"`
  Category          string          `gorm:"column:category;not null" json:"category"`
  Severity          string          `gorm:"column:severity;not null" json:"severity"`
  Explanation       string          `gorm:"column:explanation;type:text" json:"explanation"`
  Recommendation    string          `gorm:"column:recommendation;type:text" json:"recommendation"`
  SuggestedRevision string          `gorm:"column:suggested_revision;type:text" json:"suggested_revision"`
  CreatedAt         time.Time       `gorm:"not null" json:"created_at"`
  UpdatedAt         time.Time       `gorm:"not null" json:"updated_at"`
}

func (RiskFinding) TableName() string {
  return "risk_finding"
}

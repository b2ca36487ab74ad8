package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

type ContractAnalysis struct {
  gorm.Model
  ID                uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
  ContractID        uuid.UUID         `gorm:"type:uuid;uniqueIndex;not null" json:"contract_id"`
  UserID            uuid.UUID         `gorm:"type:uuid;index;not null" json:"user_id"`
  Summary           string            `gorm:"column:summary;type:text" json:"summary"`
  Parties           datatypes.JSON    `gorm:"type:jsonb;column:parties" json:"parties"`
  Financials        datatypes.JSON    `gorm:"type:jsonb;column:financials" json:"financials"`
  Scope             datatypes.JSON    `gorm:"type:jsonb;column:scope" json:"scope"`
  Dates             datatypes.JSON    `gorm:"type:jsonb;column:dates" json:"dates"`
  RedFlags          datatypes.JSON    `gorm:"type:jsonb;column:red_flags" json:"red_flags"`
  OverallRiskScore  int               `gorm:"column:overall_risk_score;not null" json:"overall_risk_score"`
  PromptVersion     int               `gorm:"column:prompt_version;not null" json:"prompt_version"`
  CreatedAt         time.Time         `gorm:"not null" json:"created_at"`
  UpdatedAt         time.Time         `gorm:"not null" json:"updated_at"`
}

func (ContractAnalysis) TableName() string {
  return "contract_analysis"
}

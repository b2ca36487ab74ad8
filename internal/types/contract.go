package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

// Contract status values.
const (
  ContractStatusDraft    = "DRAFT"
  ContractStatusAnalyzed = "ANALYZED"
  ContractStatusSigned   = "SIGNED"
  ContractStatusArchived = "ARCHIVED"
)

type Contract struct {
  gorm.Model
  ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  UserID            uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
  ClientID          *uuid.UUID      `gorm:"type:uuid;index" json:"client_id,omitempty"`
  Title             string          `gorm:"not null;column:title" json:"title"`
  FileName          string          `gorm:"column:file_name" json:"file_name"`
  MimeType          string          `gorm:"column:mime_type" json:"mime_type"`
  DocumentText      string          `gorm:"column:document_text;type:text" json:"-"`
  DocumentSHA256    string          `gorm:"column:document_sha256;index" json:"document_sha256"`
  Status            string          `gorm:"column:status;not null;default:DRAFT" json:"status"`
  CreatedAt         time.Time       `gorm:"not null" json:"created_at"`
  UpdatedAt         time.Time       `gorm:"not null" json:"updated_at"`
}

func (Contract) TableName() string {
  return "contract"
}

package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

type Client struct {
  gorm.Model
  ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  UserID            uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
  Name              string          `gorm:"not null;column:name" json:"name"`
  Company           string          `gorm:"column:company" json:"company"`
  Email             string          `gorm:"column:email" json:"email"`
  Notes             string          `gorm:"column:notes" json:"notes"`
  HealthScore       int             `gorm:"column:health_score;default:100" json:"health_score"`
  SentimentTrend    string          `gorm:"column:sentiment_trend;default:STABLE" json:"sentiment_trend"`
  TotalRevenue      float64         `gorm:"column:total_revenue;default:0" json:"total_revenue"`
  CreatedAt         time.Time       `gorm:"not null" json:"created_at"`
  UpdatedAt         time.Time       `gorm:"not null" json:"updated_at"`
}

func (Client) TableName() string {
  return "client"
}

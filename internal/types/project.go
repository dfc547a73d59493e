package types

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	OriginalText string    `gorm:"type:text;not null;column:original_text" json:"original_text"`
	CurrentStage Stage     `gorm:"size:20;not null;default:mining;column:current_stage" json:"current_stage"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Project) TableName() string {
	return "project"
}

package types

import (
	"time"

	"github.com/google/uuid"
)

// NewTopic is a planning-stage seed for a future project; the pipeline is
// cyclic at the macro level.
type NewTopic struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OutputID       uuid.UUID `gorm:"type:uuid;not null;index;column:output_id" json:"output_id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Direction      Direction `gorm:"size:10;not null" json:"direction"`
	DirectionLabel string    `gorm:"size:50;not null;column:direction_label" json:"direction_label"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	PotentialAngle string    `gorm:"type:text;column:potential_angle" json:"potential_angle,omitempty"`
	IsUsed         bool      `gorm:"not null;default:false;column:is_used" json:"is_used"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (NewTopic) TableName() string {
	return "new_topic"
}

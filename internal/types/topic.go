package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SupportMaterials counts the evidence the mining stage found for a topic.
type SupportMaterials struct {
	Cases  int `json:"cases"`
	Quotes int `json:"quotes"`
	Data   int `json:"data"`
}

type Topic struct {
	ID               uuid.UUID                            `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID        uuid.UUID                            `gorm:"type:uuid;not null;index;column:project_id" json:"project_id"`
	Title            string                               `gorm:"size:255;not null" json:"title"`
	CoreIdea         string                               `gorm:"type:text;not null;column:core_idea" json:"core_idea"`
	EmotionLevel     int                                  `gorm:"not null;default:3;column:emotion_level" json:"emotion_level"`
	SupportMaterials datatypes.JSONType[SupportMaterials] `gorm:"column:support_materials" json:"support_materials"`
	HighlightedText  datatypes.JSONType[[]string]         `gorm:"column:highlighted_text" json:"highlighted_text"`
	Reason           string                               `gorm:"type:text" json:"reason,omitempty"`
	IsSelected       bool                                 `gorm:"not null;default:false;column:is_selected" json:"is_selected"`
	CreatedAt        time.Time                            `gorm:"not null" json:"created_at"`
}

func (Topic) TableName() string {
	return "topic"
}

package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CognitiveContrast struct {
	CommonBelief string `json:"commonBelief"`
	OurPoint     string `json:"ourPoint"`
	Tension      string `json:"tension"`
}

type LogicChain struct {
	Because  string `json:"because"`
	So       string `json:"so"`
	Moreover string `json:"moreover"`
}

type SpreadElements struct {
	Quotes []string `json:"quotes"`
	Cases  []string `json:"cases"`
	Data   []string `json:"data"`
}

type AudienceQuestion struct {
	Question        string `json:"question"`
	AnswerDirection string `json:"answerDirection"`
}

// Analysis is the five-part deep dive produced for one selected topic. A topic
// may accumulate several of these; re-analysis appends rather than replaces.
type Analysis struct {
	ID                uuid.UUID                              `gorm:"type:uuid;primaryKey" json:"id"`
	TopicID           uuid.UUID                              `gorm:"type:uuid;not null;index;column:topic_id" json:"topic_id"`
	CoreArgument      string                                 `gorm:"type:text;not null;column:core_argument" json:"core_argument"`
	CognitiveContrast datatypes.JSONType[CognitiveContrast]  `gorm:"column:cognitive_contrast" json:"cognitive_contrast"`
	LogicChain        datatypes.JSONType[LogicChain]         `gorm:"column:logic_chain" json:"logic_chain"`
	SpreadElements    datatypes.JSONType[SpreadElements]     `gorm:"column:spread_elements" json:"spread_elements"`
	AudienceQuestions datatypes.JSONType[[]AudienceQuestion] `gorm:"column:audience_questions" json:"audience_questions"`
	CreatedAt         time.Time                              `gorm:"not null" json:"created_at"`
}

func (Analysis) TableName() string {
	return "analysis"
}

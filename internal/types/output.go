package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DirectorContent is the short-video clip plan, written in full by one call.
type DirectorContent struct {
	ContentType         string               `json:"contentType"`
	Structure           DirectorStructure    `json:"structure"`
	ClipPoints          []ClipPoint          `json:"clipPoints"`
	RerecordSuggestions []RerecordSuggestion `json:"rerecordSuggestions"`
	Preview             string               `json:"preview"`
}

type DirectorStructure struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Parts       []string `json:"parts"`
}

type ClipPoint struct {
	Part         string `json:"part"`
	Purpose      string `json:"purpose"`
	OriginalText string `json:"originalText"`
	Duration     string `json:"duration"`
}

type RerecordSuggestion struct {
	Position string `json:"position"`
	Type     string `json:"type"`
	Content  string `json:"content"`
}

type CopywriterFormula struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	WhyFit      string `json:"whyFit"`
	Example     string `json:"example"`
}

type CopywriterSection struct {
	Section        string   `json:"section"`
	Subtitle       string   `json:"subtitle"`
	KeyPoints      []string `json:"keyPoints"`
	EstimatedWords int      `json:"estimatedWords"`
}

type CopywriterTitle struct {
	Title    string   `json:"title"`
	Elements []string `json:"elements"`
	Hook     string   `json:"hook"`
}

// CopywriterContent accumulates across the four copywriter sub-steps on a
// single output row. CurrentStep records how far the caller has gotten.
type CopywriterContent struct {
	Formulas            []CopywriterFormula `json:"formulas,omitempty"`
	SelectedFormula     *CopywriterFormula  `json:"selectedFormula,omitempty"`
	Structure           []CopywriterSection `json:"structure,omitempty"`
	TotalEstimatedWords int                 `json:"totalEstimatedWords,omitempty"`
	Titles              []CopywriterTitle   `json:"titles,omitempty"`
	SelectedTitle       *CopywriterTitle    `json:"selectedTitle,omitempty"`
	FullContent         string              `json:"fullContent,omitempty"`
	CurrentStep         int                 `json:"currentStep"`
}

// Output holds one stage deliverable. Exactly one of the content columns is
// populated depending on Type.
type Output struct {
	ID                uuid.UUID                              `gorm:"type:uuid;primaryKey" json:"id"`
	AnalysisID        uuid.UUID                              `gorm:"type:uuid;not null;index;column:analysis_id" json:"analysis_id"`
	Type              OutputType                             `gorm:"size:20;not null" json:"type"`
	DirectorContent   *datatypes.JSONType[DirectorContent]   `gorm:"column:director_content" json:"director_content,omitempty"`
	CopywriterContent *datatypes.JSONType[CopywriterContent] `gorm:"column:copywriter_content" json:"copywriter_content,omitempty"`
	CreatedAt         time.Time                              `gorm:"not null" json:"created_at"`
}

func (Output) TableName() string {
	return "output"
}

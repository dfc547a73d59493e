package types

import (
	"fmt"
	"strings"
)

// Model-response shapes, one per stage. Each knows how to validate itself;
// validation rejects out-of-range values outright instead of clamping them.

type TopicDraft struct {
	Title            string           `json:"title"`
	CoreIdea         string           `json:"coreIdea"`
	EmotionLevel     int              `json:"emotionLevel"`
	SupportMaterials SupportMaterials `json:"supportMaterials"`
	HighlightedText  []string         `json:"highlightedText"`
	Reason           string           `json:"reason,omitempty"`
}

type MiningResult struct {
	Topics []TopicDraft `json:"topics"`
}

func (r *MiningResult) Validate() error {
	var issues []string
	if len(r.Topics) == 0 {
		issues = append(issues, "topics: empty")
	}
	if len(r.Topics) > 10 {
		issues = append(issues, fmt.Sprintf("topics: %d exceeds maximum of 10", len(r.Topics)))
	}
	for i, t := range r.Topics {
		if t.Title == "" {
			issues = append(issues, fmt.Sprintf("topics[%d].title: empty", i))
		}
		if t.CoreIdea == "" {
			issues = append(issues, fmt.Sprintf("topics[%d].coreIdea: empty", i))
		}
		if t.EmotionLevel < 1 || t.EmotionLevel > 5 {
			issues = append(issues, fmt.Sprintf("topics[%d].emotionLevel: %d outside [1,5]", i, t.EmotionLevel))
		}
		if t.SupportMaterials.Cases < 0 || t.SupportMaterials.Quotes < 0 || t.SupportMaterials.Data < 0 {
			issues = append(issues, fmt.Sprintf("topics[%d].supportMaterials: negative count", i))
		}
	}
	return joinIssues(issues)
}

type AnalysisResult struct {
	CoreArgument      string             `json:"coreArgument"`
	CognitiveContrast CognitiveContrast  `json:"cognitiveContrast"`
	LogicChain        LogicChain         `json:"logicChain"`
	SpreadElements    SpreadElements     `json:"spreadElements"`
	AudienceQuestions []AudienceQuestion `json:"audienceQuestions"`
}

func (r *AnalysisResult) Validate() error {
	var issues []string
	if r.CoreArgument == "" {
		issues = append(issues, "coreArgument: empty")
	}
	if r.CognitiveContrast.CommonBelief == "" || r.CognitiveContrast.OurPoint == "" || r.CognitiveContrast.Tension == "" {
		issues = append(issues, "cognitiveContrast: missing field")
	}
	if r.LogicChain.Because == "" || r.LogicChain.So == "" || r.LogicChain.Moreover == "" {
		issues = append(issues, "logicChain: missing field")
	}
	for i, q := range r.AudienceQuestions {
		if q.Question == "" || q.AnswerDirection == "" {
			issues = append(issues, fmt.Sprintf("audienceQuestions[%d]: missing field", i))
		}
	}
	return joinIssues(issues)
}

func (d *DirectorContent) Validate() error {
	var issues []string
	if d.ContentType == "" {
		issues = append(issues, "contentType: empty")
	}
	if d.Structure.Name == "" {
		issues = append(issues, "structure.name: empty")
	}
	if len(d.ClipPoints) == 0 {
		issues = append(issues, "clipPoints: empty")
	}
	for i, cp := range d.ClipPoints {
		if cp.Part == "" || cp.OriginalText == "" {
			issues = append(issues, fmt.Sprintf("clipPoints[%d]: missing field", i))
		}
	}
	if d.Preview == "" {
		issues = append(issues, "preview: empty")
	}
	return joinIssues(issues)
}

type FormulasResult struct {
	Formulas []CopywriterFormula `json:"formulas"`
}

func (r *FormulasResult) Validate() error {
	var issues []string
	if len(r.Formulas) == 0 {
		issues = append(issues, "formulas: empty")
	}
	if len(r.Formulas) > 5 {
		issues = append(issues, fmt.Sprintf("formulas: %d exceeds maximum of 5", len(r.Formulas)))
	}
	for i, f := range r.Formulas {
		if f.Name == "" || f.Description == "" {
			issues = append(issues, fmt.Sprintf("formulas[%d]: missing field", i))
		}
	}
	return joinIssues(issues)
}

type StructureResult struct {
	Structure           []CopywriterSection `json:"structure"`
	TotalEstimatedWords int                 `json:"totalEstimatedWords"`
}

func (r *StructureResult) Validate() error {
	var issues []string
	if len(r.Structure) == 0 {
		issues = append(issues, "structure: empty")
	}
	for i, s := range r.Structure {
		if s.Section == "" {
			issues = append(issues, fmt.Sprintf("structure[%d].section: empty", i))
		}
		if s.EstimatedWords < 0 {
			issues = append(issues, fmt.Sprintf("structure[%d].estimatedWords: negative", i))
		}
	}
	return joinIssues(issues)
}

type TitlesResult struct {
	Titles []CopywriterTitle `json:"titles"`
}

func (r *TitlesResult) Validate() error {
	var issues []string
	if len(r.Titles) == 0 {
		issues = append(issues, "titles: empty")
	}
	if len(r.Titles) > 12 {
		issues = append(issues, fmt.Sprintf("titles: %d exceeds maximum of 12", len(r.Titles)))
	}
	for i, title := range r.Titles {
		if title.Title == "" {
			issues = append(issues, fmt.Sprintf("titles[%d].title: empty", i))
		}
	}
	return joinIssues(issues)
}

type NewTopicDraft struct {
	Title          string    `json:"title"`
	Direction      Direction `json:"direction"`
	DirectionLabel string    `json:"directionLabel"`
	Description    string    `json:"description"`
	PotentialAngle string    `json:"potentialAngle,omitempty"`
}

type PlanningResult struct {
	NewTopics []NewTopicDraft `json:"newTopics"`
}

func (r *PlanningResult) Validate() error {
	var issues []string
	if len(r.NewTopics) == 0 {
		issues = append(issues, "newTopics: empty")
	}
	for i, t := range r.NewTopics {
		if t.Title == "" {
			issues = append(issues, fmt.Sprintf("newTopics[%d].title: empty", i))
		}
		switch t.Direction {
		case DirectionUp, DirectionDown, DirectionParallel:
		default:
			issues = append(issues, fmt.Sprintf("newTopics[%d].direction: %q not one of up/down/parallel", i, t.Direction))
		}
		if t.Description == "" {
			issues = append(issues, fmt.Sprintf("newTopics[%d].description: empty", i))
		}
	}
	return joinIssues(issues)
}

func joinIssues(issues []string) error {
	if len(issues) == 0 {
		return nil
	}
	return fmt.Errorf("schema validation: %s", strings.Join(issues, "; "))
}

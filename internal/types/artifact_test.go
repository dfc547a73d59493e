package types

import (
	"strings"
	"testing"
)

func validTopicDraft() TopicDraft {
	return TopicDraft{
		Title:            "慢就是快",
		CoreIdea:         "真正的效率来自节奏感",
		EmotionLevel:     4,
		SupportMaterials: SupportMaterials{Cases: 2, Quotes: 3, Data: 1},
		HighlightedText:  []string{"第一段", "第二段"},
		Reason:           "反常识观点",
	}
}

func TestMiningResultValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*MiningResult)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(r *MiningResult) {},
		},
		{
			name:    "no_topics",
			mutate:  func(r *MiningResult) { r.Topics = nil },
			wantErr: "topics: empty",
		},
		{
			name:    "emotion_level_too_low",
			mutate:  func(r *MiningResult) { r.Topics[0].EmotionLevel = 0 },
			wantErr: "emotionLevel",
		},
		{
			name:    "emotion_level_too_high",
			mutate:  func(r *MiningResult) { r.Topics[0].EmotionLevel = 6 },
			wantErr: "emotionLevel",
		},
		{
			name:    "missing_title",
			mutate:  func(r *MiningResult) { r.Topics[0].Title = "" },
			wantErr: "title: empty",
		},
		{
			name:    "negative_support_count",
			mutate:  func(r *MiningResult) { r.Topics[0].SupportMaterials.Quotes = -1 },
			wantErr: "negative count",
		},
		{
			name: "empty_highlighted_text_allowed",
			mutate: func(r *MiningResult) {
				r.Topics[0].HighlightedText = nil
				r.Topics[0].Reason = ""
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := MiningResult{Topics: []TopicDraft{validTopicDraft(), validTopicDraft(), validTopicDraft()}}
			tc.mutate(&r)
			err := r.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestPlanningResultValidateDirectionEnum(t *testing.T) {
	r := PlanningResult{NewTopics: []NewTopicDraft{
		{Title: "a", Direction: DirectionUp, DirectionLabel: "原因探究", Description: "d"},
		{Title: "b", Direction: "sideways", DirectionLabel: "?", Description: "d"},
	}}
	err := r.Validate()
	if err == nil || !strings.Contains(err.Error(), "direction") {
		t.Fatalf("Validate() = %v, want direction error", err)
	}
}

func TestDirectorContentValidate(t *testing.T) {
	d := DirectorContent{
		ContentType: "观点类",
		Structure:   DirectorStructure{Name: "黄金三幕", Description: "desc", Parts: []string{"开头", "主体", "结尾"}},
		ClipPoints:  []ClipPoint{{Part: "开头", Purpose: "抓注意力", OriginalText: "原文", Duration: "15"}},
		Preview:     "预览",
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("valid content rejected: %v", err)
	}
	d.ClipPoints = nil
	if err := d.Validate(); err == nil {
		t.Fatal("expected error for empty clipPoints")
	}
}

func TestAnalysisResultValidate(t *testing.T) {
	r := AnalysisResult{
		CoreArgument:      "核心论点",
		CognitiveContrast: CognitiveContrast{CommonBelief: "a", OurPoint: "b", Tension: "c"},
		LogicChain:        LogicChain{Because: "a", So: "b", Moreover: "c"},
		SpreadElements:    SpreadElements{},
		AudienceQuestions: []AudienceQuestion{{Question: "q", AnswerDirection: "a"}},
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("valid analysis rejected: %v", err)
	}
	r.LogicChain.So = ""
	if err := r.Validate(); err == nil {
		t.Fatal("expected error for missing logicChain field")
	}
}

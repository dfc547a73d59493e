package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/logger"
	"github.com/yungbote/flowfactory-backend/internal/observability"
	"github.com/yungbote/flowfactory-backend/internal/repos"
	"github.com/yungbote/flowfactory-backend/internal/types"
	"github.com/yungbote/flowfactory-backend/internal/utils"
)

type AnalysisRequest struct {
	TopicID uuid.UUID `json:"topicId" binding:"required"`
}

type AnalysisService interface {
	Run(ctx context.Context, req AnalysisRequest) (*types.Analysis, error)
}

type analysisService struct {
	log          *logger.Logger
	gen          GenerationClient
	projectRepo  repos.ProjectRepo
	topicRepo    repos.TopicRepo
	analysisRepo repos.AnalysisRepo
	resolve      *resolver
}

func NewAnalysisService(
	log *logger.Logger,
	gen GenerationClient,
	projectRepo repos.ProjectRepo,
	topicRepo repos.TopicRepo,
	analysisRepo repos.AnalysisRepo,
) AnalysisService {
	return &analysisService{
		log:          log.With("service", "AnalysisService"),
		gen:          gen,
		projectRepo:  projectRepo,
		topicRepo:    topicRepo,
		analysisRepo: analysisRepo,
		resolve:      &resolver{projectRepo: projectRepo, topicRepo: topicRepo},
	}
}

// Run analyses the chosen topic. The topic is marked selected before the
// model call and that mark survives a later failure; a topic can also be
// analysed more than once, each run appending a fresh row.
func (s *analysisService) Run(ctx context.Context, req AnalysisRequest) (*types.Analysis, error) {
	topic, project, err := s.resolve.topic(ctx, req.TopicID)
	if err != nil {
		return nil, err
	}

	if err := s.topicRepo.MarkSelected(ctx, nil, topic.ID); err != nil {
		return nil, apierr.Internal(err)
	}

	raw, err := s.gen.Generate(ctx, GenerateRequest{
		System:      analysisSystemPrompt,
		User:        buildAnalysisUserPrompt(topic, project),
		Temperature: 0.7,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	var result types.AnalysisResult
	if err := json.Unmarshal([]byte(utils.ExtractJSONBlock(raw)), &result); err != nil {
		s.log.Error("Analysis response is not valid JSON", "error", err, "topic_id", topic.ID)
		return nil, apierr.InvalidAIResponse(err)
	}
	if err := result.Validate(); err != nil {
		s.log.Error("Analysis response failed validation", "error", err, "topic_id", topic.ID)
		return nil, apierr.InvalidAIResponse(err)
	}

	analysis := &types.Analysis{
		ID:                uuid.New(),
		TopicID:           topic.ID,
		CoreArgument:      result.CoreArgument,
		CognitiveContrast: datatypes.NewJSONType(result.CognitiveContrast),
		LogicChain:        datatypes.NewJSONType(result.LogicChain),
		SpreadElements:    datatypes.NewJSONType(result.SpreadElements),
		AudienceQuestions: datatypes.NewJSONType(result.AudienceQuestions),
	}
	created, err := s.analysisRepo.Create(ctx, nil, analysis)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if err := s.projectRepo.UpdateStage(ctx, nil, project.ID, types.StageAnalysis); err != nil {
		return nil, apierr.Internal(err)
	}

	observability.StageCompleted(string(types.StageAnalysis))
	s.log.Info("Analysis complete", "topic_id", topic.ID, "analysis_id", created.ID)
	return created, nil
}

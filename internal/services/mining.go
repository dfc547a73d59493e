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

type MiningRequest struct {
	ProjectID uuid.UUID `json:"projectId" binding:"required"`
}

type MiningService interface {
	Run(ctx context.Context, req MiningRequest) ([]*types.Topic, error)
}

type miningService struct {
	log       *logger.Logger
	gen       GenerationClient
	topicRepo repos.TopicRepo
	resolve   *resolver
}

func NewMiningService(
	log *logger.Logger,
	gen GenerationClient,
	projectRepo repos.ProjectRepo,
	topicRepo repos.TopicRepo,
) MiningService {
	return &miningService{
		log:       log.With("service", "MiningService"),
		gen:       gen,
		topicRepo: topicRepo,
		resolve:   &resolver{projectRepo: projectRepo, topicRepo: topicRepo},
	}
}

// Run mines candidate topics out of a project's raw text. The project stage
// stays at mining: the user still has to pick a topic before the pipeline
// moves on.
func (s *miningService) Run(ctx context.Context, req MiningRequest) ([]*types.Topic, error) {
	project, err := s.resolve.project(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	raw, err := s.gen.Generate(ctx, GenerateRequest{
		System:      miningSystemPrompt,
		User:        buildMiningUserPrompt(project.OriginalText),
		Temperature: 0.7,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	var result types.MiningResult
	if err := json.Unmarshal([]byte(utils.ExtractJSONBlock(raw)), &result); err != nil {
		s.log.Error("Mining response is not valid JSON", "error", err, "project_id", project.ID)
		return nil, apierr.InvalidAIResponse(err)
	}
	if err := result.Validate(); err != nil {
		s.log.Error("Mining response failed validation", "error", err, "project_id", project.ID)
		return nil, apierr.InvalidAIResponse(err)
	}

	topics := make([]*types.Topic, 0, len(result.Topics))
	for _, draft := range result.Topics {
		topics = append(topics, &types.Topic{
			ID:               uuid.New(),
			ProjectID:        project.ID,
			Title:            draft.Title,
			CoreIdea:         draft.CoreIdea,
			EmotionLevel:     draft.EmotionLevel,
			SupportMaterials: datatypes.NewJSONType(draft.SupportMaterials),
			HighlightedText:  datatypes.NewJSONType(draft.HighlightedText),
			Reason:           draft.Reason,
		})
	}
	created, err := s.topicRepo.Create(ctx, nil, topics)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	observability.StageCompleted(string(types.StageMining))
	s.log.Info("Mining complete", "project_id", project.ID, "topics", len(created))
	return created, nil
}

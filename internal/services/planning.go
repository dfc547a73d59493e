package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/logger"
	"github.com/yungbote/flowfactory-backend/internal/observability"
	"github.com/yungbote/flowfactory-backend/internal/repos"
	"github.com/yungbote/flowfactory-backend/internal/types"
	"github.com/yungbote/flowfactory-backend/internal/utils"
)

type PlanningRequest struct {
	OutputID uuid.UUID `json:"outputId" binding:"required"`
}

type UseNewTopicRequest struct {
	NewTopicID uuid.UUID `json:"newTopicId" binding:"required"`
}

type PlanningService interface {
	Run(ctx context.Context, req PlanningRequest) ([]*types.NewTopic, error)
	List(ctx context.Context, outputID uuid.UUID) ([]*types.NewTopic, error)
	MarkUsed(ctx context.Context, req UseNewTopicRequest) (*types.NewTopic, error)
}

type planningService struct {
	log          *logger.Logger
	gen          GenerationClient
	projectRepo  repos.ProjectRepo
	newTopicRepo repos.SeedTopicRepo
	resolve      *resolver
}

func NewPlanningService(
	log *logger.Logger,
	gen GenerationClient,
	projectRepo repos.ProjectRepo,
	topicRepo repos.TopicRepo,
	analysisRepo repos.AnalysisRepo,
	outputRepo repos.OutputRepo,
	newTopicRepo repos.SeedTopicRepo,
) PlanningService {
	return &planningService{
		log:          log.With("service", "PlanningService"),
		gen:          gen,
		projectRepo:  projectRepo,
		newTopicRepo: newTopicRepo,
		resolve: &resolver{
			projectRepo:  projectRepo,
			topicRepo:    topicRepo,
			analysisRepo: analysisRepo,
			outputRepo:   outputRepo,
		},
	}
}

// Run spins new topic directions off a finished deliverable and closes out
// the project.
func (s *planningService) Run(ctx context.Context, req PlanningRequest) ([]*types.NewTopic, error) {
	output, analysis, topic, project, err := s.resolve.output(ctx, req.OutputID)
	if err != nil {
		return nil, err
	}

	raw, err := s.gen.Generate(ctx, GenerateRequest{
		System:      planningSystemPrompt,
		User:        buildPlanningUserPrompt(topic, analysis, output),
		Temperature: 0.8,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	var result types.PlanningResult
	if err := json.Unmarshal([]byte(utils.ExtractJSONBlock(raw)), &result); err != nil {
		s.log.Error("Planning response is not valid JSON", "error", err, "output_id", output.ID)
		return nil, apierr.InvalidAIResponse(err)
	}
	if err := result.Validate(); err != nil {
		s.log.Error("Planning response failed validation", "error", err, "output_id", output.ID)
		return nil, apierr.InvalidAIResponse(err)
	}

	newTopics := make([]*types.NewTopic, 0, len(result.NewTopics))
	for _, draft := range result.NewTopics {
		newTopics = append(newTopics, &types.NewTopic{
			ID:             uuid.New(),
			OutputID:       output.ID,
			Title:          draft.Title,
			Direction:      draft.Direction,
			DirectionLabel: draft.DirectionLabel,
			Description:    draft.Description,
			PotentialAngle: draft.PotentialAngle,
		})
	}
	created, err := s.newTopicRepo.Create(ctx, nil, newTopics)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if err := s.projectRepo.UpdateStage(ctx, nil, project.ID, types.StageCompleted); err != nil {
		return nil, apierr.Internal(err)
	}

	observability.StageCompleted(string(types.StagePlanning))
	s.log.Info("Planning complete", "output_id", output.ID, "new_topics", len(created))
	return created, nil
}

func (s *planningService) List(ctx context.Context, outputID uuid.UUID) ([]*types.NewTopic, error) {
	output, _, _, _, err := s.resolve.output(ctx, outputID)
	if err != nil {
		return nil, err
	}
	topics, err := s.newTopicRepo.GetByOutputID(ctx, nil, output.ID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return topics, nil
}

func (s *planningService) MarkUsed(ctx context.Context, req UseNewTopicRequest) (*types.NewTopic, error) {
	newTopic, err := s.newTopicRepo.GetByID(ctx, nil, req.NewTopicID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if newTopic == nil {
		return nil, apierr.NotFound(errors.New("new topic not found"))
	}
	// Ownership check rides on the parent chain of the seeding output.
	if _, _, _, _, err := s.resolve.output(ctx, newTopic.OutputID); err != nil {
		return nil, err
	}
	if err := s.newTopicRepo.MarkUsed(ctx, nil, newTopic.ID); err != nil {
		return nil, apierr.Internal(err)
	}
	newTopic.IsUsed = true
	return newTopic, nil
}

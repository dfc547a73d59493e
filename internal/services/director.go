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

type DirectorRequest struct {
	AnalysisID uuid.UUID `json:"analysisId" binding:"required"`
}

type DirectorService interface {
	Run(ctx context.Context, req DirectorRequest) (*types.Output, error)
}

type directorService struct {
	log         *logger.Logger
	gen         GenerationClient
	projectRepo repos.ProjectRepo
	outputRepo  repos.OutputRepo
	resolve     *resolver
}

func NewDirectorService(
	log *logger.Logger,
	gen GenerationClient,
	projectRepo repos.ProjectRepo,
	topicRepo repos.TopicRepo,
	analysisRepo repos.AnalysisRepo,
	outputRepo repos.OutputRepo,
) DirectorService {
	return &directorService{
		log:         log.With("service", "DirectorService"),
		gen:         gen,
		projectRepo: projectRepo,
		outputRepo:  outputRepo,
		resolve:     &resolver{projectRepo: projectRepo, topicRepo: topicRepo, analysisRepo: analysisRepo},
	}
}

// Run produces a clip plan in one shot. Every invocation inserts its own
// Output row; regenerating keeps the earlier plans around.
func (s *directorService) Run(ctx context.Context, req DirectorRequest) (*types.Output, error) {
	analysis, topic, project, err := s.resolve.analysis(ctx, req.AnalysisID)
	if err != nil {
		return nil, err
	}

	raw, err := s.gen.Generate(ctx, GenerateRequest{
		System:      directorSystemPrompt,
		User:        buildDirectorUserPrompt(topic, analysis, project),
		Temperature: 0.7,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	var content types.DirectorContent
	if err := json.Unmarshal([]byte(utils.ExtractJSONBlock(raw)), &content); err != nil {
		s.log.Error("Director response is not valid JSON", "error", err, "analysis_id", analysis.ID)
		return nil, apierr.InvalidAIResponse(err)
	}
	if err := content.Validate(); err != nil {
		s.log.Error("Director response failed validation", "error", err, "analysis_id", analysis.ID)
		return nil, apierr.InvalidAIResponse(err)
	}

	blob := datatypes.NewJSONType(content)
	output := &types.Output{
		ID:              uuid.New(),
		AnalysisID:      analysis.ID,
		Type:            types.OutputTypeDirector,
		DirectorContent: &blob,
	}
	created, err := s.outputRepo.Create(ctx, nil, output)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if err := s.projectRepo.UpdateStage(ctx, nil, project.ID, types.StageDirector); err != nil {
		return nil, apierr.Internal(err)
	}

	observability.StageCompleted(string(types.StageDirector))
	s.log.Info("Director plan complete", "analysis_id", analysis.ID, "output_id", created.ID)
	return created, nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/logger"
	"github.com/yungbote/flowfactory-backend/internal/observability"
	"github.com/yungbote/flowfactory-backend/internal/repos"
	"github.com/yungbote/flowfactory-backend/internal/types"
	"github.com/yungbote/flowfactory-backend/internal/utils"
)

type CopywriterRequest struct {
	AnalysisID      uuid.UUID                `json:"analysisId" binding:"required"`
	Step            int                      `json:"step" binding:"required,min=1,max=4"`
	SelectedFormula *types.CopywriterFormula `json:"selectedFormula,omitempty"`
	SelectedTitle   *types.CopywriterTitle   `json:"selectedTitle,omitempty"`
}

// CopywriterStepResult carries the step's fresh model result alongside the
// persisted output row as it stands after the step.
type CopywriterStepResult struct {
	Step   int           `json:"step"`
	Result interface{}   `json:"result"`
	Output *types.Output `json:"output,omitempty"`
}

type CopywriterService interface {
	Run(ctx context.Context, req CopywriterRequest) (*CopywriterStepResult, error)
}

type copywriterService struct {
	log         *logger.Logger
	gen         GenerationClient
	projectRepo repos.ProjectRepo
	outputRepo  repos.OutputRepo
	resolve     *resolver
}

func NewCopywriterService(
	log *logger.Logger,
	gen GenerationClient,
	projectRepo repos.ProjectRepo,
	topicRepo repos.TopicRepo,
	analysisRepo repos.AnalysisRepo,
	outputRepo repos.OutputRepo,
) CopywriterService {
	return &copywriterService{
		log:         log.With("service", "CopywriterService"),
		gen:         gen,
		projectRepo: projectRepo,
		outputRepo:  outputRepo,
		resolve:     &resolver{projectRepo: projectRepo, topicRepo: topicRepo, analysisRepo: analysisRepo},
	}
}

// Run executes one of the four copywriter sub-steps against a single shared
// output row. Steps 2 and 3 update that row only when it already exists;
// without a prior step 1 their results are returned but not persisted.
func (s *copywriterService) Run(ctx context.Context, req CopywriterRequest) (*CopywriterStepResult, error) {
	analysis, topic, project, err := s.resolve.analysis(ctx, req.AnalysisID)
	if err != nil {
		return nil, err
	}

	existing, err := s.outputRepo.GetByAnalysisIDAndType(ctx, nil, analysis.ID, types.OutputTypeCopywriter)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	switch req.Step {
	case 1:
		return s.stepFormulas(ctx, analysis, topic, existing)
	case 2:
		return s.stepStructure(ctx, req, analysis, topic, existing)
	case 3:
		return s.stepTitles(ctx, analysis, topic, existing)
	case 4:
		return s.stepFullContent(ctx, req, analysis, topic, project, existing)
	default:
		return nil, apierr.InvalidInput(fmt.Errorf("step %d outside [1,4]", req.Step))
	}
}

func (s *copywriterService) stepFormulas(ctx context.Context, analysis *types.Analysis, topic *types.Topic, existing *types.Output) (*CopywriterStepResult, error) {
	raw, err := s.gen.Generate(ctx, GenerateRequest{
		System:      copywriterFormulaSystemPrompt,
		User:        buildFormulaUserPrompt(topic, analysis),
		Temperature: 0.7,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	var result types.FormulasResult
	if err := s.parseAndValidate(raw, &result, analysis.ID); err != nil {
		return nil, err
	}

	output := existing
	if output == nil {
		blob := datatypes.NewJSONType(types.CopywriterContent{Formulas: result.Formulas, CurrentStep: 1})
		output, err = s.outputRepo.Create(ctx, nil, &types.Output{
			ID:                uuid.New(),
			AnalysisID:        analysis.ID,
			Type:              types.OutputTypeCopywriter,
			CopywriterContent: &blob,
		})
		if err != nil {
			return nil, apierr.Internal(err)
		}
	} else {
		// A rerun refreshes the formulas but keeps whatever later steps
		// already wrote to the shared blob.
		var content types.CopywriterContent
		if output.CopywriterContent != nil {
			content = output.CopywriterContent.Data()
		}
		content.Formulas = result.Formulas
		content.CurrentStep = 1
		if err := s.outputRepo.UpdateCopywriterContent(ctx, nil, output.ID, content); err != nil {
			return nil, apierr.Internal(err)
		}
		if output, err = s.refetch(ctx, output.ID); err != nil {
			return nil, err
		}
	}
	return &CopywriterStepResult{Step: 1, Result: &result, Output: output}, nil
}

func (s *copywriterService) stepStructure(ctx context.Context, req CopywriterRequest, analysis *types.Analysis, topic *types.Topic, existing *types.Output) (*CopywriterStepResult, error) {
	if req.SelectedFormula == nil {
		return nil, apierr.InvalidInput(errors.New("step 2 requires selectedFormula"))
	}

	raw, err := s.gen.Generate(ctx, GenerateRequest{
		System:      copywriterStructureSystemPrompt,
		User:        buildStructureUserPrompt(req.SelectedFormula, topic, analysis),
		Temperature: 0.7,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	var result types.StructureResult
	if err := s.parseAndValidate(raw, &result, analysis.ID); err != nil {
		return nil, err
	}

	output := existing
	if output != nil && output.CopywriterContent != nil {
		content := output.CopywriterContent.Data()
		content.SelectedFormula = req.SelectedFormula
		content.Structure = result.Structure
		content.TotalEstimatedWords = result.TotalEstimatedWords
		content.CurrentStep = 2
		if err := s.outputRepo.UpdateCopywriterContent(ctx, nil, output.ID, content); err != nil {
			return nil, apierr.Internal(err)
		}
		if output, err = s.refetch(ctx, output.ID); err != nil {
			return nil, err
		}
	}
	return &CopywriterStepResult{Step: 2, Result: &result, Output: output}, nil
}

func (s *copywriterService) stepTitles(ctx context.Context, analysis *types.Analysis, topic *types.Topic, existing *types.Output) (*CopywriterStepResult, error) {
	raw, err := s.gen.Generate(ctx, GenerateRequest{
		System:      copywriterTitleSystemPrompt,
		User:        buildTitleUserPrompt(topic, analysis),
		Temperature: 0.8,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	var result types.TitlesResult
	if err := s.parseAndValidate(raw, &result, analysis.ID); err != nil {
		return nil, err
	}

	output := existing
	if output != nil && output.CopywriterContent != nil {
		content := output.CopywriterContent.Data()
		content.Titles = result.Titles
		content.CurrentStep = 3
		if err := s.outputRepo.UpdateCopywriterContent(ctx, nil, output.ID, content); err != nil {
			return nil, apierr.Internal(err)
		}
		if output, err = s.refetch(ctx, output.ID); err != nil {
			return nil, err
		}
	}
	return &CopywriterStepResult{Step: 3, Result: &result, Output: output}, nil
}

func (s *copywriterService) stepFullContent(ctx context.Context, req CopywriterRequest, analysis *types.Analysis, topic *types.Topic, project *types.Project, existing *types.Output) (*CopywriterStepResult, error) {
	if req.SelectedTitle == nil {
		return nil, apierr.InvalidInput(errors.New("step 4 requires selectedTitle"))
	}
	if existing == nil || existing.CopywriterContent == nil {
		return nil, apierr.Precondition(errors.New("step 4 requires prior copywriter steps"))
	}
	content := existing.CopywriterContent.Data()
	if len(content.Structure) == 0 {
		return nil, apierr.Precondition(errors.New("step 4 requires a generated structure"))
	}

	// Markdown body, no JSON wrapping.
	fullContent, err := s.gen.Generate(ctx, GenerateRequest{
		System:      copywriterContentSystemPrompt,
		User:        buildContentUserPrompt(req.SelectedTitle, content.Structure, topic, analysis, project),
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}
	if fullContent == "" {
		return nil, apierr.InvalidAIResponse(errors.New("empty full content"))
	}

	content.SelectedTitle = req.SelectedTitle
	content.FullContent = fullContent
	content.CurrentStep = 4
	if err := s.outputRepo.UpdateCopywriterContent(ctx, nil, existing.ID, content); err != nil {
		return nil, apierr.Internal(err)
	}
	output, err := s.refetch(ctx, existing.ID)
	if err != nil {
		return nil, err
	}
	if err := s.projectRepo.UpdateStage(ctx, nil, project.ID, types.StageCopywriter); err != nil {
		return nil, apierr.Internal(err)
	}

	observability.StageCompleted(string(types.StageCopywriter))
	s.log.Info("Copywriter content complete", "analysis_id", analysis.ID, "output_id", output.ID)
	return &CopywriterStepResult{Step: 4, Result: fullContent, Output: output}, nil
}

type validatable interface {
	Validate() error
}

func (s *copywriterService) parseAndValidate(raw string, out validatable, analysisID uuid.UUID) error {
	if err := json.Unmarshal([]byte(utils.ExtractJSONBlock(raw)), out); err != nil {
		s.log.Error("Copywriter response is not valid JSON", "error", err, "analysis_id", analysisID)
		return apierr.InvalidAIResponse(err)
	}
	if err := out.Validate(); err != nil {
		s.log.Error("Copywriter response failed validation", "error", err, "analysis_id", analysisID)
		return apierr.InvalidAIResponse(err)
	}
	return nil
}

func (s *copywriterService) refetch(ctx context.Context, outputID uuid.UUID) (*types.Output, error) {
	output, err := s.outputRepo.GetByID(ctx, nil, outputID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if output == nil {
		return nil, apierr.Internal(fmt.Errorf("output %s disappeared", outputID))
	}
	return output, nil
}

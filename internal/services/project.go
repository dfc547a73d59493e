package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/logger"
	"github.com/yungbote/flowfactory-backend/internal/repos"
	"github.com/yungbote/flowfactory-backend/internal/types"
)

const defaultProjectListLimit = 20

type CreateProjectRequest struct {
	Title        string `json:"title" binding:"required,max=255"`
	OriginalText string `json:"originalText" binding:"required"`
}

type UpdateProjectTitleRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

// TopicDetail bundles a topic with everything hanging off it.
type TopicDetail struct {
	Topic    *types.Topic      `json:"topic"`
	Analyses []*AnalysisDetail `json:"analyses"`
}

type AnalysisDetail struct {
	Analysis *types.Analysis `json:"analysis"`
	Outputs  []*types.Output `json:"outputs"`
}

type ProjectDetail struct {
	Project *types.Project `json:"project"`
	Topics  []*TopicDetail `json:"topics"`
}

type ProjectService interface {
	Create(ctx context.Context, req CreateProjectRequest) (*types.Project, error)
	List(ctx context.Context, limit int) ([]*types.Project, error)
	GetDetail(ctx context.Context, projectID uuid.UUID) (*ProjectDetail, error)
	UpdateTitle(ctx context.Context, projectID uuid.UUID, req UpdateProjectTitleRequest) (*types.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID) error
}

type projectService struct {
	log          *logger.Logger
	db           *gorm.DB
	projectRepo  repos.ProjectRepo
	topicRepo    repos.TopicRepo
	analysisRepo repos.AnalysisRepo
	outputRepo   repos.OutputRepo
	resolve      *resolver
}

func NewProjectService(
	db *gorm.DB,
	log *logger.Logger,
	projectRepo repos.ProjectRepo,
	topicRepo repos.TopicRepo,
	analysisRepo repos.AnalysisRepo,
	outputRepo repos.OutputRepo,
) ProjectService {
	return &projectService{
		log:          log.With("service", "ProjectService"),
		db:           db,
		projectRepo:  projectRepo,
		topicRepo:    topicRepo,
		analysisRepo: analysisRepo,
		outputRepo:   outputRepo,
		resolve: &resolver{
			projectRepo:  projectRepo,
			topicRepo:    topicRepo,
			analysisRepo: analysisRepo,
			outputRepo:   outputRepo,
		},
	}
}

func (s *projectService) Create(ctx context.Context, req CreateProjectRequest) (*types.Project, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(req.OriginalText)) < 10 {
		return nil, apierr.InvalidInput(errors.New("originalText must be at least 10 characters"))
	}
	project := &types.Project{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        strings.TrimSpace(req.Title),
		OriginalText: req.OriginalText,
		CurrentStage: types.StageMining,
	}
	created, err := s.projectRepo.Create(ctx, nil, project)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	s.log.Info("Project created", "project_id", created.ID, "user_id", userID)
	return created, nil
}

func (s *projectService) List(ctx context.Context, limit int) ([]*types.Project, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultProjectListLimit
	}
	projects, err := s.projectRepo.GetByUserID(ctx, nil, userID, limit)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return projects, nil
}

// GetDetail loads the whole tree under a project: topics, each topic's
// analyses, each analysis' outputs.
func (s *projectService) GetDetail(ctx context.Context, projectID uuid.UUID) (*ProjectDetail, error) {
	project, err := s.resolve.project(ctx, projectID)
	if err != nil {
		return nil, err
	}

	topics, err := s.topicRepo.GetByProjectID(ctx, nil, projectID)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	detail := &ProjectDetail{Project: project, Topics: make([]*TopicDetail, 0, len(topics))}
	for _, topic := range topics {
		analyses, err := s.analysisRepo.GetByTopicID(ctx, nil, topic.ID)
		if err != nil {
			return nil, apierr.Internal(err)
		}
		td := &TopicDetail{Topic: topic, Analyses: make([]*AnalysisDetail, 0, len(analyses))}
		for _, analysis := range analyses {
			outputs, err := s.outputRepo.GetByAnalysisID(ctx, nil, analysis.ID)
			if err != nil {
				return nil, apierr.Internal(err)
			}
			td.Analyses = append(td.Analyses, &AnalysisDetail{Analysis: analysis, Outputs: outputs})
		}
		detail.Topics = append(detail.Topics, td)
	}
	return detail, nil
}

func (s *projectService) UpdateTitle(ctx context.Context, projectID uuid.UUID, req UpdateProjectTitleRequest) (*types.Project, error) {
	if _, err := s.resolve.project(ctx, projectID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apierr.InvalidInput(errors.New("title must not be empty"))
	}
	if err := s.projectRepo.UpdateTitle(ctx, nil, projectID, title); err != nil {
		return nil, apierr.Internal(err)
	}
	updated, err := s.projectRepo.GetByID(ctx, nil, projectID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if updated == nil {
		return nil, apierr.NotFound(fmt.Errorf("project %s not found", projectID))
	}
	return updated, nil
}

func (s *projectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	if _, err := s.resolve.project(ctx, projectID); err != nil {
		return err
	}
	if err := s.projectRepo.Delete(ctx, nil, projectID); err != nil {
		return apierr.Internal(err)
	}
	s.log.Info("Project deleted", "project_id", projectID)
	return nil
}

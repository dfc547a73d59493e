package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/repos"
	"github.com/yungbote/flowfactory-backend/internal/requestdata"
	"github.com/yungbote/flowfactory-backend/internal/types"
)

// resolver walks parent chains back to the owning project and checks the
// caller owns it. Every stage service goes through this before touching
// anything, so a foreign or dangling ID can never leak another user's data.
type resolver struct {
	projectRepo  repos.ProjectRepo
	topicRepo    repos.TopicRepo
	analysisRepo repos.AnalysisRepo
	outputRepo   repos.OutputRepo
}

func callerID(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.Unauthorized(errors.New("missing request identity"))
	}
	return rd.UserID, nil
}

func (r *resolver) project(ctx context.Context, projectID uuid.UUID) (*types.Project, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	project, err := r.projectRepo.GetByID(ctx, nil, projectID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if project == nil {
		return nil, apierr.NotFound(fmt.Errorf("project %s not found", projectID))
	}
	if project.UserID != userID {
		return nil, apierr.Forbidden(errors.New("project belongs to another user"))
	}
	return project, nil
}

func (r *resolver) topic(ctx context.Context, topicID uuid.UUID) (*types.Topic, *types.Project, error) {
	topic, err := r.topicRepo.GetByID(ctx, nil, topicID)
	if err != nil {
		return nil, nil, apierr.Internal(err)
	}
	if topic == nil {
		return nil, nil, apierr.NotFound(fmt.Errorf("topic %s not found", topicID))
	}
	project, err := r.project(ctx, topic.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return topic, project, nil
}

func (r *resolver) analysis(ctx context.Context, analysisID uuid.UUID) (*types.Analysis, *types.Topic, *types.Project, error) {
	analysis, err := r.analysisRepo.GetByID(ctx, nil, analysisID)
	if err != nil {
		return nil, nil, nil, apierr.Internal(err)
	}
	if analysis == nil {
		return nil, nil, nil, apierr.NotFound(fmt.Errorf("analysis %s not found", analysisID))
	}
	topic, project, err := r.topic(ctx, analysis.TopicID)
	if err != nil {
		return nil, nil, nil, err
	}
	return analysis, topic, project, nil
}

func (r *resolver) output(ctx context.Context, outputID uuid.UUID) (*types.Output, *types.Analysis, *types.Topic, *types.Project, error) {
	output, err := r.outputRepo.GetByID(ctx, nil, outputID)
	if err != nil {
		return nil, nil, nil, nil, apierr.Internal(err)
	}
	if output == nil {
		return nil, nil, nil, nil, apierr.NotFound(fmt.Errorf("output %s not found", outputID))
	}
	analysis, topic, project, err := r.analysis(ctx, output.AnalysisID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return output, analysis, topic, project, nil
}

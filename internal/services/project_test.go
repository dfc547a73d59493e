package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/logger"
	"github.com/yungbote/flowfactory-backend/internal/types"
)

func newProjectService(env *testEnv) ProjectService {
	return NewProjectService(env.db, logger.NewNop(), env.projectRepo, env.topicRepo, env.analysisRepo, env.outputRepo)
}

func TestCreateProjectStartsAtMining(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	svc := newProjectService(env)

	project, err := svc.Create(authedCtx(user.ID), CreateProjectRequest{
		Title:        "周会录音",
		OriginalText: "这是一段足够长的录音转写文本，讲了内容创作的看法。",
	})
	require.NoError(t, err)
	require.Equal(t, types.StageMining, project.CurrentStage)
	require.Equal(t, user.ID, project.UserID)
}

func TestCreateProjectRejectsShortText(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	svc := newProjectService(env)

	_, err := svc.Create(authedCtx(user.ID), CreateProjectRequest{Title: "t", OriginalText: "太短"})
	require.Equal(t, 400, apierr.From(err).Status)
}

func TestListProjectsScopedToCaller(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t)
	bob := env.seedUser(t)
	env.seedProject(t, alice.ID)
	env.seedProject(t, alice.ID)
	env.seedProject(t, bob.ID)
	svc := newProjectService(env)

	mine, err := svc.List(authedCtx(alice.ID), 0)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, p := range mine {
		require.Equal(t, alice.ID, p.UserID)
	}
}

func TestGetDetailLoadsFullTree(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	project := env.seedProject(t, user.ID)
	topic := env.seedTopic(t, project.ID)
	analysis := env.seedAnalysis(t, topic.ID)
	env.seedCopywriterOutput(t, analysis.ID, types.CopywriterContent{CurrentStep: 1})
	svc := newProjectService(env)

	detail, err := svc.GetDetail(authedCtx(user.ID), project.ID)
	require.NoError(t, err)
	require.Equal(t, project.ID, detail.Project.ID)
	require.Len(t, detail.Topics, 1)
	require.Len(t, detail.Topics[0].Analyses, 1)
	require.Len(t, detail.Topics[0].Analyses[0].Outputs, 1)
}

func TestGetDetailOwnershipChecks(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t)
	stranger := env.seedUser(t)
	project := env.seedProject(t, owner.ID)
	svc := newProjectService(env)

	_, err := svc.GetDetail(authedCtx(stranger.ID), project.ID)
	require.Equal(t, 403, apierr.From(err).Status)

	_, err = svc.GetDetail(authedCtx(owner.ID), uuid.New())
	require.Equal(t, 404, apierr.From(err).Status)
}

func TestUpdateTitleAndDelete(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	project := env.seedProject(t, user.ID)
	svc := newProjectService(env)

	updated, err := svc.UpdateTitle(authedCtx(user.ID), project.ID, UpdateProjectTitleRequest{Title: "新标题"})
	require.NoError(t, err)
	require.Equal(t, "新标题", updated.Title)

	require.NoError(t, svc.Delete(authedCtx(user.ID), project.ID))
	_, err = svc.GetDetail(authedCtx(user.ID), project.ID)
	require.Equal(t, 404, apierr.From(err).Status)
}

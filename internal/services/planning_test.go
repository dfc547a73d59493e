package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/logger"
	"github.com/yungbote/flowfactory-backend/internal/types"
)

const planningResponse = `{
	"newTopics": [
		{"title": "为什么迎合式内容越来越难做", "direction": "up", "directionLabel": "原因探究", "description": "挖平台算法与观众疲劳的底层原因", "potentialAngle": "平台视角"},
		{"title": "坚持自我表达一年后会发生什么", "direction": "down", "directionLabel": "结果预测", "description": "推演长期做真实内容的账号走向", "potentialAngle": "时间线推演"},
		{"title": "职场汇报里的取悦自己", "direction": "parallel", "directionLabel": "相关场景", "description": "同样的原则在汇报场景的应用", "potentialAngle": "场景迁移"}
	]
}`

func newPlanningService(env *testEnv, gen GenerationClient) PlanningService {
	return NewPlanningService(logger.NewNop(), gen, env.projectRepo, env.topicRepo, env.analysisRepo, env.outputRepo, env.newTopicRepo)
}

func TestPlanningCreatesNewTopicsAndCompletesProject(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	project := env.seedProject(t, user.ID)
	topic := env.seedTopic(t, project.ID)
	analysis := env.seedAnalysis(t, topic.ID)
	output := env.seedCopywriterOutput(t, analysis.ID, types.CopywriterContent{
		SelectedFormula: &types.CopywriterFormula{Name: "对比反差"},
		SelectedTitle:   &types.CopywriterTitle{Title: "停止迎合观众"},
		FullContent:     "正文",
		CurrentStep:     4,
	})
	gen := &scriptedClient{responses: []string{planningResponse}}

	newTopics, err := newPlanningService(env, gen).Run(authedCtx(user.ID), PlanningRequest{OutputID: output.ID})
	require.NoError(t, err)
	require.Len(t, newTopics, 3)
	require.Equal(t, types.DirectionUp, newTopics[0].Direction)
	require.False(t, newTopics[0].IsUsed)

	require.InEpsilon(t, 0.8, gen.requests[0].Temperature, 1e-9)
	require.Contains(t, gen.requests[0].User, "停止迎合观众")

	reloaded, err := env.projectRepo.GetByID(context.Background(), nil, project.ID)
	require.NoError(t, err)
	require.Equal(t, types.StageCompleted, reloaded.CurrentStage)
}

func TestPlanningSummarizesDirectorOutput(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	project := env.seedProject(t, user.ID)
	topic := env.seedTopic(t, project.ID)
	analysis := env.seedAnalysis(t, topic.ID)

	blob := datatypes.NewJSONType(types.DirectorContent{
		ContentType: "观点类",
		Structure:   types.DirectorStructure{Name: "观点三段式", Description: "d", Parts: []string{"开头"}},
		ClipPoints:  []types.ClipPoint{{Part: "开头", Purpose: "p", OriginalText: "o", Duration: "5"}},
		Preview:     "一条观点短视频",
	})
	output := &types.Output{ID: uuid.New(), AnalysisID: analysis.ID, Type: types.OutputTypeDirector, DirectorContent: &blob}
	require.NoError(t, env.db.Create(output).Error)

	gen := &scriptedClient{responses: []string{planningResponse}}
	_, err := newPlanningService(env, gen).Run(authedCtx(user.ID), PlanningRequest{OutputID: output.ID})
	require.NoError(t, err)
	require.Contains(t, gen.requests[0].User, "编导方案")
	require.Contains(t, gen.requests[0].User, "观点三段式")
}

func TestPlanningRejectsUnknownDirection(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	project := env.seedProject(t, user.ID)
	topic := env.seedTopic(t, project.ID)
	analysis := env.seedAnalysis(t, topic.ID)
	output := env.seedCopywriterOutput(t, analysis.ID, types.CopywriterContent{CurrentStep: 4})
	gen := &scriptedClient{responses: []string{`{"newTopics":[{"title":"t","direction":"sideways","directionLabel":"l","description":"d"}]}`}}

	_, err := newPlanningService(env, gen).Run(authedCtx(user.ID), PlanningRequest{OutputID: output.ID})
	require.Error(t, err)
	require.Equal(t, "invalid_ai_response", apierr.From(err).Code)

	stored, err := env.newTopicRepo.GetByOutputID(context.Background(), nil, output.ID)
	require.NoError(t, err)
	require.Empty(t, stored)

	reloaded, err := env.projectRepo.GetByID(context.Background(), nil, project.ID)
	require.NoError(t, err)
	require.Equal(t, types.StageMining, reloaded.CurrentStage)
}

func TestPlanningListAndMarkUsed(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	project := env.seedProject(t, user.ID)
	topic := env.seedTopic(t, project.ID)
	analysis := env.seedAnalysis(t, topic.ID)
	output := env.seedCopywriterOutput(t, analysis.ID, types.CopywriterContent{CurrentStep: 4})
	gen := &scriptedClient{responses: []string{planningResponse}}
	svc := newPlanningService(env, gen)

	created, err := svc.Run(authedCtx(user.ID), PlanningRequest{OutputID: output.ID})
	require.NoError(t, err)

	listed, err := svc.List(authedCtx(user.ID), output.ID)
	require.NoError(t, err)
	require.Len(t, listed, len(created))

	used, err := svc.MarkUsed(authedCtx(user.ID), UseNewTopicRequest{NewTopicID: created[0].ID})
	require.NoError(t, err)
	require.True(t, used.IsUsed)

	// A stranger cannot mark someone else's seed topic.
	stranger := env.seedUser(t)
	_, err = svc.MarkUsed(authedCtx(stranger.ID), UseNewTopicRequest{NewTopicID: created[1].ID})
	require.Equal(t, 403, apierr.From(err).Status)
}

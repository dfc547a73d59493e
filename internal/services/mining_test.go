package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/logger"
	"github.com/yungbote/flowfactory-backend/internal/types"
)

const miningResponse = `{
	"topics": [
		{
			"title": "先取悦自己",
			"coreIdea": "做内容先过自己这一关",
			"emotionLevel": 4,
			"supportMaterials": {"cases": 1, "quotes": 2, "data": 0},
			"highlightedText": ["自己都不信的内容不要发"],
			"reason": "观点有锐度"
		},
		{
			"title": "拒绝数据焦虑",
			"coreIdea": "单条爆款不代表账号健康",
			"emotionLevel": 3,
			"supportMaterials": {"cases": 0, "quotes": 1, "data": 1},
			"highlightedText": [],
			"reason": "反常识"
		}
	]
}`

func newMiningService(env *testEnv, gen GenerationClient) MiningService {
	return NewMiningService(logger.NewNop(), gen, env.projectRepo, env.topicRepo)
}

func TestMiningPersistsTopicsWithoutAdvancingStage(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	project := env.seedProject(t, user.ID)
	gen := &scriptedClient{responses: []string{miningResponse}}

	topics, err := newMiningService(env, gen).Run(authedCtx(user.ID), MiningRequest{ProjectID: project.ID})
	require.NoError(t, err)
	require.Len(t, topics, 2)
	require.Equal(t, "先取悦自己", topics[0].Title)
	require.Equal(t, 4, topics[0].EmotionLevel)
	require.False(t, topics[0].IsSelected)

	require.Len(t, gen.requests, 1)
	require.True(t, gen.requests[0].JSONMode)
	require.InEpsilon(t, 0.7, gen.requests[0].Temperature, 1e-9)
	require.Contains(t, gen.requests[0].User, project.OriginalText)

	// Mining never advances the stage; a topic still has to be chosen.
	reloaded, err := env.projectRepo.GetByID(context.Background(), nil, project.ID)
	require.NoError(t, err)
	require.Equal(t, types.StageMining, reloaded.CurrentStage)
}

func TestMiningAcceptsFencedJSON(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	project := env.seedProject(t, user.ID)
	gen := &scriptedClient{responses: []string{"```json\n" + miningResponse + "\n```"}}

	topics, err := newMiningService(env, gen).Run(authedCtx(user.ID), MiningRequest{ProjectID: project.ID})
	require.NoError(t, err)
	require.Len(t, topics, 2)
}

func TestMiningRejectsInvalidResponseWithoutPersisting(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	project := env.seedProject(t, user.ID)
	// emotionLevel out of range must be rejected, not clamped.
	gen := &scriptedClient{responses: []string{`{"topics":[{"title":"t","coreIdea":"c","emotionLevel":6,"supportMaterials":{},"highlightedText":[]}]}`}}

	_, err := newMiningService(env, gen).Run(authedCtx(user.ID), MiningRequest{ProjectID: project.ID})
	require.Error(t, err)
	require.Equal(t, "invalid_ai_response", apierr.From(err).Code)

	stored, err := env.topicRepo.GetByProjectID(context.Background(), nil, project.ID)
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestMiningGenerationFailurePassesThrough(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	project := env.seedProject(t, user.ID)
	gen := &scriptedClient{errs: []error{apierr.GenerationFailed(errors.New("backend down"))}}

	_, err := newMiningService(env, gen).Run(authedCtx(user.ID), MiningRequest{ProjectID: project.ID})
	require.Error(t, err)
	require.Equal(t, "generation_failed", apierr.From(err).Code)
}

func TestMiningOwnershipAndExistence(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t)
	stranger := env.seedUser(t)
	project := env.seedProject(t, owner.ID)
	svc := newMiningService(env, &scriptedClient{responses: []string{miningResponse}})

	_, err := svc.Run(authedCtx(stranger.ID), MiningRequest{ProjectID: project.ID})
	require.Equal(t, 403, apierr.From(err).Status)

	_, err = svc.Run(authedCtx(owner.ID), MiningRequest{ProjectID: uuid.New()})
	require.Equal(t, 404, apierr.From(err).Status)
}

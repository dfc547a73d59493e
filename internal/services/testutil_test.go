package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/flowfactory-backend/internal/logger"
	"github.com/yungbote/flowfactory-backend/internal/repos"
	"github.com/yungbote/flowfactory-backend/internal/requestdata"
	"github.com/yungbote/flowfactory-backend/internal/types"
)

// testEnv wires repos against a throwaway sqlite file so service logic runs
// against real SQL.
type testEnv struct {
	db           *gorm.DB
	userRepo     repos.UserRepo
	tokenRepo    repos.UserTokenRepo
	projectRepo  repos.ProjectRepo
	topicRepo    repos.TopicRepo
	analysisRepo repos.AnalysisRepo
	outputRepo   repos.OutputRepo
	newTopicRepo repos.SeedTopicRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Project{},
		&types.Topic{},
		&types.Analysis{},
		&types.Output{},
		&types.NewTopic{},
	))

	log := logger.NewNop()
	return &testEnv{
		db:           gormDB,
		userRepo:     repos.NewUserRepo(gormDB, log),
		tokenRepo:    repos.NewUserTokenRepo(gormDB, log),
		projectRepo:  repos.NewProjectRepo(gormDB, log),
		topicRepo:    repos.NewTopicRepo(gormDB, log),
		analysisRepo: repos.NewAnalysisRepo(gormDB, log),
		outputRepo:   repos.NewOutputRepo(gormDB, log),
		newTopicRepo: repos.NewSeedTopicRepo(gormDB, log),
	}
}

func (e *testEnv) seedUser(t *testing.T) *types.User {
	t.Helper()
	user := &types.User{ID: uuid.New(), Email: uuid.NewString() + "@example.com", Password: "x"}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) seedProject(t *testing.T, userID uuid.UUID) *types.Project {
	t.Helper()
	project := &types.Project{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        "录音整理",
		OriginalText: "这是一段足够长的录音转写文本，讲了关于内容创作的一些看法。",
		CurrentStage: types.StageMining,
	}
	require.NoError(t, e.db.Create(project).Error)
	return project
}

func (e *testEnv) seedTopic(t *testing.T, projectID uuid.UUID) *types.Topic {
	t.Helper()
	topic := &types.Topic{
		ID:               uuid.New(),
		ProjectID:        projectID,
		Title:            "内容要先取悦自己",
		CoreIdea:         "做内容先过自己这一关",
		EmotionLevel:     4,
		SupportMaterials: datatypes.NewJSONType(types.SupportMaterials{Cases: 1, Quotes: 2}),
		HighlightedText:  datatypes.NewJSONType([]string{"自己都不信的内容不要发"}),
	}
	require.NoError(t, e.db.Create(topic).Error)
	return topic
}

func (e *testEnv) seedAnalysis(t *testing.T, topicID uuid.UUID) *types.Analysis {
	t.Helper()
	analysis := &types.Analysis{
		ID:           uuid.New(),
		TopicID:      topicID,
		CoreArgument: "先取悦自己的内容才有生命力",
		CognitiveContrast: datatypes.NewJSONType(types.CognitiveContrast{
			CommonBelief: "内容要迎合观众",
			OurPoint:     "内容要先过作者自己",
			Tension:      "迎合换不来信任",
		}),
		LogicChain: datatypes.NewJSONType(types.LogicChain{
			Because:  "作者不信的内容缺乏细节",
			So:       "观众能感觉到敷衍",
			Moreover: "长期会消耗账号信任",
		}),
		SpreadElements: datatypes.NewJSONType(types.SpreadElements{
			Quotes: []string{"自己都不信的内容不要发"},
		}),
		AudienceQuestions: datatypes.NewJSONType([]types.AudienceQuestion{
			{Question: "数据不好怎么办", AnswerDirection: "看长期留存而不是单条爆款"},
		}),
	}
	require.NoError(t, e.db.Create(analysis).Error)
	return analysis
}

func (e *testEnv) seedCopywriterOutput(t *testing.T, analysisID uuid.UUID, content types.CopywriterContent) *types.Output {
	t.Helper()
	blob := datatypes.NewJSONType(content)
	output := &types.Output{
		ID:                uuid.New(),
		AnalysisID:        analysisID,
		Type:              types.OutputTypeCopywriter,
		CopywriterContent: &blob,
	}
	require.NoError(t, e.db.Create(output).Error)
	return output
}

func authedCtx(userID uuid.UUID) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})
}

// scriptedClient returns canned responses in order and records requests.
type scriptedClient struct {
	responses []string
	errs      []error
	requests  []GenerateRequest
}

func (c *scriptedClient) Generate(_ context.Context, req GenerateRequest) (string, error) {
	i := len(c.requests)
	c.requests = append(c.requests, req)
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i < len(c.responses) {
		return c.responses[i], nil
	}
	return "", nil
}

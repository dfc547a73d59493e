package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/flowfactory-backend/internal/logger"
	"github.com/yungbote/flowfactory-backend/internal/types"
)

type AnalysisRepo interface {
	Create(ctx context.Context, tx *gorm.DB, analysis *types.Analysis) (*types.Analysis, error)
	GetByID(ctx context.Context, tx *gorm.DB, analysisID uuid.UUID) (*types.Analysis, error)
	GetByTopicID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*types.Analysis, error)
}

type analysisRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnalysisRepo(db *gorm.DB, baseLog *logger.Logger) AnalysisRepo {
	return &analysisRepo{db: db, log: baseLog.With("repo", "AnalysisRepo")}
}

func (ar *analysisRepo) Create(ctx context.Context, tx *gorm.DB, analysis *types.Analysis) (*types.Analysis, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if err := transaction.WithContext(ctx).Create(analysis).Error; err != nil {
		return nil, err
	}
	return analysis, nil
}

func (ar *analysisRepo) GetByID(ctx context.Context, tx *gorm.DB, analysisID uuid.UUID) (*types.Analysis, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var analysis types.Analysis
	err := transaction.WithContext(ctx).Where("id = ?", analysisID).First(&analysis).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

// GetByTopicID returns every analysis for the topic, newest first. A topic is
// allowed to have several; re-analysis appends.
func (ar *analysisRepo) GetByTopicID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*types.Analysis, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Analysis
	if err := transaction.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

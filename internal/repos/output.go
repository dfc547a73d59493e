package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/flowfactory-backend/internal/logger"
	"github.com/yungbote/flowfactory-backend/internal/types"
)

type OutputRepo interface {
	Create(ctx context.Context, tx *gorm.DB, output *types.Output) (*types.Output, error)
	GetByID(ctx context.Context, tx *gorm.DB, outputID uuid.UUID) (*types.Output, error)
	GetByAnalysisIDAndType(ctx context.Context, tx *gorm.DB, analysisID uuid.UUID, outputType types.OutputType) (*types.Output, error)
	GetByAnalysisID(ctx context.Context, tx *gorm.DB, analysisID uuid.UUID) ([]*types.Output, error)
	UpdateCopywriterContent(ctx context.Context, tx *gorm.DB, outputID uuid.UUID, content types.CopywriterContent) error
}

type outputRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOutputRepo(db *gorm.DB, baseLog *logger.Logger) OutputRepo {
	return &outputRepo{db: db, log: baseLog.With("repo", "OutputRepo")}
}

func (or *outputRepo) Create(ctx context.Context, tx *gorm.DB, output *types.Output) (*types.Output, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	if err := transaction.WithContext(ctx).Create(output).Error; err != nil {
		return nil, err
	}
	return output, nil
}

func (or *outputRepo) GetByID(ctx context.Context, tx *gorm.DB, outputID uuid.UUID) (*types.Output, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var output types.Output
	err := transaction.WithContext(ctx).Where("id = ?", outputID).First(&output).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &output, nil
}

func (or *outputRepo) GetByAnalysisIDAndType(ctx context.Context, tx *gorm.DB, analysisID uuid.UUID, outputType types.OutputType) (*types.Output, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var output types.Output
	err := transaction.WithContext(ctx).
		Where("analysis_id = ? AND type = ?", analysisID, outputType).
		Order("created_at DESC").
		First(&output).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &output, nil
}

func (or *outputRepo) GetByAnalysisID(ctx context.Context, tx *gorm.DB, analysisID uuid.UUID) ([]*types.Output, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Output
	if err := transaction.WithContext(ctx).
		Where("analysis_id = ?", analysisID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateCopywriterContent overwrites the whole JSON blob; last write wins, no
// optimistic concurrency token.
func (or *outputRepo) UpdateCopywriterContent(ctx context.Context, tx *gorm.DB, outputID uuid.UUID, content types.CopywriterContent) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	blob := datatypes.NewJSONType(content)
	return transaction.WithContext(ctx).
		Model(&types.Output{}).
		Where("id = ?", outputID).
		Update("copywriter_content", &blob).Error
}

package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/flowfactory-backend/internal/logger"
	"github.com/yungbote/flowfactory-backend/internal/types"
)

// SeedTopicRepo stores the NewTopic rows the planning stage produces.
type SeedTopicRepo interface {
	Create(ctx context.Context, tx *gorm.DB, topics []*types.NewTopic) ([]*types.NewTopic, error)
	GetByID(ctx context.Context, tx *gorm.DB, newTopicID uuid.UUID) (*types.NewTopic, error)
	GetByOutputID(ctx context.Context, tx *gorm.DB, outputID uuid.UUID) ([]*types.NewTopic, error)
	MarkUsed(ctx context.Context, tx *gorm.DB, newTopicID uuid.UUID) error
}

type seedTopicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSeedTopicRepo(db *gorm.DB, baseLog *logger.Logger) SeedTopicRepo {
	return &seedTopicRepo{db: db, log: baseLog.With("repo", "SeedTopicRepo")}
}

func (nr *seedTopicRepo) Create(ctx context.Context, tx *gorm.DB, topics []*types.NewTopic) ([]*types.NewTopic, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	if len(topics) == 0 {
		return []*types.NewTopic{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (nr *seedTopicRepo) GetByID(ctx context.Context, tx *gorm.DB, newTopicID uuid.UUID) (*types.NewTopic, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	var topic types.NewTopic
	err := transaction.WithContext(ctx).Where("id = ?", newTopicID).First(&topic).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (nr *seedTopicRepo) GetByOutputID(ctx context.Context, tx *gorm.DB, outputID uuid.UUID) ([]*types.NewTopic, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	var results []*types.NewTopic
	if err := transaction.WithContext(ctx).
		Where("output_id = ?", outputID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (nr *seedTopicRepo) MarkUsed(ctx context.Context, tx *gorm.DB, newTopicID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.NewTopic{}).
		Where("id = ?", newTopicID).
		Update("is_used", true).Error
}

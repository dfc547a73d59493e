package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/flowfactory-backend/internal/logger"
	"github.com/yungbote/flowfactory-backend/internal/types"
)

type TopicRepo interface {
	Create(ctx context.Context, tx *gorm.DB, topics []*types.Topic) ([]*types.Topic, error)
	GetByID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error)
	GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.Topic, error)
	MarkSelected(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) error
}

type topicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	return &topicRepo{db: db, log: baseLog.With("repo", "TopicRepo")}
}

func (tr *topicRepo) Create(ctx context.Context, tx *gorm.DB, topics []*types.Topic) ([]*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(topics) == 0 {
		return []*types.Topic{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (tr *topicRepo) GetByID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var topic types.Topic
	err := transaction.WithContext(ctx).Where("id = ?", topicID).First(&topic).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (tr *topicRepo) GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Topic
	if err := transaction.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *topicRepo) MarkSelected(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Topic{}).
		Where("id = ?", topicID).
		Update("is_selected", true).Error
}

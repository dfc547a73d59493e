package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/flowfactory-backend/internal/logger"
	"github.com/yungbote/flowfactory-backend/internal/types"
)

type ProjectRepo interface {
	Create(ctx context.Context, tx *gorm.DB, project *types.Project) (*types.Project, error)
	GetByID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.Project, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Project, error)
	UpdateStage(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, stage types.Stage) error
	UpdateTitle(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, title string) error
	Delete(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return &projectRepo{db: db, log: baseLog.With("repo", "ProjectRepo")}
}

func (pr *projectRepo) Create(ctx context.Context, tx *gorm.DB, project *types.Project) (*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (pr *projectRepo) GetByID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var project types.Project
	err := transaction.WithContext(ctx).Where("id = ?", projectID).First(&project).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (pr *projectRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Project
	q := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *projectRepo) UpdateStage(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, stage types.Stage) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Project{}).
		Where("id = ?", projectID).
		Updates(map[string]interface{}{"current_stage": stage, "updated_at": time.Now()}).Error
}

func (pr *projectRepo) UpdateTitle(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, title string) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Project{}).
		Where("id = ?", projectID).
		Updates(map[string]interface{}{"title": title, "updated_at": time.Now()}).Error
}

func (pr *projectRepo) Delete(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", projectID).
		Delete(&types.Project{}).Error
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/model"
)

// ReviewerRepository 外审专家数据访问接口
type ReviewerRepository interface {
	Create(ctx context.Context, reviewer *model.ExternalReviewer) error
	GetByID(ctx context.Context, id string) (*model.ExternalReviewer, error)
	Update(ctx context.Context, reviewer *model.ExternalReviewer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]model.ExternalReviewer, int64, error)
}

// reviewerRepo ReviewerRepository 的 GORM 实现
type reviewerRepo struct {
	db *gorm.DB
}

// NewReviewerRepo 创建 ReviewerRepository 实例
func NewReviewerRepo(db *gorm.DB) ReviewerRepository {
	return &reviewerRepo{db: db}
}

func (r *reviewerRepo) Create(ctx context.Context, reviewer *model.ExternalReviewer) error {
	return r.db.WithContext(ctx).Create(reviewer).Error
}

func (r *reviewerRepo) GetByID(ctx context.Context, id string) (*model.ExternalReviewer, error) {
	var reviewer model.ExternalReviewer
	err := r.db.WithContext(ctx).
		Where("reviewer_id = ?", id).
		First(&reviewer).Error
	if err != nil {
		return nil, err
	}
	return &reviewer, nil
}

func (r *reviewerRepo) Update(ctx context.Context, reviewer *model.ExternalReviewer) error {
	return r.db.WithContext(ctx).Save(reviewer).Error
}

func (r *reviewerRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("reviewer_id = ?", id).
		Delete(&model.ExternalReviewer{}).Error
}

func (r *reviewerRepo) List(ctx context.Context, offset, limit int) ([]model.ExternalReviewer, int64, error) {
	var reviewers []model.ExternalReviewer
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ExternalReviewer{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&reviewers).Error; err != nil {
		return nil, 0, err
	}

	return reviewers, total, nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/model"
)

// MilestoneRepository 里程碑数据访问接口
type MilestoneRepository interface {
	Create(ctx context.Context, milestone *model.Milestone) error
	GetByID(ctx context.Context, id string) (*model.Milestone, error)
	Update(ctx context.Context, milestone *model.Milestone) error
	Delete(ctx context.Context, id string) error
	ListByThesis(ctx context.Context, thesisID string) ([]model.Milestone, error)
	ListAll(ctx context.Context) ([]model.Milestone, error)
}

// milestoneRepo MilestoneRepository 的 GORM 实现
type milestoneRepo struct {
	db *gorm.DB
}

// NewMilestoneRepo 创建 MilestoneRepository 实例
func NewMilestoneRepo(db *gorm.DB) MilestoneRepository {
	return &milestoneRepo{db: db}
}

func (r *milestoneRepo) Create(ctx context.Context, milestone *model.Milestone) error {
	return r.db.WithContext(ctx).Create(milestone).Error
}

func (r *milestoneRepo) GetByID(ctx context.Context, id string) (*model.Milestone, error) {
	var milestone model.Milestone
	err := r.db.WithContext(ctx).
		Where("milestone_id = ?", id).
		First(&milestone).Error
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

func (r *milestoneRepo) Update(ctx context.Context, milestone *model.Milestone) error {
	return r.db.WithContext(ctx).Save(milestone).Error
}

func (r *milestoneRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("milestone_id = ?", id).
		Delete(&model.Milestone{}).Error
}

func (r *milestoneRepo) ListByThesis(ctx context.Context, thesisID string) ([]model.Milestone, error) {
	var milestones []model.Milestone
	err := r.db.WithContext(ctx).
		Where("thesis_id = ?", thesisID).
		Order("due_date ASC").
		Find(&milestones).Error
	if err != nil {
		return nil, err
	}
	return milestones, nil
}

func (r *milestoneRepo) ListAll(ctx context.Context) ([]model.Milestone, error) {
	var milestones []model.Milestone
	err := r.db.WithContext(ctx).
		Order("due_date ASC").
		Find(&milestones).Error
	if err != nil {
		return nil, err
	}
	return milestones, nil
}

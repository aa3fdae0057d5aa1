package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/model"
)

// SupervisorRepository 导师数据访问接口
type SupervisorRepository interface {
	Create(ctx context.Context, supervisor *model.Supervisor) error
	GetByID(ctx context.Context, id string) (*model.Supervisor, error)
	Update(ctx context.Context, supervisor *model.Supervisor) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]model.Supervisor, int64, error)
}

// supervisorRepo SupervisorRepository 的 GORM 实现
type supervisorRepo struct {
	db *gorm.DB
}

// NewSupervisorRepo 创建 SupervisorRepository 实例
func NewSupervisorRepo(db *gorm.DB) SupervisorRepository {
	return &supervisorRepo{db: db}
}

func (r *supervisorRepo) Create(ctx context.Context, supervisor *model.Supervisor) error {
	return r.db.WithContext(ctx).Create(supervisor).Error
}

func (r *supervisorRepo) GetByID(ctx context.Context, id string) (*model.Supervisor, error) {
	var supervisor model.Supervisor
	err := r.db.WithContext(ctx).
		Where("supervisor_id = ?", id).
		First(&supervisor).Error
	if err != nil {
		return nil, err
	}
	return &supervisor, nil
}

func (r *supervisorRepo) Update(ctx context.Context, supervisor *model.Supervisor) error {
	return r.db.WithContext(ctx).Save(supervisor).Error
}

func (r *supervisorRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("supervisor_id = ?", id).
		Delete(&model.Supervisor{}).Error
}

func (r *supervisorRepo) List(ctx context.Context, offset, limit int) ([]model.Supervisor, int64, error) {
	var supervisors []model.Supervisor
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Supervisor{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&supervisors).Error; err != nil {
		return nil, 0, err
	}

	return supervisors, total, nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/model"
)

// StatusHistoryRepository 状态审计数据访问接口（仅追加，无更新删除）
type StatusHistoryRepository interface {
	Append(ctx context.Context, entry *model.StatusHistory) error
	ListByThesis(ctx context.Context, thesisID string) ([]model.StatusHistory, error)
}

// statusHistoryRepo StatusHistoryRepository 的 GORM 实现
type statusHistoryRepo struct {
	db *gorm.DB
}

// NewStatusHistoryRepo 创建 StatusHistoryRepository 实例
func NewStatusHistoryRepo(db *gorm.DB) StatusHistoryRepository {
	return &statusHistoryRepo{db: db}
}

func (r *statusHistoryRepo) Append(ctx context.Context, entry *model.StatusHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *statusHistoryRepo) ListByThesis(ctx context.Context, thesisID string) ([]model.StatusHistory, error) {
	var entries []model.StatusHistory
	err := r.db.WithContext(ctx).
		Where("thesis_id = ?", thesisID).
		Order("changed_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

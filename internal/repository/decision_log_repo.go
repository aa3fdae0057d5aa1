package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/model"
)

// DecisionLogRepository 委员会评审决定数据访问接口（仅追加，无更新删除）
type DecisionLogRepository interface {
	Append(ctx context.Context, entry *model.DecisionLog) error
	ListByThesis(ctx context.Context, thesisID string) ([]model.DecisionLog, error)
	// GetLatestByMember 返回 (论文, 成员) 最新一条决定
	// 时间戳相同的按自增主键取最大；无记录返回 gorm.ErrRecordNotFound
	GetLatestByMember(ctx context.Context, thesisID, memberID string) (*model.DecisionLog, error)
}

// decisionLogRepo DecisionLogRepository 的 GORM 实现
type decisionLogRepo struct {
	db *gorm.DB
}

// NewDecisionLogRepo 创建 DecisionLogRepository 实例
func NewDecisionLogRepo(db *gorm.DB) DecisionLogRepository {
	return &decisionLogRepo{db: db}
}

func (r *decisionLogRepo) Append(ctx context.Context, entry *model.DecisionLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *decisionLogRepo) ListByThesis(ctx context.Context, thesisID string) ([]model.DecisionLog, error) {
	var entries []model.DecisionLog
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("thesis_id = ?", thesisID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *decisionLogRepo) GetLatestByMember(ctx context.Context, thesisID, memberID string) (*model.DecisionLog, error) {
	var entry model.DecisionLog
	err := r.db.WithContext(ctx).
		Where("thesis_id = ? AND member_id = ?", thesisID, memberID).
		Order("created_at DESC, id DESC").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

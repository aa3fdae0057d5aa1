package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/model"
)

// SubmissionRepository 提交记录数据访问接口（仅追加，无更新删除）
type SubmissionRepository interface {
	Append(ctx context.Context, submission *model.Submission) error
	ListByThesis(ctx context.Context, thesisID string) ([]model.Submission, error)
}

// submissionRepo SubmissionRepository 的 GORM 实现
type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo 创建 SubmissionRepository 实例
func NewSubmissionRepo(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Append(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepo) ListByThesis(ctx context.Context, thesisID string) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Where("thesis_id = ?", thesisID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/model"
	pkgerrors "github.com/zhangirtastemir/thesis-workflow-manager/pkg/errors"
)

// ThesisRepository 论文数据访问接口
type ThesisRepository interface {
	Create(ctx context.Context, thesis *model.Thesis) error
	GetByID(ctx context.Context, id string) (*model.Thesis, error)
	Update(ctx context.Context, thesis *model.Thesis) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, status string, offset, limit int) ([]model.Thesis, int64, error)
	ListAll(ctx context.Context) ([]model.Thesis, error)
	// ListOverdue 返回截止日期早于 before 且状态不在 exempt 中的论文
	ListOverdue(ctx context.Context, before time.Time, exempt []string) ([]model.Thesis, error)
	// ReplaceCommittee 以集合语义整体替换论文的委员会（先删后插）
	ReplaceCommittee(ctx context.Context, thesisID string, memberIDs []string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	ListRecent(ctx context.Context, limit int) ([]model.Thesis, error)
}

// thesisRepo ThesisRepository 的 GORM 实现
type thesisRepo struct {
	db *gorm.DB
}

// NewThesisRepo 创建 ThesisRepository 实例
func NewThesisRepo(db *gorm.DB) ThesisRepository {
	return &thesisRepo{db: db}
}

func (r *thesisRepo) Create(ctx context.Context, thesis *model.Thesis) error {
	// 只插入主表行，委员会关联由 ReplaceCommittee 维护
	return r.db.WithContext(ctx).Omit("Committee").Create(thesis).Error
}

func (r *thesisRepo) GetByID(ctx context.Context, id string) (*model.Thesis, error) {
	var thesis model.Thesis
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Supervisor").
		Preload("ExternalReviewer").
		Preload("Committee", func(db *gorm.DB) *gorm.DB {
			return db.Order("committee_members.name ASC")
		}).
		Where("thesis_id = ?", id).
		First(&thesis).Error
	if err != nil {
		return nil, err
	}
	return &thesis, nil
}

// Update 乐观锁更新，版本不匹配返回 ErrOptimisticLock
func (r *thesisRepo) Update(ctx context.Context, thesis *model.Thesis) error {
	oldVersion := thesis.Version
	result := r.db.WithContext(ctx).
		Model(thesis).
		Where("thesis_id = ? AND version = ?", thesis.ThesisID, oldVersion).
		Updates(map[string]interface{}{
			"title":                thesis.Title,
			"abstract":             thesis.Abstract,
			"student_id":           thesis.StudentID,
			"supervisor_id":        thesis.SupervisorID,
			"external_reviewer_id": thesis.ExternalReviewerID,
			"submission_deadline":  thesis.SubmissionDeadline,
			"status":               thesis.Status,
			"version":              oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	thesis.Version = oldVersion + 1
	return nil
}

// Delete 硬删除；里程碑、提交、审计与委员会关联由外键级联删除
func (r *thesisRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("thesis_id = ?", id).
		Delete(&model.Thesis{}).Error
}

func (r *thesisRepo) List(ctx context.Context, status string, offset, limit int) ([]model.Thesis, int64, error) {
	var theses []model.Thesis
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Thesis{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Student").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&theses).Error; err != nil {
		return nil, 0, err
	}

	return theses, total, nil
}

func (r *thesisRepo) ListAll(ctx context.Context) ([]model.Thesis, error) {
	var theses []model.Thesis
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Supervisor").
		Order("created_at ASC").
		Find(&theses).Error
	if err != nil {
		return nil, err
	}
	return theses, nil
}

func (r *thesisRepo) ListOverdue(ctx context.Context, before time.Time, exempt []string) ([]model.Thesis, error) {
	var theses []model.Thesis
	err := r.db.WithContext(ctx).
		Where("submission_deadline IS NOT NULL").
		Where("submission_deadline < ?", before).
		Where("status NOT IN ?", exempt).
		Find(&theses).Error
	if err != nil {
		return nil, err
	}
	return theses, nil
}

func (r *thesisRepo) ReplaceCommittee(ctx context.Context, thesisID string, memberIDs []string) error {
	if err := r.db.WithContext(ctx).
		Exec("DELETE FROM thesis_committee WHERE thesis_id = ?", thesisID).Error; err != nil {
		return err
	}
	if len(memberIDs) == 0 {
		return nil
	}
	// 集合语义：去重后插入，重复 ID 不应触发联合主键冲突
	seen := make(map[string]bool, len(memberIDs))
	rows := make([]map[string]interface{}, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		if seen[memberID] {
			continue
		}
		seen[memberID] = true
		rows = append(rows, map[string]interface{}{
			"thesis_id": thesisID,
			"member_id": memberID,
		})
	}
	return r.db.WithContext(ctx).Table("thesis_committee").Create(rows).Error
}

func (r *thesisRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Thesis{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

func (r *thesisRepo) ListRecent(ctx context.Context, limit int) ([]model.Thesis, error) {
	var theses []model.Thesis
	err := r.db.WithContext(ctx).
		Preload("Student").
		Order("updated_at DESC").
		Limit(limit).
		Find(&theses).Error
	if err != nil {
		return nil, err
	}
	return theses, nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/model"
)

// CommitteeMemberRepository 委员会成员数据访问接口
type CommitteeMemberRepository interface {
	Create(ctx context.Context, member *model.CommitteeMember) error
	GetByID(ctx context.Context, id string) (*model.CommitteeMember, error)
	Update(ctx context.Context, member *model.CommitteeMember) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]model.CommitteeMember, int64, error)
	// ListByThesis 按姓名升序返回指定论文的委员会成员，批准门控依赖该次序
	ListByThesis(ctx context.Context, thesisID string) ([]model.CommitteeMember, error)
	// IsAssigned 判断成员是否在指定论文的委员会中
	IsAssigned(ctx context.Context, thesisID, memberID string) (bool, error)
}

// committeeMemberRepo CommitteeMemberRepository 的 GORM 实现
type committeeMemberRepo struct {
	db *gorm.DB
}

// NewCommitteeMemberRepo 创建 CommitteeMemberRepository 实例
func NewCommitteeMemberRepo(db *gorm.DB) CommitteeMemberRepository {
	return &committeeMemberRepo{db: db}
}

func (r *committeeMemberRepo) Create(ctx context.Context, member *model.CommitteeMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *committeeMemberRepo) GetByID(ctx context.Context, id string) (*model.CommitteeMember, error) {
	var member model.CommitteeMember
	err := r.db.WithContext(ctx).
		Where("member_id = ?", id).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *committeeMemberRepo) Update(ctx context.Context, member *model.CommitteeMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *committeeMemberRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("member_id = ?", id).
		Delete(&model.CommitteeMember{}).Error
}

func (r *committeeMemberRepo) List(ctx context.Context, offset, limit int) ([]model.CommitteeMember, int64, error) {
	var members []model.CommitteeMember
	var total int64

	db := r.db.WithContext(ctx).Model(&model.CommitteeMember{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (r *committeeMemberRepo) ListByThesis(ctx context.Context, thesisID string) ([]model.CommitteeMember, error) {
	var members []model.CommitteeMember
	err := r.db.WithContext(ctx).
		Joins("JOIN thesis_committee tc ON tc.member_id = committee_members.member_id").
		Where("tc.thesis_id = ?", thesisID).
		Order("committee_members.name ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *committeeMemberRepo) IsAssigned(ctx context.Context, thesisID, memberID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("thesis_committee").
		Where("thesis_id = ? AND member_id = ?", thesisID, memberID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

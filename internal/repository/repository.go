package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User            UserRepository
	Student         StudentRepository
	Supervisor      SupervisorRepository
	Reviewer        ReviewerRepository
	CommitteeMember CommitteeMemberRepository
	Thesis          ThesisRepository
	Milestone       MilestoneRepository
	Submission      SubmissionRepository
	StatusHistory   StatusHistoryRepository
	DecisionLog     DecisionLogRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:              db,
		User:            NewUserRepo(db),
		Student:         NewStudentRepo(db),
		Supervisor:      NewSupervisorRepo(db),
		Reviewer:        NewReviewerRepo(db),
		CommitteeMember: NewCommitteeMemberRepo(db),
		Thesis:          NewThesisRepo(db),
		Milestone:       NewMilestoneRepo(db),
		Submission:      NewSubmissionRepo(db),
		StatusHistory:   NewStatusHistoryRepo(db),
		DecisionLog:     NewDecisionLogRepo(db),
	}
}

// BeginTx 开启事务
// db 为 nil 时（单元测试用 mock 注入）返回 (nil, nil)，调用方按非事务路径执行
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务连接的 Repository 聚合
// tx 为 nil 时返回自身，使 mock 注入的字段继续生效
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

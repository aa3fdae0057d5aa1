package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/dto"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/model"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/repository"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/workflow"
)

// ── 论文模块业务错误 ──

var (
	ErrThesisNotFound     = errors.New("论文不存在")
	ErrDeadlineInvalid    = errors.New("截止日期格式无效，应为 YYYY-MM-DD")
	ErrStudentNotFound    = errors.New("学生不存在")
	ErrSupervisorNotFound = errors.New("导师不存在")
	ErrReviewerNotFound   = errors.New("外审专家不存在")
	ErrMemberNotFound     = errors.New("委员会成员不存在")
)

// ThesisService 论文业务接口
type ThesisService interface {
	Create(ctx context.Context, req *dto.CreateThesisRequest) (*dto.ThesisResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ThesisDetailResponse, error)
	List(ctx context.Context, query *dto.ThesisListQuery) ([]dto.ThesisResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateThesisRequest) (*dto.ThesisResponse, error)
	Delete(ctx context.Context, id string) error
	AssignSupervisor(ctx context.Context, id, supervisorID string) error
	AssignReviewer(ctx context.Context, id, reviewerID string) error
	SetCommittee(ctx context.Context, id string, memberIDs []string) error
	GetHistory(ctx context.Context, id string) ([]dto.StatusHistoryResponse, error)
}

type thesisService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewThesisService 创建 ThesisService 实例
func NewThesisService(repo *repository.Repository, logger *zap.Logger) ThesisService {
	return &thesisService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *thesisService) Create(ctx context.Context, req *dto.CreateThesisRequest) (*dto.ThesisResponse, error) {
	deadline, err := parseDeadline(req.SubmissionDeadline)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, req.StudentID, req.SupervisorID, req.ExternalReviewerID, req.CommitteeMemberIDs); err != nil {
		return nil, err
	}

	thesis := &model.Thesis{
		Title:              req.Title,
		Abstract:           req.Abstract,
		StudentID:          req.StudentID,
		SupervisorID:       req.SupervisorID,
		ExternalReviewerID: req.ExternalReviewerID,
		SubmissionDeadline: deadline,
		Status:             workflow.StatusDraft,
	}

	// 论文、委员会关联与初始审计记录在同一事务中提交
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Thesis.Create(ctx, thesis); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建论文失败", zap.Error(err))
		return nil, err
	}

	if len(req.CommitteeMemberIDs) > 0 {
		if err := txRepo.Thesis.ReplaceCommittee(ctx, thesis.ThesisID, req.CommitteeMemberIDs); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("设置委员会失败", zap.Error(err))
			return nil, err
		}
	}

	// 创建即记录初始状态（old_status 为空）
	entry := &model.StatusHistory{
		ThesisID:  thesis.ThesisID,
		OldStatus: nil,
		NewStatus: workflow.StatusDraft,
	}
	if err := txRepo.StatusHistory.Append(ctx, entry); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入初始状态审计失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("论文已创建", zap.String("thesis_id", thesis.ThesisID), zap.String("title", thesis.Title))
	return toThesisResponse(thesis), nil
}

// ────────────────────── Get / List ──────────────────────

func (s *thesisService) GetByID(ctx context.Context, id string) (*dto.ThesisDetailResponse, error) {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return nil, err
	}

	thesis, err := s.repo.Thesis.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThesisNotFound
		}
		s.logger.Error("查询论文失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	milestones, err := s.repo.Milestone.ListByThesis(ctx, id)
	if err != nil {
		return nil, err
	}
	submissions, err := s.repo.Submission.ListByThesis(ctx, id)
	if err != nil {
		return nil, err
	}
	decisions, err := s.repo.DecisionLog.ListByThesis(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.StatusHistory.ListByThesis(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.ThesisDetailResponse{
		ID:                 thesis.ThesisID,
		Title:              thesis.Title,
		Abstract:           thesis.Abstract,
		Status:             thesis.Status,
		SubmissionDeadline: formatDatePtr(thesis.SubmissionDeadline),
		Version:            thesis.Version,
		Committee:          make([]dto.CommitteeMemberResponse, 0, len(thesis.Committee)),
		Milestones:         make([]dto.MilestoneResponse, 0, len(milestones)),
		Submissions:        make([]dto.SubmissionResponse, 0, len(submissions)),
		Decisions:          make([]dto.DecisionResponse, 0, len(decisions)),
		History:            make([]dto.StatusHistoryResponse, 0, len(history)),
		CreatedAt:          formatTime(thesis.CreatedAt),
		UpdatedAt:          formatTime(thesis.UpdatedAt),
	}

	if thesis.Student != nil {
		detail.Student = toStudentResponse(thesis.Student)
	}
	if thesis.Supervisor != nil {
		detail.Supervisor = toSupervisorResponse(thesis.Supervisor)
	}
	if thesis.ExternalReviewer != nil {
		detail.ExternalReviewer = toReviewerResponse(thesis.ExternalReviewer)
	}
	for i := range thesis.Committee {
		detail.Committee = append(detail.Committee, *toCommitteeMemberResponse(&thesis.Committee[i]))
	}
	for i := range milestones {
		detail.Milestones = append(detail.Milestones, *toMilestoneResponse(&milestones[i]))
	}
	for i := range submissions {
		detail.Submissions = append(detail.Submissions, *toSubmissionResponse(&submissions[i]))
	}
	for i := range decisions {
		detail.Decisions = append(detail.Decisions, *toDecisionResponse(&decisions[i]))
	}
	for i := range history {
		detail.History = append(detail.History, *toStatusHistoryResponse(&history[i]))
	}

	return detail, nil
}

func (s *thesisService) List(ctx context.Context, query *dto.ThesisListQuery) ([]dto.ThesisResponse, int64, error) {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return nil, 0, err
	}

	theses, total, err := s.repo.Thesis.List(ctx, query.Status, query.Offset(), query.PageSize)
	if err != nil {
		s.logger.Error("查询论文列表失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.ThesisResponse, 0, len(theses))
	for i := range theses {
		items = append(items, *toThesisResponse(&theses[i]))
	}
	return items, total, nil
}

// ────────────────────── Update / Delete ──────────────────────

func (s *thesisService) Update(ctx context.Context, id string, req *dto.UpdateThesisRequest) (*dto.ThesisResponse, error) {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return nil, err
	}

	thesis, err := s.repo.Thesis.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThesisNotFound
		}
		s.logger.Error("查询论文失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		thesis.Title = *req.Title
	}
	if req.Abstract != nil {
		thesis.Abstract = *req.Abstract
	}
	if req.StudentID != nil {
		if _, err := s.repo.Student.GetByID(ctx, *req.StudentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStudentNotFound
			}
			return nil, err
		}
		thesis.StudentID = *req.StudentID
	}
	if req.SupervisorID != nil {
		if _, err := s.repo.Supervisor.GetByID(ctx, *req.SupervisorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSupervisorNotFound
			}
			return nil, err
		}
		thesis.SupervisorID = req.SupervisorID
	}
	if req.ExternalReviewerID != nil {
		if _, err := s.repo.Reviewer.GetByID(ctx, *req.ExternalReviewerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReviewerNotFound
			}
			return nil, err
		}
		thesis.ExternalReviewerID = req.ExternalReviewerID
	}
	if req.SubmissionDeadline != nil {
		deadline, err := parseDeadline(req.SubmissionDeadline)
		if err != nil {
			return nil, err
		}
		thesis.SubmissionDeadline = deadline
	}

	// 乐观锁：以客户端读取时的版本为准，版本不符返回冲突
	thesis.Version = req.Version

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Thesis.Update(ctx, thesis); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}

	if req.CommitteeMemberIDs != nil {
		if err := s.checkMembers(ctx, req.CommitteeMemberIDs); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return nil, err
		}
		if err := txRepo.Thesis.ReplaceCommittee(ctx, id, req.CommitteeMemberIDs); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("替换委员会失败", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	return toThesisResponse(thesis), nil
}

func (s *thesisService) Delete(ctx context.Context, id string) error {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return err
	}

	if _, err := s.repo.Thesis.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrThesisNotFound
		}
		s.logger.Error("查询论文失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 里程碑、提交、审计、决定与委员会关联由外键级联删除
	if err := s.repo.Thesis.Delete(ctx, id); err != nil {
		s.logger.Error("删除论文失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("论文已删除", zap.String("thesis_id", id))
	return nil
}

// ────────────────────── 指派 ──────────────────────

func (s *thesisService) AssignSupervisor(ctx context.Context, id, supervisorID string) error {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return err
	}

	thesis, err := s.getThesis(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.repo.Supervisor.GetByID(ctx, supervisorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSupervisorNotFound
		}
		return err
	}

	thesis.SupervisorID = &supervisorID
	return s.repo.Thesis.Update(ctx, thesis)
}

func (s *thesisService) AssignReviewer(ctx context.Context, id, reviewerID string) error {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return err
	}

	thesis, err := s.getThesis(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.repo.Reviewer.GetByID(ctx, reviewerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewerNotFound
		}
		return err
	}

	thesis.ExternalReviewerID = &reviewerID
	return s.repo.Thesis.Update(ctx, thesis)
}

func (s *thesisService) SetCommittee(ctx context.Context, id string, memberIDs []string) error {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return err
	}

	if _, err := s.getThesis(ctx, id); err != nil {
		return err
	}
	if err := s.checkMembers(ctx, memberIDs); err != nil {
		return err
	}

	if err := s.repo.Thesis.ReplaceCommittee(ctx, id, memberIDs); err != nil {
		s.logger.Error("替换委员会失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("委员会已更新", zap.String("thesis_id", id), zap.Int("members", len(memberIDs)))
	return nil
}

func (s *thesisService) GetHistory(ctx context.Context, id string) ([]dto.StatusHistoryResponse, error) {
	// 逾期论文的 Late 记录须先落审计，再返回历史
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return nil, err
	}

	if _, err := s.getThesis(ctx, id); err != nil {
		return nil, err
	}

	history, err := s.repo.StatusHistory.ListByThesis(ctx, id)
	if err != nil {
		s.logger.Error("查询状态审计失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	items := make([]dto.StatusHistoryResponse, 0, len(history))
	for i := range history {
		items = append(items, *toStatusHistoryResponse(&history[i]))
	}
	return items, nil
}

// ── 内部辅助方法 ──

func (s *thesisService) getThesis(ctx context.Context, id string) (*model.Thesis, error) {
	thesis, err := s.repo.Thesis.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThesisNotFound
		}
		s.logger.Error("查询论文失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return thesis, nil
}

func (s *thesisService) checkReferences(ctx context.Context, studentID string, supervisorID, reviewerID *string, memberIDs []string) error {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	if supervisorID != nil {
		if _, err := s.repo.Supervisor.GetByID(ctx, *supervisorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSupervisorNotFound
			}
			return err
		}
	}
	if reviewerID != nil {
		if _, err := s.repo.Reviewer.GetByID(ctx, *reviewerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReviewerNotFound
			}
			return err
		}
	}
	return s.checkMembers(ctx, memberIDs)
}

func (s *thesisService) checkMembers(ctx context.Context, memberIDs []string) error {
	for _, memberID := range memberIDs {
		if _, err := s.repo.CommitteeMember.GetByID(ctx, memberID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}
	}
	return nil
}

func parseDeadline(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, ErrDeadlineInvalid
	}
	t = t.UTC()
	return &t, nil
}

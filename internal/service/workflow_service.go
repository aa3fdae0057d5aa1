package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/dto"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/model"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/repository"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/workflow"
	pkgerrors "github.com/zhangirtastemir/thesis-workflow-manager/pkg/errors"
)

// ── 流程模块业务错误 ──

var (
	ErrIllegalTransition = errors.New("非法状态转换")
	ErrMissingReviewer   = errors.New("未指派外审专家，无法进入外审状态")
	ErrApprovalBlocked   = errors.New("批准受阻")
	ErrInvalidDecision   = errors.New("无效的评审决定")
	ErrNotAssigned       = errors.New("该成员不在此论文的委员会中")
)

// WorkflowService 论文流程业务接口
// 所有状态变更必须经由本接口，禁止直接写 status 字段
type WorkflowService interface {
	RequestThesisTransition(ctx context.Context, thesisID, targetStatus string) (*dto.ThesisResponse, error)
	RequestMilestoneTransition(ctx context.Context, milestoneID, targetStatus string) (*dto.MilestoneResponse, error)
	RecordDecision(ctx context.Context, thesisID string, req *dto.DecisionRequest) error
	EvaluateApproval(ctx context.Context, thesisID string) (*dto.ApprovalStatusResponse, error)
	// EnforceDeadlines 手动触发截止日期检查，返回本次标记为 Late 的论文数
	EnforceDeadlines(ctx context.Context) (int, error)
}

type workflowService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewWorkflowService 创建 WorkflowService 实例
func NewWorkflowService(repo *repository.Repository, logger *zap.Logger) WorkflowService {
	return &workflowService{repo: repo, logger: logger}
}

// ────────────────────── 论文状态转换 ──────────────────────

func (s *workflowService) RequestThesisTransition(ctx context.Context, thesisID, targetStatus string) (*dto.ThesisResponse, error) {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return nil, err
	}

	thesis, err := s.repo.Thesis.GetByID(ctx, thesisID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThesisNotFound
		}
		s.logger.Error("查询论文失败", zap.String("id", thesisID), zap.Error(err))
		return nil, err
	}

	// 1. 结构合法性：转换表查询
	if !workflow.CanTransition(thesis.Status, targetStatus) {
		return nil, ErrIllegalTransition
	}

	// 2. 状态前置条件：外审需已指派外审专家
	if targetStatus == workflow.StatusExternallyReviewed && thesis.ExternalReviewerID == nil {
		return nil, ErrMissingReviewer
	}

	// 3. 批准门控：仅目标为 Approved 时评估
	if targetStatus == workflow.StatusApproved {
		approval, err := s.EvaluateApproval(ctx, thesisID)
		if err != nil {
			return nil, err
		}
		if !approval.CanApprove {
			return nil, fmt.Errorf("%w: %s", ErrApprovalBlocked, *approval.BlockingReason)
		}
	}

	// 4. 状态更新与审计记录在同一事务中提交
	if err := applyTransition(ctx, s.repo, s.logger, thesis, targetStatus); err != nil {
		return nil, err
	}

	return toThesisResponse(thesis), nil
}

// ────────────────────── 里程碑状态转换 ──────────────────────

func (s *workflowService) RequestMilestoneTransition(ctx context.Context, milestoneID, targetStatus string) (*dto.MilestoneResponse, error) {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return nil, err
	}

	milestone, err := s.repo.Milestone.GetByID(ctx, milestoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMilestoneNotFound
		}
		s.logger.Error("查询里程碑失败", zap.String("id", milestoneID), zap.Error(err))
		return nil, err
	}

	if !workflow.CanTransitionMilestone(milestone.Status, targetStatus) {
		return nil, ErrIllegalTransition
	}

	milestone.Status = targetStatus
	if err := s.repo.Milestone.Update(ctx, milestone); err != nil {
		s.logger.Error("更新里程碑状态失败", zap.String("id", milestoneID), zap.Error(err))
		return nil, err
	}

	return toMilestoneResponse(milestone), nil
}

// ────────────────────── 评审决定 ──────────────────────

func (s *workflowService) RecordDecision(ctx context.Context, thesisID string, req *dto.DecisionRequest) error {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return err
	}

	if !workflow.IsValidDecision(req.Decision) {
		return ErrInvalidDecision
	}

	if _, err := s.repo.Thesis.GetByID(ctx, thesisID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrThesisNotFound
		}
		s.logger.Error("查询论文失败", zap.String("id", thesisID), zap.Error(err))
		return err
	}

	assigned, err := s.repo.CommitteeMember.IsAssigned(ctx, thesisID, req.MemberID)
	if err != nil {
		s.logger.Error("查询委员会指派失败", zap.String("thesis_id", thesisID), zap.Error(err))
		return err
	}
	if !assigned {
		return ErrNotAssigned
	}

	// 仅追加，不改写历史决定；门控始终取最新一条
	entry := &model.DecisionLog{
		ThesisID: thesisID,
		MemberID: req.MemberID,
		Decision: req.Decision,
		Comment:  req.Comment,
	}
	if err := s.repo.DecisionLog.Append(ctx, entry); err != nil {
		s.logger.Error("写入评审决定失败", zap.String("thesis_id", thesisID), zap.Error(err))
		return err
	}

	s.logger.Info("评审决定已记录",
		zap.String("thesis_id", thesisID),
		zap.String("member_id", req.MemberID),
		zap.String("decision", req.Decision),
	)
	return nil
}

// ────────────────────── 批准门控 ──────────────────────

// EvaluateApproval 评估论文能否进入 Approved
// 规则：无委员会 → 放行；任一成员未决 → 受阻；任一成员最新决定为 Reject → 受阻（一票否决）；
// Minor Revision 与 Approve 同样视为非阻塞
func (s *workflowService) EvaluateApproval(ctx context.Context, thesisID string) (*dto.ApprovalStatusResponse, error) {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return nil, err
	}

	// 不存在的论文须报 NotFound，而非"无委员会即放行"
	if _, err := s.repo.Thesis.GetByID(ctx, thesisID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThesisNotFound
		}
		s.logger.Error("查询论文失败", zap.String("id", thesisID), zap.Error(err))
		return nil, err
	}

	members, err := s.repo.CommitteeMember.ListByThesis(ctx, thesisID)
	if err != nil {
		s.logger.Error("查询委员会成员失败", zap.String("thesis_id", thesisID), zap.Error(err))
		return nil, err
	}

	resp := &dto.ApprovalStatusResponse{
		CanApprove: true,
		Members:    make([]dto.MemberDecisionStatus, 0, len(members)),
	}

	hasUndecided := false
	hasReject := false

	for i := range members {
		m := &members[i]
		status := dto.MemberDecisionStatus{
			MemberID: m.MemberID,
			Name:     m.Name,
			Email:    m.Email,
		}

		latest, err := s.repo.DecisionLog.GetLatestByMember(ctx, thesisID, m.MemberID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			hasUndecided = true
		case err != nil:
			s.logger.Error("查询最新评审决定失败",
				zap.String("thesis_id", thesisID),
				zap.String("member_id", m.MemberID),
				zap.Error(err),
			)
			return nil, err
		default:
			decision := latest.Decision
			comment := latest.Comment
			decidedAt := formatTime(latest.CreatedAt)
			status.Decision = &decision
			status.Comment = &comment
			status.DecidedAt = &decidedAt
			if latest.Decision == workflow.DecisionReject {
				hasReject = true
			}
		}

		resp.Members = append(resp.Members, status)
	}

	switch {
	case hasUndecided:
		reason := workflow.ReasonUndecided
		resp.CanApprove = false
		resp.BlockingReason = &reason
	case hasReject:
		reason := workflow.ReasonRejected
		resp.CanApprove = false
		resp.BlockingReason = &reason
	}

	return resp, nil
}

// ────────────────────── 截止日期检查 ──────────────────────

func (s *workflowService) EnforceDeadlines(ctx context.Context) (int, error) {
	return sweepOverdueTheses(ctx, s.repo, s.logger)
}

// sweepOverdueTheses 截止日期检查：在任何触及论文状态的操作前执行
// 截止日期早于今日且状态不在豁免集合中的论文强制转为 Late 并记录审计；
// 该转换绕过转换表，Late 论文不再参与后续检查（幂等）
func sweepOverdueTheses(ctx context.Context, repo *repository.Repository, logger *zap.Logger) (int, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	overdue, err := repo.Thesis.ListOverdue(ctx, today, workflow.DeadlineExemptStatuses())
	if err != nil {
		logger.Error("查询逾期论文失败", zap.Error(err))
		return 0, err
	}

	marked := 0
	for i := range overdue {
		thesis := &overdue[i]
		if err := applyTransition(ctx, repo, logger, thesis, workflow.StatusLate); err != nil {
			// 版本冲突说明另一请求已处理该论文，跳过留待下次检查
			if errors.Is(err, pkgerrors.ErrOptimisticLock) {
				continue
			}
			return marked, err
		}
		marked++
		logger.Info("论文已逾期，标记为 Late",
			zap.String("thesis_id", thesis.ThesisID),
			zap.String("title", thesis.Title),
		)
	}

	return marked, nil
}

// applyTransition 在同一事务中更新论文状态并追加审计记录
// 两次写入必须同时生效或同时失败
func applyTransition(ctx context.Context, repo *repository.Repository, logger *zap.Logger, thesis *model.Thesis, targetStatus string) error {
	tx, err := repo.BeginTx(ctx)
	if err != nil {
		logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := repo.WithTx(tx)

	oldStatus := thesis.Status
	thesis.Status = targetStatus

	if err := txRepo.Thesis.Update(ctx, thesis); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		thesis.Status = oldStatus
		return err
	}

	entry := &model.StatusHistory{
		ThesisID:  thesis.ThesisID,
		OldStatus: &oldStatus,
		NewStatus: targetStatus,
	}
	if err := txRepo.StatusHistory.Append(ctx, entry); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		thesis.Status = oldStatus
		logger.Error("写入状态审计失败", zap.String("thesis_id", thesis.ThesisID), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			thesis.Status = oldStatus
			logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	logger.Info("论文状态已转换",
		zap.String("thesis_id", thesis.ThesisID),
		zap.String("from", oldStatus),
		zap.String("to", targetStatus),
	)
	return nil
}

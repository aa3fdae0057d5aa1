package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/dto"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/model"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/repository"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/workflow"
)

// ── 提交记录模块业务错误 ──

var ErrInvalidSubmissionKind = errors.New("无效的提交类型")

// SubmissionService 提交记录业务接口（仅追加与查询）
type SubmissionService interface {
	Create(ctx context.Context, thesisID string, req *dto.CreateSubmissionRequest) (*dto.SubmissionResponse, error)
	ListByThesis(ctx context.Context, thesisID string) ([]dto.SubmissionResponse, error)
}

type submissionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubmissionService 创建 SubmissionService 实例
func NewSubmissionService(repo *repository.Repository, logger *zap.Logger) SubmissionService {
	return &submissionService{repo: repo, logger: logger}
}

func (s *submissionService) Create(ctx context.Context, thesisID string, req *dto.CreateSubmissionRequest) (*dto.SubmissionResponse, error) {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return nil, err
	}

	if !workflow.IsValidSubmissionKind(req.Kind) {
		return nil, ErrInvalidSubmissionKind
	}

	if _, err := s.repo.Thesis.GetByID(ctx, thesisID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThesisNotFound
		}
		s.logger.Error("查询论文失败", zap.String("id", thesisID), zap.Error(err))
		return nil, err
	}

	submission := &model.Submission{
		ThesisID:      thesisID,
		Kind:          req.Kind,
		Comment:       req.Comment,
		AttachmentRef: req.AttachmentRef,
	}

	if err := s.repo.Submission.Append(ctx, submission); err != nil {
		s.logger.Error("写入提交记录失败", zap.String("thesis_id", thesisID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("提交记录已登记",
		zap.String("thesis_id", thesisID),
		zap.String("kind", req.Kind),
	)
	return toSubmissionResponse(submission), nil
}

func (s *submissionService) ListByThesis(ctx context.Context, thesisID string) ([]dto.SubmissionResponse, error) {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return nil, err
	}

	if _, err := s.repo.Thesis.GetByID(ctx, thesisID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThesisNotFound
		}
		return nil, err
	}

	submissions, err := s.repo.Submission.ListByThesis(ctx, thesisID)
	if err != nil {
		s.logger.Error("查询提交记录失败", zap.String("thesis_id", thesisID), zap.Error(err))
		return nil, err
	}

	items := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		items = append(items, *toSubmissionResponse(&submissions[i]))
	}
	return items, nil
}

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

// ── 里程碑模块业务错误 ──

var (
	ErrMilestoneNotFound = errors.New("里程碑不存在")
	ErrDueDateInvalid    = errors.New("到期日期格式无效，应为 YYYY-MM-DD")
)

// MilestoneService 里程碑业务接口（状态转换走 WorkflowService）
type MilestoneService interface {
	Create(ctx context.Context, thesisID string, req *dto.CreateMilestoneRequest) (*dto.MilestoneResponse, error)
	GetByID(ctx context.Context, id string) (*dto.MilestoneResponse, error)
	ListByThesis(ctx context.Context, thesisID string) ([]dto.MilestoneResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateMilestoneRequest) (*dto.MilestoneResponse, error)
	Delete(ctx context.Context, id string) error
}

type milestoneService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMilestoneService 创建 MilestoneService 实例
func NewMilestoneService(repo *repository.Repository, logger *zap.Logger) MilestoneService {
	return &milestoneService{repo: repo, logger: logger}
}

func (s *milestoneService) Create(ctx context.Context, thesisID string, req *dto.CreateMilestoneRequest) (*dto.MilestoneResponse, error) {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return nil, err
	}

	if _, err := s.repo.Thesis.GetByID(ctx, thesisID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThesisNotFound
		}
		s.logger.Error("查询论文失败", zap.String("id", thesisID), zap.Error(err))
		return nil, err
	}

	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return nil, ErrDueDateInvalid
	}

	milestone := &model.Milestone{
		ThesisID: thesisID,
		Type:     req.Type,
		DueDate:  dueDate.UTC(),
		Status:   workflow.MilestoneStatusPlanned,
		Notes:    req.Notes,
	}

	if err := s.repo.Milestone.Create(ctx, milestone); err != nil {
		s.logger.Error("创建里程碑失败", zap.String("thesis_id", thesisID), zap.Error(err))
		return nil, err
	}

	return toMilestoneResponse(milestone), nil
}

func (s *milestoneService) GetByID(ctx context.Context, id string) (*dto.MilestoneResponse, error) {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return nil, err
	}

	milestone, err := s.repo.Milestone.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMilestoneNotFound
		}
		s.logger.Error("查询里程碑失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toMilestoneResponse(milestone), nil
}

func (s *milestoneService) ListByThesis(ctx context.Context, thesisID string) ([]dto.MilestoneResponse, error) {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return nil, err
	}

	if _, err := s.repo.Thesis.GetByID(ctx, thesisID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThesisNotFound
		}
		return nil, err
	}

	milestones, err := s.repo.Milestone.ListByThesis(ctx, thesisID)
	if err != nil {
		s.logger.Error("查询里程碑列表失败", zap.String("thesis_id", thesisID), zap.Error(err))
		return nil, err
	}

	items := make([]dto.MilestoneResponse, 0, len(milestones))
	for i := range milestones {
		items = append(items, *toMilestoneResponse(&milestones[i]))
	}
	return items, nil
}

func (s *milestoneService) Update(ctx context.Context, id string, req *dto.UpdateMilestoneRequest) (*dto.MilestoneResponse, error) {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return nil, err
	}

	milestone, err := s.repo.Milestone.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, err
	}

	if req.Type != nil {
		milestone.Type = *req.Type
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			return nil, ErrDueDateInvalid
		}
		milestone.DueDate = dueDate.UTC()
	}
	if req.Notes != nil {
		milestone.Notes = *req.Notes
	}

	if err := s.repo.Milestone.Update(ctx, milestone); err != nil {
		s.logger.Error("更新里程碑失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toMilestoneResponse(milestone), nil
}

func (s *milestoneService) Delete(ctx context.Context, id string) error {
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return err
	}

	if _, err := s.repo.Milestone.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMilestoneNotFound
		}
		return err
	}
	if err := s.repo.Milestone.Delete(ctx, id); err != nil {
		s.logger.Error("删除里程碑失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

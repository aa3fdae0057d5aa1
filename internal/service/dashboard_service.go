package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/dto"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/repository"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/workflow"
)

const recentThesesLimit = 10

// DashboardService 工作台业务接口
type DashboardService interface {
	Overview(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

func (s *dashboardService) Overview(ctx context.Context) (*dto.DashboardResponse, error) {
	// 先执行截止日期检查，保证统计反映最新的 Late 状态
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return nil, err
	}

	counts, err := s.repo.Thesis.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("统计论文状态失败", zap.Error(err))
		return nil, err
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	recent, err := s.repo.Thesis.ListRecent(ctx, recentThesesLimit)
	if err != nil {
		s.logger.Error("查询最近论文失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.ThesisResponse, 0, len(recent))
	for i := range recent {
		items = append(items, *toThesisResponse(&recent[i]))
	}

	return &dto.DashboardResponse{
		TotalTheses:  total,
		StatusCounts: counts,
		LateCount:    counts[workflow.StatusLate],
		RecentTheses: items,
	}, nil
}

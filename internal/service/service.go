package service

import (
	"go.uber.org/zap"

	"github.com/zhangirtastemir/thesis-workflow-manager/config"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/repository"
	"github.com/zhangirtastemir/thesis-workflow-manager/pkg/jwt"
	"github.com/zhangirtastemir/thesis-workflow-manager/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	People     PeopleService
	Thesis     ThesisService
	Workflow   WorkflowService
	Milestone  MilestoneService
	Submission SubmissionService
	Dashboard  DashboardService
	Export     ExportService
	Calendar   CalendarService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		People:     NewPeopleService(repo, logger),
		Thesis:     NewThesisService(repo, logger),
		Workflow:   NewWorkflowService(repo, logger),
		Milestone:  NewMilestoneService(repo, logger),
		Submission: NewSubmissionService(repo, logger),
		Dashboard:  NewDashboardService(repo, logger),
		Export:     NewExportService(repo, logger),
		Calendar:   NewCalendarService(repo, logger),
	}
}

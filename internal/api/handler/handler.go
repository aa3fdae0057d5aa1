package handler

import (
	"github.com/zhangirtastemir/thesis-workflow-manager/config"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	People     *PeopleHandler
	Thesis     *ThesisHandler
	Milestone  *MilestoneHandler
	Submission *SubmissionHandler
	Dashboard  *DashboardHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(cfg, svc.Auth),
		People:     NewPeopleHandler(svc.People),
		Thesis:     NewThesisHandler(svc.Thesis, svc.Workflow),
		Milestone:  NewMilestoneHandler(svc.Milestone, svc.Workflow),
		Submission: NewSubmissionHandler(svc.Submission),
		Dashboard:  NewDashboardHandler(svc.Dashboard),
		Export:     NewExportHandler(svc.Export, svc.Calendar),
	}
}

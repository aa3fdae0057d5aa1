package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/repository"
)

// CalendarService 日历订阅业务接口
//
// 将论文截止日期与里程碑到期日期生成标准 iCalendar (RFC 5545) 内容，
// 供外部日历客户端订阅
type CalendarService interface {
	GenerateCalendar(ctx context.Context) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

func (s *calendarService) GenerateCalendar(ctx context.Context) (string, error) {
	// 事件描述携带状态，导出前先执行到期检查
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return "", err
	}

	theses, err := s.repo.Thesis.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询论文失败", zap.Error(err))
		return "", err
	}
	milestones, err := s.repo.Milestone.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询里程碑失败", zap.Error(err))
		return "", err
	}

	thesisTitles := make(map[string]string, len(theses))
	for i := range theses {
		thesisTitles[theses[i].ThesisID] = theses[i].Title
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//thesis-workflow-manager//ZH")

	now := time.Now().UTC()

	// 论文截止日期 → 全天事件
	for i := range theses {
		t := &theses[i]
		if t.SubmissionDeadline == nil {
			continue
		}
		event := cal.AddEvent(fmt.Sprintf("thesis-deadline-%s", t.ThesisID))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetSummary(fmt.Sprintf("论文截止：%s", t.Title))
		event.SetDescription(fmt.Sprintf("当前状态：%s", t.Status))
		event.SetAllDayStartAt(*t.SubmissionDeadline)
		event.SetAllDayEndAt(t.SubmissionDeadline.AddDate(0, 0, 1))
	}

	// 里程碑到期日期 → 全天事件
	for i := range milestones {
		m := &milestones[i]
		event := cal.AddEvent(fmt.Sprintf("milestone-%s", m.MilestoneID))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetSummary(fmt.Sprintf("里程碑：%s（%s）", m.Type, thesisTitles[m.ThesisID]))
		event.SetDescription(fmt.Sprintf("状态：%s", m.Status))
		event.SetAllDayStartAt(m.DueDate)
		event.SetAllDayEndAt(m.DueDate.AddDate(0, 0, 1))
	}

	return cal.Serialize(), nil
}

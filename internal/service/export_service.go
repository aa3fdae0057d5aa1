package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoTheses     = errors.New("暂无论文数据可导出")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出全部论文及其里程碑为 Excel (.xlsx)
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportTheses 导出论文清单为 Excel
	ExportTheses(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportTheses 导出论文清单为 Excel
//
// 输出格式：
//   - Sheet "论文"：标题 / 学生 / 导师 / 状态 / 截止日期 / 创建时间
//   - Sheet "里程碑"：论文标题 / 类型 / 到期日期 / 状态 / 备注
func (s *exportService) ExportTheses(ctx context.Context) (*bytes.Buffer, string, error) {
	// 执行截止日期检查，导出内容须反映最新的 Late 状态
	if _, err := sweepOverdueTheses(ctx, s.repo, s.logger); err != nil {
		return nil, "", err
	}

	theses, err := s.repo.Thesis.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询论文失败", zap.Error(err))
		return nil, "", err
	}
	if len(theses) == 0 {
		return nil, "", ErrExportNoTheses
	}

	milestones, err := s.repo.Milestone.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询里程碑失败", zap.Error(err))
		return nil, "", err
	}

	thesisTitles := make(map[string]string, len(theses))
	for i := range theses {
		thesisTitles[theses[i].ThesisID] = theses[i].Title
	}

	f := excelize.NewFile()
	defer f.Close()

	const thesisSheet = "论文"
	if err := f.SetSheetName("Sheet1", thesisSheet); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	thesisHeader := []interface{}{"标题", "学生", "导师", "状态", "截止日期", "创建时间"}
	if err := f.SetSheetRow(thesisSheet, "A1", &thesisHeader); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	for i := range theses {
		t := &theses[i]
		studentName := ""
		if t.Student != nil {
			studentName = t.Student.Name
		}
		supervisorName := ""
		if t.Supervisor != nil {
			supervisorName = t.Supervisor.Name
		}
		deadline := ""
		if t.SubmissionDeadline != nil {
			deadline = formatDate(*t.SubmissionDeadline)
		}
		row := []interface{}{t.Title, studentName, supervisorName, t.Status, deadline, formatDate(t.CreatedAt)}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(thesisSheet, cell, &row); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	const milestoneSheet = "里程碑"
	if _, err := f.NewSheet(milestoneSheet); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	milestoneHeader := []interface{}{"论文", "类型", "到期日期", "状态", "备注"}
	if err := f.SetSheetRow(milestoneSheet, "A1", &milestoneHeader); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	for i := range milestones {
		m := &milestones[i]
		row := []interface{}{thesisTitles[m.ThesisID], m.Type, formatDate(m.DueDate), m.Status, m.Notes}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(milestoneSheet, cell, &row); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("theses_%s.xlsx", time.Now().UTC().Format("20060102"))
	s.logger.Info("论文清单已导出",
		zap.Int("theses", len(theses)),
		zap.Int("milestones", len(milestones)),
	)
	return buf, filename, nil
}

package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/workflow"
)

func setupTestDashboardService() (DashboardService, *testRepos) {
	tr := newTestRepos()
	svc := NewDashboardService(tr.repo, zap.NewNop())
	return svc, tr
}

func TestDashboardService_Overview_Counts(t *testing.T) {
	svc, tr := setupTestDashboardService()
	seedThesis(tr, "thesis-1", workflow.StatusDraft)
	seedThesis(tr, "thesis-2", workflow.StatusDraft)
	seedThesis(tr, "thesis-3", workflow.StatusUnderReview)
	seedThesis(tr, "thesis-4", workflow.StatusLate)

	result, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview 应成功: %v", err)
	}
	if result.TotalTheses != 4 {
		t.Errorf("期望总数 4，实际 %d", result.TotalTheses)
	}
	if result.StatusCounts[workflow.StatusDraft] != 2 {
		t.Errorf("期望 Draft=2，实际 %d", result.StatusCounts[workflow.StatusDraft])
	}
	if result.LateCount != 1 {
		t.Errorf("期望 Late=1，实际 %d", result.LateCount)
	}
}

func TestDashboardService_Overview_SweepsBeforeCounting(t *testing.T) {
	svc, tr := setupTestDashboardService()
	thesis := seedThesis(tr, "thesis-1", workflow.StatusSubmitted)
	thesis.SubmissionDeadline = pastDate(7)

	// 统计前先执行到期检查，逾期论文计入 Late
	result, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview 应成功: %v", err)
	}
	if result.LateCount != 1 {
		t.Errorf("期望 Late=1，实际 %d", result.LateCount)
	}
	if result.StatusCounts[workflow.StatusSubmitted] != 0 {
		t.Errorf("逾期论文不应计入 Submitted，实际 %d", result.StatusCounts[workflow.StatusSubmitted])
	}
}

func TestDashboardService_Overview_Empty(t *testing.T) {
	svc, _ := setupTestDashboardService()

	result, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview 应成功: %v", err)
	}
	if result.TotalTheses != 0 {
		t.Errorf("期望总数 0，实际 %d", result.TotalTheses)
	}
	if len(result.RecentTheses) != 0 {
		t.Errorf("期望最近论文为空，实际 %d 条", len(result.RecentTheses))
	}
}

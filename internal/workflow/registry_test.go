package workflow

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{StatusDraft, StatusSubmitted, true},
		{StatusSubmitted, StatusUnderReview, true},
		{StatusSubmitted, StatusExternallyReviewed, true},
		{StatusUnderReview, StatusRevisionRequested, true},
		{StatusUnderReview, StatusApproved, true},
		{StatusExternallyReviewed, StatusApproved, true},
		{StatusRevisionRequested, StatusSubmitted, true},
		{StatusApproved, StatusFinalSubmitted, true},
		{StatusFinalSubmitted, StatusCompleted, true},

		// 非法边
		{StatusDraft, StatusApproved, false},
		{StatusDraft, StatusUnderReview, false},
		{StatusSubmitted, StatusApproved, false},
		{StatusExternallyReviewed, StatusRevisionRequested, false},
		{StatusApproved, StatusSubmitted, false},
		{StatusCompleted, StatusDraft, false},
		// Late 只能由截止日期检查写入，不能作为普通转换目标
		{StatusSubmitted, StatusLate, false},
		{StatusLate, StatusSubmitted, false},
		// 未注册状态
		{"Unknown", StatusSubmitted, false},
		{StatusDraft, "Unknown", false},
	}

	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%q, %q) = %v, 期望 %v", c.from, c.to, got, c.want)
		}
	}
}

func TestCanTransitionMilestone(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{MilestoneStatusPlanned, MilestoneStatusInProgress, true},
		{MilestoneStatusInProgress, MilestoneStatusSubmitted, true},
		{MilestoneStatusSubmitted, MilestoneStatusAccepted, true},
		// 返工回路
		{MilestoneStatusSubmitted, MilestoneStatusInProgress, true},

		{MilestoneStatusPlanned, MilestoneStatusSubmitted, false},
		{MilestoneStatusPlanned, MilestoneStatusAccepted, false},
		// Submitted 不可直接回到 Planned
		{MilestoneStatusSubmitted, MilestoneStatusPlanned, false},
		{MilestoneStatusAccepted, MilestoneStatusInProgress, false},
	}

	for _, c := range cases {
		if got := CanTransitionMilestone(c.from, c.to); got != c.want {
			t.Errorf("CanTransitionMilestone(%q, %q) = %v, 期望 %v", c.from, c.to, got, c.want)
		}
	}
}

func TestLateHasNoNormalEdges(t *testing.T) {
	// Late 不出现在任何状态的转出列表中
	for from, targets := range ThesisTransitions {
		for _, to := range targets {
			if to == StatusLate {
				t.Errorf("状态 %q 存在到 Late 的普通转换边", from)
			}
		}
	}
	if !IsTerminal(StatusLate) {
		t.Error("Late 应为终态")
	}
	if !IsTerminal(StatusCompleted) {
		t.Error("Completed 应为终态")
	}
}

func TestIsDeadlineExempt(t *testing.T) {
	exempt := []string{StatusApproved, StatusFinalSubmitted, StatusCompleted, StatusLate}
	for _, s := range exempt {
		if !IsDeadlineExempt(s) {
			t.Errorf("状态 %q 应豁免截止日期检查", s)
		}
	}
	notExempt := []string{StatusDraft, StatusSubmitted, StatusUnderReview, StatusExternallyReviewed, StatusRevisionRequested}
	for _, s := range notExempt {
		if IsDeadlineExempt(s) {
			t.Errorf("状态 %q 不应豁免截止日期检查", s)
		}
	}
}

func TestIsValidDecision(t *testing.T) {
	for _, d := range []string{DecisionApprove, DecisionReject, DecisionMinorRevision} {
		if !IsValidDecision(d) {
			t.Errorf("决定 %q 应为合法值", d)
		}
	}
	if IsValidDecision("Abstain") {
		t.Error("Abstain 不应为合法决定")
	}
}

func TestIsValidSubmissionKind(t *testing.T) {
	for _, k := range []string{SubmissionKindProposal, SubmissionKindInterim, SubmissionKindFinal} {
		if !IsValidSubmissionKind(k) {
			t.Errorf("提交类型 %q 应为合法值", k)
		}
	}
	if IsValidSubmissionKind("draft") {
		t.Error("draft 不应为合法提交类型")
	}
}

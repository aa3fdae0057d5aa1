package workflow

// 论文状态
// 状态值直接持久化到数据库，新增状态时需同步更新迁移脚本中的注释
const (
	StatusDraft              = "Draft"
	StatusSubmitted          = "Submitted"
	StatusUnderReview        = "UnderReview"
	StatusExternallyReviewed = "ExternallyReviewed"
	StatusRevisionRequested  = "RevisionRequested"
	StatusApproved           = "Approved"
	StatusFinalSubmitted     = "FinalSubmitted"
	StatusCompleted          = "Completed"
	// Late 仅由截止日期检查写入，不出现在任何转换表的目标列表中
	StatusLate = "Late"
)

// 里程碑状态
const (
	MilestoneStatusPlanned    = "Planned"
	MilestoneStatusInProgress = "InProgress"
	MilestoneStatusSubmitted  = "Submitted"
	MilestoneStatusAccepted   = "Accepted"
)

// 委员会评审决定
const (
	DecisionApprove       = "Approve"
	DecisionReject        = "Reject"
	DecisionMinorRevision = "Minor Revision"
)

// 提交类型
const (
	SubmissionKindProposal = "proposal"
	SubmissionKindInterim  = "interim"
	SubmissionKindFinal    = "final"
)

// ThesisTransitions 论文状态转换表
// key 为当前状态，value 为允许的目标状态；不在表中的转换一律拒绝
var ThesisTransitions = map[string][]string{
	StatusDraft:              {StatusSubmitted},
	StatusSubmitted:          {StatusUnderReview, StatusExternallyReviewed},
	StatusUnderReview:        {StatusRevisionRequested, StatusApproved},
	StatusExternallyReviewed: {StatusApproved},
	StatusRevisionRequested:  {StatusSubmitted},
	StatusApproved:           {StatusFinalSubmitted},
	StatusFinalSubmitted:     {StatusCompleted},
	StatusCompleted:          {},
	StatusLate:               {},
}

// MilestoneTransitions 里程碑状态转换表
// Submitted → InProgress 为返工回路；Accepted 为终态
var MilestoneTransitions = map[string][]string{
	MilestoneStatusPlanned:    {MilestoneStatusInProgress},
	MilestoneStatusInProgress: {MilestoneStatusSubmitted},
	MilestoneStatusSubmitted:  {MilestoneStatusAccepted, MilestoneStatusInProgress},
	MilestoneStatusAccepted:   {},
}

// deadlineExempt 到期检查豁免状态：已过审或已终态的论文不再标记为 Late
var deadlineExempt = map[string]bool{
	StatusApproved:       true,
	StatusFinalSubmitted: true,
	StatusCompleted:      true,
	StatusLate:           true,
}

// 批准受阻原因（随 ErrApprovalBlocked 返回给调用方）
const (
	ReasonUndecided = "批准前必须提交所有委员会成员的评审决定"
	ReasonRejected  = "批准被阻止：一名或多名委员会成员选择了 Reject"
)

// CanTransition 判断论文状态 from → to 是否在转换表中
func CanTransition(from, to string) bool {
	return contains(ThesisTransitions[from], to)
}

// CanTransitionMilestone 判断里程碑状态 from → to 是否在转换表中
func CanTransitionMilestone(from, to string) bool {
	return contains(MilestoneTransitions[from], to)
}

// IsValidStatus 判断是否为已注册的论文状态
func IsValidStatus(s string) bool {
	_, ok := ThesisTransitions[s]
	return ok
}

// IsValidMilestoneStatus 判断是否为已注册的里程碑状态
func IsValidMilestoneStatus(s string) bool {
	_, ok := MilestoneTransitions[s]
	return ok
}

// IsValidDecision 判断是否为合法的委员会评审决定
func IsValidDecision(d string) bool {
	return d == DecisionApprove || d == DecisionReject || d == DecisionMinorRevision
}

// IsValidSubmissionKind 判断是否为合法的提交类型
func IsValidSubmissionKind(k string) bool {
	return k == SubmissionKindProposal || k == SubmissionKindInterim || k == SubmissionKindFinal
}

// IsDeadlineExempt 判断该状态的论文是否豁免截止日期检查
func IsDeadlineExempt(status string) bool {
	return deadlineExempt[status]
}

// DeadlineExemptStatuses 返回豁免状态列表（供 SQL NOT IN 查询使用）
func DeadlineExemptStatuses() []string {
	return []string{StatusApproved, StatusFinalSubmitted, StatusCompleted, StatusLate}
}

// IsTerminal 判断论文状态是否为终态（无任何可转出状态）
func IsTerminal(status string) bool {
	return len(ThesisTransitions[status]) == 0
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

package service

import (
	"time"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/dto"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/model"
)

// ── 模型 → DTO 转换辅助（多个 Service 共用）──

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func toThesisResponse(t *model.Thesis) *dto.ThesisResponse {
	resp := &dto.ThesisResponse{
		ID:                 t.ThesisID,
		Title:              t.Title,
		StudentID:          t.StudentID,
		Status:             t.Status,
		SubmissionDeadline: formatDatePtr(t.SubmissionDeadline),
		Version:            t.Version,
		CreatedAt:          formatTime(t.CreatedAt),
		UpdatedAt:          formatTime(t.UpdatedAt),
	}
	if t.Student != nil {
		resp.StudentName = t.Student.Name
	}
	return resp
}

func toStudentResponse(s *model.Student) *dto.StudentResponse {
	return &dto.StudentResponse{
		ID:        s.StudentID,
		Name:      s.Name,
		Email:     s.Email,
		CreatedAt: formatTime(s.CreatedAt),
	}
}

func toSupervisorResponse(s *model.Supervisor) *dto.SupervisorResponse {
	return &dto.SupervisorResponse{
		ID:         s.SupervisorID,
		Name:       s.Name,
		Email:      s.Email,
		Department: s.Department,
		CreatedAt:  formatTime(s.CreatedAt),
	}
}

func toReviewerResponse(r *model.ExternalReviewer) *dto.ReviewerResponse {
	return &dto.ReviewerResponse{
		ID:        r.ReviewerID,
		Name:      r.Name,
		Email:     r.Email,
		CreatedAt: formatTime(r.CreatedAt),
	}
}

func toCommitteeMemberResponse(m *model.CommitteeMember) *dto.CommitteeMemberResponse {
	return &dto.CommitteeMemberResponse{
		ID:        m.MemberID,
		Name:      m.Name,
		Email:     m.Email,
		CreatedAt: formatTime(m.CreatedAt),
	}
}

func toMilestoneResponse(m *model.Milestone) *dto.MilestoneResponse {
	return &dto.MilestoneResponse{
		ID:        m.MilestoneID,
		ThesisID:  m.ThesisID,
		Type:      m.Type,
		DueDate:   formatDate(m.DueDate),
		Status:    m.Status,
		Notes:     m.Notes,
		CreatedAt: formatTime(m.CreatedAt),
		UpdatedAt: formatTime(m.UpdatedAt),
	}
}

func toSubmissionResponse(s *model.Submission) *dto.SubmissionResponse {
	return &dto.SubmissionResponse{
		ID:            s.SubmissionID,
		ThesisID:      s.ThesisID,
		Kind:          s.Kind,
		SubmittedAt:   formatTime(s.SubmittedAt),
		Comment:       s.Comment,
		AttachmentRef: s.AttachmentRef,
	}
}

func toDecisionResponse(d *model.DecisionLog) *dto.DecisionResponse {
	resp := &dto.DecisionResponse{
		MemberID:  d.MemberID,
		Decision:  d.Decision,
		Comment:   d.Comment,
		CreatedAt: formatTime(d.CreatedAt),
	}
	if d.Member != nil {
		resp.MemberName = d.Member.Name
	}
	return resp
}

func toStatusHistoryResponse(h *model.StatusHistory) *dto.StatusHistoryResponse {
	return &dto.StatusHistoryResponse{
		OldStatus: h.OldStatus,
		NewStatus: h.NewStatus,
		ChangedAt: formatTime(h.ChangedAt),
	}
}

func toUserResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: formatTime(u.CreatedAt),
	}
}

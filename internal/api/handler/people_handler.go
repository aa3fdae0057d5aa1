package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/dto"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/service"
	"github.com/zhangirtastemir/thesis-workflow-manager/pkg/response"
)

// PeopleHandler 人员模块 HTTP 处理器
type PeopleHandler struct {
	peopleSvc service.PeopleService
}

// NewPeopleHandler 创建 PeopleHandler
func NewPeopleHandler(peopleSvc service.PeopleService) *PeopleHandler {
	return &PeopleHandler{peopleSvc: peopleSvc}
}

// ────────────────────── 学生 ──────────────────────

// CreateStudent POST /api/v1/students
func (h *PeopleHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	student, err := h.peopleSvc.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.Created(c, student)
}

// GetStudent GET /api/v1/students/:id
func (h *PeopleHandler) GetStudent(c *gin.Context) {
	student, err := h.peopleSvc.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, student)
}

// UpdateStudent PUT /api/v1/students/:id
func (h *PeopleHandler) UpdateStudent(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	student, err := h.peopleSvc.UpdateStudent(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, student)
}

// DeleteStudent DELETE /api/v1/students/:id
func (h *PeopleHandler) DeleteStudent(c *gin.Context) {
	if err := h.peopleSvc.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListStudents GET /api/v1/students
func (h *PeopleHandler) ListStudents(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	students, total, err := h.peopleSvc.ListStudents(c.Request.Context(), &query)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, gin.H{"items": students, "total": total})
}

// ────────────────────── 导师 ──────────────────────

// CreateSupervisor POST /api/v1/supervisors
func (h *PeopleHandler) CreateSupervisor(c *gin.Context) {
	var req dto.CreateSupervisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	supervisor, err := h.peopleSvc.CreateSupervisor(c.Request.Context(), &req)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.Created(c, supervisor)
}

// GetSupervisor GET /api/v1/supervisors/:id
func (h *PeopleHandler) GetSupervisor(c *gin.Context) {
	supervisor, err := h.peopleSvc.GetSupervisor(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, supervisor)
}

// UpdateSupervisor PUT /api/v1/supervisors/:id
func (h *PeopleHandler) UpdateSupervisor(c *gin.Context) {
	var req dto.UpdateSupervisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	supervisor, err := h.peopleSvc.UpdateSupervisor(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, supervisor)
}

// DeleteSupervisor DELETE /api/v1/supervisors/:id
func (h *PeopleHandler) DeleteSupervisor(c *gin.Context) {
	if err := h.peopleSvc.DeleteSupervisor(c.Request.Context(), c.Param("id")); err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListSupervisors GET /api/v1/supervisors
func (h *PeopleHandler) ListSupervisors(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	supervisors, total, err := h.peopleSvc.ListSupervisors(c.Request.Context(), &query)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, gin.H{"items": supervisors, "total": total})
}

// ────────────────────── 外审专家 ──────────────────────

// CreateReviewer POST /api/v1/reviewers
func (h *PeopleHandler) CreateReviewer(c *gin.Context) {
	var req dto.CreateReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	reviewer, err := h.peopleSvc.CreateReviewer(c.Request.Context(), &req)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.Created(c, reviewer)
}

// GetReviewer GET /api/v1/reviewers/:id
func (h *PeopleHandler) GetReviewer(c *gin.Context) {
	reviewer, err := h.peopleSvc.GetReviewer(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, reviewer)
}

// UpdateReviewer PUT /api/v1/reviewers/:id
func (h *PeopleHandler) UpdateReviewer(c *gin.Context) {
	var req dto.UpdateReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	reviewer, err := h.peopleSvc.UpdateReviewer(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, reviewer)
}

// DeleteReviewer DELETE /api/v1/reviewers/:id
func (h *PeopleHandler) DeleteReviewer(c *gin.Context) {
	if err := h.peopleSvc.DeleteReviewer(c.Request.Context(), c.Param("id")); err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListReviewers GET /api/v1/reviewers
func (h *PeopleHandler) ListReviewers(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	reviewers, total, err := h.peopleSvc.ListReviewers(c.Request.Context(), &query)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, gin.H{"items": reviewers, "total": total})
}

// ────────────────────── 委员会成员 ──────────────────────

// CreateCommitteeMember POST /api/v1/committee-members
func (h *PeopleHandler) CreateCommitteeMember(c *gin.Context) {
	var req dto.CreateCommitteeMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	member, err := h.peopleSvc.CreateCommitteeMember(c.Request.Context(), &req)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.Created(c, member)
}

// GetCommitteeMember GET /api/v1/committee-members/:id
func (h *PeopleHandler) GetCommitteeMember(c *gin.Context) {
	member, err := h.peopleSvc.GetCommitteeMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, member)
}

// UpdateCommitteeMember PUT /api/v1/committee-members/:id
func (h *PeopleHandler) UpdateCommitteeMember(c *gin.Context) {
	var req dto.UpdateCommitteeMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	member, err := h.peopleSvc.UpdateCommitteeMember(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, member)
}

// DeleteCommitteeMember DELETE /api/v1/committee-members/:id
func (h *PeopleHandler) DeleteCommitteeMember(c *gin.Context) {
	if err := h.peopleSvc.DeleteCommitteeMember(c.Request.Context(), c.Param("id")); err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListCommitteeMembers GET /api/v1/committee-members
func (h *PeopleHandler) ListCommitteeMembers(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	members, total, err := h.peopleSvc.ListCommitteeMembers(c.Request.Context(), &query)
	if err != nil {
		h.handlePeopleError(c, err)
		return
	}
	response.OK(c, gin.H{"items": members, "total": total})
}

// ── 错误映射 ──

func (h *PeopleHandler) handlePeopleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12001, "学生不存在")
	case errors.Is(err, service.ErrSupervisorNotFound):
		response.NotFound(c, 12002, "导师不存在")
	case errors.Is(err, service.ErrReviewerNotFound):
		response.NotFound(c, 12003, "外审专家不存在")
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 12004, "委员会成员不存在")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 12005, "该邮箱已被使用")
	default:
		response.InternalError(c)
	}
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zhangirtastemir/thesis-workflow-manager/config"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/dto"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/service"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/workflow"
	pkgerrors "github.com/zhangirtastemir/thesis-workflow-manager/pkg/errors"
	"github.com/zhangirtastemir/thesis-workflow-manager/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.LoginResponse
	loginRefresh     string
	loginErr         error
	logoutErr        error
	refreshResult    *dto.RefreshResponse
	refreshErr       error
	getCurrentResult *dto.UserResponse
	getCurrentErr    error
	changePassErr    error
	createUserResult *dto.UserResponse
	createUserErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.LoginResponse, string, error) {
	return m.loginResult, m.loginRefresh, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ string) (*dto.RefreshResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}
func (m *mockAuthService) CreateUser(_ context.Context, _ *dto.CreateUserRequest) (*dto.UserResponse, error) {
	return m.createUserResult, m.createUserErr
}

// ── Mock ThesisService ──

type mockThesisService struct {
	createResult  *dto.ThesisResponse
	createErr     error
	getResult     *dto.ThesisDetailResponse
	getErr        error
	listResult    []dto.ThesisResponse
	listTotal     int64
	listErr       error
	updateResult  *dto.ThesisResponse
	updateErr     error
	deleteErr     error
	assignSupErr  error
	assignRevErr  error
	setCommErr    error
	historyResult []dto.StatusHistoryResponse
	historyErr    error
}

func (m *mockThesisService) Create(_ context.Context, _ *dto.CreateThesisRequest) (*dto.ThesisResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockThesisService) GetByID(_ context.Context, _ string) (*dto.ThesisDetailResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockThesisService) List(_ context.Context, _ *dto.ThesisListQuery) ([]dto.ThesisResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockThesisService) Update(_ context.Context, _ string, _ *dto.UpdateThesisRequest) (*dto.ThesisResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockThesisService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockThesisService) AssignSupervisor(_ context.Context, _, _ string) error {
	return m.assignSupErr
}
func (m *mockThesisService) AssignReviewer(_ context.Context, _, _ string) error {
	return m.assignRevErr
}
func (m *mockThesisService) SetCommittee(_ context.Context, _ string, _ []string) error {
	return m.setCommErr
}
func (m *mockThesisService) GetHistory(_ context.Context, _ string) ([]dto.StatusHistoryResponse, error) {
	return m.historyResult, m.historyErr
}

// ── Mock WorkflowService ──

type mockWorkflowService struct {
	transitionResult   *dto.ThesisResponse
	transitionErr      error
	msTransitionResult *dto.MilestoneResponse
	msTransitionErr    error
	recordErr          error
	approvalResult     *dto.ApprovalStatusResponse
	approvalErr        error
	enforceMarked      int
	enforceErr         error
}

func (m *mockWorkflowService) RequestThesisTransition(_ context.Context, _, _ string) (*dto.ThesisResponse, error) {
	return m.transitionResult, m.transitionErr
}
func (m *mockWorkflowService) RequestMilestoneTransition(_ context.Context, _, _ string) (*dto.MilestoneResponse, error) {
	return m.msTransitionResult, m.msTransitionErr
}
func (m *mockWorkflowService) RecordDecision(_ context.Context, _ string, _ *dto.DecisionRequest) error {
	return m.recordErr
}
func (m *mockWorkflowService) EvaluateApproval(_ context.Context, _ string) (*dto.ApprovalStatusResponse, error) {
	return m.approvalResult, m.approvalErr
}
func (m *mockWorkflowService) EnforceDeadlines(_ context.Context) (int, error) {
	return m.enforceMarked, m.enforceErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 720 * time.Hour,
		},
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.LoginResponse{
			AccessToken: "test-access-token",
			User:        &dto.UserResponse{ID: "user-1", Email: "admin@thesis.local"},
		},
		loginRefresh: "test-refresh-token",
	}
	h := NewAuthHandler(testConfig(), mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@thesis.local",
		Password: "password",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}

	// RefreshToken 应通过 HttpOnly Cookie 下发
	found := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "refresh_token" {
			found = true
			if ck.Value != "test-refresh-token" {
				t.Errorf("expected cookie value test-refresh-token, got %s", ck.Value)
			}
			if !ck.HttpOnly {
				t.Error("refresh_token cookie should be HttpOnly")
			}
		}
	}
	if !found {
		t.Error("expected refresh_token cookie to be set")
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(testConfig(), &mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(testConfig(), &mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@thesis.local",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_RefreshToken_FromCookie(t *testing.T) {
	h := NewAuthHandler(testConfig(), &mockAuthService{
		refreshResult: &dto.RefreshResponse{AccessToken: "new-access"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "cookie-refresh"})

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_RefreshToken_MissingCookie(t *testing.T) {
	h := NewAuthHandler(testConfig(), &mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", nil)

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 10002 {
		t.Errorf("expected error code 10002, got %d", resp.Code)
	}
}

func TestAuthHandler_CreateUser_EmailTaken(t *testing.T) {
	h := NewAuthHandler(testConfig(), &mockAuthService{createUserErr: service.ErrEmailTaken})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/users", jsonBody(dto.CreateUserRequest{
		Name:     "新职员",
		Email:    "taken@thesis.local",
		Password: "password-123",
		Role:     "staff",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/users", h.CreateUser)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11003 {
		t.Errorf("expected error code 11003, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ThesisHandler Tests
// ═══════════════════════════════════════════════════════════

func TestThesisHandler_Transition_Success(t *testing.T) {
	wf := &mockWorkflowService{
		transitionResult: &dto.ThesisResponse{ID: "thesis-1", Status: workflow.StatusSubmitted},
	}
	h := NewThesisHandler(&mockThesisService{}, wf)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/theses/thesis-1/transition", jsonBody(dto.TransitionRequest{
		TargetStatus: workflow.StatusSubmitted,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/theses/:id/transition", h.Transition)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestThesisHandler_Transition_Illegal(t *testing.T) {
	wf := &mockWorkflowService{transitionErr: service.ErrIllegalTransition}
	h := NewThesisHandler(&mockThesisService{}, wf)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/theses/thesis-1/transition", jsonBody(dto.TransitionRequest{
		TargetStatus: workflow.StatusApproved,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/theses/:id/transition", h.Transition)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13002 {
		t.Errorf("expected error code 13002, got %d", resp.Code)
	}
}

func TestThesisHandler_Transition_ApprovalBlocked(t *testing.T) {
	// 受阻原因随错误包装传递，响应 message 应原样携带
	wf := &mockWorkflowService{
		transitionErr: fmt.Errorf("%w: %s", service.ErrApprovalBlocked, workflow.ReasonRejected),
	}
	h := NewThesisHandler(&mockThesisService{}, wf)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/theses/thesis-1/transition", jsonBody(dto.TransitionRequest{
		TargetStatus: workflow.StatusApproved,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/theses/:id/transition", h.Transition)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13004 {
		t.Errorf("expected error code 13004, got %d", resp.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("Reject")) {
		t.Errorf("message should carry blocking reason, got %s", resp.Message)
	}
}

func TestThesisHandler_Update_OptimisticConflict(t *testing.T) {
	ts := &mockThesisService{updateErr: pkgerrors.ErrOptimisticLock}
	h := NewThesisHandler(ts, &mockWorkflowService{})

	newTitle := "新标题"
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/theses/thesis-1", jsonBody(dto.UpdateThesisRequest{
		Title:   &newTitle,
		Version: 1,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/theses/:id", h.Update)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13009 {
		t.Errorf("expected error code 13009, got %d", resp.Code)
	}
}

func TestThesisHandler_Get_NotFound(t *testing.T) {
	ts := &mockThesisService{getErr: service.ErrThesisNotFound}
	h := NewThesisHandler(ts, &mockWorkflowService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/theses/nonexistent", nil)

	r := gin.New()
	r.GET("/theses/:id", h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13001 {
		t.Errorf("expected error code 13001, got %d", resp.Code)
	}
}

func TestThesisHandler_Get_IncludesApproval(t *testing.T) {
	ts := &mockThesisService{
		getResult: &dto.ThesisDetailResponse{ID: "thesis-1", Status: workflow.StatusUnderReview},
	}
	wf := &mockWorkflowService{
		approvalResult: &dto.ApprovalStatusResponse{CanApprove: true, Members: []dto.MemberDecisionStatus{}},
	}
	h := NewThesisHandler(ts, wf)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/theses/thesis-1", nil)

	r := gin.New()
	r.GET("/theses/:id", h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("can_approve")) {
		t.Error("详情响应应包含门控评估结果")
	}
}

func TestThesisHandler_GetApproval_NotFound(t *testing.T) {
	wf := &mockWorkflowService{approvalErr: service.ErrThesisNotFound}
	h := NewThesisHandler(&mockThesisService{}, wf)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/theses/nonexistent/approval", nil)

	r := gin.New()
	r.GET("/theses/:id/approval", h.GetApproval)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13001 {
		t.Errorf("expected error code 13001, got %d", resp.Code)
	}
}

func TestThesisHandler_RecordDecision_InvalidDecision(t *testing.T) {
	wf := &mockWorkflowService{recordErr: service.ErrInvalidDecision}
	h := NewThesisHandler(&mockThesisService{}, wf)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/theses/thesis-1/decisions", jsonBody(dto.DecisionRequest{
		MemberID: "0190e3a1-0000-7000-8000-000000000001",
		Decision: "Abstain",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/theses/:id/decisions", h.RecordDecision)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13006 {
		t.Errorf("expected error code 13006, got %d", resp.Code)
	}
}

func TestThesisHandler_RecordDecision_NotAssigned(t *testing.T) {
	wf := &mockWorkflowService{recordErr: service.ErrNotAssigned}
	h := NewThesisHandler(&mockThesisService{}, wf)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/theses/thesis-1/decisions", jsonBody(dto.DecisionRequest{
		MemberID: "0190e3a1-0000-7000-8000-000000000001",
		Decision: workflow.DecisionApprove,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/theses/:id/decisions", h.RecordDecision)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13007 {
		t.Errorf("expected error code 13007, got %d", resp.Code)
	}
}

func TestThesisHandler_Create_BadJSON(t *testing.T) {
	h := NewThesisHandler(&mockThesisService{}, &mockWorkflowService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/theses", bytes.NewReader([]byte("{broken")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/theses", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 10001 {
		t.Errorf("expected error code 10001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// MilestoneHandler Tests
// ═══════════════════════════════════════════════════════════

func TestMilestoneHandler_Transition_Illegal(t *testing.T) {
	wf := &mockWorkflowService{msTransitionErr: service.ErrIllegalTransition}
	h := NewMilestoneHandler(&mockMilestoneService{}, wf)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/milestones/ms-1/transition", jsonBody(dto.MilestoneTransitionRequest{
		TargetStatus: workflow.MilestoneStatusAccepted,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/milestones/:id/transition", h.Transition)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13002 {
		t.Errorf("expected error code 13002, got %d", resp.Code)
	}
}

// ── Mock MilestoneService ──

type mockMilestoneService struct {
	createResult *dto.MilestoneResponse
	createErr    error
	getResult    *dto.MilestoneResponse
	getErr       error
	listResult   []dto.MilestoneResponse
	listErr      error
	updateResult *dto.MilestoneResponse
	updateErr    error
	deleteErr    error
}

func (m *mockMilestoneService) Create(_ context.Context, _ string, _ *dto.CreateMilestoneRequest) (*dto.MilestoneResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockMilestoneService) GetByID(_ context.Context, _ string) (*dto.MilestoneResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockMilestoneService) ListByThesis(_ context.Context, _ string) ([]dto.MilestoneResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockMilestoneService) Update(_ context.Context, _ string, _ *dto.UpdateMilestoneRequest) (*dto.MilestoneResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockMilestoneService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

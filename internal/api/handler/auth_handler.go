package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zhangirtastemir/thesis-workflow-manager/config"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/dto"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/service"
	"github.com/zhangirtastemir/thesis-workflow-manager/pkg/jwt"
	"github.com/zhangirtastemir/thesis-workflow-manager/pkg/response"
)

const refreshCookieName = "refresh_token"

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	cfg     *config.Config
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(cfg *config.Config, authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{cfg: cfg, authSvc: authSvc}
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, refreshToken, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 11001, "邮箱或密码错误")
			return
		}
		response.InternalError(c)
		return
	}

	h.setRefreshCookie(c, refreshToken, req.RememberMe)
	response.OK(c, result)
}

// Logout 用户登出，当前 AccessToken 加入黑名单
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, expiry := getTokenMeta(c)
	if jti != "" {
		if err := h.authSvc.Logout(c.Request.Context(), jti, expiry); err != nil {
			response.InternalError(c)
			return
		}
	}

	// 清除 RefreshToken Cookie
	c.SetCookie(refreshCookieName, "", -1, "/api/v1/auth", h.cfg.Auth.Cookie.Domain, h.cfg.Auth.Cookie.Secure, true)
	response.OK(c, nil)
}

// RefreshToken 刷新 AccessToken（RefreshToken 取自 HttpOnly Cookie）
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		response.Unauthorized(c, 10002, "缺少 RefreshToken")
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenInvalid), errors.Is(err, service.ErrTokenRevoked):
			response.Unauthorized(c, 10002, "RefreshToken 无效或已过期")
		case errors.Is(err, service.ErrUserNotFound):
			response.Unauthorized(c, 11002, "用户不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Me 获取当前登录用户信息
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11002, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

// ChangePassword 修改当前用户密码
// POST /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.BadRequest(c, 11001, "原密码错误")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11002, "用户不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// CreateUser 创建系统用户（仅管理员）
// POST /api/v1/users
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.authSvc.CreateUser(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Conflict(c, 11003, "该邮箱已被使用")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, user)
}

// setRefreshCookie 将 RefreshToken 写入 HttpOnly Cookie
// Path 限定在刷新接口前缀，降低被动泄露面
func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string, rememberMe bool) {
	ttl := h.cfg.Auth.RefreshTokenTTLDefault
	if rememberMe {
		ttl = h.cfg.Auth.RefreshTokenTTLRemember
	}
	c.SetCookie(refreshCookieName, token, int(ttl.Seconds()), "/api/v1/auth", h.cfg.Auth.Cookie.Domain, h.cfg.Auth.Cookie.Secure, true)
}

package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zhangirtastemir/thesis-workflow-manager/config"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/api/handler"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/api/middleware"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/model"
	"github.com/zhangirtastemir/thesis-workflow-manager/pkg/jwt"
	"github.com/zhangirtastemir/thesis-workflow-manager/pkg/redis"
)

const (
	maxBodyBytes    = 1 << 20 // 1MB，纯 JSON API 无文件上传
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查与指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, loginRateLimit, loginRateWindow), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/password", h.Auth.ChangePassword)
			authorized.POST("/users", middleware.RoleAuth(model.RoleAdmin), h.Auth.CreateUser)

			// 学生模块
			students := authorized.Group("/students")
			{
				students.GET("", h.People.ListStudents)
				students.GET("/:id", h.People.GetStudent)
				students.POST("", h.People.CreateStudent)
				students.PUT("/:id", h.People.UpdateStudent)
				students.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.People.DeleteStudent)
			}

			// 导师模块
			supervisors := authorized.Group("/supervisors")
			{
				supervisors.GET("", h.People.ListSupervisors)
				supervisors.GET("/:id", h.People.GetSupervisor)
				supervisors.POST("", h.People.CreateSupervisor)
				supervisors.PUT("/:id", h.People.UpdateSupervisor)
				supervisors.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.People.DeleteSupervisor)
			}

			// 外审专家模块
			reviewers := authorized.Group("/reviewers")
			{
				reviewers.GET("", h.People.ListReviewers)
				reviewers.GET("/:id", h.People.GetReviewer)
				reviewers.POST("", h.People.CreateReviewer)
				reviewers.PUT("/:id", h.People.UpdateReviewer)
				reviewers.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.People.DeleteReviewer)
			}

			// 委员会成员模块
			members := authorized.Group("/committee-members")
			{
				members.GET("", h.People.ListCommitteeMembers)
				members.GET("/:id", h.People.GetCommitteeMember)
				members.POST("", h.People.CreateCommitteeMember)
				members.PUT("/:id", h.People.UpdateCommitteeMember)
				members.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.People.DeleteCommitteeMember)
			}

			// 论文模块
			theses := authorized.Group("/theses")
			{
				theses.GET("", h.Thesis.List)
				theses.GET("/:id", h.Thesis.Get)
				theses.POST("", h.Thesis.Create)
				theses.PUT("/:id", h.Thesis.Update)
				theses.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Thesis.Delete)

				// 状态流转（所有状态变更必须经由流程接口）
				theses.POST("/:id/transition", h.Thesis.Transition)
				theses.GET("/:id/history", h.Thesis.GetHistory)

				// 指派与委员会
				theses.PUT("/:id/supervisor", h.Thesis.AssignSupervisor)
				theses.PUT("/:id/reviewer", h.Thesis.AssignReviewer)
				theses.PUT("/:id/committee", h.Thesis.SetCommittee)

				// 评审决定与门控
				theses.POST("/:id/decisions", h.Thesis.RecordDecision)
				theses.GET("/:id/approval", h.Thesis.GetApproval)

				// 里程碑与提交记录（论文下级资源）
				theses.POST("/:id/milestones", h.Milestone.Create)
				theses.GET("/:id/milestones", h.Milestone.ListByThesis)
				theses.POST("/:id/submissions", h.Submission.Create)
				theses.GET("/:id/submissions", h.Submission.ListByThesis)
			}

			// 里程碑模块（独立主键访问）
			milestones := authorized.Group("/milestones")
			{
				milestones.GET("/:id", h.Milestone.Get)
				milestones.PUT("/:id", h.Milestone.Update)
				milestones.DELETE("/:id", h.Milestone.Delete)
				milestones.POST("/:id/transition", h.Milestone.Transition)
			}

			// 工作台
			authorized.GET("/dashboard", h.Dashboard.Overview)

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/theses", h.Export.ExportTheses)
				export.GET("/calendar.ics", h.Export.Calendar)
			}
		}
	}

	return r
}

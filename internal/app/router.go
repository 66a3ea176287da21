package app

import (
	"github.com/Chirandip-dev07/ujjivana/internal/config"
	"github.com/Chirandip-dev07/ujjivana/internal/middleware"
	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	api := router.Group("/api")

	// Public routes
	api.POST("/auth/register", c.auth.Register)
	api.POST("/auth/login", c.auth.Login)
	api.POST("/auth/otp/request", c.auth.RequestOTP)
	api.POST("/auth/otp/verify", c.auth.VerifyOTP)
	api.POST("/auth/password/reset", c.auth.ResetPassword)

	// Authenticated routes
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(cfg))
	{
		auth.GET("/users/me", c.user.Me)
		auth.PUT("/users/me", c.user.UpdateProfile)
		auth.GET("/users/me/points", c.user.PointsHistory)
		auth.GET("/users/me/badges", c.user.Badges)

		auth.GET("/leaderboard", c.leaderboard.Top)

		auth.GET("/modules", c.module.List)
		auth.GET("/modules/completed", c.module.Completed)
		auth.GET("/modules/:id", c.module.Get)
		auth.GET("/modules/:id/progress", c.module.Progress)
		auth.PUT("/modules/:id/progress", c.module.UpdateLessonProgress)
		auth.POST("/modules/:id/complete", c.module.Complete)
		auth.GET("/modules/:id/completion-status", c.module.CompletionStatus)

		auth.GET("/quizzes", c.quiz.List)
		auth.GET("/quizzes/daily", c.quiz.Daily)
		auth.POST("/quizzes/daily/answer", c.quiz.AnswerDaily)
		auth.GET("/quizzes/attempts", c.quiz.MyAttempts)
		auth.GET("/quizzes/:id", c.quiz.Get)
		auth.POST("/quizzes/:id/submit", c.quiz.Submit)

		auth.GET("/challenges", c.challenge.List)
		auth.GET("/challenges/joined", c.challenge.Joined)
		auth.GET("/challenges/:id", c.challenge.Get)
		auth.POST("/challenges/:id/join", c.challenge.Join)
		auth.POST("/challenges/:id/submit", c.challenge.SubmitWork)
		auth.POST("/challenges/:id/complete", c.challenge.Complete)
		auth.GET("/challenges/:id/submissions", c.challenge.MySubmissions)

		auth.GET("/rewards", c.reward.List)
		auth.GET("/rewards/history", c.reward.History)
		auth.GET("/rewards/:id", c.reward.Get)
		auth.POST("/rewards/:id/redeem", c.reward.Redeem)

		auth.GET("/surveys", c.survey.List)
		auth.GET("/surveys/:id", c.survey.Get)
		auth.POST("/surveys/:id/complete", c.survey.Complete)

		auth.GET("/events", c.event.Upcoming)
		auth.GET("/events/:id", c.event.Get)
		auth.POST("/events/:id/register", c.event.Register)
		auth.DELETE("/events/:id/register", c.event.Unregister)

		auth.GET("/map/pins", c.ecoMap.Pins)
		auth.GET("/map/pins/stats", c.ecoMap.Stats)
		auth.GET("/map/pins/:id", c.ecoMap.Get)
		auth.POST("/map/pin-requests", c.ecoMap.RequestPin)
		auth.GET("/map/pin-requests/mine", c.ecoMap.MyRequests)
	}

	// Teacher routes (admins pass the role check implicitly)
	teacher := api.Group("/teacher")
	teacher.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/modules", c.module.Create)
		teacher.PUT("/modules/:id", c.module.Update)
		teacher.DELETE("/modules/:id", c.module.Delete)

		teacher.POST("/quizzes", c.quiz.Create)
		teacher.PUT("/quizzes/:id", c.quiz.Update)
		teacher.DELETE("/quizzes/:id", c.quiz.Delete)
		teacher.POST("/quizzes/:id/daily", c.quiz.MarkAsDaily)
		teacher.GET("/quizzes/:id/attempts", c.quiz.Attempts)

		teacher.POST("/challenges", c.challenge.Create)
		teacher.PUT("/challenges/:id", c.challenge.Update)
		teacher.DELETE("/challenges/:id", c.challenge.Delete)
		teacher.GET("/challenges/pending-submissions", c.challenge.Pending)
		teacher.GET("/challenges/:id/stats", c.challenge.Stats)
		teacher.PUT("/challenges/:id/participants/:participantId/submissions/:submissionId", c.challenge.Review)

		teacher.POST("/surveys", c.survey.Create)
		teacher.PUT("/surveys/:id", c.survey.Update)
		teacher.DELETE("/surveys/:id", c.survey.Delete)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.List)
		admin.GET("/users/:id", c.user.GetByID)
		admin.PUT("/users/:id/role", c.user.SetRole)
		admin.DELETE("/users/:id", c.user.Delete)

		admin.POST("/rewards", c.reward.Create)
		admin.PUT("/rewards/:id", c.reward.Update)
		admin.DELETE("/rewards/:id", c.reward.Delete)
		admin.GET("/redemptions", c.reward.AllRedemptions)
		admin.PUT("/redemptions/:id/status", c.reward.UpdateRedemptionStatus)

		admin.GET("/events", c.event.All)
		admin.POST("/events", c.event.Create)
		admin.PUT("/events/:id", c.event.Update)
		admin.DELETE("/events/:id", c.event.Delete)
		admin.POST("/events/:id/attendance/:userId", c.event.MarkAttendance)

		admin.POST("/map/pins", c.ecoMap.Create)
		admin.PUT("/map/pins/:id", c.ecoMap.Update)
		admin.DELETE("/map/pins/:id", c.ecoMap.Delete)
		admin.GET("/map/pin-requests", c.ecoMap.AllRequests)
		admin.PUT("/map/pin-requests/:id/approve", c.ecoMap.Approve)
		admin.PUT("/map/pin-requests/:id/reject", c.ecoMap.Reject)
	}
}

package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/shiftcheck/backend/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Task    *apiHandler.TaskHandler
	Report  *apiHandler.ReportHandler
	Content *apiHandler.ContentHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", authMiddleware(handlers.Auth.Logout))

	// Checklist
	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.GET("/api/v1/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.POST("/api/v1/tasks/import", authMiddleware(handlers.Task.ImportTasks))
	r.POST("/api/v1/tasks/{id}/toggle", authMiddleware(handlers.Task.ToggleTask))

	// Reports
	r.GET("/api/v1/stats", authMiddleware(handlers.Report.GetStats))
	r.GET("/api/v1/audit", authMiddleware(handlers.Report.GetAuditLog))

	// Rules and training content
	r.GET("/api/v1/rules", authMiddleware(handlers.Content.GetRules))
	r.PUT("/api/v1/rules", authMiddleware(handlers.Content.PutRule))
	r.GET("/api/v1/videos", authMiddleware(handlers.Content.GetVideos))
	r.POST("/api/v1/videos", authMiddleware(handlers.Content.PostVideo))
	r.DELETE("/api/v1/videos/{id}", authMiddleware(handlers.Content.DeleteVideo))

	return r
}

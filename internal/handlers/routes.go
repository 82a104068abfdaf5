package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth    *AuthHandler
	Project *ProjectHandler
	Task    *TaskHandler
	Comment *CommentHandler
	Upload  *UploadHandler
}

// RegisterRoutes mounts the API under /api and serves uploaded files.
func RegisterRoutes(r *gin.Engine, h Handlers, uploadDir string) {
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Project Tracker API is running",
		})
	})

	r.Static(constants.UploadURLPrefix, uploadDir)

	api := r.Group("/api")
	{
		// Auth routes (public except /me)
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.GET("/me", middleware.RequireAuth(), h.Auth.GetCurrentUser)
		}

		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", h.Project.ListProjects)
			projects.POST("", h.Project.CreateProject)
			projects.GET("/:id", h.Project.GetProject)
			projects.PUT("/:id", h.Project.UpdateProject)
			projects.DELETE("/:id", h.Project.DeleteProject)
		}

		tasks := api.Group("/tasks/project/:projectId")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", h.Task.ListTasks)
			tasks.POST("", h.Task.CreateTask)
			tasks.POST("/suggest", h.Task.SuggestTasks)
			tasks.PUT("/task/:taskId", h.Task.UpdateTask)
			tasks.DELETE("/task/:taskId", h.Task.DeleteTask)
		}

		comments := api.Group("/comments/project/:projectId")
		comments.Use(middleware.RequireAuth())
		{
			comments.GET("", h.Comment.ListComments)
			comments.POST("", h.Comment.CreateComment)
			comments.DELETE("/comment/:commentId", h.Comment.DeleteComment)
		}

		api.POST("/upload", middleware.RequireAuth(), h.Upload.UploadImage)
	}
}

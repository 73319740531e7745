package server

import (
	"github.com/gin-gonic/gin"

	"todoapi/internal/apperr"
	"todoapi/internal/service"
)

// Server wires the domain services into an HTTP API.
type Server struct {
	auth       *service.AuthService
	tasks      *service.TaskService
	categories *service.CategoryService
}

func New(auth *service.AuthService, tasks *service.TaskService, categories *service.CategoryService) *Server {
	return &Server{auth: auth, tasks: tasks, categories: categories}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register/", s.handleRegister)
	auth.POST("/login/", s.handleLogin)
	auth.POST("/logout/", s.requireAuth, s.handleLogout)
	auth.GET("/profile/", s.requireAuth, s.handleGetProfile)
	auth.PUT("/profile/", s.requireAuth, s.handleUpdateProfile)
	auth.PATCH("/profile/", s.requireAuth, s.handleUpdateProfile)

	todos := api.Group("/todos", s.requireAuth)
	todos.GET("/", s.handleListTasks)
	todos.POST("/", s.handleCreateTask)
	todos.GET("/stats/", s.handleTaskStats)
	todos.GET("/upcoming/", s.handleUpcomingTasks)
	todos.GET("/:id/", s.handleGetTask)
	todos.PUT("/:id/", s.handleUpdateTask(false))
	todos.PATCH("/:id/", s.handleUpdateTask(true))
	todos.DELETE("/:id/", s.handleDeleteTask)
	todos.POST("/:id/toggle_complete/", s.handleToggleTask)

	categories := api.Group("/categories", s.requireAuth)
	categories.GET("/", s.handleListCategories)
	categories.POST("/", s.handleCreateCategory)
	categories.GET("/:id/", s.handleGetCategory)
	categories.PUT("/:id/", s.handleUpdateCategory)
	categories.DELETE("/:id/", s.handleDeleteCategory)

	return r
}

// respondError maps a domain error onto the wire: status from the kind,
// message in the body, internal causes hidden.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"detail": apperr.Message(err)})
}

// Package web exposes the roster core over HTTP as a JSON API.
package web

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tobyward/taskroster/internal/core"
	"github.com/tobyward/taskroster/internal/observability"
)

// Server is the taskroster HTTP server.
type Server struct {
	people      core.PersonRegistry
	tasks       core.TaskService
	coordinator core.AssignmentCoordinator
	router      *gin.Engine
}

// NewServer creates a Server over the given services and registers routes.
func NewServer(people core.PersonRegistry, tasks core.TaskService, coordinator core.AssignmentCoordinator) *Server {
	router := gin.Default()

	s := &Server{
		people:      people,
		tasks:       tasks,
		coordinator: coordinator,
		router:      router,
	}

	router.Use(requestIDMiddleware())

	api := router.Group("/api")
	{
		api.POST("/people", s.handleCreatePerson)
		api.GET("/people", s.handleListPeople)
		api.PATCH("/people/:id", s.handleRenamePerson)
		api.DELETE("/people/:id", s.handleDeletePerson)

		api.POST("/todos", s.handleCreateTodo)
		api.GET("/todos", s.handleListTodos)
		api.PATCH("/todos/:id/done", s.handleMarkDone)
		api.PATCH("/todos/:id/assign", s.handleAssign)
		api.DELETE("/todos/:id", s.handleDeleteTodo)
	}

	return s
}

// Run starts the HTTP server on addr, blocking until it exits.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router returns the underlying gin engine for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// requestIDMiddleware assigns each request a correlation ID, reusing a
// client-supplied X-Request-ID when present. The ID is echoed in the
// response and attached to every event the request emits.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Request = c.Request.WithContext(
			observability.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

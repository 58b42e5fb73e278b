package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tobyward/taskroster/internal/core"
	"github.com/tobyward/taskroster/pkg/models"
)

const maxTitleLength = 200

type createPersonRequest struct {
	Name string `json:"name"`
}

type renamePersonRequest struct {
	Name string `json:"name"`
}

type createTodoRequest struct {
	Title      string `json:"title"`
	AssignedTo *int64 `json:"assigned_to_id"`
}

type assignTodoRequest struct {
	AssignedTo *int64 `json:"assigned_to_id"`
}

// --- People ---

func (s *Server) handleCreatePerson(c *gin.Context) {
	var req createPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	person, err := s.people.Add(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/people/%d", person.ID))
	c.JSON(http.StatusCreated, person)
}

func (s *Server) handleListPeople(c *gin.Context) {
	people, err := s.people.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, people)
}

func (s *Server) handleRenamePerson(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req renamePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	person, err := s.people.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

func (s *Server) handleDeletePerson(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.people.Remove(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Todos ---

func (s *Server) handleCreateTodo(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	if len(req.Title) > maxTitleLength {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("title must be at most %d characters", maxTitleLength)})
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), req.Title, req.AssignedTo)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/todos/%d", task.ID))
	c.JSON(http.StatusCreated, task)
}

// handleListTodos implements the tri-state assignment filter:
// no assigned_to_id parameter returns all tasks, an empty value returns
// unassigned tasks, and a numeric value returns that person's tasks.
func (s *Server) handleListTodos(c *gin.Context) {
	filter := models.AllTasks()
	if c.Request.URL.Query().Has("assigned_to_id") {
		raw := c.Query("assigned_to_id")
		if raw == "" {
			filter = models.UnassignedTasks()
		} else {
			personID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"detail": "invalid assigned_to_id: must be a number or empty for unassigned",
				})
				return
			}
			filter = models.TasksAssignedTo(personID)
		}
	}

	tasks, err := s.coordinator.Filter(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleMarkDone(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	task, err := s.tasks.MarkDone(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleAssign(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req assignTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	task, err := s.coordinator.Assign(c.Request.Context(), id, req.AssignedTo)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTodo(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.tasks.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Helpers ---

// pathID parses the :id path parameter, writing a 404 when it is not a
// number (an unparseable id can never name an existing record).
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return 0, false
	}
	return id, true
}

// writeError maps core error kinds to HTTP status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrDuplicateName):
		status = http.StatusConflict
	case errors.Is(err, core.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrConflict):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"detail": err.Error()})
}

// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the task roster as MCP tools for AI coding assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tobyward/taskroster/internal/core"
	"github.com/tobyward/taskroster/pkg/models"
)

// Server wraps the roster services and exposes them as MCP tools.
type Server struct {
	server      *gomcp.Server
	people      core.PersonRegistry
	tasks       core.TaskService
	coordinator core.AssignmentCoordinator
}

// NewServer creates an MCP server over the given roster services.
func NewServer(people core.PersonRegistry, tasks core.TaskService, coordinator core.AssignmentCoordinator, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		people:      people,
		tasks:       tasks,
		coordinator: coordinator,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "taskroster", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type personOutput struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Created string `json:"created_at"`
}

type taskOutput struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Done       bool   `json:"is_done"`
	Created    string `json:"created_at"`
	AssignedTo *int64 `json:"assigned_to_id"`
}

type listPeopleInput struct{}

type listPeopleOutput struct {
	People []personOutput `json:"people"`
	Count  int            `json:"count"`
}

type listTasksInput struct {
	Filter   string `json:"filter,omitempty" jsonschema:"one of: all, unassigned, by_person. Defaults to all."`
	PersonID int64  `json:"person_id,omitempty" jsonschema:"required when filter is by_person"`
}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type createTaskInput struct {
	Title    string `json:"title" jsonschema:"required,the task title"`
	PersonID *int64 `json:"person_id,omitempty" jsonschema:"optionally assign the new task to this person"`
}

type assignTaskInput struct {
	TaskID   int64  `json:"task_id" jsonschema:"required,the task to (re)assign"`
	PersonID *int64 `json:"person_id" jsonschema:"the person to assign the task to, or null to unassign"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_people",
		Description: "List everyone on the roster in insertion order.",
	}, s.handleListPeople)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks newest-first, optionally filtered to unassigned tasks or one person's tasks.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "create_task",
		Description: "Create a task, optionally assigned to a person on the roster.",
	}, s.handleCreateTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "assign_task",
		Description: "Assign a task to a person, replacing any prior assignee, or unassign it with a null person_id.",
	}, s.handleAssignTask)
}

// --- Tool handlers ---

func (s *Server) handleListPeople(ctx context.Context, _ *gomcp.CallToolRequest, _ listPeopleInput) (*gomcp.CallToolResult, listPeopleOutput, error) {
	people, err := s.people.List(ctx)
	if err != nil {
		return errorResult(fmt.Sprintf("listing people: %s", err)), listPeopleOutput{}, nil
	}

	out := listPeopleOutput{
		People: make([]personOutput, len(people)),
		Count:  len(people),
	}
	for i, p := range people {
		out.People[i] = personToOutput(p)
	}
	return nil, out, nil
}

func (s *Server) handleListTasks(ctx context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	var filter models.TaskFilter
	switch input.Filter {
	case "", "all":
		filter = models.AllTasks()
	case "unassigned":
		filter = models.UnassignedTasks()
	case "by_person":
		filter = models.TasksAssignedTo(input.PersonID)
	default:
		return errorResult(fmt.Sprintf("invalid filter %q: must be one of all, unassigned, by_person", input.Filter)), listTasksOutput{}, nil
	}

	tasks, err := s.coordinator.Filter(ctx, filter)
	if err != nil {
		return errorResult(fmt.Sprintf("listing tasks: %s", err)), listTasksOutput{}, nil
	}

	out := listTasksOutput{
		Tasks: make([]taskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i, t := range tasks {
		out.Tasks[i] = taskToOutput(t)
	}
	return nil, out, nil
}

func (s *Server) handleCreateTask(ctx context.Context, _ *gomcp.CallToolRequest, input createTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.Title == "" {
		return errorResult("title is required"), taskOutput{}, nil
	}

	task, err := s.tasks.Create(ctx, input.Title, input.PersonID)
	if err != nil {
		return errorResult(fmt.Sprintf("creating task: %s", err)), taskOutput{}, nil
	}
	return nil, taskToOutput(*task), nil
}

func (s *Server) handleAssignTask(ctx context.Context, _ *gomcp.CallToolRequest, input assignTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.TaskID == 0 {
		return errorResult("task_id is required"), taskOutput{}, nil
	}

	task, err := s.coordinator.Assign(ctx, input.TaskID, input.PersonID)
	if err != nil {
		return errorResult(fmt.Sprintf("assigning task %d: %s", input.TaskID, err)), taskOutput{}, nil
	}
	return nil, taskToOutput(*task), nil
}

// --- Helpers ---

func personToOutput(p models.Person) personOutput {
	return personOutput{
		ID:      p.ID,
		Name:    p.Name,
		Created: p.Created.Format(time.RFC3339),
	}
}

func taskToOutput(t models.Task) taskOutput {
	return taskOutput{
		ID:         t.ID,
		Title:      t.Title,
		Done:       t.Done,
		Created:    t.Created.Format(time.RFC3339),
		AssignedTo: t.AssignedTo,
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tobyward/taskroster/internal/core"
	"github.com/tobyward/taskroster/internal/storage"
)

// newTestMCPServer builds an MCP server over a fresh SQLite database,
// returning the services alongside for test setup.
func newTestMCPServer(t *testing.T) (*Server, core.PersonRegistry, core.TaskService) {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	people := core.NewPersonRegistry(db.People(), nil)
	tasks := core.NewTaskService(db.Tasks(), nil)
	coordinator := core.NewAssignmentCoordinator(db.Tasks(), nil)
	return NewServer(people, tasks, coordinator, "test"), people, tasks
}

// callTool connects a client to the server over in-memory transports and
// calls a tool.
func callTool(t *testing.T, srv *Server, toolName string, args map[string]any) *gomcp.CallToolResult {
	t.Helper()

	ctx := context.Background()
	client := gomcp.NewClient(&gomcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)

	t1, t2 := gomcp.NewInMemoryTransports()

	go func() {
		_ = srv.MCPServer().Run(ctx, t1)
	}()

	session, err := client.Connect(ctx, t2, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &gomcp.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("call tool %s: %v", toolName, err)
	}
	return result
}

func extractText(result *gomcp.CallToolResult) string {
	for _, content := range result.Content {
		if tc, ok := content.(*gomcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// decodeResult unmarshals a tool result into dst, preferring the
// structured content when the SDK provides it.
func decodeResult(t *testing.T, result *gomcp.CallToolResult, dst any) {
	t.Helper()

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		if err != nil {
			t.Fatalf("marshalling structured content: %v", err)
		}
		if err := json.Unmarshal(data, dst); err != nil {
			t.Fatalf("unmarshalling structured content: %v", err)
		}
		return
	}
	if err := json.Unmarshal([]byte(extractText(result)), dst); err != nil {
		t.Fatalf("unmarshalling tool output: %v (text was: %s)", err, extractText(result))
	}
}

func TestListPeopleTool(t *testing.T) {
	srv, people, _ := newTestMCPServer(t)
	ctx := context.Background()

	if _, err := people.Add(ctx, "Alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := people.Add(ctx, "Bob"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := callTool(t, srv, "list_people", map[string]any{})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}

	var out listPeopleOutput
	decodeResult(t, result, &out)
	if out.Count != 2 || len(out.People) != 2 {
		t.Fatalf("expected 2 people, got %+v", out)
	}
	if out.People[0].Name != "Alice" || out.People[1].Name != "Bob" {
		t.Fatalf("unexpected roster order: %+v", out.People)
	}
}

func TestListTasksTool(t *testing.T) {
	srv, people, tasks := newTestMCPServer(t)
	ctx := context.Background()

	alice, err := people.Add(ctx, "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tasks.Create(ctx, "assigned", &alice.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tasks.Create(ctx, "unassigned", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name      string
		args      map[string]any
		wantCount int
		wantErr   bool
	}{
		{name: "default is all", args: map[string]any{}, wantCount: 2},
		{name: "explicit all", args: map[string]any{"filter": "all"}, wantCount: 2},
		{name: "unassigned", args: map[string]any{"filter": "unassigned"}, wantCount: 1},
		{name: "by person", args: map[string]any{"filter": "by_person", "person_id": alice.ID}, wantCount: 1},
		{name: "by unknown person", args: map[string]any{"filter": "by_person", "person_id": 999}, wantErr: true},
		{name: "invalid filter", args: map[string]any{"filter": "bogus"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, srv, "list_tasks", tt.args)
			if tt.wantErr {
				if !result.IsError {
					t.Fatalf("expected error result, got %s", extractText(result))
				}
				return
			}
			if result.IsError {
				t.Fatalf("expected success, got error: %s", extractText(result))
			}
			var out listTasksOutput
			decodeResult(t, result, &out)
			if out.Count != tt.wantCount {
				t.Fatalf("expected %d tasks, got %d", tt.wantCount, out.Count)
			}
		})
	}
}

func TestCreateTaskTool(t *testing.T) {
	srv, people, _ := newTestMCPServer(t)

	alice, err := people.Add(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := callTool(t, srv, "create_task", map[string]any{
		"title":     "Write docs",
		"person_id": alice.ID,
	})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}

	var out taskOutput
	decodeResult(t, result, &out)
	if out.Title != "Write docs" || out.Done {
		t.Fatalf("unexpected task: %+v", out)
	}
	if out.AssignedTo == nil || *out.AssignedTo != alice.ID {
		t.Fatalf("expected task assigned to %d, got %v", alice.ID, out.AssignedTo)
	}

	result = callTool(t, srv, "create_task", map[string]any{
		"title":     "Orphan",
		"person_id": 999,
	})
	if !result.IsError {
		t.Fatal("expected error result for an unknown person")
	}
}

func TestAssignTaskTool(t *testing.T) {
	srv, people, tasks := newTestMCPServer(t)
	ctx := context.Background()

	alice, err := people.Add(ctx, "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	task, err := tasks.Create(ctx, "Write docs", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := callTool(t, srv, "assign_task", map[string]any{
		"task_id":   task.ID,
		"person_id": alice.ID,
	})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}
	var out taskOutput
	decodeResult(t, result, &out)
	if out.AssignedTo == nil || *out.AssignedTo != alice.ID {
		t.Fatalf("expected assignee %d, got %v", alice.ID, out.AssignedTo)
	}

	// A null person_id clears the assignment.
	result = callTool(t, srv, "assign_task", map[string]any{
		"task_id":   task.ID,
		"person_id": nil,
	})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}
	decodeResult(t, result, &out)
	if out.AssignedTo != nil {
		t.Fatalf("expected cleared assignment, got %v", *out.AssignedTo)
	}

	result = callTool(t, srv, "assign_task", map[string]any{
		"task_id": 999,
	})
	if !result.IsError {
		t.Fatal("expected error result for an unknown task")
	}
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tobyward/taskroster/pkg/models"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks (add, list, done, assign, rm)",
}

var taskAddPersonFlag int64

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a new task",
	Long: `Create a task with the given title. Use --person to assign it to someone
on the roster immediately; otherwise it starts unassigned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Tasks == nil {
			return fmt.Errorf("task service not initialized")
		}

		var assignee *int64
		if cmd.Flags().Changed("person") {
			assignee = &taskAddPersonFlag
		}

		task, err := Tasks.Create(context.Background(), args[0], assignee)
		if err != nil {
			return err
		}

		fmt.Printf("Created task %d: %s\n", task.ID, task.Title)
		if task.AssignedTo != nil {
			fmt.Printf("  Assigned to: %d\n", *task.AssignedTo)
		}
		return nil
	},
}

var (
	taskListPersonFlag     int64
	taskListUnassignedFlag bool
)

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, newest first",
	Long: `List tasks newest-first. --person <id> shows one person's tasks,
--unassigned shows tasks nobody owns; the two are mutually exclusive.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Coordinator == nil {
			return fmt.Errorf("assignment coordinator not initialized")
		}
		if cmd.Flags().Changed("person") && taskListUnassignedFlag {
			return fmt.Errorf("--person and --unassigned are mutually exclusive")
		}

		filter := models.AllTasks()
		switch {
		case taskListUnassignedFlag:
			filter = models.UnassignedTasks()
		case cmd.Flags().Changed("person"):
			filter = models.TasksAssignedTo(taskListPersonFlag)
		}

		tasks, err := Coordinator.Filter(context.Background(), filter)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks.")
			return nil
		}

		fmt.Printf("%-6s %-6s %-10s %-20s %s\n", "ID", "DONE", "ASSIGNEE", "CREATED", "TITLE")
		for _, t := range tasks {
			done := " "
			if t.Done {
				done = "x"
			}
			assignee := "-"
			if t.AssignedTo != nil {
				assignee = fmt.Sprintf("%d", *t.AssignedTo)
			}
			fmt.Printf("%-6d [%s]    %-10s %-20s %s\n",
				t.ID, done, assignee, t.Created.Local().Format(time.DateTime), t.Title)
		}
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task as done",
	Long:  `Mark a task done. Completing an already-done task is a no-op, not an error.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Tasks == nil {
			return fmt.Errorf("task service not initialized")
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		task, err := Tasks.MarkDone(context.Background(), id)
		if err != nil {
			return err
		}

		fmt.Printf("Done: %d %s\n", task.ID, task.Title)
		return nil
	},
}

var taskAssignClearFlag bool

var taskAssignCmd = &cobra.Command{
	Use:   "assign <task-id> [person-id]",
	Short: "Assign a task to a person, or clear the assignment",
	Long: `Assign a task to a person, replacing any prior assignee. With --clear the
assignment is removed instead. When no person-id is given (and --clear is
not set), an interactive picker lists the roster.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Coordinator == nil {
			return fmt.Errorf("assignment coordinator not initialized")
		}

		taskID, err := parseID(args[0])
		if err != nil {
			return err
		}

		var personID *int64
		switch {
		case taskAssignClearFlag:
			if len(args) == 2 {
				return fmt.Errorf("--clear and a person-id are mutually exclusive")
			}
		case len(args) == 2:
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			personID = &id
		default:
			id, err := pickPerson()
			if err != nil {
				return err
			}
			personID = &id
		}

		task, err := Coordinator.Assign(context.Background(), taskID, personID)
		if err != nil {
			return err
		}

		if task.AssignedTo != nil {
			fmt.Printf("Assigned task %d to person %d\n", task.ID, *task.AssignedTo)
		} else {
			fmt.Printf("Cleared assignment of task %d\n", task.ID)
		}
		return nil
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Tasks == nil {
			return fmt.Errorf("task service not initialized")
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := Tasks.Delete(context.Background(), id); err != nil {
			return err
		}

		fmt.Printf("Deleted task %d\n", id)
		return nil
	},
}

func init() {
	taskAddCmd.Flags().Int64Var(&taskAddPersonFlag, "person", 0, "assign the new task to this person id")
	taskListCmd.Flags().Int64Var(&taskListPersonFlag, "person", 0, "only tasks assigned to this person id")
	taskListCmd.Flags().BoolVar(&taskListUnassignedFlag, "unassigned", false, "only tasks with no assignee")
	taskAssignCmd.Flags().BoolVar(&taskAssignClearFlag, "clear", false, "remove the task's assignment")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskAssignCmd)
	taskCmd.AddCommand(taskRmCmd)
	rootCmd.AddCommand(taskCmd)
}

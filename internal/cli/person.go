package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var personCmd = &cobra.Command{
	Use:   "person",
	Short: "Manage the people roster (add, list, rename, remove)",
}

var personAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a person to the roster",
	Long: `Add a person. Names are unique across the roster (exact match); adding a
name that is already taken fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if People == nil {
			return fmt.Errorf("person registry not initialized")
		}

		person, err := People.Add(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Added person %d: %s\n", person.ID, person.Name)
		return nil
	},
}

var personListCmd = &cobra.Command{
	Use:   "list",
	Short: "List everyone on the roster",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if People == nil {
			return fmt.Errorf("person registry not initialized")
		}

		people, err := People.List(context.Background())
		if err != nil {
			return err
		}
		if len(people) == 0 {
			fmt.Println("No people on the roster.")
			return nil
		}

		fmt.Printf("%-6s %s\n", "ID", "NAME")
		for _, p := range people {
			fmt.Printf("%-6d %s\n", p.ID, p.Name)
		}
		return nil
	},
}

var personRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a person",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if People == nil {
			return fmt.Errorf("person registry not initialized")
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		person, err := People.Rename(context.Background(), id, args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Renamed person %d to %s\n", person.ID, person.Name)
		return nil
	},
}

var personRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a person from the roster",
	Long: `Remove a person. Fails while any task is still assigned to them; unassign
or delete those tasks first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if People == nil {
			return fmt.Errorf("person registry not initialized")
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := People.Remove(context.Background(), id); err != nil {
			return err
		}

		fmt.Printf("Removed person %d\n", id)
		return nil
	},
}

// parseID parses a numeric entity ID from a command argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: must be a number", arg)
	}
	return id, nil
}

func init() {
	personCmd.AddCommand(personAddCmd)
	personCmd.AddCommand(personListCmd)
	personCmd.AddCommand(personRenameCmd)
	personCmd.AddCommand(personRemoveCmd)
	rootCmd.AddCommand(personCmd)
}

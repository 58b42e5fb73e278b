package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// pickPerson shows an interactive list of the roster and returns the
// selected person's ID. Returns an error if the roster is empty or the user
// cancels.
func pickPerson() (int64, error) {
	if People == nil {
		return 0, fmt.Errorf("person registry not initialized")
	}

	people, err := People.List(context.Background())
	if err != nil {
		return 0, fmt.Errorf("listing people: %w", err)
	}
	if len(people) == 0 {
		return 0, fmt.Errorf("no people on the roster (use 'taskroster person add <name>' first)")
	}

	fmt.Println("\nRoster:")
	fmt.Println()
	fmt.Printf("  %-4s %-6s %s\n", "#", "ID", "NAME")
	fmt.Printf("  %-4s %-6s %s\n", "---", "---", "----")
	for i, p := range people {
		fmt.Printf("  %-4d %-6d %s\n", i+1, p.ID, p.Name)
	}
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("Select person [1-%d] (or 'q' to cancel): ", len(people))
		input, err := reader.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "q" || input == "Q" {
			return 0, fmt.Errorf("cancelled")
		}

		num, err := strconv.Atoi(input)
		if err != nil || num < 1 || num > len(people) {
			fmt.Printf("  Invalid selection. Enter a number between 1 and %d.\n", len(people))
			continue
		}

		return people[num-1].ID, nil
	}
}

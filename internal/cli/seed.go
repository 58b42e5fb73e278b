package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML import format: a roster plus tasks that reference
// their assignee by person name.
type seedFile struct {
	People []seedPerson `yaml:"people"`
	Tasks  []seedTask   `yaml:"tasks"`
}

type seedPerson struct {
	Name string `yaml:"name"`
}

type seedTask struct {
	Title      string `yaml:"title"`
	Done       bool   `yaml:"done"`
	AssignedTo string `yaml:"assigned_to"`
}

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Import people and tasks from a YAML file",
	Long: `Import a roster and tasks from a YAML file. People are created first;
tasks reference their assignee by person name. Import stops at the first
error and reports what was created up to that point.

Example file:

  people:
    - name: Alice
    - name: Bob
  tasks:
    - title: Write spec
      assigned_to: Alice
    - title: Review spec
      done: true`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if People == nil || Tasks == nil {
			return fmt.Errorf("services not initialized")
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading seed file: %w", err)
		}

		var seed seedFile
		if err := yaml.Unmarshal(data, &seed); err != nil {
			return fmt.Errorf("parsing seed file: %w", err)
		}

		ctx := context.Background()
		created := 0
		ids := make(map[string]int64, len(seed.People))

		for _, sp := range seed.People {
			person, err := People.Add(ctx, sp.Name)
			if err != nil {
				return fmt.Errorf("after creating %d record(s): %w", created, err)
			}
			ids[person.Name] = person.ID
			created++
		}

		for _, st := range seed.Tasks {
			var assignee *int64
			if st.AssignedTo != "" {
				id, ok := ids[st.AssignedTo]
				if !ok {
					return fmt.Errorf("after creating %d record(s): task %q: unknown person %q", created, st.Title, st.AssignedTo)
				}
				assignee = &id
			}

			task, err := Tasks.Create(ctx, st.Title, assignee)
			if err != nil {
				return fmt.Errorf("after creating %d record(s): %w", created, err)
			}
			if st.Done {
				if _, err := Tasks.MarkDone(ctx, task.ID); err != nil {
					return fmt.Errorf("after creating %d record(s): %w", created, err)
				}
			}
			created++
		}

		fmt.Printf("Imported %d people and %d tasks\n", len(seed.People), len(seed.Tasks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

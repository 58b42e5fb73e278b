package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tobyward/taskroster/pkg/models"
)

// Board panel indices.
const (
	panelRoster = iota
	panelUnassigned
	panelActivity
	panelCount
)

// personRow is one roster line on the board: a person with their open and
// done task counts.
type personRow struct {
	id   int64
	name string
	open int
	done int
}

type activitySnapshot struct {
	tasksCreated   int
	tasksCompleted int
	assignments    int
	eventCount     int
}

type boardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	roster     []personRow
	unassigned []models.Task
	activity   *activitySnapshot

	// State.
	loading bool
	err     error
}

// boardDataMsg carries loaded data back to the model.
type boardDataMsg struct {
	roster     []personRow
	unassigned []models.Task
	activity   *activitySnapshot
	err        error
}

// Style definitions.
var (
	boardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	boardPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	boardActiveStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	boardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62")).
				MarginBottom(1)

	openStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

	boardHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newBoardModel() boardModel {
	return boardModel{
		activePanel: panelRoster,
		loading:     true,
	}
}

func (m boardModel) Init() tea.Cmd {
	return loadBoardData
}

// loadBoardData fetches the roster, per-person task counts, unassigned
// tasks, and activity metrics.
func loadBoardData() tea.Msg {
	ctx := context.Background()

	people, err := People.List(ctx)
	if err != nil {
		return boardDataMsg{err: err}
	}

	all, err := Coordinator.Filter(ctx, models.AllTasks())
	if err != nil {
		return boardDataMsg{err: err}
	}

	open := make(map[int64]int)
	done := make(map[int64]int)
	var unassigned []models.Task
	for _, t := range all {
		if t.AssignedTo == nil {
			unassigned = append(unassigned, t)
			continue
		}
		if t.Done {
			done[*t.AssignedTo]++
		} else {
			open[*t.AssignedTo]++
		}
	}

	roster := make([]personRow, len(people))
	for i, p := range people {
		roster[i] = personRow{id: p.ID, name: p.Name, open: open[p.ID], done: done[p.ID]}
	}

	var activity *activitySnapshot
	if MetricsCalc != nil {
		if metrics, err := MetricsCalc.Calculate(time.Now().AddDate(0, 0, -7)); err == nil {
			activity = &activitySnapshot{
				tasksCreated:   metrics.TasksCreated,
				tasksCompleted: metrics.TasksCompleted,
				assignments:    metrics.Assignments,
				eventCount:     metrics.EventCount,
			}
		}
	}

	return boardDataMsg{roster: roster, unassigned: unassigned, activity: activity}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadBoardData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardDataMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.roster = msg.roster
		m.unassigned = msg.unassigned
		m.activity = msg.activity
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m boardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := boardTitleStyle.Render(" Task Roster ")
	help := boardHelpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}
	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	rosterPanel := m.renderRosterPanel()
	unassignedPanel := m.renderUnassignedPanel()
	activityPanel := m.renderActivityPanel()

	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		colWidth := availableWidth / 3
		rosterPanel = m.applyPanelStyle(panelRoster, rosterPanel, colWidth-4)
		unassignedPanel = m.applyPanelStyle(panelUnassigned, unassignedPanel, colWidth-4)
		activityPanel = m.applyPanelStyle(panelActivity, activityPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, rosterPanel, unassignedPanel, activityPanel)
	} else {
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		rosterPanel = m.applyPanelStyle(panelRoster, rosterPanel, panelWidth)
		unassignedPanel = m.applyPanelStyle(panelUnassigned, unassignedPanel, panelWidth)
		activityPanel = m.applyPanelStyle(panelActivity, activityPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, rosterPanel, unassignedPanel, activityPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m boardModel) applyPanelStyle(panel int, content string, width int) string {
	style := boardPanelStyle
	if m.activePanel == panel {
		style = boardActiveStyle
	}
	return style.Width(width).Render(content)
}

func (m boardModel) renderRosterPanel() string {
	var b strings.Builder
	b.WriteString(boardHeaderStyle.Render("Roster"))
	b.WriteString("\n")

	if len(m.roster) == 0 {
		b.WriteString("  No people on the roster.")
		return b.String()
	}

	for _, row := range m.roster {
		b.WriteString(fmt.Sprintf("  %-16s ", row.name))
		b.WriteString(openStyle.Render(fmt.Sprintf("%d open", row.open)))
		b.WriteString("  ")
		b.WriteString(doneStyle.Render(fmt.Sprintf("%d done", row.done)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m boardModel) renderUnassignedPanel() string {
	var b strings.Builder
	b.WriteString(boardHeaderStyle.Render("Unassigned"))
	b.WriteString("\n")

	if len(m.unassigned) == 0 {
		b.WriteString("  Everything is assigned.")
		return b.String()
	}

	for _, t := range m.unassigned {
		marker := "[ ]"
		if t.Done {
			marker = "[x]"
		}
		b.WriteString(fmt.Sprintf("  %s %d %s\n", marker, t.ID, t.Title))
	}
	return b.String()
}

func (m boardModel) renderActivityPanel() string {
	var b strings.Builder
	b.WriteString(boardHeaderStyle.Render("Activity (7d)"))
	b.WriteString("\n")

	if m.activity == nil {
		b.WriteString("  No activity recorded.")
		return b.String()
	}

	lines := []struct {
		label string
		value int
	}{
		{"Events", m.activity.eventCount},
		{"Created", m.activity.tasksCreated},
		{"Completed", m.activity.tasksCompleted},
		{"Assignments", m.activity.assignments},
	}
	for _, l := range lines {
		b.WriteString(fmt.Sprintf("  %-14s %d\n", l.label, l.value))
	}
	return b.String()
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive roster board",
	Long: `Open a read-only terminal board showing each person's open and done task
counts, the unassigned backlog, and recent activity.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if People == nil || Coordinator == nil {
			return fmt.Errorf("services not initialized")
		}

		p := tea.NewProgram(newBoardModel(), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running board: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/synthgraph/pkg/model"
)

// modelsCommand creates the model listing command.
func (c *CLI) modelsCommand() *cobra.Command {
	var (
		interactive bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the supported graph models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := model.Catalog()
			switch {
			case asJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(catalog)
			case interactive:
				return runModelPicker(catalog)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderModelTable(catalog, -1))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a model interactively")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")

	return cmd
}

// commandFor returns the subcommand name that generates m.
func commandFor(m model.Model) string {
	for _, spec := range modelCommands {
		if spec.model == m {
			return strings.Fields(spec.use)[0]
		}
	}
	return string(m)
}

// renderModelTable renders the catalog; cursor highlights a row (-1 for none).
func renderModelTable(catalog []model.Info, cursor int) string {
	rows := make([][]string, len(catalog))
	for i, info := range catalog {
		rows[i] = []string{
			commandFor(info.Model),
			strings.Join(info.Parameters, ", "),
			info.Description,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Command", "Parameters", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == cursor:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})
	return t.Render()
}

// =============================================================================
// ModelListModel - Interactive model selection
// =============================================================================

// ModelListModel is the bubbletea model for interactive model selection.
type ModelListModel struct {
	Models   []model.Info
	Cursor   int
	Selected *model.Info
}

// NewModelListModel creates a new model list.
func NewModelListModel(catalog []model.Info) ModelListModel {
	return ModelListModel{Models: catalog}
}

func (m ModelListModel) Init() tea.Cmd {
	return nil
}

func (m ModelListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Models)-1 {
				m.Cursor++
			}
		case "enter":
			selected := m.Models[m.Cursor]
			m.Selected = &selected
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ModelListModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Select Model"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")
	b.WriteString(renderModelTable(m.Models, m.Cursor))
	b.WriteString("\n")
	return b.String()
}

func runModelPicker(catalog []model.Info) error {
	final, err := tea.NewProgram(NewModelListModel(catalog)).Run()
	if err != nil {
		return fmt.Errorf("model picker: %w", err)
	}
	picked := final.(ModelListModel).Selected
	if picked == nil {
		return nil
	}
	printSuccess("Selected %s", StyleValue.Render(string(picked.Model)))
	printDetail("%s", picked.Description)
	printNewline()
	printNextStep("Run", "synthgraph "+commandFor(picked.Model)+" --help")
	return nil
}

package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// Palette shared by every table and message.
var (
	colourPrimary = lipgloss.Color("#7C3AED")
	colourMuted   = lipgloss.Color("#6C7086")
	colourSuccess = lipgloss.Color("#A6E3A1")
	colourWarning = lipgloss.Color("#F9E2AF")
	colourBorder  = lipgloss.Color("#45475A")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colourPrimary)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colourPrimary).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(colourMuted)
	successStyle = lipgloss.NewStyle().Foreground(colourSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colourWarning)
)

// renderTable draws rows under headers with a rounded border.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colourBorder)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// printTable prints a titled table, or a muted note when there are no rows.
func printTable(cmd *cobra.Command, title string, headers []string, rows [][]string, empty string) {
	if title != "" {
		cmd.Println(titleStyle.Render(title))
	}
	if len(rows) == 0 {
		cmd.Println(mutedStyle.Render(empty))
		return
	}
	cmd.Println(renderTable(headers, rows))
}

func printSuccess(cmd *cobra.Command, format string, args ...any) {
	cmd.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

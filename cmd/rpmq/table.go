// Rich table output, the terminal analog of a report view.
package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Render the query results as a styled table",
	Long: `Table renders package names and sizes in a bordered table, with a
footer reporting how many of the total matches are shown.

Example:
  rpmq table --limit 20
  rpmq table --name bash`,
	RunE: runTable,
}

func runTable(cmd *cobra.Command, args []string) error {
	q, err := openQuery()
	if err != nil {
		return err
	}
	defer q.Close()

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return nameStyle
			default:
				return sizeStyle
			}
		}).
		Headers("NAME", "SIZE (BYTES)")

	shown := 0
	for pkg, err := range q.Records() {
		if err != nil {
			return err
		}
		t.Row(pkg.Label(), humanize.Comma(pkg.Size))
		shown++
	}

	total, err := q.Count()
	if err != nil {
		return err
	}

	fmt.Println(t)
	fmt.Println(footerStyle.Render(
		fmt.Sprintf("%d of %d installed package(s)", shown, total)))
	return nil
}

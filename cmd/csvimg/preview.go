package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	ioutils "github.com/handiism/csv-image-downloader/internal/io"
)

var (
	previewSourceFlag string
	previewRowsFlag   int
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F8B500")).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	noteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the header and first rows of a CSV file",
	Long: `Shows the header and the first rows of a CSV file. Columns that "run"
would select by default are marked with *.`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewSourceFlag, "csv", "", "CSV file to read")
	previewCmd.Flags().IntVarP(&previewRowsFlag, "rows", "n", 0, "Number of rows to show (0 uses config default)")
	_ = previewCmd.MarkFlagRequired("csv")
}

func runPreview(cmd *cobra.Command, args []string) error {
	rows := previewRowsFlag
	if rows <= 0 {
		rows = settings.PreviewRows
	}

	preview, err := ioutils.ReadPreview(previewSourceFlag, rows)
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	defaults, templates := settings.DefaultSelection(preview.Header)
	selected := make(map[int]bool)
	headers := make([]string, len(preview.Header))
	for i, col := range preview.Header {
		headers[i] = col
		for _, d := range defaults {
			if d == col {
				selected[i] = true
				headers[i] = col + " *"
			}
		}
	}

	records := make([][]string, len(preview.Records))
	for i, record := range preview.Records {
		row := make([]string, len(preview.Header))
		copy(row, record)
		records[i] = row
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(noteStyle).
		Headers(headers...).
		Rows(records...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow && selected[col]:
				return selectedStyle
			case row == table.HeaderRow:
				return headerStyle
			default:
				return cellStyle
			}
		})

	fmt.Fprintln(cmd.OutOrStdout(), t)
	for i, col := range defaults {
		fmt.Fprintln(cmd.OutOrStdout(), noteStyle.Render(fmt.Sprintf("* %s → %s", col, templates[i])))
	}
	if len(defaults) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), noteStyle.Render("No column is selected by default, use --column with run."))
	}

	return nil
}

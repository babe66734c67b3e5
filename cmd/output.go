package cmd

import (
	"fmt"
	"io"
	"strconv"

	"asset-lists/core/assetlist"
	"asset-lists/core/comparison"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// renderResult prints one row per completed step, plus the failure if any.
func renderResult(w io.Writer, res *comparison.Result, runErr error) {
	fmt.Fprintln(w, titleStyle.Render("Comparison"))

	t := newTable("#", "Type", "Output", "Records", "Saved")
	if res != nil {
		for _, s := range res.Steps {
			saved := "token"
			if s.Persisted {
				saved = "yes"
			}
			t.Row(strconv.Itoa(s.Index+1), s.Type, s.Output, strconv.Itoa(s.Count), saved)
		}
	}
	fmt.Fprintln(w, t.Render())

	if runErr != nil {
		fmt.Fprintln(w, errorStyle.Render("Failed: ")+runErr.Error())
	}
}

// renderList prints a list's records, at most limit of them when limit > 0.
func renderList(w io.Writer, locator string, list *assetlist.List, limit int) {
	fmt.Fprintln(w, titleStyle.Render(locator)+mutedStyle.Render(fmt.Sprintf(" (%d records)", list.Len())))

	t := newTable("Asset ID", "Path", "Modified", "Hash")
	shown := 0
	list.Each(func(info assetlist.AssetFileInfo) bool {
		if limit > 0 && shown >= limit {
			return false
		}
		t.Row(info.AssetID.String(), info.RelativePath, strconv.FormatUint(info.ModificationTime, 10), info.Hash.String())
		shown++
		return true
	})
	fmt.Fprintln(w, t.Render())

	if shown < list.Len() {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("... %d more", list.Len()-shown)))
	}
}

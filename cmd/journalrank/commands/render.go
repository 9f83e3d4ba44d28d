package commands

import (
	"fmt"
	"io"

	"journalrank/internal/scrapers/scimago"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func renderCategories(out io.Writer, profile scimago.JournalProfile) {
	t := newTable(out)
	t.SetTitle("Categories")
	t.AppendHeader(table.Row{"ID", "Category"})
	for _, c := range profile.Categories {
		t.AppendRow(table.Row{c.Id, c.Name})
	}
	t.Render()
}

func renderRecord(out io.Writer, record scimago.RankingRecord) {
	t := newTable(out)
	t.SetTitle("Result Found")
	t.AppendRows([]table.Row{
		{"Journal", record.JournalTitle},
		{"Category", fmt.Sprintf("%s (ID: %s)", record.CategoryName, record.CategoryId)},
		{"Category Rank", fmt.Sprintf("#%d of %s", record.Rank, record.TotalString())},
		{"Percentile", record.PercentileString()},
		{"Quartile", record.Quartile},
		{"Year", record.Year},
		{"Page", record.Page},
	})
	t.Render()
}

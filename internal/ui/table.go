package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/appconfig"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/journal"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/preview"
)

const unsetValue = "(platform default)"

// ConfigTable renders the application configuration.
func ConfigTable(cfg appconfig.AppConfig) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle("App Config")
	t.AppendHeader(table.Row{"Field", "Value"})

	for _, f := range cfg.Fields() {
		value := f.Value
		if !f.Set {
			value = unsetValue
		}
		t.AppendRow(table.Row{f.Name, value})
	}
	return t.Render()
}

// HistoryTable renders received check-in summaries as plain text.
func HistoryTable(entries []journal.Entry) string {
	if len(entries) == 0 {
		return MutedStyle.Render("No check-ins yet")
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Check-in History")
	t.AppendHeader(table.Row{"#", "Received", "Room", "Summary"})

	for _, e := range entries {
		summary := strings.Join(strings.Fields(preview.Render(e.HTML, 0)), " ")
		t.AppendRow(table.Row{
			e.ID,
			e.ReceivedAt.Local().Format(time.DateTime),
			e.Room,
			truncateString(summary, 60),
		})
	}
	t.AppendFooter(table.Row{"", "", "Total", fmt.Sprintf("%d", len(entries))})
	return t.Render()
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

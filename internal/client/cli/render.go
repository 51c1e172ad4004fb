package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dailyjournal/internal/client/models"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
	headColor = color.New(color.Bold, color.Underline)
	dimColor  = color.New(color.Faint)
)

func (a *App) ok(format string, args ...any) {
	_, _ = okColor.Fprintf(a.out, format+"\n", args...)
}

func (a *App) warn(format string, args ...any) {
	_, _ = warnColor.Fprintf(a.out, format+"\n", args...)
}

func (a *App) fail(format string, args ...any) {
	_, _ = errColor.Fprintf(a.out, format+"\n", args...)
}

func (a *App) renderEntries(list []models.JournalEntry) {
	if len(list) == 0 {
		_, _ = dimColor.Fprintln(a.out, "No journal entries yet.")
		return
	}

	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.Separator = "  "
	tbl.AddRow("ID", "DATE", "TITLE")
	for _, e := range list {
		tbl.AddRow(e.ID, e.Date, e.Title)
	}
	_, _ = fmt.Fprintln(a.out, tbl)
}

func (a *App) renderEntry(e models.JournalEntry) {
	_, _ = headColor.Fprintln(a.out, e.Title)
	_, _ = dimColor.Fprintf(a.out, "#%d  %s\n", e.ID, e.Date)
	_, _ = fmt.Fprintln(a.out, strings.TrimSpace(e.Content))
}

func (a *App) renderRemote(list []models.RemoteEntry) {
	if len(list) == 0 {
		_, _ = dimColor.Fprintln(a.out, "The remote mirror is empty.")
		return
	}

	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.Separator = "  "
	tbl.AddRow("KEY", "DATE", "SAVED", "TITLE")
	for _, r := range list {
		tbl.AddRow(r.Key, r.Entry.Date, r.SavedAt().Format("2006-01-02 15:04"), r.Entry.Title)
	}
	_, _ = fmt.Fprintln(a.out, tbl)
}

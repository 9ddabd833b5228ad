package picker

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// List is a Chooser drawn in-process with tview, for systems without fzf.
// It shows a plain scrolling list: no filtering and no preview.
type List struct {
	screen tcell.Screen
}

// NewList creates a List chooser on the controlling terminal.
func NewList() *List {
	return &List{}
}

// Choose implements Chooser. Enter picks the highlighted row; Escape or
// Ctrl-C cancels.
func (l *List) Choose(ctx context.Context, rows []string, opts Options) (string, error) {
	app := tview.NewApplication()
	if l.screen != nil {
		app.SetScreen(l.screen)
	}

	var chosen string
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true).
		SetWrapAround(true).
		SetSelectedBackgroundColor(tcell.ColorDarkBlue)
	list.SetBorder(true)
	if opts.Header != "" {
		list.SetTitle(" " + tview.Escape(opts.Header) + " ")
	}

	for _, row := range rows {
		list.AddItem(tview.Escape(visibleColumns(row, opts.Columns)), "", 0, func() {
			chosen = row
			app.Stop()
		})
	}
	list.SetDoneFunc(func() {
		app.Stop()
	})

	stop := context.AfterFunc(ctx, app.Stop)
	defer stop()

	if err := app.SetRoot(list, true).SetFocus(list).Run(); err != nil {
		return "", fmt.Errorf("run list picker: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return chosen, nil
}

// visibleColumns keeps the listed 1-based columns of row.
func visibleColumns(row string, columns []int) string {
	if len(columns) == 0 {
		return row
	}
	cols := strings.Split(row, Delimiter)
	shown := make([]string, 0, len(columns))
	for _, c := range columns {
		if c >= 1 && c <= len(cols) {
			shown = append(shown, cols[c-1])
		}
	}
	return strings.Join(shown, Delimiter)
}

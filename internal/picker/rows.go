package picker

import (
	"fmt"
	"strings"

	"github.com/iconidentify/yurei/internal/domain"
)

// Delimiter separates the columns of every picker row.
const Delimiter = " │ "

// Ids of the navigation rows in the video picker's id column.
const (
	SentinelNext = "next"
	SentinelPrev = "prev"
	SentinelQuit = "quit"
)

// Navigation rows appended below the results. Their id column holds a sentinel.
var (
	NextPageRow = strings.Join([]string{"➡️  NEXT PAGE", "Nav", "-", SentinelNext, "-"}, Delimiter)
	PrevPageRow = strings.Join([]string{"⬅️  PREV PAGE", "Nav", "-", SentinelPrev, "-"}, Delimiter)
	QuitRow     = strings.Join([]string{"❌ QUIT", "Exit", "-", SentinelQuit, "-"}, Delimiter)
)

// Column positions, 1-based as the picker tools count them.
const (
	videoIDColumn        = 4
	videoThumbnailColumn = 5
	formatIDColumn       = 5
)

// IsSentinel reports whether id is reserved for a navigation row.
func IsSentinel(id string) bool {
	switch id {
	case SentinelNext, SentinelPrev, SentinelQuit:
		return true
	}
	return false
}

// VideoRow renders one search result.
func VideoRow(v domain.SearchResult) string {
	return strings.Join([]string{
		clean(v.Title),
		clean(v.Channel),
		clean(v.Duration),
		clean(v.ID.String()),
		clean(v.Thumbnail),
	}, Delimiter)
}

// VideoRows renders a page of results followed by the navigation rows.
// The previous-page row only appears after the first page.
func VideoRows(items []domain.SearchResult, page int) []string {
	rows := make([]string, 0, len(items)+3)
	for _, v := range items {
		rows = append(rows, VideoRow(v))
	}
	rows = append(rows, NextPageRow)
	if page > 1 {
		rows = append(rows, PrevPageRow)
	}
	return append(rows, QuitRow)
}

// ParseVideoSelection maps the row picked from VideoRows back to a Selection.
// Sentinels are matched before ids, so a result whose id equals a sentinel
// can never be chosen. Cancellation, short rows and unknown ids yield Quit.
func ParseVideoSelection(line string, items []domain.SearchResult) domain.Selection {
	if strings.TrimSpace(line) == "" {
		return domain.Quit{}
	}

	cols := splitRow(line)
	if len(cols) < videoIDColumn {
		return domain.Quit{}
	}

	switch id := cols[videoIDColumn-1]; id {
	case SentinelNext:
		return domain.NextPage{}
	case SentinelPrev:
		return domain.PreviousPage{}
	case SentinelQuit:
		return domain.Quit{}
	default:
		for _, v := range items {
			if v.ID.String() == id {
				return domain.ChosenVideo{Video: v}
			}
		}
		return domain.Quit{}
	}
}

// FormatRow renders one format option with padded columns.
func FormatRow(f domain.FormatOption) string {
	return strings.Join([]string{
		fmt.Sprintf("%-8s", clean(f.Resolution)),
		fmt.Sprintf("%-5s", clean(f.Ext)),
		fmt.Sprintf("%-10s", fmt.Sprintf("%dfps", f.FPS)),
		clean(f.VideoCodec),
		clean(f.ID),
	}, Delimiter)
}

// FormatRows renders every format option.
func FormatRows(formats []domain.FormatOption) []string {
	rows := make([]string, 0, len(formats))
	for _, f := range formats {
		rows = append(rows, FormatRow(f))
	}
	return rows
}

// ParseFormatSelection finds the format whose id is in the picked row.
func ParseFormatSelection(line string, formats []domain.FormatOption) (domain.FormatOption, bool) {
	if strings.TrimSpace(line) == "" {
		return domain.FormatOption{}, false
	}

	cols := splitRow(line)
	if len(cols) < formatIDColumn {
		return domain.FormatOption{}, false
	}

	id := cols[formatIDColumn-1]
	for _, f := range formats {
		if f.ID == id {
			return f, true
		}
	}
	return domain.FormatOption{}, false
}

// ActionRows renders the action labels.
func ActionRows() []string {
	rows := make([]string, 0, len(domain.Actions))
	for _, a := range domain.Actions {
		rows = append(rows, a.String())
	}
	return rows
}

// ParseAction returns the action whose label the picked text contains.
func ParseAction(line string) (domain.Action, bool) {
	for _, a := range domain.Actions {
		if strings.Contains(line, a.String()) {
			return a, true
		}
	}
	return 0, false
}

// splitRow splits a picked row into trimmed columns. Only the line ending is
// stripped first so a trailing empty column survives.
func splitRow(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	cols := strings.Split(line, Delimiter)
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	return cols
}

var rowReplacer = strings.NewReplacer("│", "|", "\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// clean keeps a field from splitting a row: the column rule and line breaks
// are replaced.
func clean(s string) string {
	return rowReplacer.Replace(s)
}

package picker

import (
	"fmt"
	"strings"

	"golang.org/x/term"
)

// Fallback thumbnail size when the terminal size is unknown.
const (
	DefaultPreviewCols = 60
	DefaultPreviewRows = 30
)

// PreviewCommand builds the shell command fzf runs to draw the highlighted
// result's thumbnail: the image is fetched with curl and converted to
// terminal art with chafa.
func PreviewCommand(curl, chafa string, cols, rows int) string {
	return fmt.Sprintf("%s -sL {%d} | %s --format=symbols --symbols=all --colors=full --size=%dx%d --stretch -",
		shellQuote(curl), videoThumbnailColumn, shellQuote(chafa), cols, rows)
}

// PreviewSize sizes the thumbnail to the preview window, which takes the
// right 60% of the terminal on fd. The defaults are used when fd is not a
// terminal.
func PreviewSize(fd int) (cols, rows int) {
	if !term.IsTerminal(fd) {
		return DefaultPreviewCols, DefaultPreviewRows
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return DefaultPreviewCols, DefaultPreviewRows
	}
	return fitPreview(width, height)
}

// fitPreview leaves room for the preview window's border and padding.
func fitPreview(width, height int) (cols, rows int) {
	cols = width*60/100 - 4
	rows = height - 4
	if cols < 10 || rows < 5 {
		return DefaultPreviewCols, DefaultPreviewRows
	}
	return cols, rows
}

func shellQuote(s string) string {
	if s != "" && strings.Trim(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_./+:=@") == "" {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

package app

import (
	"fmt"
	"io"
)

// ANSI SGR sequences.
const (
	sgrReset  = "\033[0m"
	sgrBold   = "\033[1m"
	sgrDim    = "\033[2m"
	sgrRed    = "\033[31m"
	sgrGreen  = "\033[32m"
	sgrYellow = "\033[33m"
	sgrCyan   = "\033[36m"

	clearScreen = "\033[H\033[2J"
)

// style colours text for a terminal. The zero value prints plain text.
type style struct {
	enabled bool
}

func (s style) paint(text string, codes ...string) string {
	if !s.enabled {
		return text
	}
	var prefix string
	for _, c := range codes {
		prefix += c
	}
	return prefix + text + sgrReset
}

func (s style) banner(w io.Writer) {
	if !s.enabled {
		return
	}
	fmt.Fprint(w, clearScreen)
	rule := "========================================"
	fmt.Fprintln(w, s.paint(rule, sgrCyan, sgrBold))
	fmt.Fprintln(w, s.paint("            YUREI - YT CLI              ", sgrCyan, sgrBold))
	fmt.Fprintln(w, s.paint(rule, sgrCyan, sgrBold))
}

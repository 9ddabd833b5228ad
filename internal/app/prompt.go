package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// readQuery prints label and reads one line. End of input without text
// is an empty query, not an error.
func readQuery(r io.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprint(w, label+" ")

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read query: %w", err)
	}
	return strings.TrimSpace(line), nil
}

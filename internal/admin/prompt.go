package admin

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam; the default reads from the process stdin.
var readPassword = func(prompt io.Writer, label string) ([]byte, error) {
	return promptPassword(os.Stdin, prompt, label)
}

var stdinLines *bufio.Reader

func promptPassword(stdin *os.File, prompt io.Writer, label string) ([]byte, error) {
	fd := int(stdin.Fd())
	if term.IsTerminal(fd) {
		if _, err := io.WriteString(prompt, label); err != nil {
			return nil, err
		}
		defer io.WriteString(prompt, "\n")
		return term.ReadPassword(fd)
	}

	if stdinLines == nil {
		stdinLines = bufio.NewReader(stdin)
	}
	return readLine(stdinLines)
}

func readLine(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

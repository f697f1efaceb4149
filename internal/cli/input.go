package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PasswordReader reads one password after printing prompt.
type PasswordReader func(prompt string) (string, error)

// readLine prints prompt and reads one line. A final line without a newline
// is still returned; io.EOF is only reported when nothing was read.
func readLine(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// TerminalPasswordReader reads without echo when f is a terminal and falls
// back to a plain line read otherwise, so piped input keeps working.
func TerminalPasswordReader(f *os.File, reader *bufio.Reader, w io.Writer) PasswordReader {
	fd := int(f.Fd())
	return func(prompt string) (string, error) {
		if !term.IsTerminal(fd) {
			return readLine(reader, w, prompt)
		}
		if _, err := fmt.Fprint(w, prompt); err != nil {
			return "", err
		}
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(w)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}
}

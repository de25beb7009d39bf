package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"habit/internal/errors"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// prompter reads answers line by line. Passwords are read without echo when
// fd is a terminal and as plain lines otherwise.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func newPrompter(in io.Reader, out io.Writer, fd int) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// line reads one trimmed line. A partial line before EOF is returned as is.
func (p *prompter) line() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}

		return "", err
	}

	return strings.TrimSpace(line), nil
}

func (p *prompter) text(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	return p.line()
}

// optional prompts with the current value; an empty answer keeps it and returns nil.
func (p *prompter) optional(label, current string) (*string, error) {
	fmt.Fprintf(p.out, "%s [%s]: ", label, current)

	answer, err := p.line()
	if err != nil || answer == "" {
		return nil, err
	}

	return &answer, nil
}

func (p *prompter) password(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	if p.fd >= 0 && isTerminal(p.fd) {
		pw, err := readPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", errors.Wrap(err, "read password")
		}

		return string(pw), nil
	}

	// Piped input: only the line terminator is stripped.
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (p *prompter) confirm(label string) (bool, error) {
	answer, err := p.text(label + " (yes/no)")
	if err != nil {
		return false, err
	}

	return strings.EqualFold(answer, "yes") || strings.EqualFold(answer, "y"), nil
}

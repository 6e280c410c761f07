package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNotInteractive is returned when input is required but stdin is not a
// terminal.
var ErrNotInteractive = errors.New("stdin is not a terminal; pass the value as a flag")

// Prompter reads answers from in and writes prompts to out.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	isTerm bool
}

// NewPrompter prompts on the process terminal.
func NewPrompter() *Prompter {
	fd := int(os.Stdin.Fd())
	return &Prompter{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stderr,
		fd:     fd,
		isTerm: term.IsTerminal(fd),
	}
}

// NewPrompterFrom reads from r. Passwords are read as plain lines.
func NewPrompterFrom(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w, fd: -1}
}

// Interactive reports whether stdin is a terminal.
func (p *Prompter) Interactive() bool { return p.isTerm }

// Line prints label and reads one trimmed line.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrNotInteractive
		}
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// Password prints label and reads a line without echo when on a terminal.
func (p *Prompter) Password(label string) (string, error) {
	if !p.isTerm {
		return p.Line(label)
	}
	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Erase removes an answered prompt of text from the screen. It does nothing
// off a terminal.
func (p *Prompter) Erase(text string) {
	if !p.isTerm {
		return
	}
	ClearPreviousLines(p.out, len(text), Width())
}

package review

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// DecisionReader supplies operator decisions. The engine depends on this
// interface so tests drive the state machine with scripted input.
type DecisionReader interface {
	// ReadDecision blocks for a single decision keystroke.
	ReadDecision() (Action, error)
	// Confirm asks a yes/no question; defaultYes controls the bare-Enter
	// answer.
	Confirm(prompt string, defaultYes bool) (bool, error)
}

// TerminalReader reads single-keystroke decisions from a terminal in raw
// mode, falling back to line-buffered input when stdin is not a TTY
// (piped input, tests run through a file).
type TerminalReader struct {
	in  *os.File
	out io.Writer
}

// NewTerminalReader wires the reader to stdin/stdout.
func NewTerminalReader() *TerminalReader {
	return &TerminalReader{in: os.Stdin, out: os.Stdout}
}

// ReadDecision blocks until a recognized key arrives. Enter defaults to
// keep; Ctrl-C behaves as quit so the raw-mode read never swallows an
// interrupt.
func (t *TerminalReader) ReadDecision() (Action, error) {
	for {
		key, err := t.readKey()
		if err != nil {
			return ActionQuit, err
		}
		if action, ok := mapKey(key); ok {
			fmt.Fprintf(t.out, "%s\n", action)
			return action, nil
		}
		fmt.Fprintf(t.out, "\nInvalid choice %q. Use k, d, v, e, s, or q: ", string(key))
	}
}

// Confirm reads a y/n line answer.
func (t *TerminalReader) Confirm(prompt string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	fmt.Fprintf(t.out, "%s [%s]: ", prompt, hint)
	line, err := bufio.NewReader(t.in).ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	case "":
		return defaultYes, nil
	default:
		return false, nil
	}
}

func (t *TerminalReader) readKey() (byte, error) {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		buf := make([]byte, 1)
		if _, err := t.in.Read(buf); err != nil {
			return 0, err
		}
		return buf[0], nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return 0, fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	buf := make([]byte, 1)
	if _, err := t.in.Read(buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func mapKey(key byte) (Action, bool) {
	switch key {
	case 'k', 'K', '\r', '\n':
		return ActionKeep, true
	case 'd', 'D':
		return ActionDelete, true
	case 'v', 'V':
		return ActionView, true
	case 'e', 'E':
		return ActionEnhance, true
	case 's', 'S':
		return ActionSkip, true
	case 'q', 'Q', 0x03: // 0x03 = Ctrl-C in raw mode
		return ActionQuit, true
	default:
		return 0, false
	}
}

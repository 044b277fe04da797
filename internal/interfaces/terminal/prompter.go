// Package terminal implements the case form's dialogs, confirmation,
// navigation and description editor on a text terminal.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/nadiahindrianti/shesafe/internal/application/caseform"
)

// Prompter reads answers from in and writes dialogs to out.
// A single goroutine reads in, so a read abandoned on cancellation leaves
// its line for the next one.
type Prompter struct {
	in        *bufio.Reader
	out       io.Writer
	start     sync.Once
	lines     chan line
	assumeYes bool
	lastPath  string
	visited   []string
}

// Option configures a Prompter
type Option func(*Prompter)

// WithAssumeYes answers every confirmation with yes and does not wait for
// acknowledgements
func WithAssumeYes() Option {
	return func(p *Prompter) { p.assumeYes = true }
}

// NewPrompter creates a prompter
func NewPrompter(in io.Reader, out io.Writer, opts ...Option) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out, lines: make(chan line)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Warn prints a warning dialog
func (p *Prompter) Warn(_ context.Context, n caseform.Notice) {
	p.dialog("!", n)
}

// Success prints a success dialog and waits for Enter
func (p *Prompter) Success(ctx context.Context, n caseform.Notice) {
	p.dialog("✓", n)
	if p.assumeYes {
		return
	}
	fmt.Fprint(p.out, "[OK] ")
	_, _ = p.readLine(ctx)
}

// Failure prints an error dialog
func (p *Prompter) Failure(_ context.Context, n caseform.Notice) {
	p.dialog("✗", n)
}

// Confirm asks pr and accepts y/yes or the confirm label as yes.
// End of input counts as no.
func (p *Prompter) Confirm(ctx context.Context, pr caseform.Prompt) (bool, error) {
	if p.assumeYes {
		fmt.Fprintf(p.out, "%s %s\n", pr.Title, pr.Confirm)
		return true, nil
	}

	fmt.Fprintf(p.out, "%s [%s/%s] (y/N): ", pr.Title, pr.Confirm, pr.Cancel)
	line, err := p.readLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes" || answer == strings.ToLower(pr.Confirm), nil
}

// Navigate records the destination and prints it
func (p *Prompter) Navigate(path string) {
	p.lastPath = path
	p.visited = append(p.visited, path)
	fmt.Fprintf(p.out, "→ %s\n", path)
}

// LastPath returns the most recent navigation target
func (p *Prompter) LastPath() string {
	return p.lastPath
}

// Visited returns every navigation target in order
func (p *Prompter) Visited() []string {
	return append([]string(nil), p.visited...)
}

func (p *Prompter) dialog(icon string, n caseform.Notice) {
	fmt.Fprintf(p.out, "%s %s\n", icon, n.Title)
	if n.Text != "" {
		fmt.Fprintf(p.out, "  %s\n", n.Text)
	}
}

type line struct {
	text string
	err  error
}

// readLines feeds p.lines until in fails
func (p *Prompter) readLines() {
	defer close(p.lines)
	for {
		text, err := p.in.ReadString('\n')
		if err != nil && text != "" && errors.Is(err, io.EOF) {
			p.lines <- line{text: text}
			continue
		}
		p.lines <- line{text: text, err: err}
		if err != nil {
			return
		}
	}
}

// readLine reads one line, giving up when ctx is done
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	p.start.Do(func() { go p.readLines() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

var (
	_ caseform.Notifier  = (*Prompter)(nil)
	_ caseform.Confirmer = (*Prompter)(nil)
	_ caseform.Navigator = (*Prompter)(nil)
)

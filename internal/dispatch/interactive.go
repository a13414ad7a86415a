// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/officekit/pkg/types"
)

// errEOF marks the end of interactive input.
var errEOF = errors.New("end of input")

// prompter reads answers line by line from the user.
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", errEOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// menuStyles renders through the output writer so piped or captured output
// carries no escape sequences.
type menuStyles struct {
	title lipgloss.Style
	dir   lipgloss.Style
	item  lipgloss.Style
}

func newMenuStyles(out io.Writer) menuStyles {
	r := lipgloss.NewRenderer(out)
	return menuStyles{
		title: r.NewStyle().Bold(true),
		dir:   r.NewStyle().Faint(true),
		item:  r.NewStyle().PaddingLeft(2),
	}
}

func (d *Dispatcher) printMenu(st menuStyles) {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(st.title.Render("Choose an action:"))
	b.WriteString("\n")
	b.WriteString(st.dir.Render("Current directory: " + d.sess.Dir()))
	b.WriteString("\n")
	for _, a := range types.Actions {
		b.WriteString(st.item.Render(fmt.Sprintf("%d. %s", int(a), a.Label())))
		b.WriteString("\n")
	}
	fmt.Fprint(d.opts.Out, b.String())
}

// RunInteractive shows the numbered menu and executes choices read from in
// until Exit is chosen, input ends, or ctx is cancelled. Action errors are
// printed and the loop continues.
func (d *Dispatcher) RunInteractive(ctx context.Context, in io.Reader) error {
	p := &prompter{scanner: bufio.NewScanner(in), out: d.opts.Out}
	st := newMenuStyles(d.opts.Out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.printMenu(st)

		line, err := p.ask("Enter action number: ")
		if errors.Is(err, errEOF) {
			fmt.Fprintln(d.opts.Out)
			return nil
		}
		if err != nil {
			return err
		}

		action, err := parseChoice(line)
		if err != nil {
			fmt.Fprintln(d.opts.Out, err)
			continue
		}

		req, err := d.prompt(p, action)
		if errors.Is(err, errEOF) {
			fmt.Fprintln(d.opts.Out)
			return nil
		}
		if err != nil {
			fmt.Fprintf(d.opts.Out, "Error: %v\n", err)
			continue
		}

		err = d.Dispatch(ctx, req)
		switch {
		case errors.Is(err, ErrExit):
			return nil
		case err != nil && ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			d.opts.Logger.Debug("action failed", "action", action, "err", err)
			fmt.Fprintf(d.opts.Out, "Error: %v\n", err)
		}
	}
}

// choiceError is the message shown for a bad menu entry.
type choiceError string

func (e choiceError) Error() string { return string(e) }

func parseChoice(line string) (types.Action, error) {
	if _, err := strconv.Atoi(line); err != nil {
		return 0, choiceError("Enter a number.")
	}
	a, err := types.ParseAction(line)
	if err != nil {
		return 0, choiceError("Invalid choice.")
	}
	return a, nil
}

// prompt collects the parameters for action.
func (d *Dispatcher) prompt(p *prompter, action types.Action) (Request, error) {
	req := Request{Action: action}

	switch action {
	case types.ActionChangeDirectory:
		path, err := p.ask("Enter the path to the new working directory: ")
		if err != nil {
			return req, err
		}
		req.Path = path

	case types.ActionPdfToDocx, types.ActionDocxToPdf:
		kind := "PDF"
		if action == types.ActionDocxToPdf {
			kind = "DOCX"
		}
		path, err := p.ask(fmt.Sprintf("Path to the %s file (or 'all' for every %s in the current directory): ", kind, kind))
		if err != nil {
			return req, err
		}
		req.Path = path
		if path == All {
			req.WorkDir = d.sess.Dir()
		}

	case types.ActionCompressImages:
		q, err := p.ask(fmt.Sprintf("Quality (1-95, default %d): ", d.opts.Config.Compression.Quality))
		if err != nil {
			return req, err
		}
		if q != "" {
			n, err := strconv.Atoi(q)
			if err != nil {
				return req, fmt.Errorf("%w: quality %q is not a number", types.ErrInvalidChoice, q)
			}
			req.Quality = &n
		}

		scope, err := p.ask("Compress one file (1) or all images in a folder (2)? ")
		if err != nil {
			return req, err
		}
		// Anything other than "1" means the whole folder.
		if scope == "1" {
			path, err := p.ask("Path to the image: ")
			if err != nil {
				return req, err
			}
			req.Path = path
			break
		}
		dir, err := p.ask("Folder (empty for the current directory): ")
		if err != nil {
			return req, err
		}
		req.Path = All
		req.WorkDir = d.sess.Resolve(dir)

	case types.ActionDeleteFiles:
		dir, err := p.ask("Folder to delete from: ")
		if err != nil {
			return req, err
		}
		mode, err := p.ask("Mode (startswith/endswith/contains/extension): ")
		if err != nil {
			return req, err
		}
		pattern, err := p.ask("Pattern: ")
		if err != nil {
			return req, err
		}
		req.Selection = types.SelectionSpec{Dir: dir, Pattern: pattern}
		if mode != "" {
			m, err := types.ParseMode(mode)
			if err != nil {
				return req, err
			}
			req.Selection.Mode = m
		}

	case types.ActionExit:
	}
	return req, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Action identifies one user-selectable operation. The numeric value is the
// index shown in the interactive menu.
type Action int

const (
	ActionChangeDirectory Action = iota
	ActionPdfToDocx
	ActionDocxToPdf
	ActionCompressImages
	ActionDeleteFiles
	ActionExit
)

// Actions lists every action in menu order.
var Actions = []Action{
	ActionChangeDirectory,
	ActionPdfToDocx,
	ActionDocxToPdf,
	ActionCompressImages,
	ActionDeleteFiles,
	ActionExit,
}

// String returns the short machine name used in logs and the journal.
func (a Action) String() string {
	switch a {
	case ActionChangeDirectory:
		return "chdir"
	case ActionPdfToDocx:
		return "pdf2docx"
	case ActionDocxToPdf:
		return "docx2pdf"
	case ActionCompressImages:
		return "compress"
	case ActionDeleteFiles:
		return "delete"
	case ActionExit:
		return "exit"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Label returns the human-readable menu text.
func (a Action) Label() string {
	switch a {
	case ActionChangeDirectory:
		return "Change working directory"
	case ActionPdfToDocx:
		return "Convert PDF to DOCX"
	case ActionDocxToPdf:
		return "Convert DOCX to PDF"
	case ActionCompressImages:
		return "Compress images"
	case ActionDeleteFiles:
		return "Delete a group of files"
	case ActionExit:
		return "Exit"
	}
	return a.String()
}

// Valid reports whether a names a known action.
func (a Action) Valid() bool {
	return a >= ActionChangeDirectory && a <= ActionExit
}

// ParseAction parses a menu index. Non-numeric or out-of-range input
// returns an error wrapping ErrInvalidChoice.
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidChoice, s)
	}
	a := Action(n)
	if !a.Valid() {
		return 0, fmt.Errorf("%w: %d is out of range %d-%d", ErrInvalidChoice, n, ActionChangeDirectory, ActionExit)
	}
	return a, nil
}

// ParseActionName parses the machine name returned by String.
func ParseActionName(s string) (Action, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, a := range Actions {
		if a.String() == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown action %q", ErrInvalidChoice, s)
}

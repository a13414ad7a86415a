// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// SelectionMode is the rule used to match file names inside a directory.
type SelectionMode string

const (
	ModeExtension  SelectionMode = "extension"
	ModeStartsWith SelectionMode = "startswith"
	ModeEndsWith   SelectionMode = "endswith"
	ModeContains   SelectionMode = "contains"
	// ModeAll selects every file whose extension is in a comma-separated
	// pattern list, or every file when the pattern is empty.
	ModeAll SelectionMode = "all"
)

// DeleteModes lists the modes accepted for deletion, in flag help order.
var DeleteModes = []SelectionMode{ModeStartsWith, ModeEndsWith, ModeContains, ModeExtension}

// ParseMode validates a mode name.
func ParseMode(s string) (SelectionMode, error) {
	m := SelectionMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeExtension, ModeStartsWith, ModeEndsWith, ModeContains, ModeAll:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown selection mode %q (want one of %s, %s)",
		ErrInvalidChoice, s, joinModes(DeleteModes), ModeAll)
}

func joinModes(modes []SelectionMode) string {
	parts := make([]string, len(modes))
	for i, m := range modes {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}

// SelectionSpec describes which files in Dir a batch operation applies to.
type SelectionSpec struct {
	Dir     string        `json:"dir" yaml:"dir"`
	Mode    SelectionMode `json:"mode" yaml:"mode"`
	Pattern string        `json:"pattern" yaml:"pattern"`
}

// FileList is an ordered set of resolved file paths. It may be empty.
type FileList []string

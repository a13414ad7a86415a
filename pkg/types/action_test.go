// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		input   string
		want    Action
		wantErr bool
	}{
		{input: "0", want: ActionChangeDirectory},
		{input: " 3\n", want: ActionCompressImages},
		{input: "5", want: ActionExit},
		{input: "6", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAction(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidChoice))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActionsInMenuOrder(t *testing.T) {
	for i, a := range Actions {
		assert.Equal(t, i, int(a))
		assert.True(t, a.Valid())
		assert.NotEmpty(t, a.Label())
	}
	assert.Equal(t, "action(9)", Action(9).String())
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"extension", "StartsWith", " endswith ", "contains", "all"} {
		_, err := ParseMode(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseMode("regex")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidChoice)
	assert.Contains(t, err.Error(), "startswith")
}

func TestParseActionName(t *testing.T) {
	for _, a := range Actions {
		got, err := ParseActionName(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	got, err := ParseActionName(" PDF2DOCX ")
	require.NoError(t, err)
	assert.Equal(t, ActionPdfToDocx, got)

	_, err = ParseActionName("shred")
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

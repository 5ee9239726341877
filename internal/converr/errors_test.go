// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package converr

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		wantMsg  string
	}{
		{
			name:     "usage",
			err:      &UsageError{Message: "unknown flag --ipfx"},
			sentinel: ErrUsage,
			wantMsg:  "usage error: unknown flag --ipfx",
		},
		{
			name:     "validation with field",
			err:      Validationf("rcd", "dictionary required for %s input", "redcap"),
			sentinel: ErrValidation,
			wantMsg:  "validation error (rcd): dictionary required for redcap input",
		},
		{
			name:     "conversion with cause",
			err:      &ConversionError{Operation: "beacon2beacon", Message: "no such conversion", Cause: errors.New("boom")},
			sentinel: ErrConversion,
			wantMsg:  "conversion error in beacon2beacon: no such conversion: boom",
		},
		{
			name:     "io",
			err:      &IOError{Op: "write", Path: "/tmp/out.json", Cause: os.ErrPermission},
			sentinel: ErrIO,
			wantMsg:  "i/o error write /tmp/out.json: permission denied",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.wantMsg, tt.err.Error())

			wrapped := fmt.Errorf("running: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
		})
	}
}

func TestSentinelsDoNotCrossMatch(t *testing.T) {
	err := Validationf("out-dir", "missing")
	assert.NotErrorIs(t, err, ErrUsage)
	assert.NotErrorIs(t, err, ErrConversion)
	assert.NotErrorIs(t, err, ErrIO)
}

func TestIOErrorUnwrap(t *testing.T) {
	err := &IOError{Op: "rename", Path: "x", Cause: os.ErrNotExist}
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"usage", Usagef("bad flag"), 2},
		{"wrapped usage", fmt.Errorf("x: %w", Usagef("bad flag")), 2},
		{"validation", Validationf("input", "none"), 1},
		{"conversion", &ConversionError{Operation: "x"}, 1},
		{"io", &IOError{}, 1},
		{"plain", errors.New("other"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

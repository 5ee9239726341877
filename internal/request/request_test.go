// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package request

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pheno-convert/internal/converr"
	"github.com/pdiddy/pheno-convert/pkg/types"
)

func TestBuild_Kinds(t *testing.T) {
	outDir := t.TempDir()

	tests := []struct {
		name       string
		flags      Flags
		wantIn     types.Format
		wantOut    types.Format
		wantInPath string
		wantFile   string
	}{
		{
			name:       "phenopacket to beacon",
			flags:      Flags{InputPhenopacket: "a.json", OutputBeacon: "b.json"},
			wantIn:     types.FormatPhenopacket,
			wantOut:    types.FormatBeacon,
			wantInPath: "a.json",
			wantFile:   "b.json",
		},
		{
			name:       "beacon to phenopacket",
			flags:      Flags{InputBeacon: "x.json", OutputPhenopacket: "p.yaml"},
			wantIn:     types.FormatBeacon,
			wantOut:    types.FormatPhenopacket,
			wantInPath: "x.json",
			wantFile:   "p.yaml",
		},
		{
			name:       "redcap to phenopacket",
			flags:      Flags{InputRedcap: "r.csv", Dictionary: "d.csv", OutputPhenopacket: "p.json"},
			wantIn:     types.FormatRedcap,
			wantOut:    types.FormatPhenopacket,
			wantInPath: "r.csv",
			wantFile:   "p.json",
		},
		{
			name:       "no output flag defaults to beacon individuals.json",
			flags:      Flags{InputBeacon: "x.json"},
			wantIn:     types.FormatBeacon,
			wantOut:    types.FormatBeacon,
			wantInPath: "x.json",
			wantFile:   "individuals.json",
		},
		{
			name:       "redcap with default output",
			flags:      Flags{InputRedcap: "r.csv", Dictionary: "d.csv"},
			wantIn:     types.FormatRedcap,
			wantOut:    types.FormatBeacon,
			wantInPath: "r.csv",
			wantFile:   "individuals.json",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.flags
			f.OutDir = outDir

			r, err := Build(f)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIn, r.InputKind())
			assert.Equal(t, tt.wantOut, r.OutputKind())
			assert.Equal(t, tt.wantInPath, r.InputPath())
			assert.Equal(t, filepath.Join(outDir, tt.wantFile), r.OutputPath())
		})
	}
}

func TestBuild_PhenopacketToBeaconScenario(t *testing.T) {
	dir := t.TempDir()
	r, err := Build(Flags{InputPhenopacket: "a.json", OutputBeacon: "b.json", OutDir: dir})
	require.NoError(t, err)
	assert.Equal(t, types.FormatPhenopacket, r.InputKind())
	assert.Equal(t, dir+string(filepath.Separator)+"b.json", r.OutputPath())
	assert.Empty(t, r.DictionaryPath())
}

func TestBuild_DefaultOutDir(t *testing.T) {
	r, err := Build(Flags{InputBeacon: "x.json"})
	require.NoError(t, err)
	assert.Equal(t, "individuals.json", r.OutputPath())
}

func TestBuild_FirstInputWins(t *testing.T) {
	r, err := Build(Flags{
		InputPhenopacket: "p.json",
		InputBeacon:      "b.json",
		InputRedcap:      "r.csv",
		OutDir:           t.TempDir(),
	})
	require.NoError(t, err)
	assert.Equal(t, types.FormatPhenopacket, r.InputKind())
	assert.Equal(t, "p.json", r.InputPath())
	assert.Equal(t, []types.Format{types.FormatBeacon, types.FormatRedcap}, r.IgnoredInputs())
	assert.Empty(t, r.DictionaryPath(), "redcap lost priority so no dictionary is carried")
}

func TestBuild_FirstOutputWins(t *testing.T) {
	dir := t.TempDir()
	r, err := Build(Flags{
		InputBeacon:       "b.json",
		OutputPhenopacket: "p.json",
		OutputBeacon:      "ignored.json",
		OutDir:            dir,
	})
	require.NoError(t, err)
	assert.Equal(t, types.FormatPhenopacket, r.OutputKind())
	assert.Equal(t, filepath.Join(dir, "p.json"), r.OutputPath())
	assert.Equal(t, []types.Format{types.FormatBeacon}, r.IgnoredOutputs())
}

func TestBuild_Errors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain-file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	missing := filepath.Join(dir, "does-not-exist")

	tests := []struct {
		name      string
		flags     Flags
		wantField string
	}{
		{
			name:      "no input flag",
			flags:     Flags{OutputBeacon: "b.json", OutDir: dir},
			wantField: "input",
		},
		{
			name:      "no input flag and missing out dir",
			flags:     Flags{OutDir: missing},
			wantField: "input",
		},
		{
			name:      "redcap without dictionary",
			flags:     Flags{InputRedcap: "r.csv", OutDir: dir},
			wantField: "rcd",
		},
		{
			name:      "missing out dir",
			flags:     Flags{InputPhenopacket: "a.json", OutDir: missing},
			wantField: "out-dir",
		},
		{
			name:      "out dir is a file",
			flags:     Flags{InputBeacon: "b.json", OutDir: file},
			wantField: "out-dir",
		},
		{
			name:      "redcap with dictionary but missing out dir",
			flags:     Flags{InputRedcap: "r.csv", Dictionary: "d.csv", OutDir: missing},
			wantField: "out-dir",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.flags)
			require.Error(t, err)
			assert.ErrorIs(t, err, converr.ErrValidation)
			assert.Equal(t, converr.ExitFailure, converr.ExitCode(err))

			var verr *converr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestBuild_NoFilesWrittenOnFailure(t *testing.T) {
	dir := t.TempDir()
	_, err := Build(Flags{InputRedcap: "r.csv", OutDir: dir})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOptionsArgs(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{name: "zero", opts: Options{}, want: nil},
		{
			name: "all",
			opts: Options{
				PrintHiddenLabels:  true,
				SelfValidateSchema: true,
				Separator:          ";",
				Test:               true,
				Verbose:            true,
				Debug:              2,
			},
			want: []string{
				"--print-hidden-labels", "--self-validate-schema",
				"--sep", ";", "--test", "--verbose", "--debug", "2",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.Args())
		})
	}
}

func TestRequest_OptionsForwardedVerbatim(t *testing.T) {
	opts := Options{PrintHiddenLabels: true, Debug: 3}
	r, err := Build(Flags{InputBeacon: "b.json", OutDir: t.TempDir(), Options: opts})
	require.NoError(t, err)
	assert.Equal(t, opts, r.Options())
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package request turns raw command-line flag values into an immutable
// conversion Request. It validates everything that can be checked before
// conversion work starts; the only filesystem access is a stat of the output
// directory.
package request

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/pheno-convert/internal/converr"
	"github.com/pdiddy/pheno-convert/pkg/types"
)

// Options are auxiliary flags that do not affect dispatch. They are
// forwarded unchanged to the conversion engine.
type Options struct {
	// PrintHiddenLabels emits the original pre-mapping label values.
	PrintHiddenLabels bool
	// SelfValidateSchema validates the produced document against its schema.
	SelfValidateSchema bool
	// Separator is the REDCap CSV separator; empty means the tool default.
	Separator string
	// Test omits volatile fields such as timestamps from the output.
	Test bool
	Verbose bool
	Debug   int
}

// Args renders the options as conversion tool flags.
func (o Options) Args() []string {
	var args []string
	if o.PrintHiddenLabels {
		args = append(args, "--print-hidden-labels")
	}
	if o.SelfValidateSchema {
		args = append(args, "--self-validate-schema")
	}
	if o.Separator != "" {
		args = append(args, "--sep", o.Separator)
	}
	if o.Test {
		args = append(args, "--test")
	}
	if o.Verbose {
		args = append(args, "--verbose")
	}
	if o.Debug > 0 {
		args = append(args, "--debug", strconv.Itoa(o.Debug))
	}
	return args
}

// Flags holds raw flag values. An empty string means the flag was absent.
type Flags struct {
	InputPhenopacket string
	InputBeacon      string
	InputRedcap      string

	OutputPhenopacket string
	OutputBeacon      string

	// OutDir defaults to "." when empty.
	OutDir     string
	Dictionary string

	Options Options
}

// Request is a validated description of one conversion job. It has no
// setters; build one with Build.
type Request struct {
	inputKind      types.Format
	outputKind     types.Format
	inputPath      string
	outputPath     string
	dictionaryPath string
	options        Options

	ignoredInputs  []types.Format
	ignoredOutputs []types.Format
}

func (r Request) InputKind() types.Format  { return r.inputKind }
func (r Request) OutputKind() types.Format { return r.outputKind }
func (r Request) InputPath() string        { return r.inputPath }

// OutputPath is the output directory joined with the output filename.
func (r Request) OutputPath() string { return r.outputPath }

// DictionaryPath is set only for REDCap input.
func (r Request) DictionaryPath() string { return r.dictionaryPath }
func (r Request) Options() Options       { return r.options }

// IgnoredInputs lists input flags that were supplied but lost to a
// higher-priority input flag.
func (r Request) IgnoredInputs() []types.Format {
	return append([]types.Format(nil), r.ignoredInputs...)
}

// IgnoredOutputs lists output flags that were supplied but lost to a
// higher-priority output flag.
func (r Request) IgnoredOutputs() []types.Format {
	return append([]types.Format(nil), r.ignoredOutputs...)
}

type selector struct {
	format types.Format
	value  string
}

// pick returns the first selector with a value, in order, and the formats of
// any later selectors that also had one.
func pick(sels []selector) (chosen selector, ok bool, ignored []types.Format) {
	for _, s := range sels {
		if s.value == "" {
			continue
		}
		if !ok {
			chosen, ok = s, true
			continue
		}
		ignored = append(ignored, s.format)
	}
	return chosen, ok, ignored
}

// Build validates f and returns the normalized Request.
//
// The input format is chosen by priority phenopacket, beacon, redcap; the
// first flag set wins and later ones are reported through IgnoredInputs.
// With no output flag the output format is beacon and the filename is
// individuals.json.
func Build(f Flags) (Request, error) {
	in, ok, ignoredIn := pick([]selector{
		{types.FormatPhenopacket, f.InputPhenopacket},
		{types.FormatBeacon, f.InputBeacon},
		{types.FormatRedcap, f.InputRedcap},
	})
	if !ok {
		return Request{}, converr.Validationf("input", "no input file supplied: use one of --ipxf, --ibff or --iredcap")
	}

	if in.format == types.FormatRedcap && f.Dictionary == "" {
		return Request{}, converr.Validationf("rcd", "a REDCap dictionary (--rcd) is required for REDCap input")
	}

	outDir := f.OutDir
	if outDir == "" {
		outDir = "."
	}
	if err := checkDir(outDir); err != nil {
		return Request{}, err
	}

	out, ok, ignoredOut := pick([]selector{
		{types.FormatPhenopacket, f.OutputPhenopacket},
		{types.FormatBeacon, f.OutputBeacon},
	})
	if !ok {
		out = selector{format: types.FormatBeacon, value: types.DefaultOutputFilename}
	}

	inputPath := in.value
	if inputPath == "" {
		inputPath = types.DefaultOutputFilename
	}

	r := Request{
		inputKind:      in.format,
		outputKind:     out.format,
		inputPath:      inputPath,
		outputPath:     filepath.Join(outDir, out.value),
		options:        f.Options,
		ignoredInputs:  ignoredIn,
		ignoredOutputs: ignoredOut,
	}
	if in.format == types.FormatRedcap {
		r.dictionaryPath = f.Dictionary
	}
	return r, nil
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return &converr.ValidationError{Field: "out-dir", Message: "output directory " + dir + " does not exist", Cause: err}
	}
	if !info.IsDir() {
		return converr.Validationf("out-dir", "output path %s is not a directory", dir)
	}
	return nil
}

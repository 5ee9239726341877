// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dispatch resolves a conversion Request to one of the supported
// operations, runs it on a conversion engine and persists the result.
package dispatch

import (
	"errors"
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pheno-convert/internal/converr"
	"github.com/pdiddy/pheno-convert/internal/request"
	"github.com/pdiddy/pheno-convert/pkg/types"
)

// Engine performs schema-to-schema conversions. It exposes one method per
// supported operation. Each returns the converted document as a generic tree
// of maps, slices and scalars.
type Engine interface {
	PhenopacketToBeacon() (any, error)
	BeaconToPhenopacket() (any, error)
	RedcapToBeacon() (any, error)
	RedcapToPhenopacket() (any, error)
}

// EngineFactory builds an engine configured from the full request.
type EngineFactory func(req request.Request) (Engine, error)

// Writer persists a converted document at path.
type Writer interface {
	Write(path string, doc any) error
}

// Operation is an (input, output) format pair.
type Operation struct {
	Input  types.Format
	Output types.Format
}

// Name joins the input and output kinds with "2", e.g. "phenopacket2beacon".
func (o Operation) Name() string {
	return o.Input.Kind() + "2" + o.Output.Kind()
}

func (o Operation) String() string { return o.Name() }

// operations is the closed set of supported conversions.
var operations = map[Operation]func(Engine) (any, error){
	{types.FormatPhenopacket, types.FormatBeacon}: Engine.PhenopacketToBeacon,
	{types.FormatBeacon, types.FormatPhenopacket}: Engine.BeaconToPhenopacket,
	{types.FormatRedcap, types.FormatBeacon}:      Engine.RedcapToBeacon,
	{types.FormatRedcap, types.FormatPhenopacket}: Engine.RedcapToPhenopacket,
}

// Resolve returns the operation for the given pair, or a ConversionError
// naming the pair when no such conversion exists.
func Resolve(in, out types.Format) (Operation, error) {
	op := Operation{Input: in, Output: out}
	if _, ok := operations[op]; !ok {
		return Operation{}, &converr.ConversionError{Operation: op.Name(), Message: "no such conversion"}
	}
	return op, nil
}

// Supported returns the names of all supported operations, sorted.
func Supported() []string {
	names := make([]string, 0, len(operations))
	for op := range operations {
		names = append(names, op.Name())
	}
	sort.Strings(names)
	return names
}

// Result describes a completed conversion.
type Result struct {
	Operation  string
	OutputPath string
}

// Dispatcher routes requests to the engine and writes the outcome.
type Dispatcher struct {
	NewEngine EngineFactory
	Writer    Writer
	// Log receives progress messages. Nil discards them.
	Log logrus.FieldLogger
}

// Dispatch resolves the operation for req, runs it and writes the returned
// document to req.OutputPath(). Nothing is written unless the engine
// succeeds; on success exactly one write happens.
func (d *Dispatcher) Dispatch(req request.Request) (Result, error) {
	log := d.logger()

	op, err := Resolve(req.InputKind(), req.OutputKind())
	if err != nil {
		return Result{}, err
	}
	run := operations[op]
	log = log.WithField("operation", op.Name())

	eng, err := d.NewEngine(req)
	if err != nil {
		return Result{}, asConversionError(op, "creating engine", err)
	}

	log.WithField("input", req.InputPath()).Info("converting")
	doc, err := run(eng)
	if err != nil {
		return Result{}, asConversionError(op, "", err)
	}
	if doc == nil {
		return Result{}, &converr.ConversionError{Operation: op.Name(), Message: "engine returned an empty document"}
	}

	log.WithField("output", req.OutputPath()).Debug("writing document")
	if err := d.Writer.Write(req.OutputPath(), doc); err != nil {
		if errors.Is(err, converr.ErrIO) {
			return Result{}, err
		}
		return Result{}, &converr.IOError{Op: "write", Path: req.OutputPath(), Cause: err}
	}

	return Result{Operation: op.Name(), OutputPath: req.OutputPath()}, nil
}

func (d *Dispatcher) logger() logrus.FieldLogger {
	if d.Log != nil {
		return d.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func asConversionError(op Operation, msg string, err error) error {
	if errors.Is(err, converr.ErrConversion) {
		return err
	}
	return &converr.ConversionError{Operation: op.Name(), Message: msg, Cause: err}
}

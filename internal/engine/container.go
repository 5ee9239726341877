// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine runs conversions with the convert-pheno tool packaged as a
// container image. The input document is mounted read-only, the tool writes
// into a scratch directory and the produced document is decoded back into a
// generic tree for the output writer.
package engine

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pheno-convert/internal/container"
	"github.com/pdiddy/pheno-convert/internal/converr"
	"github.com/pdiddy/pheno-convert/internal/output"
	"github.com/pdiddy/pheno-convert/internal/request"
	"github.com/pdiddy/pheno-convert/pkg/types"
)

// Paths inside the container.
const (
	mountIn   = "/in"
	mountDict = "/dict"
	mountOut  = "/out"
)

// Container converts documents by running the conversion image through a
// container.Runtime (docker or podman) injected at construction time.
type Container struct {
	runtime container.Runtime
	image   string
	req     request.Request
	log     logrus.FieldLogger
}

// New creates an engine for req. It verifies that image exists locally in
// rt before returning.
func New(rt container.Runtime, image string, req request.Request, log logrus.FieldLogger) (*Container, error) {
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("conversion image not available in %s: %w", rt.Name(), err)
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Container{runtime: rt, image: image, req: req, log: log}, nil
}

func (c *Container) PhenopacketToBeacon() (any, error) {
	return c.convert(types.FormatPhenopacket, types.FormatBeacon)
}

func (c *Container) BeaconToPhenopacket() (any, error) {
	return c.convert(types.FormatBeacon, types.FormatPhenopacket)
}

func (c *Container) RedcapToBeacon() (any, error) {
	return c.convert(types.FormatRedcap, types.FormatBeacon)
}

func (c *Container) RedcapToPhenopacket() (any, error) {
	return c.convert(types.FormatRedcap, types.FormatPhenopacket)
}

func (c *Container) convert(in, out types.Format) (any, error) {
	op := in.Kind() + "2" + out.Kind()
	fail := func(msg string, err error) error {
		return &converr.ConversionError{Operation: op, Message: msg, Cause: err}
	}

	if c.req.InputKind() != in {
		return nil, fail(fmt.Sprintf("request input is %s, not %s", c.req.InputKind(), in), nil)
	}

	inputPath, err := existingFile(c.req.InputPath())
	if err != nil {
		return nil, fail("input file", err)
	}
	if in.Structured() {
		if _, err := output.ReadFile(inputPath); err != nil {
			return nil, fail("malformed input document", err)
		}
	}

	mounts := []container.Mount{{HostDir: filepath.Dir(inputPath), ContainerDir: mountIn, ReadOnly: true}}
	args := []string{"-i" + in.Tag(), mountIn + "/" + filepath.Base(inputPath)}

	if in == types.FormatRedcap {
		dictPath, err := existingFile(c.req.DictionaryPath())
		if err != nil {
			return nil, fail("REDCap dictionary", err)
		}
		mounts = append(mounts, container.Mount{HostDir: filepath.Dir(dictPath), ContainerDir: mountDict, ReadOnly: true})
		args = append(args, "--rcd", mountDict+"/"+filepath.Base(dictPath))
	}

	scratch, err := os.MkdirTemp("", "pheno-convert-*")
	if err != nil {
		return nil, fail("creating scratch directory", err)
	}
	defer os.RemoveAll(scratch)

	outName := filepath.Base(c.req.OutputPath())
	mounts = append(mounts, container.Mount{HostDir: scratch, ContainerDir: mountOut})
	args = append(args, "-o"+out.Tag(), outName, "--out-dir", mountOut)
	args = append(args, c.req.Options().Args()...)

	spec := container.RunSpec{Image: c.image, Mounts: mounts, Args: args}
	c.log.WithFields(logrus.Fields{"runtime": c.runtime.Name(), "image": c.image, "args": args}).Debug("running conversion container")

	var stdout bytes.Buffer
	if err := c.runtime.Run(spec, nil, &stdout); err != nil {
		return nil, fail("", err)
	}
	if stdout.Len() > 0 {
		c.log.Debug(stdout.String())
	}

	doc, err := output.ReadFile(filepath.Join(scratch, outName))
	if err != nil {
		return nil, fail("reading converted document", err)
	}
	return doc, nil
}

// existingFile resolves path to an absolute path and checks that it names a
// regular file.
func existingFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	return abs, nil
}

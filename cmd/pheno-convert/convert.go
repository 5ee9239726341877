// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pheno-convert/internal/container"
	"github.com/pdiddy/pheno-convert/internal/dispatch"
	"github.com/pdiddy/pheno-convert/internal/engine"
	"github.com/pdiddy/pheno-convert/internal/logging"
	"github.com/pdiddy/pheno-convert/internal/output"
	"github.com/pdiddy/pheno-convert/internal/present"
	"github.com/pdiddy/pheno-convert/internal/request"
	"github.com/pdiddy/pheno-convert/pkg/types"
)

// newEngineFactory builds the engine factory handed to the dispatcher.
var newEngineFactory = containerEngineFactory

func containerEngineFactory(cfg types.Config, log logrus.FieldLogger) dispatch.EngineFactory {
	return func(req request.Request) (dispatch.Engine, error) {
		rt, err := container.NewRuntime(cfg.Runtime)
		if err != nil {
			return nil, err
		}
		eng, err := engine.New(rt, cfg.Image, req, log)
		if err != nil {
			return nil, err
		}
		return eng, nil
	}
}

func addConvertFlags(cmd *cobra.Command, v *viper.Viper) {
	f := cmd.Flags()

	// Input selectors. The first one set, in this order, wins.
	f.String("ipxf", "", "Phenopacket input file (JSON or YAML)")
	f.String("ibff", "", "Beacon v2 Models individuals input file (JSON or YAML)")
	f.String("iredcap", "", "REDCap export input file (CSV)")

	// Output selectors.
	f.String("opxf", "", "Phenopacket output filename")
	f.String("obff", "", "Beacon v2 Models output filename (default individuals.json)")
	f.String("out-dir", ".", "directory the output file is written to; must exist")

	f.String("rcd", "", "REDCap data dictionary (CSV); required with --iredcap (alias --redcap-dictionary)")

	// Forwarded to the conversion tool unchanged.
	f.Bool("print-hidden-labels", false, "emit the original labels before mapping (alias --phl)")
	f.Bool("self-validate-schema", false, "validate the output against its JSON schema (alias --svs)")
	f.String("sep", "", "REDCap CSV field separator")
	f.Bool("test", false, "omit volatile fields such as timestamps")
	f.BoolP("verbose", "v", false, "verbose output")
	f.Int("debug", 0, "debug level (0 = off)")

	f.String("runtime", "", "container runtime: docker or podman (default: detect)")
	f.String("image", types.DefaultImage, "container image providing the conversion tool")
	f.Bool("man", false, "print the full manual and exit")

	_ = v.BindPFlag("out_dir", f.Lookup("out-dir"))
	_ = v.BindPFlag("runtime", f.Lookup("runtime"))
	_ = v.BindPFlag("image", f.Lookup("image"))
}

func loadConfig(v *viper.Viper) types.Config {
	cfg := types.Config{
		OutDir:  v.GetString("out_dir"),
		Image:   v.GetString("image"),
		Runtime: v.GetString("runtime"),
		NoColor: v.GetBool("no_color"),
	}
	if cfg.Image == "" {
		cfg.Image = types.DefaultImage
	}
	return cfg
}

func requestFlags(cmd *cobra.Command, cfg types.Config) request.Flags {
	f := cmd.Flags()
	get := func(name string) string {
		s, _ := f.GetString(name)
		return s
	}
	phl, _ := f.GetBool("print-hidden-labels")
	svs, _ := f.GetBool("self-validate-schema")
	test, _ := f.GetBool("test")
	verbose, _ := f.GetBool("verbose")
	debug, _ := f.GetInt("debug")

	return request.Flags{
		InputPhenopacket:  get("ipxf"),
		InputBeacon:       get("ibff"),
		InputRedcap:       get("iredcap"),
		OutputPhenopacket: get("opxf"),
		OutputBeacon:      get("obff"),
		OutDir:            cfg.OutDir,
		Dictionary:        get("rcd"),
		Options: request.Options{
			PrintHiddenLabels:  phl,
			SelfValidateSchema: svs,
			Separator:          get("sep"),
			Test:               test,
			Verbose:            verbose,
			Debug:              debug,
		},
	}
}

func runConvert(cmd *cobra.Command, v *viper.Viper) error {
	if man, _ := cmd.Flags().GetBool("man"); man {
		return cmd.Help()
	}

	cfg := loadConfig(v)
	req, err := request.Build(requestFlags(cmd, cfg))
	if err != nil {
		return err
	}

	p := present.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.NoColor)
	for _, ignored := range req.IgnoredInputs() {
		p.Warn("--i%s ignored: --i%s takes priority", ignored.Tag(), req.InputKind().Tag())
	}
	for _, ignored := range req.IgnoredOutputs() {
		p.Warn("--o%s ignored: --o%s takes priority", ignored.Tag(), req.OutputKind().Tag())
	}

	opts := req.Options()
	log := logging.New(cmd.ErrOrStderr(), opts.Verbose, opts.Debug, cfg.NoColor)

	d := &dispatch.Dispatcher{
		NewEngine: newEngineFactory(cfg, log),
		Writer:    output.FileWriter{},
		Log:       log,
	}
	res, err := d.Dispatch(req)
	if err != nil {
		return err
	}

	p.Success("%s: wrote %s", res.Operation, res.OutputPath)
	return nil
}

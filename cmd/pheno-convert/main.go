// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pheno-convert CLI. It converts
// clinical and phenotypic data between Phenopacket, Beacon v2 Models and
// REDCap representations by resolving the requested operation from the
// input and output flags and running it in the conversion container.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/pheno-convert/internal/converr"
	"github.com/pdiddy/pheno-convert/internal/dispatch"
	"github.com/pdiddy/pheno-convert/internal/present"
)

// version is set at build time via ldflags.
var version = "dev"

// flagAliases maps alternate flag spellings to their canonical names.
var flagAliases = map[string]string{
	"redcap-dictionary": "rcd",
	"phl":               "print-hidden-labels",
	"svs":               "self-validate-schema",
	"nc":                "no-color",
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pheno-convert",
		Short: "Convert between Phenopacket, Beacon v2 Models and REDCap data",
		Long: `pheno-convert converts clinical and phenotypic data between data models.
Select exactly one input (--ipxf, --ibff or --iredcap) and at most one output
(--opxf or --obff). Without an output flag the result is Beacon v2 Models
written to individuals.json in --out-dir. REDCap input requires --rcd.

If several input flags are given, --ipxf wins over --ibff, which wins over
--iredcap; the ignored flags are reported as warnings.

Supported conversions: ` + strings.Join(dispatch.Supported(), ", ") + `.

The conversion itself runs in the convert-pheno container image using docker
or podman.`,
		Version:       version,
		Args:          noArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipConfig(cmd) {
				return nil
			}
			return initConfig(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, v)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &converr.UsageError{Cause: err}
	})
	cmd.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if canonical, ok := flagAliases[name]; ok {
			name = canonical
		}
		return pflag.NormalizedName(name)
	})

	cmd.PersistentFlags().String("config", "", "config file (default: ./pheno-convert.yaml or ~/.config/pheno-convert/config.yaml)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output (alias --nc)")
	_ = v.BindPFlag("no_color", cmd.PersistentFlags().Lookup("no-color"))

	addConvertFlags(cmd, v)
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// skipConfig reports whether cmd only prints information (--man or the
// version subcommand) and must not fail on configuration problems.
func skipConfig(cmd *cobra.Command) bool {
	if cmd.Name() == "version" {
		return true
	}
	man, _ := cmd.Flags().GetBool("man")
	return man
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return converr.Usagef("unexpected argument %q: input files are given with --ipxf, --ibff or --iredcap", args[0])
	}
	return nil
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pheno-convert")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pheno-convert"))
		}
	}

	v.SetEnvPrefix("PHENO_CONVERT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return &converr.ValidationError{Field: "config", Message: "reading config file", Cause: err}
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	return nil
}

// execute runs the CLI with args and returns the process exit status.
func execute(args []string, stdout, stderr io.Writer) int {
	v := viper.New()
	cmd := newRootCmd(v)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return converr.ExitOK
	}

	present.New(stdout, stderr, v.GetBool("no_color")).Error(err)
	if errors.Is(err, converr.ErrUsage) {
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return converr.ExitCode(err)
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

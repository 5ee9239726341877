// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultImage is the container image that provides the conversion tool.
const DefaultImage = "convert-pheno:latest"

// DefaultOutputFilename is used when no output filename is given and as the
// fallback input filename.
const DefaultOutputFilename = "individuals.json"

// Config holds settings resolved from flags, PHENO_CONVERT_* environment
// variables and the optional pheno-convert.yaml config file.
type Config struct {
	// OutDir is the directory output files are written to (default ".").
	OutDir string `json:"out_dir" yaml:"out_dir" mapstructure:"out_dir"`

	// Image is the container image running the conversion tool.
	Image string `json:"image" yaml:"image" mapstructure:"image"`

	// Runtime forces a container runtime ("docker" or "podman"). Empty
	// means detect, preferring docker.
	Runtime string `json:"runtime,omitempty" yaml:"runtime,omitempty" mapstructure:"runtime"`

	// NoColor disables colored terminal output.
	NoColor bool `json:"no_color" yaml:"no_color" mapstructure:"no_color"`
}

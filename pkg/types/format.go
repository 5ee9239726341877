// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pheno-convert CLI:
// the closed set of clinical data formats and the configuration record
// loaded from flags, environment and config files.
package types

// Format identifies a clinical data model representation. The zero value is
// not a valid format.
type Format string

const (
	// FormatPhenopacket is GA4GH Phenopacket v2 (PXF).
	FormatPhenopacket Format = "phenopacket"
	// FormatBeacon is Beacon v2 Models (BFF).
	FormatBeacon Format = "beacon"
	// FormatRedcap is a REDCap project export (CSV). Input only.
	FormatRedcap Format = "redcap"
)

// Kind returns the canonical format name used to build operation names.
func (f Format) Kind() string {
	return string(f)
}

// Tag returns the short tag the conversion tool uses in its flags
// (e.g. "pxf" for -ipxf/-opxf).
func (f Format) Tag() string {
	switch f {
	case FormatPhenopacket:
		return "pxf"
	case FormatBeacon:
		return "bff"
	case FormatRedcap:
		return "redcap"
	}
	return ""
}

// Structured reports whether documents in this format are JSON or YAML trees
// (as opposed to tabular exports).
func (f Format) Structured() bool {
	return f == FormatPhenopacket || f == FormatBeacon
}

func (f Format) String() string {
	return string(f)
}

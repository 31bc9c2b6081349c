// Package cli implements the chainlint command line: loading definition
// files, validating every chain, and explaining chain priority.
package cli

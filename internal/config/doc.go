// Package config provides configuration loading, merging, and validation
// facilities for the intake service.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Anything still unset falls back to [Defaults]. The main entry point is
// [GetStructuredConfig]; the resulting struct is passed explicitly to every
// component that needs it.
package config

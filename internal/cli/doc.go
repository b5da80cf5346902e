// Package cli implements the command-line interface for wimbledon-finals.
//
// The cli package provides the Cobra-based CLI with commands to run a full
// scrape, refresh the current year's final, look up a stored final, and serve
// the read API with a scheduled refresh. Output is available as text, JSON
// or YAML.
package cli

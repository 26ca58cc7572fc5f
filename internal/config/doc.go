// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides the run
// settings of the generator and the statistical tables that drive outcome
// synthesis, keeping those details separate from the engine itself.
package config

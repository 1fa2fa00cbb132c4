// Package config provides configuration structures and utilities for rollcall.
//
// Three layers make up the configuration of a run:
//   - Config: options of the command line itself (flags)
//   - Settings: the named automation parameters (file paths, e-mail
//     addresses, subject) resolved once per run through a Provider
//   - Template: the text content of the report, e-mail and alerts
//
// Parameters are resolved in this order, last wins: compiled-in defaults,
// the parameters block of the configuration file, the overrides supplied by
// the orchestrator for the current execution.
package config

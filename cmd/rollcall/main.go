// Package main provides the entry point for the rollcall CLI.
//
// rollcall is an attendance-report robot. It reads a class attendance
// table, rejects it when any value is missing, renders a PDF report,
// e-mails it to the professor and reports the outcome to the orchestrator.
//
// Usage:
//
//	rollcall run
//	rollcall run --param EMAIL_DESTINATARIO=prof@example.com
//	rollcall preview frequencia.csv
//
// See --help for all available options.
package main

import "os"

// main is the entry point for rollcall.
func main() {
	os.Exit(Execute())
}

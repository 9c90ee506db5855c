// Package bridgematrix provides public constants for tools that invoke the
// bridgematrix CLI, such as CI wrappers.
package bridgematrix

// Exit codes returned by the bridgematrix CLI.
const (
	// ExitSuccess indicates every case in the matrix passed.
	ExitSuccess = 0

	// ExitFailure indicates a failed case or a fatal configuration,
	// artifact, or amount error.
	ExitFailure = 1

	// ExitUsageError indicates an invalid command line.
	ExitUsageError = 2

	// ExitInterrupted indicates the run was canceled by SIGINT or SIGTERM.
	ExitInterrupted = 130
)

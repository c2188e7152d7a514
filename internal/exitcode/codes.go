// Package exitcode defines named exit codes for the repstream CLI.
//
// Each code maps a specific termination condition to a numeric value
// recognized by shell scripts and CI pipelines.
package exitcode

// Exit code constants.
const (
	Success     = 0   // Command completed
	Error       = 1   // Invalid args, file not found, processing failure
	Interrupted = 130 // SIGINT/SIGTERM received
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}

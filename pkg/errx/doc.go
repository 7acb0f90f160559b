// Package errx provides structured, code-based errors for the bctl developer tools.
//
// Every error carries:
//   - A stable 5-digit error code (e.g., "71000" for subprocess errors)
//   - A category description (e.g., "Subprocess error")
//   - A user-facing message
//   - Optional structured context (key-value pairs)
//   - Optional cause and base sentinel errors
//
// Error codes follow a scheme where the first two digits represent the domain:
//   - 70xxx: CLI/argument validation errors
//   - 71xxx: Subprocess errors (external command failed or was not found)
//   - 72xxx: Banner errors (expected marker absent)
//   - 73xxx: Config file read errors
//   - 74xxx: Config file parse errors
//   - 75xxx: Credential errors (required field missing)
//   - 76xxx: Settings errors
//
// The last three digits are reserved for subcodes.
//
// Example usage:
//
//	err := errx.Wrap(errx.CodeSubprocess, errx.DescSubprocess, "zli exited with status 1", cause).
//		WithContext("command", "zli").
//		WithContext("exitCode", 1).
//		WithBase(sentinelErr)
//
//	if errors.Is(err, sentinelErr) {
//		// Handle specific error
//	}
//
//	fmt.Println(errx.UserString(err))  // User-friendly message
//	fmt.Println(errx.DebugString(err)) // Full debug details
//	os.Exit(errx.ExitCode(err))        // Exit status carried by the chain
package errx

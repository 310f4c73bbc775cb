// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"arxmlmerge/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE
// handlers. It is how merge and validate distinguish a plain failure
// (types.ExitFailure) from the no-valid-input case (types.ExitNoValidInput,
// exit code 2) that scripted callers branch on.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

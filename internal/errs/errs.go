// Package errs defines the sentinel errors shared across the command
// line tool and its collaborators, so callers can classify a failure
// with errors.Is without depending on package-specific error types.
package errs

import "errors"

var (
	// ErrArgument marks a CLI argument validation failure.
	ErrArgument = errors.New("invalid argument")

	// ErrResumeFile marks a failure reading or parsing a checkpoint
	// file passed via --resume-from-file.
	ErrResumeFile = errors.New("resume file error")

	// ErrCheckpointWrite marks a failure writing a checkpoint file
	// after a halt.
	ErrCheckpointWrite = errors.New("checkpoint write error")

	// ErrHaltedDelegator marks a run that stopped because it was
	// signaled to halt before the delegator finished producing jobs.
	// It is not fatal on its own, but it means no checkpoint could be
	// written: there may be in-flight work with no recorded frontier.
	ErrHaltedDelegator = errors.New("halted before delegation completed")
)

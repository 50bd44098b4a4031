package main

import (
	"errors"
	"fmt"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

func usageErrorf(format string, args ...interface{}) error {
	return &exitError{
		code: exitUsage,
		msg:  fmt.Sprintf(format, args...),
	}
}

func failuref(format string, args ...interface{}) error {
	return &exitError{
		code: exitFailure,
		msg:  fmt.Sprintf(format, args...),
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return exitFailure
}

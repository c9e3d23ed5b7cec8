// Package main provides the fishbones CLI: it applies field values from YAML
// files to registered object kinds, stores the captured field state as
// snapshots, and reads or writes single fields of stored snapshots.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fishbones:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// cliError tags an error with the exit code it should produce.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func userErr(format string, args ...any) error {
	return &cliError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysErr(format string, args ...any) error {
	return &cliError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// exitCode maps err to an exit code. Errors that were not tagged come from
// cobra itself (bad flags, wrong argument counts) and count as user errors.
func exitCode(err error) int {
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}

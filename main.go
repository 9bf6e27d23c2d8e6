package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/clawgit/cmd/cli"
	"github.com/temirov/clawgit/internal/shared"
)

const (
	exitErrorTemplateConstant = "%v\n"
	exitFailureCodeConstant   = 1
)

// main executes the claw-git command-line application.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	var reportedError shared.ReportedError
	if !errors.As(executionError, &reportedError) {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	}
	os.Exit(exitFailureCodeConstant)
}

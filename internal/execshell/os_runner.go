package execshell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"sort"
	"strings"
)

const (
	environmentAssignmentSeparatorConstant = "="
)

// OSCommandRunner starts git as a child process.
type OSCommandRunner struct {
	baseEnvironment func() []string
}

// NewOSCommandRunner constructs a runner that inherits the process environment.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{baseEnvironment: os.Environ}
}

// Run executes the command and captures both output streams.
// A non-zero exit status is reported through ExecutionResult rather than an error.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	executable.Dir = command.Details.WorkingDirectory
	if len(command.Details.EnvironmentVariables) > 0 {
		executable.Env = MergeEnvironment(runner.inheritedEnvironment(), command.Details.EnvironmentVariables)
	}
	if len(command.Details.StandardInput) > 0 {
		executable.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	var standardOutput bytes.Buffer
	var standardError bytes.Buffer
	executable.Stdout = &standardOutput
	executable.Stderr = &standardError

	result := ExecutionResult{}
	if runError := executable.Run(); runError != nil {
		var exitError *exec.ExitError
		if !errors.As(runError, &exitError) {
			return ExecutionResult{}, runError
		}
		result.ExitCode = exitError.ExitCode()
	}
	result.StandardOutput = standardOutput.String()
	result.StandardError = standardError.String()
	return result, nil
}

func (runner *OSCommandRunner) inheritedEnvironment() []string {
	if runner == nil || runner.baseEnvironment == nil {
		return os.Environ()
	}
	return runner.baseEnvironment()
}

// MergeEnvironment returns base with overrides applied. An override replaces every
// inherited assignment of the same key and overrides are appended in key order.
func MergeEnvironment(base []string, overrides map[string]string) []string {
	merged := make([]string, 0, len(base)+len(overrides))
	for _, assignment := range base {
		key, _, _ := strings.Cut(assignment, environmentAssignmentSeparatorConstant)
		if _, overridden := overrides[key]; overridden {
			continue
		}
		merged = append(merged, assignment)
	}

	overrideKeys := make([]string, 0, len(overrides))
	for key := range overrides {
		overrideKeys = append(overrideKeys, key)
	}
	sort.Strings(overrideKeys)
	for _, key := range overrideKeys {
		merged = append(merged, key+environmentAssignmentSeparatorConstant+overrides[key])
	}
	return merged
}

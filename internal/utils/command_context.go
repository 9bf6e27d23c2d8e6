package utils

import (
	"context"
	"strings"
)

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
	workingDirectoryContextKeyConstant      = commandContextKey("workingDirectory")
)

type commandContextKey string

// CommandContextAccessor stores and retrieves invocation values carried by Cobra command contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath attaches the resolved configuration file path.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	return context.WithValue(ensureContext(parentContext), configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath extracts the configuration file path.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	return accessor.lookupString(executionContext, configurationFilePathContextKeyConstant)
}

// WithWorkingDirectory attaches the directory git commands run in.
func (accessor CommandContextAccessor) WithWorkingDirectory(parentContext context.Context, workingDirectory string) context.Context {
	return context.WithValue(ensureContext(parentContext), workingDirectoryContextKeyConstant, strings.TrimSpace(workingDirectory))
}

// WorkingDirectory extracts the git working directory. An empty value means the process working directory.
func (accessor CommandContextAccessor) WorkingDirectory(executionContext context.Context) string {
	workingDirectory, _ := accessor.lookupString(executionContext, workingDirectoryContextKeyConstant)
	return workingDirectory
}

func (accessor CommandContextAccessor) lookupString(executionContext context.Context, key commandContextKey) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	value, available := executionContext.Value(key).(string)
	return value, available
}

func ensureContext(parentContext context.Context) context.Context {
	if parentContext == nil {
		return context.Background()
	}
	return parentContext
}

package cli

import (
	"errors"
	"fmt"

	mtgErrors "demystify-mtg/demystify/pkg/mtg/errors"
)

// Exit codes returned by the demystify command.
const (
	ExitOK         = 0
	ExitError      = 1 // Usage, configuration, I/O and storage errors
	ExitParseError = 2 // A clause failed to lex or parse
)

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ParseFailure reports that a batch run finished with clauses that did
// not parse.
type ParseFailure struct {
	Failed int
	Total  int
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("%d of %d clauses failed to parse", e.Failed, e.Total)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var pf *ParseFailure
	if errors.As(err, &pf) {
		return ExitParseError
	}
	if mtgErrors.HasType(err, mtgErrors.ErrorTypeSyntax) ||
		mtgErrors.HasType(err, mtgErrors.ErrorTypeLexical) ||
		mtgErrors.HasType(err, mtgErrors.ErrorTypeLimit) {
		return ExitParseError
	}
	return ExitError
}

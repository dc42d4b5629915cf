package errorhandler

import (
	"bytes"
	"errors"
	"strings"

	"github.com/local-api-gateway/infra/pkg/apis/stack/v1alpha1"
	"github.com/local-api-gateway/infra/pkg/svc/buildcontext"
	"github.com/local-api-gateway/infra/pkg/svc/stackmanager"
	"github.com/spf13/cobra"
)

// Hint names the next step for failures matching Target (compared with errors.Is).
type Hint struct {
	Target error
	Text   string
}

// DefaultHints covers the failures a user can fix without reading engine logs.
func DefaultHints() []Hint {
	return []Hint{
		{Target: v1alpha1.ErrStackNameEmpty, Text: "select a stack with --stack or GATEWAYINFRA_STACK"},
		{
			Target: v1alpha1.ErrStackNameInvalid,
			Text:   "stack names use lowercase letters and digits separated by single '.', '_' or '-'",
		},
		{
			Target: stackmanager.ErrConcurrentUpdate,
			Text:   "wait for the running update to finish, or clear a stale lock with 'pulumi cancel'",
		},
		{Target: stackmanager.ErrStackNotFound, Text: "run 'gatewayinfra up' to create the stack first"},
		{
			Target: stackmanager.ErrProjectNotFound,
			Text:   "point --workdir at the program directory inside the project that holds Pulumi.yaml",
		},
		{
			Target: buildcontext.ErrContextNotDirectory,
			Text:   "relative build paths resolve against --workdir; check --workdir and --context",
		},
		{
			Target: buildcontext.ErrDockerfileNotFound,
			Text:   "relative build paths resolve against --workdir; check --workdir and --dockerfile",
		},
	}
}

// Executor runs a command tree with its error stream captured, so main reports a failure
// once, normalized and with a hint where one applies.
type Executor struct {
	normalizer Normalizer
	hints      []Hint
}

// NewExecutor returns an Executor using DefaultNormalizer and DefaultHints.
func NewExecutor() *Executor {
	return &Executor{normalizer: DefaultNormalizer{}, hints: DefaultHints()}
}

// Execute runs cmd and returns nil or a *CommandError wrapping the command's error.
func (e *Executor) Execute(cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var captured bytes.Buffer

	previous := cmd.ErrOrStderr()
	cmd.SetErr(&captured)

	err := cmd.Execute()

	cmd.SetErr(previous)

	if err == nil {
		return nil
	}

	return &CommandError{
		message: e.normalizer.Normalize(captured.String()),
		hint:    e.hintFor(err),
		cause:   err,
	}
}

func (e *Executor) hintFor(err error) string {
	for _, hint := range e.hints {
		if errors.Is(err, hint.Target) {
			return hint.Text
		}
	}

	return ""
}

// CommandError is a failed command with its normalized error output.
type CommandError struct {
	message string
	hint    string
	cause   error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e == nil {
		return ""
	}

	if e.cause == nil {
		return e.message
	}

	cause := e.cause.Error()

	switch {
	case e.message == "":
		return cause
	case strings.Contains(e.message, cause):
		return e.message
	default:
		return e.message + ": " + cause
	}
}

// Hint returns the suggested next step, or an empty string.
func (e *CommandError) Hint() string {
	if e == nil {
		return ""
	}

	return e.hint
}

// Unwrap returns the command's error.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

package stackmanager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/local-api-gateway/infra/pkg/apis/stack/v1alpha1"
	pulumiprovisioner "github.com/local-api-gateway/infra/pkg/svc/provisioner/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/auto"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/events"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/optdestroy"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/optpreview"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/optup"
	"github.com/pulumi/pulumi/sdk/v3/go/common/apitype"
	"github.com/sirupsen/logrus"
)

const (
	// ProjectName is the Pulumi project every stack belongs to.
	ProjectName = "local-api-gateway"
	// regionConfigKey is the provider configuration key for the AWS region.
	regionConfigKey = "aws:region"
	// secretPlaceholder replaces secret output values.
	secretPlaceholder = "[secret]"
)

var projectFileNames = []string{"Pulumi.yaml", "Pulumi.yml"}

// Result summarizes one engine operation.
type Result struct {
	// Changes counts resource operations by kind (create, update, delete, same, ...).
	Changes map[string]int
	// Outputs holds stack outputs after the operation. Empty for previews.
	Outputs map[string]string
}

// Manager runs engine operations against a stack.
type Manager interface {
	Preview(ctx context.Context, cfg v1alpha1.StackConfig) (Result, error)
	Up(ctx context.Context, cfg v1alpha1.StackConfig) (Result, error)
	Destroy(ctx context.Context, cfg v1alpha1.StackConfig) (Result, error)
	Outputs(ctx context.Context, cfg v1alpha1.StackConfig) (map[string]string, error)
}

// Factory creates a Manager writing engine progress to writer. workDir is the program
// directory; the engine runs from the Pulumi project that contains it.
type Factory func(writer io.Writer, logger logrus.FieldLogger, workDir string) Manager

// DefaultFactory creates AutomationManagers.
//
//nolint:ireturn // Factory signature returns the Manager abstraction
func DefaultFactory(writer io.Writer, logger logrus.FieldLogger, workDir string) Manager {
	return NewAutomationManager(writer, logger, workDir)
}

// AutomationManager implements Manager with the Pulumi Automation API.
type AutomationManager struct {
	writer  io.Writer
	logger  logrus.FieldLogger
	workDir string
}

// Compile-time interface compliance verification.
var _ Manager = (*AutomationManager)(nil)

// NewAutomationManager creates a manager streaming engine progress to writer.
// A nil logger discards engine events. With an empty workDir the engine runs from a
// temporary workspace, where relative build paths cannot be resolved.
func NewAutomationManager(writer io.Writer, logger logrus.FieldLogger, workDir string) *AutomationManager {
	if writer == nil {
		writer = io.Discard
	}

	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	return &AutomationManager{writer: writer, logger: logger, workDir: workDir}
}

// Preview computes the changes an update would make.
func (m *AutomationManager) Preview(ctx context.Context, cfg v1alpha1.StackConfig) (Result, error) {
	stack, err := m.selectStack(ctx, cfg)
	if err != nil {
		return Result{}, err
	}

	sink := m.newEventSink(cfg.Name, "preview")
	defer sink.Close()

	preview, err := stack.Preview(
		ctx,
		optpreview.ProgressStreams(m.writer),
		optpreview.EventStreams(sink.events),
	)
	if err != nil {
		return Result{}, wrapEngineError("preview", cfg.Name, err)
	}

	return Result{Changes: ChangeCounts(preview.ChangeSummary), Outputs: map[string]string{}}, nil
}

// Up applies the declaration and returns the resulting outputs.
func (m *AutomationManager) Up(ctx context.Context, cfg v1alpha1.StackConfig) (Result, error) {
	stack, err := m.selectStack(ctx, cfg)
	if err != nil {
		return Result{}, err
	}

	sink := m.newEventSink(cfg.Name, "up")
	defer sink.Close()

	up, err := stack.Up(
		ctx,
		optup.ProgressStreams(m.writer),
		optup.EventStreams(sink.events),
	)
	if err != nil {
		return Result{}, wrapEngineError("update", cfg.Name, err)
	}

	return Result{
		Changes: resourceChanges(up.Summary.ResourceChanges),
		Outputs: StringOutputs(up.Outputs),
	}, nil
}

// Destroy removes the stack's resources. The protected registry makes the engine fail
// the destroy until its protection is lifted outside this tool.
func (m *AutomationManager) Destroy(ctx context.Context, cfg v1alpha1.StackConfig) (Result, error) {
	stack, err := m.selectStack(ctx, cfg)
	if err != nil {
		return Result{}, err
	}

	sink := m.newEventSink(cfg.Name, "destroy")
	defer sink.Close()

	destroy, err := stack.Destroy(
		ctx,
		optdestroy.ProgressStreams(m.writer),
		optdestroy.EventStreams(sink.events),
	)
	if err != nil {
		return Result{}, wrapEngineError("destroy", cfg.Name, err)
	}

	return Result{
		Changes: resourceChanges(destroy.Summary.ResourceChanges),
		Outputs: map[string]string{},
	}, nil
}

// Outputs returns the current outputs of an existing stack.
func (m *AutomationManager) Outputs(ctx context.Context, cfg v1alpha1.StackConfig) (map[string]string, error) {
	opts, err := m.workspaceOptions()
	if err != nil {
		return nil, err
	}

	stack, err := auto.SelectStackInlineSource(ctx, cfg.Name, ProjectName, pulumiprovisioner.Program(cfg), opts...)
	if err != nil {
		if auto.IsSelectStack404Error(err) {
			return nil, fmt.Errorf("%w: %s", ErrStackNotFound, cfg.Name)
		}

		return nil, fmt.Errorf("failed to select stack %s: %w", cfg.Name, err)
	}

	outputs, err := stack.Outputs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read outputs of stack %s: %w", cfg.Name, err)
	}

	return StringOutputs(outputs), nil
}

func (m *AutomationManager) selectStack(ctx context.Context, cfg v1alpha1.StackConfig) (auto.Stack, error) {
	opts, err := m.workspaceOptions()
	if err != nil {
		return auto.Stack{}, err
	}

	stack, err := auto.UpsertStackInlineSource(ctx, cfg.Name, ProjectName, pulumiprovisioner.Program(cfg), opts...)
	if err != nil {
		return auto.Stack{}, fmt.Errorf("failed to select stack %s: %w", cfg.Name, err)
	}

	if cfg.Region != "" {
		err = stack.SetConfig(ctx, regionConfigKey, auto.ConfigValue{Value: cfg.Region})
		if err != nil {
			return auto.Stack{}, fmt.Errorf("failed to set %s on stack %s: %w", regionConfigKey, cfg.Name, err)
		}
	}

	m.logger.WithFields(logrus.Fields{
		"stack":   cfg.Name,
		"project": ProjectName,
		"region":  cfg.Region,
		"workDir": stack.Workspace().WorkDir(),
	}).Debug("stack selected")

	return stack, nil
}

// workspaceOptions runs the inline program from the project directory holding the
// program directory, as the Pulumi CLI does, so build paths resolve identically and the
// project's stack settings files are shared.
func (m *AutomationManager) workspaceOptions() ([]auto.LocalWorkspaceOption, error) {
	if m.workDir == "" {
		return nil, nil
	}

	projectDir, err := FindProjectDir(m.workDir)
	if err != nil {
		return nil, err
	}

	return []auto.LocalWorkspaceOption{auto.WorkDir(projectDir)}, nil
}

// FindProjectDir returns the closest directory at or above dir that holds a Pulumi
// project file.
func FindProjectDir(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	for {
		for _, name := range projectFileNames {
			info, statErr := os.Stat(filepath.Join(current, name))
			if statErr == nil && info.Mode().IsRegular() {
				return current, nil
			}

			if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
				return "", fmt.Errorf("failed to check %s: %w", filepath.Join(current, name), statErr)
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("%w: no %s at or above %s", ErrProjectNotFound, projectFileNames[0], dir)
		}

		current = parent
	}
}

// eventSink logs engine events until the engine closes the channel or Close is called.
// The engine closes the channel only when it started streaming, so an operation failing
// earlier leaves it open.
type eventSink struct {
	events chan events.EngineEvent
	stop   chan struct{}
	done   chan struct{}
}

func (m *AutomationManager) newEventSink(stackName, operation string) *eventSink {
	sink := &eventSink{
		events: make(chan events.EngineEvent),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	logger := m.logger.WithFields(logrus.Fields{"stack": stackName, "operation": operation})

	go func() {
		defer close(sink.done)

		for {
			select {
			case event, ok := <-sink.events:
				if !ok {
					return
				}

				logEngineEvent(logger, event)
			case <-sink.stop:
				return
			}
		}
	}()

	return sink
}

// Close stops the consumer. Every event has been delivered once the operation returned.
func (s *eventSink) Close() {
	close(s.stop)
	<-s.done
}

func logEngineEvent(logger logrus.FieldLogger, event events.EngineEvent) {
	switch {
	case event.Error != nil:
		logger.WithError(event.Error).Debug("engine event unreadable")
	case event.ResourcePreEvent != nil:
		logger.WithFields(logrus.Fields{
			"urn": event.ResourcePreEvent.Metadata.URN,
			"op":  event.ResourcePreEvent.Metadata.Op,
		}).Debug("resource step started")
	case event.ResOutputsEvent != nil:
		logger.WithFields(logrus.Fields{
			"urn": event.ResOutputsEvent.Metadata.URN,
			"op":  event.ResOutputsEvent.Metadata.Op,
		}).Debug("resource step finished")
	case event.ResOpFailedEvent != nil:
		logger.WithField("urn", event.ResOpFailedEvent.Metadata.URN).Debug("resource step failed")
	case event.DiagnosticEvent != nil:
		logger.WithField("severity", event.DiagnosticEvent.Severity).Debug(event.DiagnosticEvent.Message)
	case event.SummaryEvent != nil:
		logger.WithField("changes", event.SummaryEvent.ResourceChanges).Debug("operation summary")
	}
}

func wrapEngineError(operation, stackName string, err error) error {
	return mapEngineError(operation, stackName, err, auto.IsConcurrentUpdateError(err))
}

func mapEngineError(operation, stackName string, err error, concurrentUpdate bool) error {
	if concurrentUpdate {
		return fmt.Errorf("%w: %s: %w", ErrConcurrentUpdate, stackName, err)
	}

	return fmt.Errorf("%s of stack %s failed: %w", operation, stackName, err)
}

// ChangeCounts converts an engine change summary into counts keyed by operation name.
func ChangeCounts(summary map[apitype.OpType]int) map[string]int {
	counts := make(map[string]int, len(summary))

	for op, count := range summary {
		counts[string(op)] = count
	}

	return counts
}

func resourceChanges(changes *map[string]int) map[string]int {
	if changes == nil {
		return map[string]int{}
	}

	counts := make(map[string]int, len(*changes))
	for op, count := range *changes {
		counts[op] = count
	}

	return counts
}

// StringOutputs renders stack outputs as strings, masking secrets.
func StringOutputs(outputs auto.OutputMap) map[string]string {
	rendered := make(map[string]string, len(outputs))

	for key, output := range outputs {
		if output.Secret {
			rendered[key] = secretPlaceholder

			continue
		}

		rendered[key] = fmt.Sprint(output.Value)
	}

	return rendered
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

//nolint:gochecknoglobals // export_test.go pattern requires global variables to expose internal functions
package stackmanager

import "github.com/pulumi/pulumi/sdk/v3/go/auto/events"

// WrapEngineErrorForTest exposes wrapEngineError for unit testing.
var WrapEngineErrorForTest = wrapEngineError

// MapEngineErrorForTest exposes mapEngineError for unit testing.
var MapEngineErrorForTest = mapEngineError

// ResourceChangesForTest exposes resourceChanges for unit testing.
var ResourceChangesForTest = resourceChanges

// LogEngineEventForTest exposes logEngineEvent for unit testing.
var LogEngineEventForTest = logEngineEvent

// ExportWorkDir exposes the manager's program directory.
func (m *AutomationManager) ExportWorkDir() string {
	return m.workDir
}

// NewEventSinkForTest exposes the manager's event sink as its channel and Close function.
func (m *AutomationManager) NewEventSinkForTest(stackName, operation string) (chan<- events.EngineEvent, func()) {
	sink := m.newEventSink(stackName, operation)

	return sink.events, sink.Close
}

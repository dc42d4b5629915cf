// Package cli provides reusable helpers for command wiring and execution.
//
// This package is organized into subpackages for different functionality:
//
//   - cli/cmd: Root command and stack commands
//   - cli/helpers: Global flag lookups and build path resolution
//   - cli/lifecycle: Engine command helpers (preview, up, destroy)
//   - cli/ui/errorhandler: Command execution with normalized error output
//
// Commands resolve their dependencies from the di runtime so tests can swap the engine.
package cli

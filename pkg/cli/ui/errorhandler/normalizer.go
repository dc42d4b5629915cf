package errorhandler

import "strings"

// engineStderrMarker precedes the engine's own error output in Automation API errors.
const engineStderrMarker = "\nstderr: "

// Normalizer turns captured stderr output into a user-facing message.
type Normalizer interface {
	Normalize(raw string) string
}

// DefaultNormalizer trims cobra's "Error: " prefix and reduces engine failures, which
// embed the full engine stdout and stderr, to the engine's error lines.
type DefaultNormalizer struct{}

// Normalize implements Normalizer.
func (DefaultNormalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if _, stderr, found := strings.Cut(trimmed, engineStderrMarker); found {
		if engineErrors := errorLines(stderr); engineErrors != "" {
			return engineErrors
		}
	}

	lines := strings.Split(trimmed, "\n")
	lines[0] = strings.TrimPrefix(strings.TrimSpace(lines[0]), "Error: ")

	return strings.Join(lines, "\n")
}

// errorLines keeps the lines of engine stderr output that report errors.
func errorLines(stderr string) string {
	var kept []string

	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "error: ") {
			kept = append(kept, strings.TrimPrefix(line, "error: "))
		}
	}

	return strings.Join(kept, "\n")
}

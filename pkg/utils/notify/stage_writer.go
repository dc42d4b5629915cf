package notify

import (
	"fmt"
	"io"
	"sync"
	"unicode"
	"unicode/utf8"
)

// StageSeparatingWriter keeps the stages of a command apart: every title written after
// earlier output (a preflight report, engine output, a change summary) is preceded by a
// blank line.
//
//	out := notify.NewStageSeparatingWriter(os.Stdout)
//	notify.Titlef(out, "🚀", "Update stack %s...", name)
type StageSeparatingWriter struct {
	mu      sync.Mutex
	out     io.Writer
	started bool
}

// NewStageSeparatingWriter wraps out.
func NewStageSeparatingWriter(out io.Writer) *StageSeparatingWriter {
	return &StageSeparatingWriter{out: out}
}

// Write implements io.Writer.
func (w *StageSeparatingWriter) Write(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started && isTitle(data) {
		_, err := io.WriteString(w.out, "\n")
		if err != nil {
			return 0, fmt.Errorf("failed to write stage separator: %w", err)
		}
	}

	written, err := w.out.Write(data)
	w.started = w.started || written > 0

	if err != nil {
		return written, fmt.Errorf("failed to write stage output: %w", err)
	}

	return written, nil
}

// isTitle reports whether data starts with a symbol rune that no other message type uses.
func isTitle(data []byte) bool {
	first, _ := utf8.DecodeRune(data)
	if first == utf8.RuneError || !unicode.Is(unicode.So, first) {
		return false
	}

	return !messageSymbols[first]
}

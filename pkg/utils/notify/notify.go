package notify

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	fcolor "github.com/fatih/color"
)

// MessageType selects the symbol and color a message is printed with.
type MessageType int

const (
	// ErrorType is printed red with ✗.
	ErrorType MessageType = iota
	// WarningType is printed yellow with ⚠.
	WarningType
	// ActivityType is printed in the terminal color with ►.
	ActivityType
	// SuccessType is printed green with ✔.
	SuccessType
	// InfoType is printed blue with ℹ.
	InfoType
	// TitleType is printed bold behind the message emoji.
	TitleType
)

const (
	defaultTitleEmoji = "ℹ️"
	elapsedSymbol     = "⏲"
)

type style struct {
	symbol string
	attrs  []fcolor.Attribute
}

var styles = map[MessageType]style{
	ErrorType:    {symbol: "✗", attrs: []fcolor.Attribute{fcolor.FgRed}},
	WarningType:  {symbol: "⚠", attrs: []fcolor.Attribute{fcolor.FgYellow}},
	ActivityType: {symbol: "►", attrs: []fcolor.Attribute{fcolor.Reset}},
	SuccessType:  {symbol: "✔", attrs: []fcolor.Attribute{fcolor.FgGreen}},
	InfoType:     {symbol: "ℹ", attrs: []fcolor.Attribute{fcolor.FgBlue}},
	TitleType:    {attrs: []fcolor.Attribute{fcolor.Reset, fcolor.Bold}},
}

// messageSymbols holds the leading runes of every non-title line WriteMessage produces.
var messageSymbols = func() map[rune]bool {
	symbols := map[rune]bool{}

	for _, s := range styles {
		if s.symbol != "" {
			r, _ := utf8.DecodeRuneInString(s.symbol)
			symbols[r] = true
		}
	}

	r, _ := utf8.DecodeRuneInString(elapsedSymbol)
	symbols[r] = true

	return symbols
}()

// Message is a single notification.
type Message struct {
	Type MessageType
	// Content is printed as is, or used as a format string when Args is non-empty.
	Content string
	Args    []any
	// Emoji prefixes TitleType messages.
	Emoji string
	// Elapsed is printed on its own line below a SuccessType message when non-zero.
	Elapsed time.Duration
	// Writer defaults to os.Stdout.
	Writer io.Writer
}

// Errorf writes an error message to writer.
func Errorf(writer io.Writer, format string, args ...any) {
	write(writer, ErrorType, format, args)
}

// Warningf writes a warning message to writer.
func Warningf(writer io.Writer, format string, args ...any) {
	write(writer, WarningType, format, args)
}

// Activityf writes a progress message to writer.
func Activityf(writer io.Writer, format string, args ...any) {
	write(writer, ActivityType, format, args)
}

// Successf writes a success message to writer.
func Successf(writer io.Writer, format string, args ...any) {
	write(writer, SuccessType, format, args)
}

// SuccessWithElapsedf writes a success message followed by how long the stage took.
func SuccessWithElapsedf(writer io.Writer, elapsed time.Duration, format string, args ...any) {
	WriteMessage(Message{Type: SuccessType, Content: format, Args: args, Elapsed: elapsed, Writer: writer})
}

// Infof writes an informational message to writer.
func Infof(writer io.Writer, format string, args ...any) {
	write(writer, InfoType, format, args)
}

// Titlef writes the heading of a command stage.
func Titlef(writer io.Writer, emoji, format string, args ...any) {
	WriteMessage(Message{Type: TitleType, Content: format, Args: args, Emoji: emoji, Writer: writer})
}

func write(writer io.Writer, msgType MessageType, format string, args []any) {
	WriteMessage(Message{Type: msgType, Content: format, Args: args, Writer: writer})
}

// WriteMessage prints msg. Print failures are reported on stderr and otherwise ignored,
// a notification never fails the command that emits it.
func WriteMessage(msg Message) {
	writer := msg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	text := msg.Content
	if len(msg.Args) > 0 {
		text = fmt.Sprintf(text, msg.Args...)
	}

	msgStyle, ok := styles[msg.Type]
	if !ok {
		msgStyle = style{attrs: []fcolor.Attribute{fcolor.Reset}}
	}

	lines := []string{render(msg, msgStyle, text)}
	if msg.Type == SuccessType && msg.Elapsed > 0 {
		lines = append(lines, elapsedSymbol+" "+msg.Elapsed.Round(time.Millisecond).String())
	}

	painter := fcolor.New(msgStyle.attrs...)

	for _, line := range lines {
		_, err := painter.Fprintln(writer, line)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "notify: failed to print message: %v\n", err)

			return
		}
	}
}

func render(msg Message, msgStyle style, text string) string {
	if msg.Type == TitleType {
		emoji := msg.Emoji
		if emoji == "" {
			emoji = defaultTitleEmoji
		}

		return emoji + " " + text
	}

	if msgStyle.symbol == "" {
		return text
	}

	prefix := msgStyle.symbol + " "

	return prefix + indentContinuation(text, utf8.RuneCountInString(prefix))
}

// indentContinuation aligns every non-empty line after the first with the first line's text.
func indentContinuation(text string, width int) string {
	if !strings.Contains(text, "\n") {
		return text
	}

	indent := strings.Repeat(" ", width)
	lines := strings.Split(text, "\n")

	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}

	return strings.Join(lines, "\n")
}

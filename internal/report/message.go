// Package report writes the human-readable monitoring stream.
//
// A Message is an ordered group of lines that a Sink writes contiguously, so
// lines from concurrent producers never interleave.
package report

// Kind classifies a report line and selects its symbol and color.
type Kind int

const (
	// KindLog is a plain, usually indented, detail line.
	KindLog Kind = iota
	// KindWaiting announces that the monitor is waiting for input.
	KindWaiting
	// KindDone announces a completed step, such as a received block.
	KindDone
	// KindInfo carries a neutral notice.
	KindInfo
)

// Line is one line of a report message.
type Line struct {
	Kind   Kind   // Symbol and color of the line
	Indent int    // Nesting level, rendered as two spaces per level
	Text   string // Line content without trailing newline
}

// Message is a group of lines written as a unit.
type Message struct {
	Lines []Line
}

// NewMessage returns a Message holding lines in order.
func NewMessage(lines ...Line) Message {
	return Message{Lines: lines}
}

// Append adds lines to the end of m.
func (m *Message) Append(lines ...Line) {
	m.Lines = append(m.Lines, lines...)
}

// Waiting returns a KindWaiting line.
func Waiting(text string) Line {
	return Line{Kind: KindWaiting, Text: text}
}

// Done returns a KindDone line.
func Done(text string) Line {
	return Line{Kind: KindDone, Text: text}
}

// Info returns a KindInfo line.
func Info(text string) Line {
	return Line{Kind: KindInfo, Text: text}
}

// Log returns a KindLog line at the given indent level.
func Log(indent int, text string) Line {
	return Line{Kind: KindLog, Indent: indent, Text: text}
}

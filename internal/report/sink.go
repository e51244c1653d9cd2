package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Reporter receives report messages.
type Reporter interface {
	// Emit writes msg as one contiguous unit. Concurrent calls never interleave
	// their lines; the order between concurrent calls is unspecified.
	Emit(ctx context.Context, msg Message) error
}

// style is the rendering of one Kind.
type style struct {
	symbol string
	color  *color.Color
}

// config holds Sink settings.
type config struct {
	colorEnabled *bool
}

// Option configures a Sink.
type Option func(*config)

// WithColor forces colored output on or off. Without it, color is enabled
// only when writing to stdout on a terminal and NO_COLOR is unset.
func WithColor(enabled bool) Option {
	return func(c *config) {
		c.colorEnabled = &enabled
	}
}

// Sink is a Reporter writing to an io.Writer under a mutex.
type Sink struct {
	mu     sync.Mutex
	w      io.Writer
	styles map[Kind]style
}

var _ Reporter = (*Sink)(nil)

// NewSink returns a Sink writing to w.
func NewSink(w io.Writer, opts ...Option) *Sink {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	colorEnabled := w == io.Writer(os.Stdout) && !color.NoColor
	if cfg.colorEnabled != nil {
		colorEnabled = *cfg.colorEnabled
	}

	styles := map[Kind]style{
		KindLog:     {color: color.New(color.Reset)},
		KindWaiting: {symbol: "⠿", color: color.New(color.FgCyan)},
		KindDone:    {symbol: "✔", color: color.New(color.FgGreen, color.Bold)},
		KindInfo:    {symbol: "ℹ", color: color.New(color.FgBlue)},
	}
	for _, s := range styles {
		if colorEnabled {
			s.color.EnableColor()
		} else {
			s.color.DisableColor()
		}
	}

	return &Sink{
		w:      w,
		styles: styles,
	}
}

// render formats a line without its trailing newline.
func (s *Sink) render(line Line) string {
	st, ok := s.styles[line.Kind]
	if !ok {
		st = s.styles[KindLog]
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("  ", max(line.Indent, 0)))
	if st.symbol != "" {
		b.WriteString(st.color.Sprint(st.symbol))
		b.WriteByte(' ')
		b.WriteString(st.color.Sprint(line.Text))
	} else {
		b.WriteString(line.Text)
	}

	return b.String()
}

// Emit implements Reporter. A canceled ctx drops the message.
func (s *Sink) Emit(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, line := range msg.Lines {
		buf.WriteString(s.render(line))
		buf.WriteByte('\n')
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

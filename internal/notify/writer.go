package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// WriterSink prints one line per notification, coloured when w is a terminal.
type WriterSink struct {
	mu      sync.Mutex
	w       io.Writer
	okTag   lipgloss.Style
	failTag lipgloss.Style
}

// NewWriterSink creates a WriterSink for w.
func NewWriterSink(w io.Writer) *WriterSink {
	r := lipgloss.NewRenderer(w)
	return &WriterSink{
		w:       w,
		okTag:   r.NewStyle().Foreground(lipgloss.Color("#66BB6A")).Bold(true),
		failTag: r.NewStyle().Foreground(lipgloss.Color("#EF5350")).Bold(true),
	}
}

// Notify implements Sink.
func (s *WriterSink) Notify(message string, severity Severity) {
	tag := s.okTag.Render("[ok]")
	if severity == Error {
		tag = s.failTag.Render("[error]")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "%s %s\n", tag, message)
}

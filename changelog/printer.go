package changelog

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/RavelOrg/ravel"
)

var (
	kindStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	storeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#bac2de"))
	branchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
)

// Printer writes one tree-formatted block per commit. Values render through
// ravel.DescribeValue, so what each block reveals is up to the types
// themselves rather than the printer.
type Printer struct {
	mu     sync.Mutex
	w      io.Writer
	styled bool
}

// NewPrinter creates a Printer with ANSI styling for terminals.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, styled: true}
}

// NewPlainPrinter creates a Printer without styling, for log files.
func NewPlainPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Record implements ravel.Recorder.
func (p *Printer) Record(e ravel.Entry) {
	block := p.Format(e)

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.w, block)
}

// Format renders one entry as a block:
//
//	[board #12] main.PriceTicked
//	├─ change: BTCUSDT -> 64210.50
//	├─ before: 3 quotes, connected
//	└─ after:  3 quotes, connected
func (p *Printer) Format(e ravel.Entry) string {
	kind := fmt.Sprintf("%T", e.Change)
	store := e.Store
	branch, last := "├─", "└─"

	if p.styled {
		kind = kindStyle.Render(kind)
		store = storeStyle.Render(store)
		branch = branchStyle.Render(branch)
		last = branchStyle.Render(last)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s #%d] %s\n", store, e.Seq, kind)
	fmt.Fprintf(&b, "%s change: %s\n", branch, ravel.DescribeValue(e.Change))
	fmt.Fprintf(&b, "%s before: %s\n", branch, ravel.DescribeValue(e.Before))
	fmt.Fprintf(&b, "%s after:  %s\n", last, ravel.DescribeValue(e.After))
	return b.String()
}

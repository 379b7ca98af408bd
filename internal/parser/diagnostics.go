package parser

import (
	"fmt"
	"strings"
)

// diagnostics accumulates every problem found while processing one table so the
// user sees a single message with a bulleted list, never one dialog per cell.
type diagnostics struct {
	problems []string
	fatal    bool
}

// addf records a soft problem.
func (d *diagnostics) addf(format string, args ...any) {
	d.problems = append(d.problems, fmt.Sprintf(format, args...))
}

// failf records a hard problem. Hard problems void the current table.
func (d *diagnostics) failf(format string, args ...any) {
	d.fatal = true
	d.problems = append(d.problems, fmt.Sprintf(format, args...))
}

// empty reports whether nothing was recorded.
func (d *diagnostics) empty() bool {
	return len(d.problems) == 0
}

// bulleted renders the problems as one list, one bullet per problem.
func (d *diagnostics) bulleted() string {
	var b strings.Builder
	for i, p := range d.problems {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(p)
	}
	return b.String()
}

// report delivers the batched problems in a single notification. No-op when
// nothing was recorded.
func (d *diagnostics) report(notify Notifier, title, intro string) {
	if d.empty() {
		return
	}
	message := intro
	if message != "" {
		message += "\n\n"
	}
	notify.ShowMessage(title, message+d.bulleted(), "OK")
}

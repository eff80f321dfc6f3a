package grep

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"

	"github.com/coregx/linegrep"
)

// ANSI escapes for match highlighting, same framing GNU grep uses by
// default for the matched span.
const (
	colorMatch = "\x1b[1;31m"
	colorReset = "\x1b[0m"
)

// Printer writes matched lines, with optional color, filename prefixes and
// line numbers.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter creates a printer for w. Mode is auto, always or never; auto
// enables color only when w is a terminal.
func NewPrinter(w io.Writer, mode string) *Printer {
	color := false
	switch mode {
	case "always":
		color = true
	case "never":
	default:
		if f, ok := w.(*os.File); ok {
			color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	return &Printer{w: w, color: color}
}

// Line prints one matched line. prefix is the filename ("" for none),
// lineNum is the 1-based line number (0 to omit), and m is the match span
// to highlight.
func (p *Printer) Line(prefix string, lineNum int, line []byte, m linegrep.Match) error {
	var err error
	if prefix != "" {
		_, err = io.WriteString(p.w, prefix+":")
		if err != nil {
			return err
		}
	}
	if lineNum > 0 {
		_, err = io.WriteString(p.w, strconv.Itoa(lineNum)+":")
		if err != nil {
			return err
		}
	}

	if !p.color || !m.Found || m.Start == m.End {
		_, err = fmt.Fprintf(p.w, "%s\n", line)
		return err
	}

	_, err = fmt.Fprintf(p.w, "%s%s%s%s%s\n",
		line[:m.Start], colorMatch, line[m.Start:m.End], colorReset, line[m.End:])
	return err
}

// Count prints a per-input match count, prefixed with the filename when
// prefix is non-empty.
func (p *Printer) Count(prefix string, n int) error {
	var err error
	if prefix != "" {
		_, err = fmt.Fprintf(p.w, "%s:%d\n", prefix, n)
	} else {
		_, err = fmt.Fprintf(p.w, "%d\n", n)
	}
	return err
}

package grep

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/coregx/linegrep"
	"github.com/coregx/linegrep/nfa"
)

// Runner executes one grep invocation: it owns the compiled pattern, the
// printer, and the optional profiling counters.
type Runner struct {
	cfg     *Config
	re      *linegrep.Regex
	printer *Printer
	log     zerolog.Logger
	stats   *nfa.Stats
}

// NewRunner compiles the pattern and prepares the run. out receives matched
// lines; diagnostics go to the logger.
func NewRunner(cfg *Config, out io.Writer, log zerolog.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	re, err := linegrep.Compile(cfg.Pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern: %w", err)
	}

	r := &Runner{
		cfg:     cfg,
		re:      re,
		printer: NewPrinter(out, cfg.Color),
		log:     log,
	}
	if cfg.Profile {
		r.stats = &nfa.Stats{}
		re.SetStats(r.stats)
	}

	log.Debug().
		Str("pattern", cfg.Pattern).
		Bool("anchored", re.AnchoredAtStart()).
		Int("captures", re.NumCaptures()).
		Msg("pattern compiled")

	return r, nil
}

// Run searches the configured inputs and reports whether any line matched.
// IO problems on individual files are logged and skipped; the returned error
// is reserved for failures that abort the whole run.
func (r *Runner) Run(stdin io.Reader) (bool, error) {
	targets := r.cfg.Paths
	if len(targets) == 0 {
		if !r.cfg.Recursive {
			return r.searchStream("", stdin)
		}
		// Recursive with no paths searches the working directory.
		targets = []string{"."}
	}

	files := CollectFiles(targets, r.cfg, r.log)
	r.log.Debug().Int("files", len(files)).Msg("inputs collected")

	withPrefix := len(files) > 1 || r.cfg.Recursive

	matchedAny := false
	for _, path := range files {
		matched, err := r.searchFile(path, withPrefix)
		if err != nil {
			r.log.Error().Str("path", path).Err(err).Msg("cannot search file")
			continue
		}
		matchedAny = matchedAny || matched
	}
	return matchedAny, nil
}

func (r *Runner) searchFile(path string, withPrefix bool) (bool, error) {
	prefix := ""
	if withPrefix {
		prefix = path
	}

	matched := false
	count := 0
	lineNum := 0
	err := ForEachFileLine(path, func(line []byte) error {
		lineNum++
		m := r.re.SearchLine(line)
		if !m.Found {
			return nil
		}
		matched = true
		count++
		if r.cfg.CountOnly {
			return nil
		}
		return r.emit(prefix, lineNum, line, m)
	})
	if err != nil {
		return matched, err
	}
	if r.cfg.CountOnly {
		return matched, r.printer.Count(prefix, count)
	}
	return matched, nil
}

// searchStream greps a non-seekable stream such as stdin.
func (r *Runner) searchStream(prefix string, in io.Reader) (bool, error) {
	matched := false
	count := 0
	lineNum := 0
	err := ForEachLine(bufio.NewReaderSize(in, 64<<10), func(line []byte) error {
		lineNum++
		m := r.re.SearchLine(line)
		if !m.Found {
			return nil
		}
		matched = true
		count++
		if r.cfg.CountOnly {
			return nil
		}
		return r.emit(prefix, lineNum, line, m)
	})
	if err != nil {
		return matched, err
	}
	if r.cfg.CountOnly {
		return matched, r.printer.Count(prefix, count)
	}
	return matched, nil
}

func (r *Runner) emit(prefix string, lineNum int, line []byte, m linegrep.Match) error {
	if !r.cfg.LineNumbers {
		lineNum = 0
	}
	return r.printer.Line(prefix, lineNum, line, m)
}

// WriteProfile prints the engine counter summary. It is a no-op unless the
// run was created with profiling enabled.
func (r *Runner) WriteProfile(w io.Writer) {
	if r.stats == nil {
		return
	}
	s := r.stats.Snapshot()
	fmt.Fprintf(w, "\n[engine profile]\n")
	fmt.Fprintf(w, "  lines processed       : %d\n", s.LinesProcessed)
	fmt.Fprintf(w, "  total simulation steps: %d\n", s.TotalSteps)
	fmt.Fprintf(w, "  total states visited  : %d\n", s.StatesVisited)
	fmt.Fprintf(w, "  max active states     : %d\n", s.MaxActive)
}

// Command linegrep searches input lines for an extended regular expression,
// in the manner of grep -E: lines from stdin, files, or recursive directory
// walks, with the matched span optionally colorized.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/coregx/linegrep/grep"
)

func main() {
	app := &cli.App{
		Name:      "linegrep",
		Usage:     "print lines matching an extended regular expression",
		UsageText: "linegrep -E pattern [options] [path ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "E",
				Usage: "the extended regular expression to search for",
			},
			&cli.BoolFlag{
				Name:  "r",
				Usage: "search directories recursively",
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "colorize the matched span: auto, always or never",
			},
			&cli.BoolFlag{
				Name:  "n",
				Usage: "prefix each matched line with its line number",
			},
			&cli.BoolFlag{
				Name:  "c",
				Usage: "print only a count of matching lines per input",
			},
			&cli.BoolFlag{
				Name:  "hidden",
				Usage: "include hidden files and directories when recursing",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "limit recursion depth (0 = unlimited)",
			},
			&cli.BoolFlag{
				Name:  "profile",
				Usage: "print engine counters to stderr after the run",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "diagnostic verbosity: trace, debug, info, warn, error",
			},
		},
		Action:          run,
		HideHelpCommand: true,
	}

	// cli.Exit errors carry their own status and are handled inside Run;
	// anything else is a setup failure.
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "linegrep: %v\n", err)
		os.Exit(2)
	}
}

func run(c *cli.Context) error {
	cfg, err := grep.LoadConfig()
	if err != nil {
		return cli.Exit(fmt.Sprintf("linegrep: %v", err), 2)
	}

	cfg.Pattern = c.String("E")
	cfg.Paths = c.Args().Slice()
	cfg.Recursive = c.Bool("r")
	cfg.CountOnly = c.Bool("c")
	cfg.Profile = c.Bool("profile")
	if c.IsSet("color") {
		cfg.Color = c.String("color")
	}
	if c.IsSet("n") {
		cfg.LineNumbers = c.Bool("n")
	}
	if c.IsSet("hidden") {
		cfg.Hidden = c.Bool("hidden")
	}
	if c.IsSet("max-depth") {
		cfg.MaxDepth = c.Int("max-depth")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	if cfg.Pattern == "" {
		return cli.Exit("linegrep: -E with a non-empty pattern is required", 2)
	}

	log := newLogger(cfg.LogLevel)

	runner, err := grep.NewRunner(cfg, os.Stdout, log)
	if err != nil {
		return cli.Exit(fmt.Sprintf("linegrep: %v", err), 2)
	}

	matched, err := runner.Run(os.Stdin)
	runner.WriteProfile(os.Stderr)
	if err != nil {
		return cli.Exit(fmt.Sprintf("linegrep: %v", err), 2)
	}
	if !matched {
		return cli.Exit("", 1)
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.ErrorLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}

// Command ls-sextant reduces sextant sights, prints almanac data and solves
// celestial fixes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/litescript/ls-sextant/internal/logging"
	"github.com/litescript/ls-sextant/internal/report"
)

// errUsage is returned after usage text has been printed.
var errUsage = errors.New("invalid usage")

// env carries what every subcommand needs.
type env struct {
	out    io.Writer
	errOut io.Writer
	log    *logging.Logger
	styled bool

	// logLevelSet is true when -log-level was given, so job files do not
	// override it.
	logLevelSet bool
}

func (e *env) report() *report.Writer {
	return report.New(e.out, e.styled)
}

type command struct {
	name  string
	about string
	run   func(e *env, args []string) error
}

var commands = []command{
	{"sun", "Sun sight: Ho, Hc, Zn and intercept", runSun},
	{"star", "Star sight by catalog name or GHA/Dec", runStar},
	{"moon", "Moon sight with horizontal parallax", runMoon},
	{"noon", "Noon sight latitude and longitude, or predict local apparent noon", runNoon},
	{"convert", "Convert between UTC and local mean time", runConvert},
	{"eot", "Equation of time for a day of the year", runEoT},
	{"almanac-sun", "Sun GHA/Dec at an instant or for a whole day", runAlmanacSun},
	{"almanac-aries", "Aries GHA at an instant or for a whole day", runAlmanacAries},
	{"almanac-moon", "Moon GHA/Dec, HP and SD at an instant", runAlmanacMoon},
	{"almanac-generate", "Write a year of hourly almanac records (JSON or msgpack)", runAlmanacGenerate},
	{"srt", "Sight reduction table across a range of hour angles", runSRT},
	{"fix", "Reduce a TOML job file and solve for position", runFix},
	{"stars", "Suggest stars to shoot from a DR position", runStars},
	{"interactive", "Interactive sight form", runInteractive},
	{"version", "Print the version", runVersion},
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("ls-sextant", flag.ContinueOnError)
	global.SetOutput(stderr)
	logLevel := global.String("log-level", "warn", "Log level (debug, info, warn, error)")
	color := global.String("color", "auto", "Styled output (auto, always, never)")
	global.Usage = func() { usage(stderr, global) }
	if err := global.Parse(args); err != nil {
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		usage(stderr, global)
		return errUsage
	}

	logger := logging.New(logging.ParseLevel(*logLevel))
	logger.SetOutput(stderr)
	defer func() { _ = logger.Sync() }()

	e := &env{
		out:         stdout,
		errOut:      stderr,
		log:         logger,
		styled:      styledOutput(*color, stdout),
		logLevelSet: isSet(global, "log-level"),
	}
	for _, c := range commands {
		if c.name == rest[0] {
			logger.Debug("running %s %s", c.name, strings.Join(rest[1:], " "))
			return c.run(e, rest[1:])
		}
	}
	fmt.Fprintf(stderr, "unknown command %q\n\n", rest[0])
	usage(stderr, global)
	return errUsage
}

func styledOutput(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func usage(w io.Writer, global *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: ls-sextant [global flags] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Angles are decimal degrees, latitude north positive, longitude east positive.")
	fmt.Fprintln(w, "Instants are UTC, YYYY-MM-DDTHH:MM[:SS][Z].")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-17s %s\n", c.name, c.about)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global flags:")
	global.PrintDefaults()
}

// newFlagSet creates a subcommand flag set that reports errors instead of
// exiting.
func newFlagSet(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	return fs
}

// isSet reports whether a flag was given on the command line.
func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// require fails unless every named flag was given.
func require(fs *flag.FlagSet, names ...string) error {
	var missing []string
	for _, n := range names {
		if !isSet(fs, n) {
			missing = append(missing, "-"+n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing required flag(s) %s", fs.Name(), strings.Join(missing, ", "))
	}
	return nil
}

// varspec - spec catalog CLI tool
//
// Usage:
//
//	varspec check [-v] FILE                          Load a catalog and list its specs
//	varspec compat [-v] FILE PROVIDED REQUIRED       Check spec compatibility
//	varspec parse [-v] [options] FILE NAME TEXT      Parse TEXT into a variable of spec NAME
//	varspec schema [-v] FILE [NAME]                  Print JSON Schema for a catalog or one spec
//	varspec version                                  Print version info
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/LennyHof/Epiphany-sub000/specconf"
	"github.com/LennyHof/Epiphany-sub000/specschema"
	"github.com/LennyHof/Epiphany-sub000/transient"
	"github.com/LennyHof/Epiphany-sub000/variant"
)

const version = "0.1.0"

// errIncompatible makes compat exit non-zero without printing twice.
var errIncompatible = errors.New("incompatible")

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	var err error
	switch cmd {
	case "check":
		err = cmdCheck(args)
	case "compat":
		err = cmdCompat(args)
	case "parse":
		err = cmdParse(args)
	case "schema":
		err = cmdSchema(args)
	case "version", "--version":
		fmt.Printf("varspec %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(2)
	}
	if errors.Is(err, errIncompatible) {
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "varspec %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `varspec - spec catalog CLI tool

Usage:
  varspec check [-v] FILE                        Load a catalog and list its specs
  varspec compat [-v] FILE PROVIDED REQUIRED     Check that PROVIDED may stand in for REQUIRED
  varspec parse [-v] [options] FILE NAME TEXT    Parse TEXT into a variable of spec NAME
  varspec schema [-v] FILE [NAME]                Print JSON Schema for a catalog or one spec
  varspec version                                Print version info

Parse options:
  -time-storage=MODE   auto, ticks, nanos or components (default auto)
  -date-storage=MODE   days or components (default days)
  -metrics             Print provider counters to stderr

Examples:
  varspec check specs.yaml
  varspec compat specs.yaml amount any_number
  varspec parse specs.yaml stamp 2024-06-15T12:30:00.250+02:00
  varspec schema specs.yaml lookup
`)
}

// command bundles the flag set and logger shared by every subcommand.
type command struct {
	fs      *flag.FlagSet
	verbose *bool
	logger  *slog.Logger
}

func newCommand(name string) *command {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = printUsage
	return &command{fs: fs, verbose: fs.Bool("v", false, "debug logging")}
}

func (c *command) parse(args []string, minArgs, maxArgs int) ([]string, error) {
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	ll := &slog.LevelVar{}
	ll.Set(slog.LevelInfo)
	if *c.verbose {
		ll.Set(slog.LevelDebug)
	}
	c.logger = slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	rest := c.fs.Args()
	if len(rest) < minArgs || len(rest) > maxArgs {
		return nil, fmt.Errorf("want %d to %d arguments, got %d", minArgs, maxArgs, len(rest))
	}
	return rest, nil
}

func (c *command) load(path string) (*specconf.Catalog, error) {
	return specconf.LoadFile(path,
		specconf.WithLogger(c.logger),
		specconf.WithInterner(variant.NewInterner(0)))
}

func cmdCheck(args []string) error {
	c := newCommand("check")
	rest, err := c.parse(args, 1, 1)
	if err != nil {
		return err
	}
	cat, err := c.load(rest[0])
	if err != nil {
		return err
	}
	for name, spec := range cat.All() {
		fmt.Printf("%-20s %-8s %s\n", name, spec.Level(), spec)
	}
	c.logger.Info("catalog ok", "file", rest[0], "specs", cat.Len())
	return nil
}

func cmdCompat(args []string) error {
	c := newCommand("compat")
	rest, err := c.parse(args, 3, 3)
	if err != nil {
		return err
	}
	cat, err := c.load(rest[0])
	if err != nil {
		return err
	}
	provided, err := cat.Get(rest[1])
	if err != nil {
		return err
	}
	required, err := cat.Get(rest[2])
	if err != nil {
		return err
	}
	if err := provided.CheckCompatibleWith(required); err != nil {
		fmt.Printf("incompatible: %v\n", err)
		return errIncompatible
	}
	fmt.Println("compatible")
	return nil
}

func cmdParse(args []string) error {
	c := newCommand("parse")
	timeStorage := c.fs.String("time-storage", "auto", "time storage: auto, ticks, nanos or components")
	dateStorage := c.fs.String("date-storage", "days", "date storage: days or components")
	showMetrics := c.fs.Bool("metrics", false, "print provider counters to stderr")
	rest, err := c.parse(args, 3, 3)
	if err != nil {
		return err
	}

	opts := []transient.Option{transient.WithLogger(c.logger)}
	switch *timeStorage {
	case "auto":
	case "ticks":
		opts = append(opts, transient.WithTimeStorage(transient.TimeAsTicks))
	case "nanos":
		opts = append(opts, transient.WithTimeStorage(transient.TimeAsNanos))
	case "components":
		opts = append(opts, transient.WithTimeStorage(transient.TimeAsComponents))
	default:
		return fmt.Errorf("invalid -time-storage %q", *timeStorage)
	}
	switch *dateStorage {
	case "days":
	case "components":
		opts = append(opts, transient.WithDateStorage(transient.DateAsComponents))
	default:
		return fmt.Errorf("invalid -date-storage %q", *dateStorage)
	}
	reg := prometheus.NewRegistry()
	opts = append(opts, transient.WithMetrics(transient.NewMetrics(reg)))

	cat, err := c.load(rest[0])
	if err != nil {
		return err
	}
	spec, err := cat.Get(rest[1])
	if err != nil {
		return err
	}
	v, err := variant.NewVariable(transient.New(opts...), spec)
	if err != nil {
		return err
	}
	if err := variant.ParseText(v, rest[2]); err != nil {
		return err
	}
	fmt.Printf("%s\t%016x\n", v, v.Hash())

	if *showMetrics {
		return printCounters(reg)
	}
	return nil
}

func printCounters(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			fmt.Fprintf(os.Stderr, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
	return nil
}

func cmdSchema(args []string) error {
	c := newCommand("schema")
	rest, err := c.parse(args, 1, 2)
	if err != nil {
		return err
	}
	cat, err := c.load(rest[0])
	if err != nil {
		return err
	}

	var out any
	if len(rest) == 2 {
		spec, err := cat.Get(rest[1])
		if err != nil {
			return err
		}
		if out, err = specschema.FromDataSpec(spec); err != nil {
			return err
		}
	} else if out, err = specschema.FromCatalog(cat); err != nil {
		return err
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

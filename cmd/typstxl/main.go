// Command typstxl converts one worksheet of an .xlsx workbook to a TOML
// table record or to a Typst table expression.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/aerissecure/typstxl"
	"github.com/aerissecure/typstxl/internal/config"
	"github.com/aerissecure/typstxl/xlsx"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Exit codes: 0=success, 1=general, 2=usage, 3=I/O, 4=conversion.
const (
	ExitSuccess    = 0
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitIO         = 3
	ExitConversion = 4
)

type cliFlags struct {
	config     string
	output     string
	sheet      int
	mode       string
	alignment  bool
	border     bool
	bgColor    bool
	fontStyle  bool
	tableStyle bool
	cbor       bool
	verbose    bool
	version    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("typstxl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var f cliFlags
	fs.StringVarP(&f.config, "config", "c", "", "YAML config file")
	fs.StringVarP(&f.output, "output", "o", "", "write to file instead of stdout")
	fs.IntVarP(&f.sheet, "sheet", "s", 0, "0-based worksheet index")
	fs.StringVarP(&f.mode, "mode", "m", config.ModeRecord, "output mode: record or markup")
	fs.BoolVar(&f.alignment, "alignment", false, "parse cell alignment")
	fs.BoolVar(&f.border, "border", false, "parse cell borders (record mode)")
	fs.BoolVar(&f.bgColor, "bg-color", false, "parse background colours (record mode)")
	fs.BoolVar(&f.fontStyle, "font-style", false, "parse font styles")
	fs.BoolVar(&f.tableStyle, "table-style", false, "emit column widths and row heights (markup mode)")
	fs.BoolVar(&f.cbor, "cbor", false, "emit markup wrapped as a CBOR text string")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log debug information to stderr")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: typstxl [flags] <workbook.xlsx>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}
	if f.version {
		fmt.Fprintln(stdout, "typstxl", Version)
		return ExitSuccess
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if f.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return ExitUsage
	}

	cfg, err := resolveConfig(fs, f)
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		return ExitUsage
	}
	opts := cfg.Options()
	opts.Logger = log

	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Error("cannot read workbook")
		return ExitIO
	}

	out, err := convert(data, cfg.Mode, opts, f.cbor)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"path":  path,
			"sheet": opts.SheetIndex,
			"mode":  cfg.Mode,
		}).Error("conversion failed")
		return exitCodeFor(err)
	}

	if f.output == "" {
		if _, err := stdout.Write(out); err != nil {
			return ExitIO
		}
		return ExitSuccess
	}
	if err := os.WriteFile(f.output, out, 0o644); err != nil {
		log.WithError(err).WithField("path", f.output).Error("cannot write output")
		return ExitIO
	}
	log.WithField("path", f.output).Debug("output written")
	return ExitSuccess
}

// resolveConfig starts from the config file (or defaults) and applies every
// flag that was set explicitly on the command line.
func resolveConfig(fs *flag.FlagSet, f cliFlags) (*config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return nil, err
		}
	}
	if fs.Changed("sheet") {
		cfg.Sheet = f.sheet
	}
	if fs.Changed("mode") {
		cfg.Mode = f.mode
	}
	if fs.Changed("alignment") {
		cfg.Parse.Alignment = f.alignment
	}
	if fs.Changed("border") {
		cfg.Parse.Border = f.border
	}
	if fs.Changed("bg-color") {
		cfg.Parse.BackgroundColor = f.bgColor
	}
	if fs.Changed("font-style") {
		cfg.Parse.FontStyle = f.fontStyle
	}
	if fs.Changed("table-style") {
		cfg.Parse.TableStyle = f.tableStyle
	}
	return cfg, cfg.Validate()
}

func convert(data []byte, mode string, opts typstxl.Options, wrap bool) ([]byte, error) {
	if mode == config.ModeRecord {
		return typstxl.ToRecord(data, opts)
	}
	out, err := typstxl.ToMarkup(data, opts)
	if err != nil || wrap {
		return out, err
	}
	markup, err := typstxl.DecodeMarkup(out)
	if err != nil {
		return nil, err
	}
	return []byte(markup + "\n"), nil
}

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, xlsx.ErrWorkbookParse),
		errors.Is(err, xlsx.ErrSheetNotFound),
		errors.Is(err, xlsx.ErrEmptyWorksheet),
		errors.Is(err, xlsx.ErrCellValue),
		errors.Is(err, xlsx.ErrMergeOverlap):
		return ExitConversion
	case errors.Is(err, typstxl.ErrInputDecoding):
		return ExitUsage
	}
	return ExitGeneral
}

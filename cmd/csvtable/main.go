// Command csvtable parses a CSV file, optionally infers column types, prints
// the resulting schema and can convert the table to CSV, TSV, XLSX or Parquet.
//
// Usage:
//
//	csvtable [flags] input.csv[.gz|.bz2|.xz|.zst]
//
// Example:
//
//	csvtable -header -infer -types int,double,datetime -out data.parquet data.csv.gz
//	csvtable -header -infer -query "SELECT city, COUNT(*) FROM sales GROUP BY city" sales.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/csvtable"
	"golang.org/x/text/language"
)

// config holds the command line settings.
type config struct {
	separator   string
	header      bool
	infer       bool
	types       string
	layout      string
	locale      string
	emptyAsNull bool
	out         string
	sheet       string
	query       string
	logLevel    string
	logFormat   string
	input       string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger := newLogger(stderr, cfg.logLevel, cfg.logFormat)

	opts, candidates, err := cfg.parseOptions()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return 2
	}
	opts = opts.WithLogger(logger)

	var table *csvtable.Table
	if cfg.infer {
		table, err = csvtable.ParseFileTyped(cfg.input, candidates, opts)
	} else {
		table, err = csvtable.ParseFile(cfg.input, opts)
	}
	if err != nil {
		logger.Error("parse failed", "input", cfg.input, "error", err)
		return 1
	}
	if table == nil {
		logger.Info("input holds no rows", "input", cfg.input)
		return 0
	}

	if cfg.query != "" {
		if err := runQuery(context.Background(), stdout, cfg, table); err != nil {
			logger.Error("query failed", "query", cfg.query, "error", err)
			return 1
		}
	} else {
		printSchema(stdout, table)
	}

	if cfg.out != "" {
		if err := writeOutput(cfg, table); err != nil {
			logger.Error("write failed", "output", cfg.out, "error", err)
			return 1
		}
		logger.Info("table written", "output", cfg.out, "rows", table.NumRows())
	}
	return 0
}

// parseFlags reads the command line.
func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("csvtable", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.separator, "sep", ",", "field separator (one character, \\t for tab)")
	fs.BoolVar(&cfg.header, "header", false, "first row holds column names")
	fs.BoolVar(&cfg.infer, "infer", false, "infer column types from the first data row")
	fs.StringVar(&cfg.types, "types", "int,double,bool,datetime", "candidate types in priority order")
	fs.StringVar(&cfg.layout, "layout", "", "Go time layout for datetime columns (default: locale layouts)")
	fs.StringVar(&cfg.locale, "locale", "", "BCP 47 locale for numbers and dates, e.g. de-DE")
	fs.BoolVar(&cfg.emptyAsNull, "empty-null", false, "store empty cells of typed columns as null")
	fs.StringVar(&cfg.out, "out", "", "output file (.csv, .tsv, .xlsx, .parquet, optionally .gz/.xz/.zst)")
	fs.StringVar(&cfg.sheet, "sheet", "Sheet1", "worksheet name for xlsx output")
	fs.StringVar(&cfg.query, "query", "", "SQL query to run against the table, named after the input file")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&cfg.logFormat, "log-format", "text", "log format: text or json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.New("csvtable: exactly one input file is required")
	}
	cfg.input = fs.Arg(0)
	return cfg, nil
}

// parseOptions converts the flags into parse options and candidates.
func (c *config) parseOptions() (csvtable.ParseOptions, []csvtable.Candidate, error) {
	opts := csvtable.NewParseOptions().
		WithHeader(c.header).
		WithEmptyAsNull(c.emptyAsNull)

	sep := c.separator
	if sep == `\t` {
		sep = "\t"
	}
	if utf8.RuneCountInString(sep) != 1 {
		return opts, nil, fmt.Errorf("%w: %q", csvtable.ErrInvalidSeparator, c.separator)
	}
	r, _ := utf8.DecodeRuneInString(sep)
	opts = opts.WithSeparator(r)

	if c.locale != "" {
		tag, err := language.Parse(c.locale)
		if err != nil {
			return opts, nil, fmt.Errorf("invalid locale %q: %w", c.locale, err)
		}
		opts = opts.WithLocale(tag)
	}

	candidates, err := c.candidates()
	if err != nil {
		return opts, nil, err
	}
	return opts, candidates, nil
}

// candidates parses the -types list.
func (c *config) candidates() ([]csvtable.Candidate, error) {
	var candidates []csvtable.Candidate
	for _, name := range strings.Split(c.types, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
			continue
		case "int", "integer":
			candidates = append(candidates, csvtable.IntCandidate())
		case "double", "float", "real":
			candidates = append(candidates, csvtable.DoubleCandidate())
		case "bool", "boolean":
			candidates = append(candidates, csvtable.BoolCandidate())
		case "datetime", "date", "time":
			if c.layout != "" {
				candidates = append(candidates, csvtable.DateTimeCandidate(c.layout))
			} else {
				candidates = append(candidates, csvtable.DateTimeCandidate())
			}
		case "string", "text":
			candidates = append(candidates, csvtable.StringCandidate())
		default:
			return nil, fmt.Errorf("%w: unknown type %q", csvtable.ErrInvalidCandidate, name)
		}
	}
	return candidates, nil
}

// printSchema writes one line per column and a row count.
func printSchema(w io.Writer, table *csvtable.Table) {
	for i, c := range table.Columns() {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, c.Name, c.TypeName)
	}
	fmt.Fprintf(w, "rows\t%d\n", table.NumRows())
}

// writeOutput writes the table to the -out path.
func writeOutput(c *config, table *csvtable.Table) error {
	format, ok := csvtable.OutputFormatFromPath(c.out)
	if !ok {
		return fmt.Errorf("%w: %s", csvtable.ErrUnsupportedFormat, c.out)
	}
	opts := csvtable.NewDumpOptions().
		WithFormat(format).
		WithCompression(csvtable.CompressionFromPath(c.out)).
		WithSheet(c.sheet)
	return csvtable.WriteFile(c.out, table, opts)
}

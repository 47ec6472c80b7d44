// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Ratiostudy summarizes an order book compaction-ratio sweep.
//
// Usage:
//
//	ratiostudy [flags] sweep.txt [sweep2.txt ...]
//
// Each input is the output of the order book benchmarks run once per
// compaction ratio, with every group of results preceded by a line
// such as
//
//	Testing Compaction Ratio: 0.75
//
// If no inputs are named, ratiostudy reads standard input. An input
// named "-" also means standard input. Inputs ending in .gz or .zst
// are decompressed.
//
// Ratiostudy merges the benchmark variants of each order book
// operation and prints, for every operation, the ratio with the best
// throughput at each order book depth followed by the ratios ranked
// by the geometric mean of their throughput across depths:
//
//	PERFORMANCE SUMMARY
//
//	Add Order
//	  depth         best ratio M ops/s
//	  cold start          0.50    1.20
//	  1,000 orders        0.75    3.40
//
//	  ratio            geomean    mean depths
//	  0.75                1.93    2.25      2
//	  0.50                1.59    1.65      2
//
// Unless -nocharts is given, it also draws throughput and latency
// charts into the -o directory. The -csv, -json and -html flags add
// those exports to the same directory.
//
// The -raw flag skips merging and reports every benchmark under its
// own name. The -rules flag replaces the built-in merge rules with a
// JSON file of the form
//
//	{"BM_Foo": {"canonical": "Foo"}, "BM_Foo_Latency": {"canonical": "Foo", "supersededBy": "BM_Foo"}}
//
// # Run history
//
// With -db driver:dsn, ratiostudy keeps runs in a SQL database. The
// driver is sqlite3 or mysql. The -save flag stores the parsed sweep
// under a label, -run reports the newest stored run with a label
// instead of reading inputs, and -list prints the stored runs.
//
//	ratiostudy -db sqlite3:runs.db -save nightly sweep.txt
//	ratiostudy -db sqlite3:runs.db -run nightly -nocharts
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/net/context"

	"github.com/orderbook/ratiostudy/internal/texttab"
	"github.com/orderbook/ratiostudy/report"
	"github.com/orderbook/ratiostudy/store"
	"github.com/orderbook/ratiostudy/sweep"
	"github.com/orderbook/ratiostudy/sweeplog"
)

var exit = os.Exit // replaced during testing

// errUsage reports bad command-line arguments. The details have
// already been printed.
var errUsage = errors.New("usage")

func main() {
	log.SetPrefix("ratiostudy: ")
	log.SetFlags(0)
	err := ratiostudy(os.Stdout, os.Stderr, os.Args[1:])
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		exit(2)
	default:
		log.Print(err)
		exit(1)
	}
}

type options struct {
	outDir     string
	format     string
	noCharts   bool
	csv        bool
	json       bool
	html       bool
	rulesFile  string
	ratioLabel string
	raw        bool
	db         string
	save       string
	run        string
	list       bool
	verbose    bool
}

func ratiostudy(w, wErr io.Writer, args []string) error {
	var o options
	fs := flag.NewFlagSet("ratiostudy", flag.ContinueOnError)
	fs.SetOutput(wErr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: ratiostudy [flags] sweep.txt [sweep2.txt ...]\n")
		fmt.Fprintf(fs.Output(), "flags:\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&o.outDir, "o", ".", "write charts and exports into `dir`")
	fs.StringVar(&o.format, "format", "png", "chart image `format`: png, svg or pdf")
	fs.BoolVar(&o.noCharts, "nocharts", false, "do not draw charts")
	fs.BoolVar(&o.csv, "csv", false, "write throughput.csv and latency.csv")
	fs.BoolVar(&o.json, "json", false, "write study.json")
	fs.BoolVar(&o.html, "html", false, "write summary.html")
	fs.StringVar(&o.rulesFile, "rules", "", "read merge rules from JSON `file`")
	fs.StringVar(&o.ratioLabel, "label-ratio", sweeplog.DefaultRatioLabel, "ratio announcement `label`")
	fs.BoolVar(&o.raw, "raw", false, "report benchmarks under their own names without merging")
	fs.StringVar(&o.db, "db", "", "keep runs in the database `driver:dsn`")
	fs.StringVar(&o.save, "save", "", "store the sweep in the database under `label`")
	fs.StringVar(&o.run, "run", "", "report the newest stored run with `label` instead of reading inputs")
	fs.BoolVar(&o.list, "list", false, "list the stored runs")
	fs.BoolVar(&o.verbose, "v", false, "log input statistics and files written")
	if err := fs.Parse(args); err != nil {
		// The flag package has printed the problem and the usage.
		return errUsage
	}

	usage := func(format string, args ...interface{}) error {
		fmt.Fprintf(fs.Output(), format+"\n", args...)
		fs.Usage()
		return errUsage
	}
	if (o.save != "" || o.run != "" || o.list) && o.db == "" {
		return usage("-save, -run and -list require -db")
	}
	if o.run != "" && (o.save != "" || fs.NArg() > 0) {
		return usage("-run cannot be combined with -save or input files")
	}
	if o.raw && o.rulesFile != "" {
		return usage("-raw and -rules are mutually exclusive")
	}
	switch o.format {
	case "png", "svg", "pdf":
	default:
		return usage("unknown chart format %q", o.format)
	}

	logger := log.New(wErr, "ratiostudy: ", 0)
	ctx := context.Background()

	var db *store.DB
	if o.db != "" {
		driver, dsn, ok := strings.Cut(o.db, ":")
		if !ok {
			return usage("-db must have the form driver:dsn")
		}
		var err error
		if db, err = store.OpenSQL(driver, dsn); err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()
	}

	if o.list {
		return listRuns(ctx, w, db)
	}

	rules := sweep.DefaultRules()
	if o.raw {
		rules = sweep.Rules{}
	} else if o.rulesFile != "" {
		var err error
		if rules, err = readRules(o.rulesFile); err != nil {
			return err
		}
	}

	var st *sweep.Study
	if o.run != "" {
		run, err := db.FindRun(ctx, o.run)
		if err != nil {
			return fmt.Errorf("run %q: %w", o.run, err)
		}
		raw, err := db.LoadRun(ctx, run.ID)
		if err != nil {
			return fmt.Errorf("run %q: %w", o.run, err)
		}
		if st, err = sweep.NewStudy(raw, rules); err != nil {
			return err
		}
		if o.verbose {
			logger.Printf("loaded run %d (%s, %s)", run.ID, run.Label, run.Created.Format("2006-01-02 15:04:05"))
		}
	} else {
		files := &sweeplog.Files{
			Paths:      fs.Args(),
			AllowStdin: true,
			Parser:     sweeplog.NewParser(o.ratioLabel),
		}
		var err error
		st, err = sweep.Analyze(files, rules)
		if o.verbose {
			logger.Printf("read %s", files.Stats())
		}
		if err != nil {
			return err
		}
		if o.save != "" {
			if err := saveRun(ctx, logger, db, o.save, st.Raw); err != nil {
				return err
			}
		}
	}

	if err := report.WriteSummary(w, st); err != nil {
		return err
	}
	return writeOutputs(logger, st, &o)
}

// saveRun stores raw under label unless the same values are already
// stored.
func saveRun(ctx context.Context, logger *log.Logger, db *store.DB, label string, raw *sweep.Model) error {
	prev, err := db.FindDigest(ctx, store.Digest(raw))
	if err == nil {
		logger.Printf("sweep already stored as run %d (%q)", prev.ID, prev.Label)
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	run, err := db.SaveRun(ctx, label, raw)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	logger.Printf("saved run %d as %q", run.ID, run.Label)
	return nil
}

func readRules(path string) (sweep.Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rules, err := sweep.ReadRules(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// writeOutputs writes the charts and exports selected by o.
func writeOutputs(logger *log.Logger, st *sweep.Study, o *options) error {
	if o.noCharts && !o.csv && !o.json && !o.html {
		return nil
	}
	if err := os.MkdirAll(o.outDir, 0777); err != nil {
		return err
	}
	var written []string

	create := func(name string, emit func(io.Writer) error) error {
		path := filepath.Join(o.outDir, name)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := emit(f); err != nil {
			f.Close()
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	m := st.Canonical
	if o.csv {
		if err := create("throughput.csv", func(w io.Writer) error { return report.WriteThroughputCSV(w, m) }); err != nil {
			return err
		}
		if m.Latency.Len() > 0 {
			if err := create("latency.csv", func(w io.Writer) error { return report.WriteLatencyCSV(w, m) }); err != nil {
				return err
			}
		}
	}
	if o.json {
		if err := create("study.json", func(w io.Writer) error { return report.WriteJSON(w, st) }); err != nil {
			return err
		}
	}
	if o.html {
		if err := create("summary.html", func(w io.Writer) error { return report.WriteHTML(w, "Compaction ratio study", st) }); err != nil {
			return err
		}
	}
	if !o.noCharts {
		paths, err := report.Charts(m, report.ChartOptions{Dir: o.outDir, Format: o.format})
		if err != nil {
			return err
		}
		written = append(written, paths...)
	}

	if o.verbose {
		for _, path := range written {
			logger.Printf("wrote %s", path)
		}
	}
	return nil
}

func listRuns(ctx context.Context, w io.Writer, db *store.DB) error {
	runs, err := db.Runs(ctx)
	if err != nil {
		return err
	}
	var tab texttab.Table
	tab.Row().Cell("id", texttab.Right).Cell("label", texttab.LeftMargin("  ")).Cell("created", texttab.LeftMargin("  "))
	for _, r := range runs {
		tab.Row().Cell(fmt.Sprint(r.ID), texttab.Right).
			Cell(r.Label, texttab.LeftMargin("  ")).
			Cell(r.Created.Format("2006-01-02 15:04:05"), texttab.LeftMargin("  "))
	}
	return tab.Format(w)
}

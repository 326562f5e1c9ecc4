// sherlogbench measures the engine operations behind the viewer
// (loading, filtering, searching and paging) against a synthetic log
// or a real file.
//
// Usage:
//
//	go run ./cmd/sherlogbench [options]
//
// Examples:
//
//	go run ./cmd/sherlogbench --lines 1000000 --filter ERROR
//	go run ./cmd/sherlogbench --lines 500000 --filter '! DEBUG' --filter 'db|cache' --search timeout
//	go run ./cmd/sherlogbench --input /var/log/syslog --search 'usb \d+' --json
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/sherlog/sherlog"
	"github.com/sherlog/sherlog/filter"
	"github.com/sherlog/sherlog/internal/source"
)

type benchOptions struct {
	Lines   int             `long:"lines" default:"1000000" description:"number of lines to generate"`
	Input   string          `long:"input" description:"read the log from a file instead of generating it"`
	Filters []string        `long:"filter" description:"filter rule in filter list notation (repeatable)"`
	Search  string          `long:"search" default:"timeout" description:"search pattern"`
	Case    filter.CaseMode `long:"case" default:"sensitive" description:"case handling of patterns"`
	Page    int             `long:"page" default:"50" description:"number of lines read per window"`
	Seed    uint64          `long:"seed" default:"42" description:"random seed for data generation"`
	JSON    bool            `long:"json" description:"output results as JSON"`
}

type result struct {
	Operation   string  `json:"operation"`
	Lines       int     `json:"lines"`
	Count       int     `json:"count"`
	Duration    string  `json:"duration"`
	DurationMs  float64 `json:"duration_ms"`
	LinesPerSec float64 `json:"lines_per_sec"`
}

func main() {
	var opts benchOptions
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts benchOptions, out io.Writer) error {
	if opts.Page <= 0 {
		return errors.Errorf("invalid page size %d", opts.Page)
	}

	rules := make([]filter.Rule, 0, len(opts.Filters))
	for _, s := range opts.Filters {
		r, err := filter.Parse(s, opts.Case)
		if err != nil {
			return errors.Wrapf(err, "invalid filter '%s'", s)
		}
		rules = append(rules, r)
	}

	var search *regexp.Regexp
	if opts.Search != "" {
		re, err := filter.Compile(opts.Search, opts.Case)
		if err != nil {
			return errors.Wrap(err, "invalid search pattern")
		}
		search = re
	}

	text, err := loadOrGenerate(ctx, opts)
	if err != nil {
		return err
	}

	if !opts.JSON {
		fmt.Fprintf(out, "Dataset: %d bytes\n", len(text))
		fmt.Fprintf(out, "Filters: %v\n", opts.Filters)
		fmt.Fprintf(out, "Search: %q\n\n", opts.Search)
	}

	var results []result
	var e *sherlog.Engine
	results = append(results, measure("load", 0, func() int {
		e = sherlog.New(text)
		return e.LineCount()
	}))
	total := e.LineCount()
	results[0].Lines = total

	results = append(results, measure("filter", total, func() int {
		e.SetFilters(rules)
		return e.FilteredCount()
	}))

	if search != nil {
		results = append(results, measure("search", total, func() int {
			e.SetSearch(search)
			return e.SearchMatchCount()
		}))
		results = append(results, measure("next result", total, func() int {
			return stepResults(e)
		}))
	}

	results = append(results, measure("page forward", total, func() int {
		return pageForward(e, opts.Page)
	}))
	results = append(results, measure("page backward", total, func() int {
		return pageBackward(e, opts.Page)
	}))

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, r := range results {
		printResult(out, r)
	}
	return nil
}

func measure(name string, lines int, fn func() int) result {
	// Force GC before measurement
	runtime.GC()

	start := time.Now()
	count := fn()
	elapsed := time.Since(start)

	var lps float64
	if s := elapsed.Seconds(); s > 0 {
		lps = float64(lines) / s
	}
	return result{
		Operation:   name,
		Lines:       lines,
		Count:       count,
		Duration:    elapsed.String(),
		DurationMs:  float64(elapsed.Milliseconds()),
		LinesPerSec: lps,
	}
}

// stepResults visits every search result the way repeated 'n' does
func stepResults(e *sherlog.Engine) int {
	var n int
	for from := 0; ; n++ {
		next, ok := e.NextSearchResult(from)
		if !ok {
			return n
		}
		from = next + 1
	}
}

// pageForward reads every filtered line, one window at a time, from
// the top
func pageForward(e *sherlog.Engine, page int) int {
	var n int
	for first := 0; ; {
		w := e.GetLines(first, page)
		last, ok := w.Last()
		if !ok {
			return n
		}
		n += len(w)
		first = last.Ordinal + 1
	}
}

// pageBackward reads every filtered line, one window at a time, from
// the bottom
func pageBackward(e *sherlog.Engine, page int) int {
	var n int
	for last := e.LineCount() - 1; last >= 0; {
		w := e.GetLinesRev(last, page)
		first, ok := w.First()
		if !ok {
			return n
		}
		n += len(w)
		last = first.Ordinal - 1
	}
	return n
}

func loadOrGenerate(ctx context.Context, opts benchOptions) (string, error) {
	if opts.Input != "" {
		f, err := source.Load(ctx, opts.Input)
		if err != nil {
			return "", err
		}
		return f.Text(), nil
	}
	return generateLog(opts.Lines, opts.Seed), nil
}

// generateLog creates a synthetic log. Levels and components follow a
// skewed distribution so that filters select very different shares of
// the lines, and "timeout" appears in a few percent of them.
func generateLog(n int, seed uint64) string {
	rng := rand.New(rand.NewPCG(seed, seed+1))

	levels := []struct {
		name string
		freq float64 // cumulative
	}{
		{"DEBUG", 0.50},
		{"INFO", 0.85},
		{"WARN", 0.97},
		{"ERROR", 1.00},
	}
	components := []string{"http", "db", "cache", "auth", "scheduler", "kernel"}
	messages := []string{
		"request served in %dms",
		"connection pool size %d",
		"retrying after timeout (%d attempts)",
		"cache miss for key user:%d",
		"job %d finished",
		"session %d expired",
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var sb strings.Builder
	for i := range n {
		p := rng.Float64()
		level := levels[len(levels)-1].name
		for _, l := range levels {
			if p < l.freq {
				level = l.name
				break
			}
		}
		ts := base.Add(time.Duration(i) * 37 * time.Millisecond)
		msg := fmt.Sprintf(messages[rng.IntN(len(messages))], rng.IntN(10000))
		fmt.Fprintf(&sb, "%s %-5s [%s] %s\n",
			ts.Format("2006-01-02T15:04:05.000"), level, components[rng.IntN(len(components))], msg)
	}
	return sb.String()
}

func printResult(out io.Writer, r result) {
	fmt.Fprintf(out, "%-14s  %d lines  %8d results  %12s  (%.0f lines/sec)\n",
		r.Operation, r.Lines, r.Count, r.Duration, r.LinesPerSec)
}

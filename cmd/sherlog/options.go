package main

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/sherlog/sherlog/config"
	"github.com/sherlog/sherlog/filter"
)

// CLIOptions are the command line options. The help text is generated
// from the struct tags, in field order.
type CLIOptions struct {
	OptHelp        bool             `short:"h" long:"help" description:"show this help message and exit"`
	OptVersion     bool             `long:"version" description:"print the version and exit"`
	OptRcfile      string           `long:"rcfile" description:"path to the settings file"`
	OptDebug       bool             `short:"d" long:"debug" description:"append a trace of the session to sherlog.log"`
	OptFilter      []string         `short:"f" long:"filter" description:"filter rule in filter list notation (repeatable)"`
	OptSearch      string           `short:"s" long:"search" description:"initial search pattern"`
	OptHighlight   string           `long:"highlight" description:"initial highlight pattern"`
	OptCase        *filter.CaseMode `long:"case" description:"case handling of patterns: sensitive, ignore or smart"`
	OptLineNumbers bool             `short:"n" long:"line-numbers" description:"show line numbers"`
	OptWrap        bool             `short:"w" long:"wrap" description:"wrap long lines"`
	OptStripANSI   bool             `long:"strip-ansi" description:"remove ANSI escape sequences from the input"`
}

func (options *CLIOptions) parse(s []string, stderr io.Writer) ([]string, error) {
	p := flags.NewParser(options, flags.None)
	args, err := p.ParseArgs(s)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		stderr.Write(options.help())
		return nil, errors.Wrap(err, "invalid command line options")
	}

	if len(args) > 1 {
		stderr.Write(options.help())
		return nil, errors.New("invalid command line arguments: expected at most one LOG_FILE")
	}

	return args, nil
}

// apply overrides the values of cfg with the options that were given
func (options CLIOptions) apply(cfg *config.Config) {
	cfg.Filters = append(cfg.Filters, options.OptFilter...)
	if options.OptCase != nil {
		cfg.CaseMode = *options.OptCase
	}
	if options.OptLineNumbers {
		cfg.LineNumbers = true
	}
	if options.OptWrap {
		cfg.Wrap = true
	}
	if options.OptStripANSI {
		cfg.StripANSI = true
	}
}

func (options CLIOptions) help() []byte {
	buf := bytes.Buffer{}

	fmt.Fprintf(&buf, `
Usage: sherlog [options] [LOG_FILE]

Reads standard input when LOG_FILE is "-" or missing.

Options:
`)

	t := reflect.TypeOf(options)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag

		var o string
		if s := tag.Get("short"); s != "" {
			o = fmt.Sprintf("-%s, --%s", tag.Get("short"), tag.Get("long"))
		} else {
			o = fmt.Sprintf("--%s", tag.Get("long"))
		}

		fmt.Fprintf(
			&buf,
			"  %-21s %s\n",
			o,
			tag.Get("description"),
		)
	}

	return buf.Bytes()
}

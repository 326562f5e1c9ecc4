package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	pdebug "github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"
	"github.com/sherlog/sherlog"
	"github.com/sherlog/sherlog/config"
	"github.com/sherlog/sherlog/internal/source"
	"github.com/sherlog/sherlog/sig"
	"github.com/sherlog/sherlog/ui"
)

const version = "v0.1.0"

const traceFilename = "sherlog.log"

// CLI runs sherlog with the given arguments
type CLI struct {
	Argv   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// screen creates the terminal screen
	screen func() (ui.Screen, error)
	// rcfile locates the configuration file when --rcfile is not given
	rcfile func() (string, error)
	tracer *log.Logger
}

func newCLI(argv []string) *CLI {
	return &CLI{
		Argv:   argv,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		screen: ui.NewScreen,
		rcfile: func() (string, error) {
			return config.LocateRcfile(config.DefaultConfigLocator)
		},
		tracer: log.New(io.Discard, "", 0),
	}
}

// setupTracer enables the trace log. It goes to stderr when
// SHERLOG_TRACE is set, and is appended to sherlog.log with --debug.
// The returned function closes the log file, if any.
func (cli *CLI) setupTracer(debug bool) (func(), error) {
	if debug {
		f, err := os.OpenFile(traceFilename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %s", traceFilename)
		}
		cli.tracer = log.New(f, "sherlog: ", log.LstdFlags)
		return func() { f.Close() }, nil
	}

	if v, err := strconv.ParseBool(os.Getenv("SHERLOG_TRACE")); err == nil && v {
		cli.tracer = log.New(cli.Stderr, "sherlog: ", log.LstdFlags)
	}
	return func() {}, nil
}

func (cli *CLI) readConfig(options *CLIOptions) (*config.Config, error) {
	var cfg config.Config
	if err := cfg.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize config")
	}

	rcfile := options.OptRcfile
	if rcfile == "" {
		// no config file is fine
		if file, err := cli.rcfile(); err == nil {
			rcfile = file
		}
	}

	if rcfile != "" {
		cli.tracer.Printf("reading config from %s", rcfile)
		if err := cfg.ReadFilename(rcfile); err != nil {
			return nil, errors.Wrap(err, "failed to read config")
		}
	}

	options.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid options")
	}
	return &cfg, nil
}

func (cli *CLI) load(ctx context.Context, args []string, cfg *config.Config) (*source.File, error) {
	if len(args) == 0 || args[0] == source.StdinName {
		return source.Read(ctx, "stdin", cli.Stdin, source.WithStripANSI(cfg.StripANSI))
	}
	return source.Load(ctx, args[0], source.WithStripANSI(cfg.StripANSI))
}

// Run parses the command line, loads the log and runs the viewer until
// the user quits or a signal is received
func (cli *CLI) Run(ctx context.Context) error {
	if pdebug.Enabled {
		g := pdebug.Marker("CLI.Run")
		defer g.End()
	}

	var options CLIOptions
	args, err := options.parse(cli.Argv, cli.Stderr)
	if err != nil {
		return err
	}

	if options.OptHelp {
		cli.Stdout.Write(options.help())
		return nil
	}

	if options.OptVersion {
		fmt.Fprintf(cli.Stdout, "sherlog: %s\n", version)
		return nil
	}

	closeTracer, err := cli.setupTracer(options.OptDebug)
	if err != nil {
		return err
	}
	defer closeTracer()

	cfg, err := cli.readConfig(&options)
	if err != nil {
		return err
	}

	f, err := cli.load(ctx, args, cfg)
	if err != nil {
		return err
	}
	cli.tracer.Printf("Sherlog started with %s", f.Path())

	engine := sherlog.New(f.Text())
	cli.tracer.Printf("loaded %d lines", engine.LineCount())

	screen, err := cli.screen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize screen")
	}
	defer screen.Fini()

	v, err := ui.New(engine, screen, cfg, ui.Options{
		Filename:  f.Name(),
		Search:    options.OptSearch,
		Highlight: options.OptHighlight,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan error, 1)
	go func() {
		sigCh <- sig.New().Loop(ctx, cancel)
	}()

	err = v.Loop(ctx)
	cancel()

	var rerr *sig.ReceivedError
	if serr := <-sigCh; errors.As(serr, &rerr) {
		cli.tracer.Printf("%s", rerr)
		return rerr
	}
	cli.tracer.Printf("exiting: %s", err)
	return err
}

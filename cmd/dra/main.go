// Command dra looks up verses of the Douay-Rheims Bible.
//
//	dra Gn 1:1-5
//	dra --books
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	draerrors "github.com/FocuswithJustin/dra/core/errors"
	"github.com/FocuswithJustin/dra/core/ref"
	"github.com/FocuswithJustin/dra/internal/archive"
	"github.com/FocuswithJustin/dra/internal/config"
	"github.com/FocuswithJustin/dra/internal/logging"
	"github.com/FocuswithJustin/dra/internal/output"
	"github.com/FocuswithJustin/dra/internal/resolve"
	"github.com/FocuswithJustin/dra/internal/store"
)

const version = "0.1.0"

const queryHelp = `Query string:
	<book code> <chapter>
	<book code> <chapter>:<verse>
	<book code> <chapter>:<start_verse>-<end_verse>
	<book code> <chapter>:<start_verse>-<end_chapter>:<end_verse>`

// CLI defines the command-line interface for dra.
type CLI struct {
	Books bool     `name:"books" short:"b" help:"Lists the available books"`
	Query []string `arg:"" optional:"" name:"QUERY" help:"${query_help}"`

	DB        string           `name:"db" help:"Verse store (.db, .db.xz or .db.gz) [default: dra.db]" type:"path" placeholder:"PATH"`
	Config    string           `name:"config" short:"c" help:"Config file (default: ./dra.yaml)" type:"path"`
	LogLevel  string           `name:"log-level" help:"Log level: debug, info, warn, error"`
	LogFormat string           `name:"log-format" help:"Log format: text, json"`
	Version   kong.VersionFlag `name:"version" short:"V" help:"Print version information"`
}

// Env carries the process streams into Run.
type Env struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes one invocation: list books or look up one query.
func (c *CLI) Run(kctx *kong.Context, env *Env) error {
	switch {
	case c.Books && len(c.Query) > 0:
		return draerrors.NewArg("--books cannot be used with QUERY")
	case !c.Books && len(c.Query) == 0:
		_ = kctx.PrintUsage(false)
		return draerrors.NewArg("a QUERY or --books is required")
	}

	cfg, err := config.Load(config.Options{
		File: c.Config,
		Flags: map[string]string{
			"db":         c.DB,
			"log_level":  c.LogLevel,
			"log_format": c.LogFormat,
		},
	})
	if err != nil {
		return err
	}
	if err := setupLogging(cfg, env.Stderr); err != nil {
		return err
	}

	ctx := logging.NewInvocation(env.Ctx)
	logging.DebugContext(ctx, "config_loaded", "file", cfg.FileUsed, "db", cfg.DB)

	if c.Books {
		return listBooks(ctx, cfg, env.Stdout)
	}
	return printVerses(ctx, cfg, strings.Join(c.Query, " "), env.Stdout)
}

func setupLogging(cfg *config.Config, w io.Writer) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return draerrors.NewArg(err.Error())
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return draerrors.NewArg(err.Error())
	}
	logging.InitLogger(level, format, w)
	return nil
}

// openStore materialises and opens the configured store. The caller must
// Close it.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	path, err := archive.Materialize(cfg.DB, cfg.CacheDir)
	if err != nil {
		return nil, draerrors.NewStore("open", cfg.DB, err)
	}
	return store.Open(ctx, path)
}

func listBooks(ctx context.Context, cfg *config.Config, w io.Writer) (err error) {
	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(ctx, s, &err)

	books, err := s.ListBooks(ctx)
	if err != nil {
		return err
	}
	return output.WriteBooks(w, books)
}

func printVerses(ctx context.Context, cfg *config.Config, query string, w io.Writer) (err error) {
	// Parse and validate before touching the store.
	r, err := ref.Parse(query)
	if err != nil {
		return err
	}
	if err := resolve.Validate(r); err != nil {
		return err
	}
	logging.DebugContext(ctx, "query_parsed", "query", query, "range", r.String())

	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(ctx, s, &err)

	verses, err := resolve.New(s).Resolve(ctx, r)
	if err != nil {
		return err
	}
	return output.WriteVerses(w, verses)
}

// closeStore closes s, reporting its error unless an earlier one is pending.
func closeStore(ctx context.Context, s *store.Store, err *error) {
	cerr := s.Close()
	switch {
	case cerr == nil:
	case *err == nil:
		*err = cerr
	default:
		logging.WarnContext(ctx, "store_close_failed", "error", cerr)
	}
}

// run parses args and executes the CLI, returning the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var cli CLI
	exitCode := -1

	parser, err := kong.New(&cli,
		kong.Name("dra"),
		kong.Description("Command-line interface for Douay-Rheims American Bible"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":    "dra " + version,
			"query_help": queryHelp,
		},
	)
	if err != nil {
		fmt.Fprintf(stderr, "dra: %v\n", err)
		return draerrors.ExitFailure
	}

	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		// --help or --version already wrote their output.
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(stderr, "dra: %v\n", err)
		var perr *kong.ParseError
		if errors.As(err, &perr) {
			_ = perr.Context.PrintUsage(true)
		}
		return draerrors.ExitUsage
	}

	err = kctx.Run(&Env{Ctx: ctx, Stdout: stdout, Stderr: stderr})
	if err != nil {
		fmt.Fprintf(stderr, "dra: %v\n", err)
	}
	return draerrors.ExitCode(err)
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// Package main provides the CLI entry point for the shesafe case client.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/nadiahindrianti/shesafe/internal/application/store"
	"github.com/nadiahindrianti/shesafe/internal/domain/shared"
	"github.com/nadiahindrianti/shesafe/internal/infrastructure/apiclient"
	"github.com/nadiahindrianti/shesafe/internal/infrastructure/config"
	"github.com/nadiahindrianti/shesafe/internal/infrastructure/logger"
	"github.com/nadiahindrianti/shesafe/internal/infrastructure/tokenstore"
)

// Version information (populated at build time)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// Exit codes
const (
	exitOK           = 0
	exitError        = 1
	exitUsage        = 2
	exitUnauthorized = 3
)

var errUsage = errors.New("usage error")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// globalFlags are accepted before the command
type globalFlags struct {
	configPath  string
	output      string
	verbose     bool
	showVersion bool
}

func parseGlobal(args []string, stderr io.Writer) (globalFlags, []string, error) {
	var g globalFlags
	fs := flag.NewFlagSet("shesafe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&g.configPath, "config", "", "Path to the TOML configuration file")
	fs.StringVar(&g.configPath, "c", "", "Path to the TOML configuration file (shorthand)")
	fs.StringVar(&g.output, "output", "yaml", "Output format: yaml or json")
	fs.StringVar(&g.output, "o", "yaml", "Output format (shorthand)")
	fs.BoolVar(&g.verbose, "verbose", false, "Log requests at debug level")
	fs.BoolVar(&g.verbose, "v", false, "Log requests at debug level (shorthand)")
	fs.BoolVar(&g.showVersion, "version", false, "Show version information")
	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return g, nil, errUsage
	}
	if g.output != "yaml" && g.output != "json" {
		fmt.Fprintf(stderr, "Error: unsupported output format %q\n", g.output)
		return g, nil, errUsage
	}
	return g, fs.Args(), nil
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `shesafe - case reporting client

USAGE:
    shesafe [options] <command> [arguments]

COMMANDS:
    case get <id>                 Show a case
    case mine                     List your cases
    case new [flags]              Create a case
    case edit <id> [flags]        Edit a case
    case delete <id>              Delete a case
    categories                    List case categories
    community [flags]             List the community feed
    community detail <id>         Show a community record
    support get <casesId>         Show the support count of a case
    support post <casesId>        Support a case (-count n)
    support delete <casesId>      Withdraw support
    login <token>                 Save the authorization token
    logout                        Forget the authorization token
    proxy                         Run the development proxy

CASE FLAGS (new, edit):
    -title <text>                 Case title
    -message <text>               Additional message
    -category <id>                Category id
    -description-file <path>      Description (.html used as is, other files as plain text)
    -draft                        Save as draft instead of submitting
    -yes                          Do not ask for confirmation

COMMUNITY FLAGS:
    -category <id>  -page <n>  -per-page <n>

OPTIONS:
    -config, -c <path>            Path to the TOML configuration file
    -output, -o <format>          Output format: yaml (default) or json
    -verbose, -v                  Log requests at debug level
    -version                      Show version information

ENVIRONMENT:
    SHESAFE_API_BASE_URL          Backend base URL (default http://localhost:5173/api)
    SHESAFE_AUTH_TOKEN_STORE      memory, file or redis

EXAMPLES:
    shesafe login eyJhbGciOi...
    shesafe community -page 2
    shesafe case edit 42 -title "Judul baru" -draft
    shesafe -o json case mine
`)
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "shesafe version %s\n", version)
	fmt.Fprintf(w, "  Build time: %s\n", buildTime)
	fmt.Fprintf(w, "  Git commit: %s\n", gitCommit)
}

// run is main without the process exit
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	g, rest, err := parseGlobal(args, stderr)
	if err != nil {
		return exitUsage
	}

	if g.showVersion {
		printVersion(stdout)
		return exitOK
	}
	if len(rest) == 0 {
		printUsage(stderr)
		return exitUsage
	}

	cfg, err := config.Load(g.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return exitError
	}

	a, err := newApp(cfg, g, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer a.close()

	// every request issued by this command carries the same id
	ctx, _ = logger.WithRequestID(ctx, a.log, uuid.NewString())

	err = a.dispatch(ctx, rest)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		return exitUsage
	case shared.IsUnauthorized(err):
		fmt.Fprintf(stderr, "Error: %v\nRun 'shesafe login <token>' to sign in.\n", err)
		return exitUnauthorized
	default:
		fmt.Fprintf(stderr, "Error: %s\n", apiclient.Message(err))
		return exitError
	}
}

// app holds the wired components for one invocation
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	tokens   tokenstore.Store
	client   *apiclient.Client
	registry *store.Registry
	metrics  *prometheus.Registry
	format   string
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

func newApp(cfg *config.Config, g globalFlags, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultConfig().TimeFormat,
	}
	if g.verbose {
		logCfg.Level = "debug"
	}

	var log *zap.Logger
	if logCfg.Output == "" || logCfg.Output == "stderr" {
		log = logger.NewWithWriter(logCfg, stderr)
	} else {
		var err error
		if log, err = logger.New(logCfg); err != nil {
			return nil, fmt.Errorf("creating logger: %w", err)
		}
	}

	tokens, err := tokenstore.New(cfg.Auth)
	if err != nil {
		return nil, err
	}

	metrics := prometheus.NewRegistry()
	client, err := apiclient.NewClient(cfg.API,
		apiclient.WithTokenSource(tokens),
		apiclient.WithLogger(logger.Named(log, "apiclient")),
		apiclient.WithMetrics(apiclient.NewMetrics(metrics)),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		log:      log,
		tokens:   tokens,
		client:   client,
		registry: store.NewRegistry(client, store.WithLogger(logger.Named(log, "store"))),
		metrics:  metrics,
		format:   g.output,
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
	}, nil
}

// close releases the token store connection and flushes the logger
func (a *app) close() {
	if c, ok := a.tokens.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.log.Warn("Failed to close token store", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "case", "cases":
		return a.caseCommand(ctx, rest)
	case "categories":
		return a.categories(ctx)
	case "community":
		return a.community(ctx, rest)
	case "support":
		return a.support(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout(ctx)
	case "proxy":
		return a.proxy(ctx)
	case "version":
		printVersion(a.stdout)
		return nil
	case "help":
		printUsage(a.stdout)
		return nil
	default:
		fmt.Fprintf(a.stderr, "Error: unknown command %q\n\n", cmd)
		printUsage(a.stderr)
		return errUsage
	}
}

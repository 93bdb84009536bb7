// Command corowaitdemo is a small CLI showing corowait.Async/Await bridging
// a classic blocking SQL driver call into an async-shaped entry point,
// following the flag + layered-config style of the teacher module's
// cmd/app and internal/svc/cli. Logging goes straight through log/slog;
// internal/coro and corowait themselves log nothing, and
// there is no separate CLI-facing logger here, unlike the teacher's split
// between a colored REPL logger and slog for internals.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"corowait"
	"corowait/internal/coroconfig"
	"corowait/internal/dbbridge"
)

var (
	configPath   string
	driver       string
	dsn          string
	sleepMillis  int
	logLevel     string
	logFile      string
	requireAwait bool
)

func init() {
	flag.StringVar(&configPath, "config", "", "Path to a TOML config file (optional)")
	flag.StringVar(&driver, "driver", "", "database/sql driver name: sqlite3, mysql, postgres")
	flag.StringVar(&dsn, "dsn", "", "Data source name; empty runs the synthetic sleep demo instead of a real query")
	flag.IntVar(&sleepMillis, "sleep-millis", 0, "Synthetic await delay in milliseconds when -dsn is empty")
	flag.StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, none")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
	flag.BoolVar(&requireAwait, "require-await", false, "Fail if the handler never suspends")
}

func main() {
	flag.Parse()

	overridden := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { overridden[normalizeFlagName(f.Name)] = true })

	cfg, err := coroconfig.Load(configPath, coroconfig.Demo{
		Driver:       driver,
		DSN:          dsn,
		SleepMillis:  sleepMillis,
		LogLevel:     logLevel,
		LogFile:      logFile,
		RequireAwait: requireAwait,
	}, overridden)
	if err != nil {
		fmt.Fprintf(os.Stderr, "corowaitdemo: config error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "corowaitdemo: log error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("handler failed", "err", err)
		os.Exit(1)
	}
}

// levelTrace and levelNone extend slog's four built-in levels (Debug=-4 ...
// Error=8) to the six the layered config accepts: TRACE sits a notch below
// Debug, NONE sits above any real record so nothing is ever emitted.
const (
	levelTrace = slog.Level(-8)
	levelNone  = slog.Level(1 << 30)
)

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return levelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	default:
		return levelNone
	}
}

// newLogger builds the *slog.Logger the whole process logs through,
// writing to logFile if set or stderr otherwise, and returns a closer for
// whatever file it opened.
func newLogger(logLevel, logFile string) (*slog.Logger, func(), error) {
	out := os.Stderr
	closer := func() {}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closer = func() { _ = f.Close() }
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: parseLevel(logLevel)})
	return slog.New(handler), closer, nil
}

func normalizeFlagName(name string) string {
	switch name {
	case "sleep-millis":
		return "sleep_millis"
	case "log-level":
		return "log_level"
	case "log-file":
		return "log_file"
	case "require-await":
		return "require_await"
	default:
		return name
	}
}

// run adopts a plain synchronous handler into the asynchronous context via
// corowait.Async. The handler never takes a context.Context itself.
func run(cfg coroconfig.Demo) error {
	handler := func() (string, error) {
		if cfg.DSN == "" {
			return syntheticAwait(cfg.SleepMillis)
		}
		return queryViaBridge(dbbridge.Driver(cfg.Driver), cfg.DSN)
	}

	opts := []corowait.Option{}
	if cfg.RequireAwait {
		opts = append(opts, corowait.WithRequireSuspension(true))
	}

	result, err := corowait.Async(context.Background(), handler, opts...)
	if err != nil {
		return err
	}
	slog.Info("handler result", "result", result)
	return nil
}

func syntheticAwait(sleepMillis int) (string, error) {
	v, err := corowait.Await[string](corowait.Func(func(ctx context.Context) (string, error) {
		select {
		case <-time.After(time.Duration(sleepMillis) * time.Millisecond):
			return "awoke", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}))
	if err != nil {
		return "", err
	}
	return v, nil
}

func queryViaBridge(driver dbbridge.Driver, dsn string) (string, error) {
	rows, err := dbbridge.AwaitQuery(driver, dsn, `SELECT 1`)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d row(s)", len(rows)), nil
}

// Command librarysync fills missing book attributes and inspects the
// library's queues.
//
// Usage:
//
//	librarysync [-env file] sync <covers|descriptions|downloads> [-batch N]
//	librarysync [-env file] inspect <download-queue|telegram-queue|settings> [-status S] [-key K] [-json]
//	librarysync [-env file] serve
//	librarysync [-env file] watch
//	librarysync [-env file] seed [-n N]
//
// Every command exits 0 when it completes, even if some items failed, and 1
// when it could not run at all.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	app "github.com/YaRavva/Fiction-Library-sub007/internal/application/library"
	"github.com/YaRavva/Fiction-Library-sub007/internal/bootstrap"
	"github.com/YaRavva/Fiction-Library-sub007/internal/config"
	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
	"github.com/YaRavva/Fiction-Library-sub007/internal/logging"
	"github.com/sirupsen/logrus"
)

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type command struct {
	name string
	args []string

	batchSize int
	batchSet  bool
	status    string
	key       string
	asJSON    bool
	count     int
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	envFile, cmd, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		usage(stderr)
		return exitUsage
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return exitFatal
	}
	logger := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)

	deps, err := bootstrap.NewDependencies(ctx, cfg, logger)
	if err != nil {
		logging.LogError(logger, "failed to initialise dependencies", err)
		return exitFatal
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logging.LogError(logger, "failed to close dependencies", err)
		}
	}()

	a := bootstrap.NewApp(cfg, deps)

	switch cmd.name {
	case "sync":
		return runSync(ctx, a, cmd, cfg.BatchSize, stdout, logger)
	case "inspect":
		return runInspect(ctx, a, cmd, stdout, logger)
	case "serve":
		return runServe(ctx, a, cfg, logger)
	case "watch":
		return runWatch(ctx, a, logger)
	case "seed":
		return runSeed(ctx, a, cmd, stdout, logger)
	}
	return exitUsage
}

func parseArgs(args []string, stderr io.Writer) (string, command, error) {
	global := flag.NewFlagSet("librarysync", flag.ContinueOnError)
	global.SetOutput(stderr)
	envFile := global.String("env", ".env", "optional .env file")
	if err := global.Parse(args); err != nil {
		return "", command{}, err
	}

	rest := global.Args()
	if len(rest) == 0 {
		return "", command{}, errors.New("missing command")
	}

	cmd := command{name: rest[0]}
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var positional int
	switch cmd.name {
	case "sync":
		fs.IntVar(&cmd.batchSize, "batch", 0, "items per run (default SYNC_BATCH_SIZE)")
		positional = 1
	case "inspect":
		fs.StringVar(&cmd.status, "status", "", "only rows with this status")
		fs.StringVar(&cmd.key, "key", "", "only the row with this key or id")
		fs.BoolVar(&cmd.asJSON, "json", false, "print rows as JSON")
		positional = 1
	case "seed":
		fs.IntVar(&cmd.count, "n", 20, "number of books")
	case "serve", "watch":
	default:
		return "", command{}, fmt.Errorf("unknown command %q", cmd.name)
	}

	// Accept flags on either side of the positional argument.
	params := rest[1:]
	if positional > 0 && len(params) > 0 && len(params[0]) > 0 && params[0][0] != '-' {
		cmd.args = append(cmd.args, params[0])
		params = params[1:]
	}
	if err := fs.Parse(params); err != nil {
		return "", command{}, err
	}
	cmd.args = append(cmd.args, fs.Args()...)

	if len(cmd.args) != positional {
		switch cmd.name {
		case "sync":
			return "", command{}, errors.New("sync needs exactly one job name")
		case "inspect":
			return "", command{}, errors.New("inspect needs exactly one source name")
		default:
			return "", command{}, fmt.Errorf("%s takes no arguments", cmd.name)
		}
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "batch" {
			cmd.batchSet = true
		}
	})
	if cmd.batchSet && cmd.batchSize <= 0 {
		return "", command{}, errors.New("-batch must be a positive integer")
	}

	return *envFile, cmd, nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `usage:
  librarysync [-env file] sync <covers|descriptions|downloads> [-batch N]
  librarysync [-env file] inspect <download-queue|telegram-queue|settings> [-status S] [-key K] [-json]
  librarysync [-env file] serve
  librarysync [-env file] watch
  librarysync [-env file] seed [-n N]`)
}

func runSync(ctx context.Context, a *bootstrap.App, cmd command, defaultBatch int, stdout io.Writer, logger *logrus.Logger) int {
	job := cmd.args[0]
	if err := a.Unavailable(job); err != nil {
		logging.LogError(logger.WithField("job", job), "job is not configured", err)
		return exitFatal
	}

	batchSize := defaultBatch
	if cmd.batchSet {
		batchSize = cmd.batchSize
	}

	started := time.Now()
	result, err := a.RunSync.Execute(ctx, app.RunSyncInput{Job: job, BatchSize: batchSize})
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.LogError(logger.WithField("job", job), "sync failed", err)
		return exitFatal
	}
	printSyncResult(stdout, result, time.Since(started))
	if err != nil {
		// Items processed before the interrupt are already persisted.
		logging.LogWarn(logger.WithField("job", job), fmt.Sprintf("sync interrupted: %v", err))
		return exitFatal
	}
	return exitOK
}

func printSyncResult(w io.Writer, result domain.SyncResult, elapsed time.Duration) {
	fmt.Fprintf(w, "job=%s run=%s attempted=%d succeeded=%d failed=%d duration=%s\n",
		result.Job, result.RunID, result.Attempted, result.Succeeded, result.Failed, elapsed.Round(time.Millisecond))
	for _, f := range result.Failures {
		fmt.Fprintf(w, "  %s: %s\n", f.ItemID, f.Reason)
	}
	if hidden := result.Failed - len(result.Failures); hidden > 0 {
		fmt.Fprintf(w, "  ... and %d more\n", hidden)
	}
}

func runInspect(ctx context.Context, a *bootstrap.App, cmd command, stdout io.Writer, logger *logrus.Logger) int {
	rows, err := a.Inspect.Execute(ctx, app.InspectInput{
		Source: cmd.args[0],
		Filter: domain.Filter{Status: cmd.status, Key: cmd.key},
	})
	if err != nil {
		logging.LogError(logger.WithField("source", cmd.args[0]), "inspect failed", err)
		return exitFatal
	}

	if cmd.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(app.NewRowOutputs(rows)); err != nil {
			logging.LogError(logger, "failed to encode rows", err)
			return exitFatal
		}
		return exitOK
	}

	printRows(stdout, rows)
	return exitOK
}

func printRows(w io.Writer, rows []domain.WorkItem) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSOURCE\tSTATUS\tVALUE")
	for _, row := range rows {
		value := "-"
		if row.Value != nil {
			value = *row.Value
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.ID, dash(row.SourceRef), dash(row.Status), value)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d row(s)\n", len(rows))
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func runServe(ctx context.Context, a *bootstrap.App, cfg *config.Config, logger *logrus.Logger) int {
	server := bootstrap.NewHTTPServer(a.RunSync, a.Inspect, cfg.BatchSize, logger)

	errCh := make(chan error, 1)
	go func() {
		logging.LogInfo(logger, "listening on :"+cfg.HTTPPort)
		if err := server.Start(":" + cfg.HTTPPort); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logging.LogError(logger, "server failed", err)
			return exitFatal
		}
		return exitOK
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.LogError(logger, "graceful shutdown failed", err)
		return exitFatal
	}
	return exitOK
}

func runWatch(ctx context.Context, a *bootstrap.App, logger *logrus.Logger) int {
	if err := a.Unavailable(bootstrap.Watch); err != nil {
		logging.LogError(logger, "watch is not configured", err)
		return exitFatal
	}
	logging.LogInfo(logger, "watching for documents")
	if err := a.Watcher.Run(ctx); err != nil {
		logging.LogError(logger, "watch stopped", err)
		return exitFatal
	}
	return exitOK
}

func runSeed(ctx context.Context, a *bootstrap.App, cmd command, stdout io.Writer, logger *logrus.Logger) int {
	res, err := a.Seeder.Seed(ctx, cmd.count)
	if err != nil {
		logging.LogError(logger, "seed failed", err)
		return exitFatal
	}
	fmt.Fprintf(stdout, "seeded %d books and %d queued downloads\n", res.Books, res.Downloads)
	return exitOK
}

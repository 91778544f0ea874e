// Package main provides socratic-migrate, which moves flat legacy session files
// into per-project directories.
//
// Usage:
//
//	socratic-migrate [flags]
//
// Flags:
//
//	--root string   Conversation root (default: storage.root of the ENV config, else ./conversations)
//	--dry-run       Report what would move without touching files
//	--log-level     Log level (debug|info|warn|error)
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/socratic/internal/config"
	logpkg "github.com/kailas-cloud/socratic/internal/logger"
	"github.com/kailas-cloud/socratic/internal/repository/workspace"
	"github.com/kailas-cloud/socratic/internal/version"
)

const defaultRoot = "./conversations"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type migrateOptions struct {
	root     string
	dryRun   bool
	logLevel string
}

func newRootCmd() *cobra.Command {
	var opts migrateOptions

	cmd := &cobra.Command{
		Use:   "socratic-migrate",
		Short: "Move flat conversation files into project directories",
		Long: `Moves <root>/<user>/<session>.json conversation files into
<root>/<user>/<topic>/conversation.json, together with a matching
<session>_kanban.json which becomes kanban.json.

Files starting with "_" and kanban files without a session are reported
and left in place. A session whose target already exists is reported as
failed; the rest of the migration continues.

Examples:
  socratic-migrate --dry-run
  socratic-migrate --root /data/conversations`,
		Version:      version.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.root == "" {
				opts.root = rootFromConfig()
			}
			return runMigrate(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.SetVersionTemplate("socratic-migrate version {{.Version}}\n")

	cmd.Flags().StringVar(&opts.root, "root", "", "Conversation root directory")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Report without moving files")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")

	return cmd
}

// rootFromConfig reads storage.root from the ENV config, if there is one.
func rootFromConfig() string {
	cfg, err := config.Load(config.GetEnv())
	if err != nil || cfg.Storage.Root == "" {
		return defaultRoot
	}
	return cfg.Storage.Root
}

func runMigrate(ctx context.Context, out io.Writer, opts migrateOptions) error {
	logger, err := logpkg.NewLogger("local", opts.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	info, err := os.Stat(opts.root)
	if err != nil {
		return fmt.Errorf("conversation root %s: %w", opts.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("conversation root %s is not a directory", opts.root)
	}

	logger.Info("Migrating conversations", zap.String("root", opts.root), zap.Bool("dry_run", opts.dryRun))

	reports, err := workspace.New(opts.root, logger).Migrate(ctx, opts.dryRun)
	printReports(out, reports, opts.dryRun)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func printReports(out io.Writer, reports []workspace.MigrationReport, dryRun bool) {
	verb := "moved"
	if dryRun {
		verb = "would move"
	}

	var moved, failed int
	for _, r := range reports {
		fmt.Fprintf(out, "[%s]\n", r.User)
		for _, m := range r.Moved {
			kanban := ""
			if m.Kanban {
				kanban = " (+kanban)"
			}
			fmt.Fprintf(out, "  %s %s.json -> %s/%s\n", verb, m.Session, m.Project, kanban)
		}
		for _, f := range r.Failed {
			fmt.Fprintf(out, "  failed %s.json: %v\n", f.Session, f.Err)
		}
		for _, o := range r.Orphans {
			fmt.Fprintf(out, "  orphan kanban %s (left in place)\n", o)
		}
		for _, o := range r.Other {
			fmt.Fprintf(out, "  skipped %s\n", o)
		}
		moved += len(r.Moved)
		failed += len(r.Failed)
	}

	if len(reports) == 0 {
		fmt.Fprintln(out, "Nothing to migrate.")
		return
	}
	fmt.Fprintf(out, "\n%d session(s) %s, %d failed.\n", moved, verb, failed)
}

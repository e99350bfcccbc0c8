package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/slidegrade/internal/watch"
)

func (a *app) watchCmd() *cobra.Command {
	var sf scoreFlags

	cmd := &cobra.Command{
		Use:   "watch SAMPLE DIR",
		Short: "Grade submissions as they are saved into a directory",
		Long: `Watches DIR and grades every presentation created or rewritten in
it once its writes have settled. Scores are printed one per line as
"path<TAB>score<TAB>max". Stop with Ctrl-C.

The extensions and debounce window come from the watch section of the
configuration file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := a.grader(cmd, args[0], &sf).Cached(a.cfg.GetCacheTTL(), a.cfg.GetCacheCleanup())
			// A broken sample would fail every submission.
			if _, err := g.Sample(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			handle := func(ctx context.Context, path string) {
				res, err := g.GradeContext(ctx, path)
				if err != nil {
					a.logger.Warn("submission not graded", zap.String("path", path), zap.Error(err))
					return
				}
				a.logger.Info("submission graded",
					zap.String("path", path),
					zap.Int("score", res.Total),
					zap.Int("max", res.Max))
				fmt.Fprintf(out, "%s\t%d\t%d\n", path, res.Total, res.Max)
			}

			opts := []watch.Option{
				watch.WithDebounce(a.cfg.GetWatchDebounce()),
				watch.WithLogger(a.logger),
			}
			if len(a.cfg.Watch.Extensions) > 0 {
				opts = append(opts, watch.WithExtensions(a.cfg.Watch.Extensions...))
			}
			w, err := watch.New(args[1], handle, opts...)
			if err != nil {
				return fmt.Errorf("failed to create watcher: %w", err)
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return w.Run(ctx)
		},
	}

	sf.register(cmd)
	return cmd
}

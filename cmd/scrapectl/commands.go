package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/user/bizscrape-service/internal/adapter/postgres"
	"github.com/user/bizscrape-service/internal/app"
	"github.com/user/bizscrape-service/internal/delivery/http/response"
	"github.com/user/bizscrape-service/internal/entity"
	"github.com/user/bizscrape-service/pkg/config"
	"github.com/user/bizscrape-service/pkg/logger"
	"go.uber.org/zap"
)

type rootOptions struct {
	envFile string
	user    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "scrapectl",
		Short:         "Run and inspect business data scrapes from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "path to an optional env file")
	cmd.PersistentFlags().StringVar(&opts.user, "user", "cli", "user id recorded on history entries")

	cmd.AddCommand(newMigrateCmd(opts), newRunCmd(opts), newStatsCmd(opts))
	return cmd
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the PostgreSQL schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(opts.envFile)
			if err != nil {
				return err
			}
			db, err := postgres.NewPool(cmd.Context(), cfg.PostgresDSN())
			if err != nil {
				return err
			}
			defer db.Close()
			if err := postgres.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		},
	}
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "run <source> [key=value...]",
		Short:   "Scrape one source and print the response body",
		Example: "  scrapectl run yelp term=pizza location=\"San Francisco, CA\" limit=20",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := entity.ParseSource(args[0])
			if err != nil {
				return err
			}
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), opts, func(a *app.App) error {
				res, err := a.Orchestrator.Run(cmd.Context(), entity.NewScrapeRequest(source, params, opts.user))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), response.Scrape(res))
			})
		},
	}
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [userId]",
		Short: "Print scrape history counts for a user",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user := opts.user
			if len(args) == 1 {
				user = args[0]
			}
			return withApp(cmd.Context(), opts, func(a *app.App) error {
				stats, err := a.History.StatsFor(cmd.Context(), user)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), stats)
			})
		},
	}
}

func withApp(ctx context.Context, opts *rootOptions, fn func(a *app.App) error) error {
	cfg, err := config.LoadFile(opts.envFile)
	if err != nil {
		return err
	}
	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer zl.Sync()

	a, err := app.New(ctx, cfg, zl, prometheus.NewRegistry())
	if err != nil {
		zl.Error("Failed to initialize application", zap.Error(err))
		return err
	}
	defer a.Close()
	return fn(a)
}

// parseParams turns key=value pairs into request parameters. Integer and boolean
// values are typed so providers see the same shapes a JSON body would carry.
func parseParams(args []string) (entity.Params, error) {
	params := entity.Params{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, want key=value", arg)
		}
		if n, err := strconv.Atoi(value); err == nil {
			params[key] = n
			continue
		}
		if b, err := strconv.ParseBool(value); err == nil {
			params[key] = b
			continue
		}
		params[key] = value
	}
	return params, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

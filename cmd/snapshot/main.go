package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/petfoodstore/admin-dashboard/internal/app/api"
	reportingexport "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/adapters/export"
	dashboardmapper "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/adapters/http/mapper"
	reportingworkflows "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/adapters/workflows"
	reportingapp "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/application"
	reportingdomain "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/domain"
	platformobservability "github.com/petfoodstore/admin-dashboard/internal/platform/observability"
)

const (
	formatJSON = "json"
	formatXLSX = "xlsx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:          "snapshot",
		Short:        "Build the admin dashboard once and print or export it",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateFormat(format)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), format, out, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}

func validateFormat(format string) error {
	switch format {
	case formatJSON, formatXLSX:
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use json or xlsx", format)
	}
}

func run(ctx context.Context, format, out string, stdout io.Writer) error {
	cfg, err := api.LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, "admin-dashboard-snapshot",
		platformobservability.WithLogWriter(os.Stderr))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()

	backend, err := api.BuildBackend(ctx, cfg, instruments, api.WithServiceIdentity())
	if err != nil {
		return err
	}
	defer backend.Close()

	board := reportingapp.NewBoard(reportingworkflows.NewInlineDashboardWorkflows(backend.Reporting), cfg.ReportLocation,
		reportingapp.WithBoardLogger(instruments.Logger))
	defer board.Close()
	snap, err := board.Refresh(ctx)
	if err != nil {
		return err
	}

	w := stdout
	if out != "" {
		file, err := os.Create(out)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	if err := render(w, format, *snap.Dashboard, dashboardmapper.NewFormatter(cfg.ReportLocation)); err != nil {
		return err
	}
	instruments.Logger.Info("dashboard snapshot written", slog.String("format", format), slog.String("out", out))
	return nil
}

func render(w io.Writer, format string, dashboard reportingdomain.Dashboard, formatter *dashboardmapper.Formatter) error {
	switch format {
	case formatXLSX:
		return reportingexport.WriteXLSX(w, dashboard, formatter)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(formatter.FromDomainDashboard(dashboard))
	default:
		return validateFormat(format)
	}
}

// ABOUTME: Dashboard subcommand printing the views and optionally an HTML report
// ABOUTME: Performs a single fetch and feeds every renderer from it

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/newspulse/newspulse-client/internal/dashboard"
)

func runDashboard(ctx context.Context, configPath string, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	htmlPath := fs.String("html", "", "also write an HTML report to this file")
	_ = fs.Parse(args)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := setupLogger(cfg.Logging, os.Stderr)

	text := dashboard.NewTextRenderer(os.Stdout, 40)
	var renderer dashboard.Renderer = text
	var report *dashboard.Report
	if *htmlPath != "" {
		report = dashboard.NewReport("NewsPulse Dashboard")
		renderer = dashboard.Multi(text, report)
	}

	res := dashboard.NewController(dashboard.NewClient(cfg.Backend.BaseURL, nil), renderer, logger).Load(ctx)
	if !res.Rendered() {
		return errReported
	}

	if report != nil {
		f, err := os.Create(*htmlPath)
		if err != nil {
			return fmt.Errorf("creating report: %w", err)
		}
		defer f.Close()
		if err := report.WriteHTML(f); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", *htmlPath)
	}
	return nil
}

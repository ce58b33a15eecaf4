package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"confluo/internal/config"
	"confluo/internal/diagnostics"
	"confluo/pkg/logging"
)

var (
	auditSpace   string
	auditRefresh bool
)

// auditCmd scans a space for pages with rendering errors
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Scan a space for pages with rendering errors",
	Long: `Scan every page of a space and report the ones whose stored content
carries rendering error markers, typically left behind by failed macros.

The page index is cached between runs; --refresh discards it first.`,
	Example: `  confluo audit --space DOCS
  confluo audit --space DOCS --refresh`,
	RunE: runAudit,
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if auditSpace == "" {
		auditSpace = cfg.Confluence.SpaceKey
	}
	if auditSpace == "" {
		return fmt.Errorf("space flag is required for audit command")
	}

	auditor := diagnostics.NewAuditor(
		newContentService(cfg),
		newCache(cfg),
		cfg.Cache.TTL,
		logging.NewLogger("diagnostics"),
	)

	ctx := cmd.Context()
	if auditRefresh {
		if err := auditor.Invalidate(ctx, auditSpace); err != nil {
			return fmt.Errorf("failed to drop cached index: %w", err)
		}
	}

	report, err := auditor.Audit(ctx, auditSpace)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	fmt.Print(formatAuditReport(report))
	return nil
}

func formatAuditReport(report *diagnostics.Report) string {
	out := fmt.Sprintf("Audited %d pages in space '%s'\n", report.Scanned, report.SpaceKey)
	if len(report.Findings) == 0 {
		return out + "No rendering errors found\n"
	}

	out += fmt.Sprintf("%d pages with rendering errors:\n\n", len(report.Findings))
	for _, finding := range report.Findings {
		out += fmt.Sprintf("  %s (ID: %s, %d errors)\n      %s\n",
			finding.Title, finding.PageID, finding.Matches, finding.URL)
	}
	return out
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringVarP(&auditSpace, "space", "s", "", "space key (falls back to confluence.space_key)")
	auditCmd.Flags().BoolVar(&auditRefresh, "refresh", false, "rebuild the page index instead of using the cache")
}

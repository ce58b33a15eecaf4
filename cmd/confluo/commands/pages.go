package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"confluo/internal/config"
	"confluo/internal/confluence"
)

var (
	pagesSpace string
	pagesLimit int
)

// pagesCmd lists the pages of a space
var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List pages in a space",
	Long: `List the pages of a space with their IDs and versions. The listing walks
the server's pagination; --limit caps the total number of pages returned.`,
	Example: `  confluo pages --space DOCS
  confluo pages --space DOCS --limit 50`,
	RunE: runPages,
}

func runPages(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if pagesSpace == "" {
		pagesSpace = cfg.Confluence.SpaceKey
	}
	if pagesSpace == "" {
		return fmt.Errorf("space flag is required for pages command")
	}

	service := newContentService(cfg)
	set, err := service.ListPages(cmd.Context(), pagesSpace, pagesLimit)
	if err != nil {
		return fmt.Errorf("failed to list pages: %w", err)
	}

	fmt.Print(formatPageListing(pagesSpace, set))
	return nil
}

func formatPageListing(space string, set *confluence.PageResultSet) string {
	out := fmt.Sprintf("Pages in space '%s':\n\n", space)
	for _, record := range set.Records {
		out += fmt.Sprintf("  %s (ID: %s, v%d)\n", record.Title, record.ID, record.Version)
	}
	out += fmt.Sprintf("\n%d pages", len(set.Records))
	if !set.Complete {
		out += " (truncated)"
	}
	return out + "\n"
}

func init() {
	rootCmd.AddCommand(pagesCmd)

	pagesCmd.Flags().StringVarP(&pagesSpace, "space", "s", "", "space key (falls back to confluence.space_key)")
	pagesCmd.Flags().IntVarP(&pagesLimit, "limit", "l", 0, "maximum number of pages to return (0 = all)")
}

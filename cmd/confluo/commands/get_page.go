package commands

import (
	"fmt"
	"strconv"

	htmldoc "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/spf13/cobra"

	"confluo/internal/config"
	"confluo/internal/confluence"
)

var (
	getPageSpace     string
	getPageIDOrTitle string
	getPageFormat    string
)

// getPageCmd returns the stored content for a page
var getPageCmd = &cobra.Command{
	Use:   "get-page",
	Short: "Return the contents of a wiki page",
	Long: `Fetch the storage-format content of a page by ID or title.

Specify either a numeric page ID or a page title with --page. Title lookups
need a space key via --space; ID lookups do not.`,
	Example: `  confluo get-page --space DOCS --page 123456789
  confluo get-page --space DOCS --page "My Page Title" --format markdown`,
	RunE: runGetPage,
}

func runGetPage(cmd *cobra.Command, args []string) error {
	switch getPageFormat {
	case "", "storage", "markdown":
		// ok (empty treated as storage)
	default:
		return fmt.Errorf("unsupported format: %s", getPageFormat)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	service := newContentService(cfg)
	ctx := cmd.Context()

	var page *confluence.ContentRecord
	if isNumeric(getPageIDOrTitle) {
		page, err = service.GetPageByID(ctx, getPageIDOrTitle)
	} else {
		if getPageSpace == "" {
			getPageSpace = cfg.Confluence.SpaceKey
		}
		if getPageSpace == "" {
			return fmt.Errorf("space flag is required for title lookups")
		}
		page, err = service.GetPage(ctx, getPageSpace, getPageIDOrTitle)
	}
	if err != nil {
		return fmt.Errorf("failed to get page: %w", err)
	}

	fmt.Printf("# %s (ID: %s)\n\n", page.Title, page.ID)

	content, err := renderPageBody(page, getPageFormat)
	if err != nil {
		return err
	}
	fmt.Println(content)
	return nil
}

// renderPageBody returns the page body in the requested format. It does not
// include the header line with title/ID.
func renderPageBody(page *confluence.ContentRecord, format string) (string, error) {
	body := ""
	if page.Body != nil {
		body = *page.Body
	}

	switch format {
	case "", "storage":
		return body, nil
	case "markdown":
		md, err := htmldoc.ConvertString(body)
		if err != nil {
			return body, nil // fall back to raw HTML on conversion errors
		}
		return md, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func init() {
	rootCmd.AddCommand(getPageCmd)

	getPageCmd.Flags().StringVarP(&getPageSpace, "space", "s", "", "space key (falls back to confluence.space_key)")
	getPageCmd.Flags().StringVarP(&getPageIDOrTitle, "page", "p", "", "Page title or ID to fetch (required)")
	getPageCmd.Flags().StringVarP(&getPageFormat, "format", "f", "storage", "Output format: storage|markdown")

	if err := getPageCmd.MarkFlagRequired("page"); err != nil {
		panic(fmt.Sprintf("Failed to mark page flag as required: %v", err))
	}
}

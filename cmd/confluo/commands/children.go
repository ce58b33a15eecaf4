package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"confluo/internal/config"
	"confluo/internal/confluence"
)

var childrenParentID string

// childrenCmd lists the direct children of a page
var childrenCmd = &cobra.Command{
	Use:   "children",
	Short: "List the direct children of a page",
	Long: `List the direct child pages of the given page ID. Only one hierarchy
level is listed; deeper descendants are not followed.`,
	Example: `  confluo children --id 123456789`,
	RunE:    runChildren,
}

func runChildren(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	service := newContentService(cfg)
	children, err := service.ListChildPages(cmd.Context(), childrenParentID)
	if err != nil {
		return fmt.Errorf("failed to list child pages: %w", err)
	}

	fmt.Print(formatChildListing(childrenParentID, children))
	return nil
}

func formatChildListing(parentID string, children []confluence.ChildPageRecord) string {
	if len(children) == 0 {
		return fmt.Sprintf("Page %s has no children\n", parentID)
	}

	out := fmt.Sprintf("Children of page %s:\n\n", parentID)
	for _, child := range children {
		out += fmt.Sprintf("  %s (ID: %s)\n", child.Title, child.ID)
	}
	return out
}

func init() {
	rootCmd.AddCommand(childrenCmd)

	childrenCmd.Flags().StringVar(&childrenParentID, "id", "", "Parent page ID (required)")

	if err := childrenCmd.MarkFlagRequired("id"); err != nil {
		panic(fmt.Sprintf("Failed to mark id flag as required: %v", err))
	}
}

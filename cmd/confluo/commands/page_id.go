package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"confluo/internal/config"
)

var (
	pageIDSpace string
	pageIDTitle string
	pageIDType  string
)

// pageIDCmd resolves a page or blog post title to its numeric id
var pageIDCmd = &cobra.Command{
	Use:   "page-id",
	Short: "Resolve a page title to its numeric ID",
	Example: `  confluo page-id --space DOCS --title "Getting Started"
  confluo page-id --space DOCS --title "Release Notes" --type blogpost`,
	RunE: runPageID,
}

func runPageID(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if pageIDSpace == "" {
		pageIDSpace = cfg.Confluence.SpaceKey
	}
	if pageIDSpace == "" {
		return fmt.Errorf("space flag is required for page-id command")
	}

	service := newContentService(cfg)
	id, err := service.GetPageID(cmd.Context(), pageIDSpace, pageIDTitle, pageIDType)
	if err != nil {
		return fmt.Errorf("failed to resolve page id: %w", err)
	}

	fmt.Println(id)
	return nil
}

func init() {
	rootCmd.AddCommand(pageIDCmd)

	pageIDCmd.Flags().StringVarP(&pageIDSpace, "space", "s", "", "space key (falls back to confluence.space_key)")
	pageIDCmd.Flags().StringVarP(&pageIDTitle, "title", "t", "", "Page title to resolve (required)")
	pageIDCmd.Flags().StringVar(&pageIDType, "type", "", "Content type filter: page|blogpost")

	if err := pageIDCmd.MarkFlagRequired("title"); err != nil {
		panic(fmt.Sprintf("Failed to mark title flag as required: %v", err))
	}
}

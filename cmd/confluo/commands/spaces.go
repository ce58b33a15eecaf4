package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"confluo/internal/config"
	"confluo/internal/confluence"
)

var spacesLimit int

// spacesCmd lists the spaces on the server
var spacesCmd = &cobra.Command{
	Use:   "spaces",
	Short: "List spaces on the server",
	Example: `  confluo spaces
  confluo spaces --limit 10`,
	RunE: runSpaces,
}

func runSpaces(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	service := newContentService(cfg)
	spaces, err := service.ListSpaces(cmd.Context(), spacesLimit)
	if err != nil {
		return fmt.Errorf("failed to list spaces: %w", err)
	}

	fmt.Print(formatSpaceListing(spaces))
	return nil
}

func formatSpaceListing(spaces []confluence.SpaceRecord) string {
	title := cases.Title(language.English)

	out := ""
	for _, space := range spaces {
		label := title.String(string(space.Type))
		if label == "" {
			label = "Unknown"
		}
		out += fmt.Sprintf("  %-12s %s  %s\n", space.Key, label, space.Name)
	}
	out += fmt.Sprintf("\n%d spaces\n", len(spaces))
	return out
}

func init() {
	rootCmd.AddCommand(spacesCmd)

	spacesCmd.Flags().IntVarP(&spacesLimit, "limit", "l", 0, "maximum number of spaces to return (0 = all)")
}

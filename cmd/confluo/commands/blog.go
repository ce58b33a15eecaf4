package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"confluo/internal/config"
)

var (
	blogSpace string
	blogTitle string
	blogDate  string
)

// blogCmd looks a blog post up by space and title
var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "Fetch a blog post by title",
	Long: `Fetch a blog post by space and title. When several posts share a title,
--date narrows the lookup to a posting day in YYYY-MM-DD form.`,
	Example: `  confluo blog --space TEAM --title "Sprint Review"
  confluo blog --space ~alice --title "Retro Notes" --date 2024-06-01`,
	RunE: runBlog,
}

func runBlog(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if blogSpace == "" {
		blogSpace = cfg.Confluence.SpaceKey
	}
	if blogSpace == "" {
		return fmt.Errorf("space flag is required for blog command")
	}

	service := newContentService(cfg)
	post, err := service.GetBlogEntry(cmd.Context(), blogSpace, blogTitle, blogDate)
	if err != nil {
		return fmt.Errorf("failed to get blog entry: %w", err)
	}

	fmt.Printf("# %s (ID: %s)\n\n", post.Title, post.ID)
	if post.Body != nil {
		fmt.Println(*post.Body)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(blogCmd)

	blogCmd.Flags().StringVarP(&blogSpace, "space", "s", "", "space key, personal spaces take the ~user form")
	blogCmd.Flags().StringVarP(&blogTitle, "title", "t", "", "Blog post title (required)")
	blogCmd.Flags().StringVarP(&blogDate, "date", "d", "", "Posting day, YYYY-MM-DD (optional)")

	if err := blogCmd.MarkFlagRequired("title"); err != nil {
		panic(fmt.Sprintf("Failed to mark title flag as required: %v", err))
	}
}

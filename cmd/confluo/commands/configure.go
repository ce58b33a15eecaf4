package commands

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"confluo/internal/config"
)

var (
	configureYes   bool
	configurePrint bool
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Create or edit the configuration file interactively",
	Long: `Interactively create or edit the configuration file (config.yaml by default).

Prompts for the server connection, optional legacy RPC credentials and the
cache backend, then writes the result as YAML.`,
	Example: `  confluo configure
  confluo configure --print`,
	RunE: runConfigure,
}

func runConfigure(cmd *cobra.Command, args []string) error {
	cfg := &config.Config{}
	if data, err := os.ReadFile(configFile); err == nil {
		// Pre-fill prompts from the existing file; a broken file starts fresh.
		_ = yaml.Unmarshal(data, cfg)
	}

	if err := promptConnection(cfg); err != nil {
		return err
	}
	if err := promptLegacy(cfg); err != nil {
		return err
	}
	if err := promptCache(cfg); err != nil {
		return err
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}

	if configurePrint {
		cmd.Print(string(out))
		return nil
	}

	if !configureYes {
		confirm := false
		prompt := &survey.Confirm{Message: "Save configuration to " + configFile + "?", Default: true}
		if err := survey.AskOne(prompt, &confirm); err != nil {
			return err
		}
		if !confirm {
			fmt.Println("Aborted (no changes saved).")
			return nil
		}
	}

	if err := os.WriteFile(configFile, out, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	cmd.Printf("Configuration saved to %s\n", configFile)
	return nil
}

func promptConnection(cfg *config.Config) error {
	questions := []*survey.Question{
		{
			Name:     "baseURL",
			Prompt:   &survey.Input{Message: "Server base URL:", Default: cfg.Confluence.BaseURL},
			Validate: survey.Required,
		},
		{
			Name:   "username",
			Prompt: &survey.Input{Message: "Username (email):", Default: cfg.Confluence.Username},
		},
		{
			Name:   "spaceKey",
			Prompt: &survey.Input{Message: "Default space key (optional):", Default: cfg.Confluence.SpaceKey},
		},
	}

	answers := struct {
		BaseURL  string
		Username string
		SpaceKey string
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	cfg.Confluence.BaseURL = answers.BaseURL
	cfg.Confluence.Username = answers.Username
	cfg.Confluence.SpaceKey = answers.SpaceKey

	token := ""
	if err := survey.AskOne(&survey.Password{Message: "API token:"}, &token); err != nil {
		return err
	}
	if token != "" {
		cfg.Confluence.APIToken = token
	}
	return nil
}

func promptLegacy(cfg *config.Config) error {
	useLegacy := cfg.UseLegacy()
	prompt := &survey.Confirm{Message: "Use the legacy RPC endpoint?", Default: useLegacy}
	if err := survey.AskOne(prompt, &useLegacy); err != nil {
		return err
	}
	if !useLegacy {
		cfg.Legacy = config.LegacyConfig{}
		return nil
	}

	if err := survey.AskOne(&survey.Input{Message: "RPC endpoint URL:", Default: cfg.Legacy.URL}, &cfg.Legacy.URL, survey.WithValidator(survey.Required)); err != nil {
		return err
	}
	token := ""
	if err := survey.AskOne(&survey.Password{Message: "RPC token:"}, &token); err != nil {
		return err
	}
	if token != "" {
		cfg.Legacy.Token = token
	}
	return nil
}

func promptCache(cfg *config.Config) error {
	return survey.AskOne(
		&survey.Input{Message: "Redis address (empty for in-memory cache):", Default: cfg.Cache.RedisAddr},
		&cfg.Cache.RedisAddr,
	)
}

func init() {
	rootCmd.AddCommand(configureCmd)

	configureCmd.Flags().BoolVar(&configureYes, "yes", false, "Automatically confirm saving changes")
	configureCmd.Flags().BoolVar(&configurePrint, "print", false, "Print resulting YAML instead of writing to file")
}

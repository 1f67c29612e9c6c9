package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docx/pkg/docx"
)

type rootOptions struct {
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "docx",
		Short: "Inspect and edit the story parts of .docx files",
		Long: `docx opens Word documents and works on their story parts: the main
document body, headers and footers.

It lists parts and styles, resolves style names to the ids Word stores, and
places pictures inline at the end of a story.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return opts.applyConfig()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error, off)")

	cmd.AddCommand(newPartsCmd())
	cmd.AddCommand(newStylesCmd())
	cmd.AddCommand(newStyleIDCmd())
	cmd.AddCommand(newAddPictureCmd())

	return cmd
}

// applyConfig layers the config file and --log-level over the environment
func (o *rootOptions) applyConfig() error {
	config := docx.ConfigFromEnvironment()

	if o.configFile != "" {
		loaded, err := docx.LoadConfigFile(o.configFile, config)
		if err != nil {
			return err
		}
		config = loaded
	}

	if o.logLevel != "" {
		config.LogLevel = o.logLevel
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	docx.SetGlobalConfig(config)
	return nil
}

// parseStyleType reads a --type flag value
func parseStyleType(s string) (docx.StyleType, error) {
	st, err := docx.ParseStyleType(s)
	if err != nil {
		return 0, fmt.Errorf("--type: %w", err)
	}
	return st, nil
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	figmaassets "github.com/hellenic-development/figma-assets"
	"github.com/hellenic-development/figma-assets/pkg/config"
	"github.com/hellenic-development/figma-assets/pkg/reporter"
	"github.com/hellenic-development/figma-assets/pkg/resolver"
)

var (
	configFile     string
	accessToken    string
	platform       string
	exportAll      bool
	findDuplicates bool
	section        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "figma-assets [componentNames...]",
		Short: "Export Figma components as platform asset files",
		Long: "A tool that fetches icon/ and img/ components from a Figma document and exports them\n" +
			"as Android vector drawables and DPI-scaled images, or iOS asset-catalog imagesets.",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&configFile, "config", "c", "figma-assets.yaml", "Path to the YAML configuration file")
	rootCmd.Flags().StringVarP(&accessToken, "token", "t", "", "Figma Personal Access Token (defaults to FIGMA_TOKEN)")
	rootCmd.Flags().StringVarP(&platform, "platform", "p", "", "Override the configured platform: android or ios")
	rootCmd.Flags().BoolVar(&exportAll, "all", false, "Export every icon/ and img/ component")
	rootCmd.Flags().BoolVar(&findDuplicates, "find-duplicate", false, "Report duplicate component names and exit")
	rootCmd.Flags().StringVar(&section, "section", "", "Export every component whose path contains the given section")

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// No selection at all: show usage and exit cleanly.
	if len(args) == 0 && !exportAll && !findDuplicates && section == "" {
		return cmd.Help()
	}

	// Best-effort .env so FIGMA_TOKEN can live next to the config.
	_ = godotenv.Load()
	if accessToken == "" {
		accessToken = os.Getenv("FIGMA_TOKEN")
	}
	if accessToken == "" {
		return fmt.Errorf("access token is required: pass --token or set FIGMA_TOKEN")
	}

	cfg, err := config.Load(configFile, platform)
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "figma-assets",
	})

	var bar *progressbar.ProgressBar
	opts := figmaassets.Options{
		AccessToken:    accessToken,
		Config:         cfg,
		Names:          args,
		All:            exportAll,
		Section:        section,
		FindDuplicates: findDuplicates,
		Logger:         logger,
		OnProgress: func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("Exporting components"),
					progressbar.OptionSetWidth(40),
					progressbar.OptionShowCount(),
					progressbar.OptionOnCompletion(func() {
						fmt.Fprintln(os.Stderr)
					}),
				)
			}
			_ = bar.Set(done)
		},
	}

	result, err := figmaassets.Run(opts)
	if err != nil {
		return renderRunError(err, cfg.FileID)
	}

	if findDuplicates {
		reporter.Duplicates(os.Stdout, result.Duplicates, cfg.FileID)
		return nil
	}

	reporter.NotFound(os.Stdout, result.NotFound)
	reporter.Summary(os.Stdout, result.Outcomes)
	return nil
}

// renderRunError gives ambiguity errors their full diagnostic (every
// conflicting name with deep links) before the process exits non-zero.
func renderRunError(err error, fileID string) error {
	var ambErr *resolver.AmbiguityError
	if errors.As(err, &ambErr) {
		reporter.Duplicates(os.Stderr, ambErr.Groups, fileID)
		return fmt.Errorf("ambiguous component names, nothing exported")
	}
	return err
}

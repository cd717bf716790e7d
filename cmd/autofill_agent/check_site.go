package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/redtoridefire/smart-autofill/internal/observability"
	"github.com/redtoridefire/smart-autofill/internal/sites"
)

var checkSiteCommand = &cobra.Command{
	Use:   "check-site <url>",
	Short: "Check whether a URL passes the site allowlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckSiteCmd,
}

var (
	checkSiteConfigPath string
	checkSitePatterns   bool
)

func init() {
	checkSiteCommand.Flags().StringVar(&checkSiteConfigPath, "config", "", "Path to config.json file")
	checkSiteCommand.Flags().BoolVar(&checkSitePatterns, "patterns", false, "Also print the effective allowlist patterns")
	rootCmd.AddCommand(checkSiteCommand)
}

func runCheckSiteCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfigFile(checkSiteConfigPath)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, &cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	settings, err := st.Settings(ctx)
	if err != nil {
		return err
	}
	gate := sites.NewGate(settings.AllowedSites, settings.DisabledDefaultSites)

	rawURL := args[0]
	if gate.Allowed(rawURL) {
		fmt.Printf("allowed: %s\n", rawURL)
	} else {
		fmt.Printf("not allowed: %s\n", rawURL)
	}

	if checkSitePatterns {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintSitePatterns(gate.Patterns())
	}
	return nil
}

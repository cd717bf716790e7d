package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/redtoridefire/smart-autofill/internal/observability"
)

var applicationsCommand = &cobra.Command{
	Use:   "applications",
	Short: "Show recent application history and today's fill count",
	RunE:  runApplicationsCmd,
}

var (
	applicationsConfigPath string
	applicationsLimit      int
)

func init() {
	applicationsCommand.Flags().StringVar(&applicationsConfigPath, "config", "", "Path to config.json file")
	applicationsCommand.Flags().IntVar(&applicationsLimit, "limit", 20, "Maximum entries to show")
	rootCmd.AddCommand(applicationsCommand)
}

func runApplicationsCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfigFile(applicationsConfigPath)
	if err != nil {
		return err
	}
	st, err := openStore(ctx, &cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.RecentApplications(ctx, applicationsLimit)
	if err != nil {
		return err
	}
	today, err := st.FilledToday(ctx)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintApplications(records, today)
	return nil
}

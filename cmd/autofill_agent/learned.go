package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/redtoridefire/smart-autofill/internal/observability"
)

var learnedCommand = &cobra.Command{
	Use:   "learned",
	Short: "Inspect or clear learned form responses",
}

var learnedListCommand = &cobra.Command{
	Use:   "list",
	Short: "List every learned response",
	RunE:  runLearnedListCmd,
}

var learnedClearCommand = &cobra.Command{
	Use:   "clear",
	Short: "Delete every learned response",
	RunE:  runLearnedClearCmd,
}

var learnedConfigPath string

func init() {
	learnedCommand.PersistentFlags().StringVar(&learnedConfigPath, "config", "", "Path to config.json file")
	learnedCommand.AddCommand(learnedListCommand)
	learnedCommand.AddCommand(learnedClearCommand)
	rootCmd.AddCommand(learnedCommand)
}

func runLearnedListCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfigFile(learnedConfigPath)
	if err != nil {
		return err
	}
	st, err := openStore(ctx, &cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	learned, err := st.LearnedResponses(ctx)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintLearned(learned)
	return nil
}

func runLearnedClearCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfigFile(learnedConfigPath)
	if err != nil {
		return err
	}
	st, err := openStore(ctx, &cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.ClearLearned(ctx); err != nil {
		return err
	}
	fmt.Println("Learned responses cleared")
	return nil
}

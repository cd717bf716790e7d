package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/redtoridefire/smart-autofill/internal/dom"
	"github.com/redtoridefire/smart-autofill/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for filling application forms and managing the candidate profile, learned responses, and application history.`,
	RunE:  runServe,
}

var (
	serveConfigPath string
	servePort       int
	serveUseBrowser bool
	serveVerbose    bool
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Allow browser-driven fills for url requests (requires Chrome)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfigFile(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") || cfg.Port == 0 {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = serveUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = serveVerbose
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("AUTOFILL_API_KEY")
	}

	st, err := openStore(ctx, &cfg)
	if err != nil {
		return err
	}

	serverCfg := server.Config{
		Port:    cfg.Port,
		APIKey:  apiKey,
		Store:   st,
		Verbose: cfg.Verbose,
	}
	if cfg.UseBrowser {
		verbose := cfg.Verbose
		serverCfg.Pages = func(ctx context.Context, url string) (dom.Page, func(), error) {
			browser, err := dom.NewBrowser(ctx, url, dom.BrowserOptions{Verbose: verbose})
			if err != nil {
				return nil, nil, err
			}
			return browser, func() { browser.Close() }, nil
		}
	}

	srv, err := server.New(serverCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

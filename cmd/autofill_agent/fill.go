package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/redtoridefire/smart-autofill/internal/config"
	"github.com/redtoridefire/smart-autofill/internal/dom"
	"github.com/redtoridefire/smart-autofill/internal/fetch"
	"github.com/redtoridefire/smart-autofill/internal/filling"
	"github.com/redtoridefire/smart-autofill/internal/observability"
)

var fillCommand = &cobra.Command{
	Use:   "fill",
	Short: "Fill a job application form from the saved profile",
	Long: `Classifies the form fields of an application page, resolves values from the candidate profile and learned answers, and writes them in.

The page comes from --html (a local file), --url (fetched over HTTP), or --url with --use-browser (driven in a headless browser). Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runFillCmd,
}

var (
	fillConfigPath   string
	fillURL          string
	fillHTMLPath     string
	fillAutomatic    bool
	fillUseBrowser   bool
	fillWatch        time.Duration
	fillSpeedMS      int
	fillName         string
	fillEmail        string
	fillPhone        string
	fillLinkedIn     string
	fillLocation     string
	fillWorkAuth     string
	fillResumePath   string
	fillAutoNavigate bool
	fillVerbose      bool
)

func init() {
	fillCommand.Flags().StringVar(&fillConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	fillCommand.Flags().StringVarP(&fillURL, "url", "u", "", "Application page URL (mutually exclusive with --html)")
	fillCommand.Flags().StringVar(&fillHTMLPath, "html", "", "Path to a saved application page (mutually exclusive with --url)")
	fillCommand.Flags().BoolVar(&fillAutomatic, "automatic", false, "Treat the run as automatic: honor the enabled switch and site allowlist")
	fillCommand.Flags().BoolVar(&fillUseBrowser, "use-browser", false, "Drive a headless browser for JavaScript-rendered forms (requires Chrome)")
	fillCommand.Flags().DurationVar(&fillWatch, "watch", 0, "Keep watching for injected fields for this long after the first pass (browser only)")
	fillCommand.Flags().IntVar(&fillSpeedMS, "fill-speed", 0, "Delay between fields in milliseconds")

	fillCommand.Flags().StringVarP(&fillName, "name", "n", "", "Candidate full name")
	fillCommand.Flags().StringVar(&fillEmail, "email", "", "Candidate email")
	fillCommand.Flags().StringVar(&fillPhone, "phone", "", "Candidate phone")
	fillCommand.Flags().StringVar(&fillLinkedIn, "linkedin", "", "LinkedIn profile URL")
	fillCommand.Flags().StringVar(&fillLocation, "location", "", "Location as \"City, State\"")
	fillCommand.Flags().StringVar(&fillWorkAuth, "work-auth", "", "Work authorization answer")
	fillCommand.Flags().StringVarP(&fillResumePath, "resume", "r", "", "Path to resume file (.txt or .json)")
	fillCommand.Flags().BoolVar(&fillAutoNavigate, "auto-navigate", false, "Click continue/next after a successful automatic fill")
	fillCommand.Flags().BoolVarP(&fillVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(fillCommand)
}

func runFillCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfigFile(fillConfigPath)
	if err != nil {
		return err
	}

	// Command-line args take priority over config file values
	if cmd.Flags().Changed("name") {
		cfg.Name = fillName
	}
	if cmd.Flags().Changed("email") {
		cfg.Email = fillEmail
	}
	if cmd.Flags().Changed("phone") {
		cfg.Phone = fillPhone
	}
	if cmd.Flags().Changed("linkedin") {
		cfg.LinkedIn = fillLinkedIn
	}
	if cmd.Flags().Changed("location") {
		cfg.Location = fillLocation
	}
	if cmd.Flags().Changed("work-auth") {
		cfg.WorkAuth = fillWorkAuth
	}
	if cmd.Flags().Changed("resume") {
		cfg.ResumePath = fillResumePath
	}
	if cmd.Flags().Changed("fill-speed") {
		cfg.FillSpeedMS = fillSpeedMS
	}
	if cmd.Flags().Changed("auto-navigate") {
		cfg.AutoNavigate = fillAutoNavigate
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = fillUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = fillVerbose
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if fillURL == "" && fillHTMLPath == "" {
		return fmt.Errorf("either --url or --html is required")
	}
	if fillURL != "" && fillHTMLPath != "" {
		return fmt.Errorf("--url and --html are mutually exclusive")
	}

	st, err := openStore(ctx, &cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	page, cleanup, err := openFillPage(ctx, &cfg)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	session := filling.NewSession(page, st, filling.Options{
		Manual:  !fillAutomatic,
		Verbose: cfg.Verbose,
	})
	result, err := session.Fill(ctx)
	if err != nil {
		return err
	}

	if fillWatch > 0 && cfg.UseBrowser {
		watchCtx, cancel := context.WithTimeout(ctx, fillWatch)
		defer cancel()
		sub := session.Watch(watchCtx, filling.DefaultWatchInterval)
		if err := sub.Wait(); err != nil {
			log.Printf("[FILL] watch ended with error: %v", err)
		}
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintFillResult(result)
	if !result.Success {
		return fmt.Errorf("fill did not complete: %s", result.Message)
	}
	return nil
}

// openFillPage builds the page backend: local file, fetched HTML, or a
// live browser page.
func openFillPage(ctx context.Context, cfg *config.Config) (dom.Page, func(), error) {
	if fillHTMLPath != "" {
		raw, err := os.ReadFile(fillHTMLPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read HTML file %s: %w", fillHTMLPath, err)
		}
		doc, err := dom.NewDocument(string(raw), fillURL)
		if err != nil {
			return nil, nil, err
		}
		return doc, nil, nil
	}

	if cfg.UseBrowser {
		browser, err := dom.NewBrowser(ctx, fillURL, dom.BrowserOptions{Verbose: cfg.Verbose})
		if err != nil {
			return nil, nil, err
		}
		return browser, func() { browser.Close() }, nil
	}

	if platform := fetch.DetectPlatform(fillURL); fetch.RequiresBrowser(platform) {
		log.Printf("[FILL] %s renders its form with JavaScript; consider --use-browser", platform)
	}

	result, err := fetch.URL(ctx, fillURL, nil)
	if err != nil {
		return nil, nil, err
	}
	doc, err := dom.NewDocument(result.HTML, fillURL)
	if err != nil {
		return nil, nil, err
	}
	return doc, nil, nil
}

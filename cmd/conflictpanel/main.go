package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmcgrath/conflictpanel/internal/config"
	"github.com/dmcgrath/conflictpanel/internal/database"
	"github.com/dmcgrath/conflictpanel/internal/export"
	"github.com/dmcgrath/conflictpanel/internal/pipeline"
	"github.com/dmcgrath/conflictpanel/internal/report"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "conflictpanel",
	Short:   "Build region-year conflict panels",
	Long:    "conflictpanel merges a coded household-survey extract with a geocoded violent-event log into an analysis panel keyed by region and year, with lagged prior-year event counts per actor class.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(reportCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("conflictpanel", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/conflictpanel/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to point at your survey extract, layout descriptor, and event log.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show run archive status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Println("Run archive:")
		fmt.Printf("  Runs: %d\n", stats.Runs)
		fmt.Printf("  Panel rows: %d\n", stats.PanelRows)
		fmt.Printf("  Region profiles: %d\n", stats.RegionProfiles)
		fmt.Printf("  Dropped events (all runs): %d\n", stats.TotalDroppedEvents)
		if stats.LastRunAt != "" {
			fmt.Printf("  Last run: %s\n", stats.LastRunAt)
		}
		return nil
	},
}

// --- build command ---

var (
	dryRun     bool
	surveyPath string
	layoutPath string
	eventsPath string
	outPath    string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the full pipeline: decode -> aggregate -> load events -> merge -> lag -> write",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyPathOverrides()

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		pipe := pipeline.New(cfg, db)

		var result *pipeline.Result
		if dryRun {
			result = pipe.DryRun()
		} else {
			result = pipe.Run()
		}

		failed := false
		for i, step := range result.Steps {
			fmt.Printf("\nStep %d/%d: %s\n", i+1, len(result.Steps), step.Name)
			if step.Err != nil {
				fmt.Printf("  Error: %v\n", step.Err)
				failed = true
			} else {
				fmt.Printf("  %s\n", step.Summary)
			}
		}

		if failed {
			return fmt.Errorf("pipeline aborted")
		}
		if !dryRun {
			fmt.Printf("\nPanel complete. Run 'conflictpanel report' for a run summary.\n")
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without executing")
	buildCmd.Flags().StringVar(&surveyPath, "survey", "", "Override survey extract path")
	buildCmd.Flags().StringVar(&layoutPath, "layout", "", "Override layout descriptor path")
	buildCmd.Flags().StringVar(&eventsPath, "events", "", "Override event log path")
	buildCmd.Flags().StringVar(&outPath, "out", "", "Override panel output path")
}

func applyPathOverrides() {
	if surveyPath != "" {
		cfg.Inputs.SurveyPath = surveyPath
	}
	if layoutPath != "" {
		cfg.Inputs.LayoutPath = layoutPath
	}
	if eventsPath != "" {
		cfg.Inputs.EventsPath = eventsPath
	}
	if outPath != "" {
		cfg.Output.PanelPath = outPath
	}
}

// --- export command ---

var (
	exportRunID string
	exportPath  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Re-write the panel CSV for a stored run",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		run, err := resolveRun(db, exportRunID)
		if err != nil {
			return err
		}

		rows, err := db.GetPanelRows(run.ID)
		if err != nil {
			return fmt.Errorf("loading panel rows: %w", err)
		}

		target := run.PanelPath
		if exportPath != "" {
			target = exportPath
		}
		if err := export.WritePanel(target, rows); err != nil {
			return err
		}
		fmt.Printf("Wrote %d rows to %s\n", len(rows), target)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportRunID, "run", "", "Run ID (defaults to the latest run)")
	exportCmd.Flags().StringVar(&exportPath, "out", "", "Override output path")
}

// --- report command ---

var (
	reportRunID string
	reportDir   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a Markdown and HTML summary of a stored run",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		run, err := resolveRun(db, reportRunID)
		if err != nil {
			return err
		}

		coverage, err := db.GetRegionCoverage(run.ID)
		if err != nil {
			return fmt.Errorf("loading region coverage: %w", err)
		}

		md := report.Compose(run, coverage)
		mdPath := filepath.Join(reportDir, "report.md")
		htmlPath := filepath.Join(reportDir, "report.html")
		if err := report.Write(md, mdPath, htmlPath); err != nil {
			return err
		}
		fmt.Printf("Wrote %s and %s\n", mdPath, htmlPath)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportRunID, "run", "", "Run ID (defaults to the latest run)")
	reportCmd.Flags().StringVar(&reportDir, "dir", ".", "Directory to write the report into")
}

func resolveRun(db *database.DB, id string) (*database.Run, error) {
	if id != "" {
		run, err := db.GetRun(id)
		if err != nil {
			return nil, err
		}
		if run == nil {
			return nil, fmt.Errorf("run %s not found", id)
		}
		return run, nil
	}

	run, err := db.GetLatestRun()
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("no runs in the archive; run 'conflictpanel build' first")
	}
	return run, nil
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "conflictpanel.db")
	return database.Open(dbPath)
}

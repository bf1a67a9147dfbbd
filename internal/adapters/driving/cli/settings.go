package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

var settingsJSON bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure storage, catalog and personalization settings.
Settings live in ~/.shopsearch/config.toml and apply on the next run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsBackendCmd = &cobra.Command{
	Use:   "backend [sqlite|badger|memory]",
	Short: "Set the storage backend",
	Long: `Set where shopper profiles and the query log are kept.

Available backends:
  sqlite - Single SQLite database file (default)
  badger - Badger key-value store directory
  memory - Nothing is saved between runs`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsBackend,
}

var settingsCatalogCmd = &cobra.Command{
	Use:   "catalog [path]",
	Short: "Use a JSON catalog file",
	Long: `Point shopsearch at a JSON catalog file. The file is watched while the
TUI or MCP server runs and reloaded when it changes. Run without a path to
go back to the built-in catalog.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsCatalog,
}

func init() {
	settingsCmd.PersistentFlags().BoolVar(&settingsJSON, "json", false, "output settings as JSON")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsBackendCmd)
	settingsCmd.AddCommand(settingsCatalogCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settingsJSON {
		return printJSON(cmd, settings)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Printf("Shopper: %s\n", settings.UserID)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	cmd.Printf("  Data dir: %s\n", dataDir)
	cmd.Println()

	cmd.Println("[Catalog]")
	if settings.Catalog.Path == "" {
		cmd.Println("  Source: built-in")
	} else {
		cmd.Printf("  Source: %s\n", settings.Catalog.Path)
	}
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Autocomplete limit: %d\n", settings.Search.AutocompleteLimit)
	cmd.Printf("  Seed popular queries: %s\n", onOff(settings.Search.SeedPopularQueries))
	cmd.Println()

	cmd.Println("[Recommendations]")
	cmd.Printf("  Limit: %d\n", settings.Recommendation.Limit)
	cmd.Printf("  Similar limit: %d\n", settings.Recommendation.SimilarLimit)
	cmd.Println()

	cmd.Println("[Personalization]")
	cmd.Printf("  Enabled: %s\n", onOff(settings.Personalization.Enabled))
	cmd.Printf("  Adaptive sorting: %s\n", onOff(settings.Personalization.AdaptiveSorting))
	cmd.Println()

	cmd.Println("[MCP]")
	cmd.Printf("  Rate: %.1f calls/s, burst %d\n", settings.MCP.RatePerSecond, settings.MCP.Burst)
	return nil
}

func runSettingsBackend(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	backend := domain.StorageBackend(strings.ToLower(args[0]))
	if !backend.IsValid() {
		names := make([]string, 0, len(domain.AllStorageBackends()))
		for _, b := range domain.AllStorageBackends() {
			names = append(names, b.String())
		}
		return fmt.Errorf("unknown backend %q (choose %s): %w",
			args[0], strings.Join(names, ", "), domain.ErrUnsupportedType)
	}

	if err := settingsService.SetStorageBackend(backend); err != nil {
		return fmt.Errorf("failed to set storage backend: %w", err)
	}
	cmd.Printf("Storage backend set to: %s\n", backend.Description())
	cmd.Println("Existing profiles stay in the previous backend.")
	return nil
}

func runSettingsCatalog(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	path := ""
	if len(args) > 0 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", args[0], err)
		}
		path = abs
	}

	if err := settingsService.SetCatalogPath(path); err != nil {
		return fmt.Errorf("failed to set catalog: %w", err)
	}
	if path == "" {
		cmd.Println("Using the built-in catalog.")
	} else {
		cmd.Printf("Catalog set to: %s\n", path)
	}
	return nil
}

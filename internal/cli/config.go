package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/storefront/internal/catalog"
	"github.com/yildizm/storefront/internal/config"
	"github.com/yildizm/storefront/internal/emoji"
	"github.com/yildizm/storefront/internal/logger"
	"gopkg.in/yaml.v3"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage storefront configuration",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigValidateCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		outputPath string
		minimal    bool
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		Example: `  storefront config init
  storefront config init --minimal --output ~/.config/storefront/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				outputPath = ".storefront.yaml"
			}
			if !force && fileExists(outputPath) {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", outputPath)
			}

			if dir := filepath.Dir(outputPath); dir != "." && dir != "/" {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			content := config.SampleConfig()
			if minimal {
				content = config.MinimalSampleConfig()
			}
			if err := os.WriteFile(outputPath, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration file created at: %s\n", emoji.GetEmoji("success"), outputPath)
			return nil
		},
	}

	initCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path for config file (default: .storefront.yaml)")
	initCmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "write only the catalog location")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing config file")

	return initCmd
}

func newConfigShowCommand() *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display the effective storefront settings",
		Long: `Display the configuration after defaults, the config file and
STOREFRONT_ environment overrides are merged.

The text format shows the category menu as the browser numbers it and
the cart options.`,
		Example: `  storefront config show
  storefront config show --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				renderSettings(out, cfg)
			case "json":
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config to JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal config to YAML: %w", err)
				}
				fmt.Fprint(out, string(data))
			default:
				return fmt.Errorf("unsupported format: %s (use text, json or yaml)", format)
			}
			return nil
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json, yaml)")

	return showCmd
}

// renderSettings prints the catalog location, the numbered category menu
// and the cart options
func renderSettings(out io.Writer, cfg *config.Config) {
	source := "defaults"
	if cfgFile != "" {
		source = cfgFile
	} else if path, found := config.FindConfigFile(); found {
		source = path
	}

	fmt.Fprintf(out, "%s Config: %s\n", emoji.GetEmoji("file"), source)
	fmt.Fprintf(out, "%s Catalog: %s (timeout %s)\n", emoji.GetEmoji("store"), catalogLocation(cfg), cfg.Catalog.Timeout)

	fmt.Fprintf(out, "\n%s Categories:\n", emoji.GetEmoji("category"))
	fmt.Fprintln(out, "  0 All")
	for i, c := range configuredCategories(cfg).Categories() {
		fmt.Fprintf(out, "  %d %s\n", i+1, c)
	}

	fmt.Fprintf(out, "\n%s Cart:\n", emoji.GetEmoji("cart"))
	fmt.Fprintf(out, "  Currency: %s\n", cfg.Cart.CurrencySymbol)
	fmt.Fprintf(out, "  Open cart after add: %t\n", cfg.Cart.ShouldNavigateOnAdd())
}

func newConfigValidateCommand() *cobra.Command {
	var check bool

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and the catalog it points at",
		Long: `Validate the configuration file, then load the full catalog once.

For a file source the fixture must exist and parse; for an http source
the base URL must answer with a product listing. Categories found in the
catalog but missing from the menu are reported. Use --check=false to
validate the file alone.`,
		Example: `  storefront config validate
  storefront config validate --config storefront.yaml --check=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				fmt.Fprintf(out, "%s Configuration is invalid: %v\n", emoji.GetEmoji("error"), err)
				return err
			}
			fmt.Fprintf(out, "%s Configuration is valid\n", emoji.GetEmoji("success"))

			if !check {
				return nil
			}
			return checkCatalog(cmd, out, cfg)
		},
	}

	validateCmd.Flags().BoolVar(&check, "check", true, "load the catalog to verify it is reachable")

	return validateCmd
}

// checkCatalog loads every product once through the configured source
func checkCatalog(cmd *cobra.Command, out io.Writer, cfg *config.Config) error {
	log := logger.NewWithWriter("storefront", isVerbose, cmd.ErrOrStderr())

	loader, err := newLoader(cfg, log)
	if err != nil {
		fmt.Fprintf(out, "%s Catalog %s is unusable: %v\n", emoji.GetEmoji("error"), catalogLocation(cfg), err)
		return err
	}

	result, err := loader.Fetch(cmd.Context(), catalog.All)
	if err != nil {
		return err
	}
	if !result.OK() {
		fmt.Fprintf(out, "%s Catalog %s failed: %s\n", emoji.GetEmoji("error"), catalogLocation(cfg), result.Err.UserMessage())
		return fmt.Errorf("catalog check failed: %w", result.Err)
	}

	fmt.Fprintf(out, "%s Catalog %s answered with %d products in %s\n",
		emoji.GetEmoji("success"), catalogLocation(cfg), len(result.Products), result.Duration.Round(time.Millisecond))

	if missing := unlistedCategories(loader.Categories(), result.Products); len(missing) > 0 {
		fmt.Fprintf(out, "%s Not in the category menu:\n", emoji.GetEmoji("warning"))
		for _, c := range missing {
			fmt.Fprintf(out, "  %s\n", c)
		}
	}
	return nil
}

// unlistedCategories returns the product categories the menu cannot select
func unlistedCategories(set *catalog.CategorySet, products []catalog.Product) []catalog.Category {
	seen := make(map[catalog.Category]bool)
	var missing []catalog.Category
	for _, p := range products {
		if p.Category == "" || set.Contains(p.Category) || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		missing = append(missing, p.Category)
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}

// configuredCategories returns the category menu of cfg
func configuredCategories(cfg *config.Config) *catalog.CategorySet {
	categories := make([]catalog.Category, 0, len(cfg.Catalog.Categories))
	for _, c := range cfg.Catalog.Categories {
		categories = append(categories, catalog.Category(c))
	}
	return catalog.NewCategorySet(categories)
}

// catalogLocation describes where products are loaded from
func catalogLocation(cfg *config.Config) string {
	if cfg.Catalog.Source == "file" {
		location := "file " + cfg.Catalog.FixturePath
		if cfg.Catalog.WatchFixture {
			location += " (watched)"
		}
		return location
	}
	return "http " + cfg.Catalog.BaseURL
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// Package main provides the storefront CLI entry point. Running it with no
// arguments launches the interactive shopping interface; subcommands expose
// the catalog headlessly.
package main

import (
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"storefront/cmd/storefront/ui"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/filter"
	"storefront/internal/pricing"
)

const version = "1.0.0"

var (
	// Global flags
	verbose    bool
	configPath string

	// Catalog listing flags
	listSearch   string
	listCategory string
	listMin      float64
	listMax      float64

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "storefront - an interactive terminal shop",
	Long: `storefront is a terminal storefront: browse and search the product
catalog, build a cart, and walk the three-step checkout flow
(shipping, payment, confirmation).

All data is in memory; payment is simulated. Run without arguments
to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		zcfg.OutputPaths = []string{"stderr"}
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShop()
	},
}

// catalogCmd lists the catalog without the interactive interface.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the product catalog",
	Long: `Prints the product catalog as a table. The same search and filter
predicates as the interactive interface apply: free-text name match,
inclusive price range, exact category.`,
	RunE: runCatalogList,
}

// versionCmd prints the version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the storefront version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("storefront %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "path to config file")

	catalogCmd.Flags().StringVar(&listSearch, "search", "", "free-text name filter")
	catalogCmd.Flags().StringVar(&listCategory, "category", "", "exact category filter")
	catalogCmd.Flags().Float64Var(&listMin, "min", 0, "minimum price (inclusive)")
	catalogCmd.Flags().Float64Var(&listMax, "max", 0, "maximum price (inclusive, 0 = unbounded)")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

func defaultConfigPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home + "/.storefront/config.yaml"
	}
	return ".storefront/config.yaml"
}

// loadCatalog resolves the product source from configuration: an external
// YAML file when configured, the embedded catalog otherwise.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.Catalog.Path)
}

// runShop launches the interactive interface.
func runShop() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.Verbose = cfg.Verbose || verbose

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	store := cart.NewStore(cart.WithLogger(logger))
	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))

	app, err := newApp(cfg, cat, store, styles, logger)
	if err != nil {
		return err
	}
	defer app.shutdown()

	program := tea.NewProgram(app, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// runCatalogList prints the (optionally filtered) catalog as a table.
func runCatalogList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	criteria := filter.DefaultCriteria()
	criteria.Query = listSearch
	criteria.Category = listCategory
	criteria.MinPrice = listMin
	if listMax > 0 {
		criteria.MaxPrice = listMax
	}

	products := criteria.Apply(cat.Products())
	styles := ui.DefaultStyles()

	if len(products) == 0 {
		fmt.Println(styles.Muted.Render("No products found."))
		return nil
	}

	title := fmt.Sprintf("%d Products Found", len(products))
	table := ui.NewTable(title, "ID", "Name", "Price", "Category")
	for _, p := range products {
		table.AddRow(strconv.Itoa(p.ID), p.Name, pricing.Format(p.Price), p.Category)
	}
	fmt.Print(table.View(styles))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

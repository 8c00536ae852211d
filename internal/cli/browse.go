package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/yildizm/storefront/internal/logger"
	"github.com/yildizm/storefront/internal/session"
	"github.com/yildizm/storefront/internal/ui"
)

var (
	browseNoAltScreen bool
	browseWatch       bool
)

func newBrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive storefront",
		Long: `Open the interactive storefront in the terminal.

The product list loads on start. Use the number keys or the category menu
to filter, enter to open a product, a to add it to the cart and c to view
the cart.

Examples:
  storefront browse
  storefront browse --config ./shop.yaml
  STOREFRONT_CATALOG_SOURCE=file STOREFRONT_CATALOG_FIXTURE_PATH=products.json storefront browse --watch`,
		Args: cobra.NoArgs,
		RunE: runBrowse,
	}

	cmd.Flags().BoolVar(&browseNoAltScreen, "no-alt-screen", false, "render inline instead of the alternate screen")
	cmd.Flags().BoolVar(&browseWatch, "watch", false, "reload when the fixture file changes")

	return cmd
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}
	if browseWatch {
		cfg.Catalog.WatchFixture = true
	}

	logOut, closeLog, err := openLogFile(cfg.Output.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	log := logger.NewWithWriter("storefront", isVerbose, logOut)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	loader, err := newLoader(cfg, log)
	if err != nil {
		return err
	}

	changes, err := watchFixture(ctx, cfg, log)
	if err != nil {
		return err
	}

	machine := session.New(loader, session.Options{
		NavigateOnAdd: cfg.Cart.ShouldNavigateOnAdd(),
	}, log)

	model := ui.NewModel(ctx, machine, loader, ui.Options{
		Currency:  cfg.Cart.CurrencySymbol,
		Changes:   changes,
		AltScreen: !browseNoAltScreen,
		Logger:    log,
	})

	log.Info("starting storefront with %s source", loader.Source().Name())
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("storefront UI failed: %w", err)
	}
	return nil
}

package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"storefront/cmd/storefront/ui"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
)

// mode selects which page the application is showing.
type mode int

const (
	modeShop mode = iota
	modeCheckout
)

// Application-level messages.
type (
	// proceedToCheckoutMsg is emitted by the shop page when the user moves
	// to checkout with a non-empty cart.
	proceedToCheckoutMsg struct{}

	// leaveCheckoutMsg is emitted by the checkout page when the user exits
	// back to browsing (from Shipping, or via start-over on Confirmation).
	leaveCheckoutMsg struct{}

	// catalogReloadedMsg carries a freshly loaded catalog from the watcher.
	catalogReloadedMsg struct{ catalog *catalog.Catalog }
)

// appModel is the root bubbletea model: it owns the shop page, swaps in a
// checkout page per checkout pass, and fans out window sizing.
type appModel struct {
	cfg    *config.Config
	styles ui.Styles
	logger *zap.Logger

	mode     mode
	shop     shopModel
	checkout *checkoutModel

	store *cart.Store

	watcher    *catalog.Watcher
	watcherCtx context.CancelFunc
	catalogCh  chan *catalog.Catalog

	width  int
	height int
}

func newApp(cfg *config.Config, cat *catalog.Catalog, store *cart.Store, styles ui.Styles, logger *zap.Logger) (*appModel, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &appModel{
		cfg:    cfg,
		styles: styles,
		logger: logger,
		mode:   modeShop,
		store:  store,
		shop:   newShopModel(cfg, cat, store, styles),
	}

	if cfg.Catalog.Watch && cfg.Catalog.Path != "" {
		app.catalogCh = make(chan *catalog.Catalog, 1)
		onLoad := func(c *catalog.Catalog) {
			select {
			case app.catalogCh <- c:
			default:
			}
		}
		w, err := catalog.NewWatcher(cfg.Catalog.Path, cat, onLoad, logger)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithCancel(context.Background())
		if err := w.Start(ctx); err != nil {
			cancel()
			return nil, err
		}
		app.watcher = w
		app.watcherCtx = cancel
	}

	return app, nil
}

// shutdown releases the catalog watcher.
func (m *appModel) shutdown() {
	if m.watcher != nil {
		m.watcherCtx()
		m.watcher.Stop()
	}
}

// listenForCatalog waits for the next reload from the watcher.
func (m *appModel) listenForCatalog() tea.Cmd {
	if m.catalogCh == nil {
		return nil
	}
	ch := m.catalogCh
	return func() tea.Msg {
		return catalogReloadedMsg{catalog: <-ch}
	}
}

func (m *appModel) Init() tea.Cmd {
	return tea.Batch(m.shop.Init(), m.listenForCatalog())
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.shop.setSize(msg.Width, msg.Height)
		if m.checkout != nil {
			m.checkout.setSize(msg.Width, msg.Height)
		}

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case catalogReloadedMsg:
		m.shop.setCatalog(msg.catalog)
		return m, m.listenForCatalog()

	case proceedToCheckoutMsg:
		co := newCheckoutModel(m.cfg, m.store, m.styles)
		co.setSize(m.width, m.height)
		m.checkout = &co
		m.mode = modeCheckout
		return m, m.checkout.Init()

	case leaveCheckoutMsg:
		m.checkout = nil
		m.mode = modeShop
		m.shop.refresh()
		return m, nil
	}

	switch m.mode {
	case modeCheckout:
		co, cmd := m.checkout.Update(msg)
		m.checkout = &co
		return m, cmd
	default:
		var cmd tea.Cmd
		m.shop, cmd = m.shop.Update(msg)
		return m, cmd
	}
}

func (m *appModel) View() string {
	if m.mode == modeCheckout && m.checkout != nil {
		return m.checkout.View()
	}
	return m.shop.View()
}

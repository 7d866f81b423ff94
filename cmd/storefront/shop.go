package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"storefront/cmd/storefront/ui"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/filter"
	"storefront/internal/pricing"
)

// shopFocus identifies which control on the shop page receives keys.
type shopFocus int

const (
	focusSearch shopFocus = iota
	focusMinPrice
	focusMaxPrice
	focusProducts
	focusCart
)

// searchTickMsg fires when the search input has been idle for the debounce
// window. Stale ticks are identified by sequence number and dropped, so only
// the latest input value triggers a re-filter.
type searchTickMsg struct{ seq int }

// shopModel is the browsing page: catalog with live search and filters on
// the left, the cart on the right.
type shopModel struct {
	cfg    *config.Config
	cat    *catalog.Catalog
	store  *cart.Store
	styles ui.Styles

	searchInput textinput.Model
	minInput    textinput.Model
	maxInput    textinput.Model

	criteria filter.Criteria
	filtered []catalog.Product

	focus      shopFocus
	cursor     int // product row
	cartCursor int // cart line row

	category int // index into categories; -1 = all

	debounce  time.Duration
	searchSeq int

	width  int
	height int
}

func newShopModel(cfg *config.Config, cat *catalog.Catalog, store *cart.Store, styles ui.Styles) shopModel {
	search := textinput.New()
	search.Placeholder = "Search products..."
	search.Prompt = "🔍 "
	search.CharLimit = 64
	search.Width = 30
	search.Focus()

	minIn := textinput.New()
	minIn.Placeholder = "Min $"
	minIn.Prompt = ""
	minIn.CharLimit = 8
	minIn.Width = 8

	maxIn := textinput.New()
	maxIn.Placeholder = "Max $"
	maxIn.Prompt = ""
	maxIn.CharLimit = 8
	maxIn.Width = 8

	m := shopModel{
		cfg:         cfg,
		cat:         cat,
		store:       store,
		styles:      styles,
		searchInput: search,
		minInput:    minIn,
		maxInput:    maxIn,
		criteria:    filter.DefaultCriteria(),
		category:    -1,
		debounce:    cfg.SearchDebounce(),
	}
	m.refresh()
	return m
}

func (m shopModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *shopModel) setSize(w, h int) {
	m.width, m.height = w, h
}

// setCatalog swaps in a reloaded catalog and re-runs the active filter.
func (m *shopModel) setCatalog(cat *catalog.Catalog) {
	m.cat = cat
	if m.category >= len(cat.Categories()) {
		m.category = -1
	}
	m.refresh()
}

// refresh recomputes the filtered projection and clamps the cursors.
func (m *shopModel) refresh() {
	cats := m.cat.Categories()
	if m.category >= 0 && m.category < len(cats) {
		m.criteria.Category = cats[m.category]
	} else {
		m.criteria.Category = ""
	}
	m.filtered = m.criteria.Apply(m.cat.Products())
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	if n := m.store.Len(); m.cartCursor >= n {
		m.cartCursor = max(0, n-1)
	}
}

// scheduleSearch arms the debounce timer for the current input state.
func (m *shopModel) scheduleSearch() tea.Cmd {
	m.searchSeq++
	seq := m.searchSeq
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}

// applyInputs reads the search and price inputs into the criteria.
func (m *shopModel) applyInputs() {
	m.criteria.Query = strings.TrimSpace(m.searchInput.Value())

	m.criteria.MinPrice = 0
	if v, err := strconv.ParseFloat(strings.TrimSpace(m.minInput.Value()), 64); err == nil && v >= 0 {
		m.criteria.MinPrice = v
	}
	m.criteria.MaxPrice = filter.DefaultCriteria().MaxPrice
	if v, err := strconv.ParseFloat(strings.TrimSpace(m.maxInput.Value()), 64); err == nil && v > 0 {
		m.criteria.MaxPrice = v
	}
	m.refresh()
}

func (m *shopModel) focusedInput() *textinput.Model {
	switch m.focus {
	case focusSearch:
		return &m.searchInput
	case focusMinPrice:
		return &m.minInput
	case focusMaxPrice:
		return &m.maxInput
	default:
		return nil
	}
}

func (m *shopModel) setFocus(f shopFocus) {
	m.searchInput.Blur()
	m.minInput.Blur()
	m.maxInput.Blur()
	m.focus = f
	if in := m.focusedInput(); in != nil {
		in.Focus()
	}
}

func (m shopModel) Update(msg tea.Msg) (shopModel, tea.Cmd) {
	switch msg := msg.(type) {
	case searchTickMsg:
		if msg.seq == m.searchSeq {
			m.applyInputs()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.setFocus((m.focus + 1) % 5)
			return m, nil
		case "shift+tab":
			m.setFocus((m.focus + 4) % 5)
			return m, nil
		case "q":
			if m.focusedInput() == nil {
				return m, tea.Quit
			}
		case "o":
			if m.focusedInput() == nil && m.store.Len() > 0 {
				return m, func() tea.Msg { return proceedToCheckoutMsg{} }
			}
		case "f":
			if m.focusedInput() == nil {
				// Cycle category: all -> each in first-seen order -> all.
				if m.category+1 >= len(m.cat.Categories()) {
					m.category = -1
				} else {
					m.category++
				}
				m.refresh()
				return m, nil
			}
		}

		if in := m.focusedInput(); in != nil {
			before := in.Value()
			var cmd tea.Cmd
			*in, cmd = in.Update(msg)
			if in.Value() != before {
				return m, tea.Batch(cmd, m.scheduleSearch())
			}
			return m, cmd
		}

		switch m.focus {
		case focusProducts:
			return m.updateProducts(msg), nil
		case focusCart:
			return m.updateCart(msg), nil
		}
	}

	return m, nil
}

// updateProducts handles keys while the product list has focus.
func (m shopModel) updateProducts(msg tea.KeyMsg) shopModel {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "enter", "a":
		if m.cursor < len(m.filtered) {
			m.store.Add(m.filtered[m.cursor])
		}
	}
	return m
}

// updateCart handles keys while the cart panel has focus.
func (m shopModel) updateCart(msg tea.KeyMsg) shopModel {
	lines := m.store.Lines()
	switch msg.String() {
	case "up", "k":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
	case "down", "j":
		if m.cartCursor < len(lines)-1 {
			m.cartCursor++
		}
	case "+":
		if m.cartCursor < len(lines) {
			l := lines[m.cartCursor]
			m.store.SetQuantity(l.Product.ID, l.Quantity+1)
		}
	case "-":
		if m.cartCursor < len(lines) {
			// Dropping below 1 removes the line.
			l := lines[m.cartCursor]
			m.store.SetQuantity(l.Product.ID, l.Quantity-1)
		}
	case "x", "delete":
		if m.cartCursor < len(lines) {
			m.store.Remove(lines[m.cartCursor].Product.ID)
		}
	case "c":
		m.store.Clear()
	}
	if n := m.store.Len(); m.cartCursor >= n {
		m.cartCursor = max(0, n-1)
	}
	return m
}

func (m shopModel) View() string {
	header := m.styles.Header.Render("◆ Premium Store")

	left := m.viewProducts()
	right := m.viewCart()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	footer := m.styles.Footer.Render(
		"tab: switch focus • a/enter: add to cart • +/-: quantity • x: remove • c: clear • f: category • o: checkout • q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m shopModel) viewProducts() string {
	var sb strings.Builder

	sb.WriteString(m.searchInput.View())
	sb.WriteString("  ")
	sb.WriteString(m.minInput.View())
	sb.WriteString(" – ")
	sb.WriteString(m.maxInput.View())
	sb.WriteString("\n")

	cats := m.cat.Categories()
	catLabel := "All Categories"
	if m.category >= 0 && m.category < len(cats) {
		catLabel = cats[m.category]
	}
	sb.WriteString(m.styles.Muted.Render("Category: ") + m.styles.Bold.Render(catLabel))
	sb.WriteString("\n\n")

	noun := "Products"
	if len(m.filtered) == 1 {
		noun = "Product"
	}
	count := fmt.Sprintf("%d %s Found", len(m.filtered), noun)
	if !m.criteria.IsDefault() {
		count += "  " + m.styles.Badge.Render("Filters Applied")
	}
	sb.WriteString(m.styles.Subtitle.Render(count))
	sb.WriteString("\n")

	if len(m.filtered) == 0 {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Muted.Render("No products match your search criteria."))
		sb.WriteString("\n")
	} else {
		table := ui.NewTable("", "Name", "Price", "Category")
		for _, p := range m.filtered {
			table.AddRow(p.Name, pricing.Format(p.Price), p.Category)
		}
		if m.focus == focusProducts {
			table.Selected = m.cursor
		}
		sb.WriteString(table.View(m.styles))
	}

	return m.styles.Panel.Render(sb.String())
}

func (m shopModel) viewCart() string {
	var sb strings.Builder
	lines := m.store.Lines()

	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("Your Cart (%d)", m.store.TotalItems())))
	sb.WriteString("\n\n")

	if len(lines) == 0 {
		sb.WriteString(m.styles.Muted.Render("Your cart is empty.\nAdd some items to get started."))
		sb.WriteString("\n")
	} else {
		for i, l := range lines {
			row := fmt.Sprintf("%-24s ×%d  %s", truncate(l.Product.Name, 24), l.Quantity, pricing.Format(l.Subtotal()))
			if m.focus == focusCart && i == m.cartCursor {
				sb.WriteString(m.styles.Selected.Render(row))
			} else {
				sb.WriteString(m.styles.Body.Render(row))
			}
			sb.WriteString("\n")
		}
		sb.WriteString(m.styles.Divider.Render(strings.Repeat("─", 40)))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s %s\n",
			m.styles.Muted.Render("Subtotal:"),
			m.styles.Price.Render(pricing.Format(m.store.TotalPrice()))))
		sb.WriteString(m.styles.Muted.Render("Shipping: calculated at checkout"))
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.Success.Render("Press o to proceed to checkout"))
		sb.WriteString("\n")
	}

	return m.styles.Sidebar.Render(sb.String())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

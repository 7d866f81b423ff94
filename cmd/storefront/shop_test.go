package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"storefront/cmd/storefront/ui"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
)

func newTestShop(t *testing.T) shopModel {
	t.Helper()
	return newShopModel(config.DefaultConfig(), catalog.Default(), cart.NewStore(), ui.NewStyles(ui.LightTheme()))
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func focusProductsList(m shopModel) shopModel {
	for m.focus != focusProducts {
		m, _ = m.Update(keyMsg("tab"))
	}
	return m
}

func TestShop_InitialProjection(t *testing.T) {
	m := newTestShop(t)
	if len(m.filtered) != 12 {
		t.Errorf("initial projection has %d products, want the full 12", len(m.filtered))
	}
	if m.focus != focusSearch {
		t.Error("search input should start focused")
	}
}

func TestShop_SearchDebounce(t *testing.T) {
	m := newTestShop(t)

	// Type into the focused search input. Each change arms the debounce.
	var cmd tea.Cmd
	for _, r := range "smart" {
		m, cmd = m.Update(keyMsg(string(r)))
		if cmd == nil {
			t.Fatalf("typing %q did not schedule a search", r)
		}
	}

	// The projection does not move until a tick lands.
	if len(m.filtered) != 12 {
		t.Errorf("projection changed before the debounce fired: %d products", len(m.filtered))
	}

	// A stale tick from an earlier keystroke is dropped.
	m, _ = m.Update(searchTickMsg{seq: m.searchSeq - 1})
	if len(m.filtered) != 12 {
		t.Error("stale tick should not re-filter")
	}

	// The tick for the latest keystroke applies the input.
	m, _ = m.Update(searchTickMsg{seq: m.searchSeq})
	if len(m.filtered) != 2 {
		t.Errorf("projection has %d products after %q, want 2", len(m.filtered), "smart")
	}
}

func TestShop_CategoryCycle(t *testing.T) {
	m := focusProductsList(newTestShop(t))

	m, _ = m.Update(keyMsg("f"))
	if m.criteria.Category != "Electronics" {
		t.Errorf("first cycle selected %q, want Electronics", m.criteria.Category)
	}
	if len(m.filtered) != 4 {
		t.Errorf("Electronics projection has %d products, want 4", len(m.filtered))
	}

	// Cycle through the remaining categories back to all.
	for i := 0; i < len(m.cat.Categories()); i++ {
		m, _ = m.Update(keyMsg("f"))
	}
	if m.criteria.Category != "" {
		t.Errorf("cycle did not return to all categories, got %q", m.criteria.Category)
	}
}

func TestShop_AddAndAdjustCart(t *testing.T) {
	m := focusProductsList(newTestShop(t))

	m, _ = m.Update(keyMsg("enter"))
	m, _ = m.Update(keyMsg("enter"))
	m, _ = m.Update(keyMsg("down"))
	m, _ = m.Update(keyMsg("a"))

	lines := m.store.Lines()
	if len(lines) != 2 {
		t.Fatalf("cart has %d lines, want 2", len(lines))
	}
	if lines[0].Quantity != 2 || lines[1].Quantity != 1 {
		t.Errorf("quantities = %d,%d, want 2,1", lines[0].Quantity, lines[1].Quantity)
	}

	// Move to the cart panel and adjust the first line.
	m, _ = m.Update(keyMsg("tab"))
	if m.focus != focusCart {
		t.Fatalf("focus = %v, want cart", m.focus)
	}
	m, _ = m.Update(keyMsg("+"))
	if got := m.store.Lines()[0].Quantity; got != 3 {
		t.Errorf("quantity after + = %d, want 3", got)
	}
	m, _ = m.Update(keyMsg("-"))
	m, _ = m.Update(keyMsg("-"))
	m, _ = m.Update(keyMsg("-"))
	if got := m.store.Len(); got != 1 {
		t.Errorf("cart has %d lines after decrementing to zero, want 1", got)
	}

	m, _ = m.Update(keyMsg("c"))
	if m.store.Len() != 0 {
		t.Error("c should clear the cart")
	}
}

func TestShop_CheckoutRequiresItems(t *testing.T) {
	m := focusProductsList(newTestShop(t))

	_, cmd := m.Update(keyMsg("o"))
	if cmd != nil {
		t.Error("checkout with an empty cart should be refused")
	}

	m, _ = m.Update(keyMsg("enter"))
	_, cmd = m.Update(keyMsg("o"))
	if cmd == nil {
		t.Fatal("checkout with items should emit a command")
	}
	if _, ok := cmd().(proceedToCheckoutMsg); !ok {
		t.Error("expected a proceedToCheckoutMsg")
	}
}

func TestShop_ViewRendersCounts(t *testing.T) {
	m := newTestShop(t)
	out := m.View()
	if !strings.Contains(out, "12 Products Found") {
		t.Errorf("view missing product count:\n%s", out)
	}
	if !strings.Contains(out, "Your Cart (0)") {
		t.Errorf("view missing cart header:\n%s", out)
	}
	if strings.Contains(out, "Filters Applied") {
		t.Error("default criteria should not show the filter badge")
	}
}

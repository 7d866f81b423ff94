package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTableView(t *testing.T) {
	styles := NewStyles(LightTheme())

	tbl := NewTable("Products", "Name", "Price")
	if got := tbl.View(styles); got != "" {
		t.Errorf("empty table should render nothing, got %q", got)
	}

	tbl.AddRow("Yoga Mat", "$49.99")
	tbl.AddRow("Air Fryer", "$129.99")

	out := tbl.View(styles)
	for _, want := range []string{"Products", "Name", "Price", "Yoga Mat", "$129.99", "─"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestTableSelectedDefaultsToNone(t *testing.T) {
	if got := NewTable("t", "h").Selected; got != -1 {
		t.Errorf("Selected = %d, want -1", got)
	}
}

func TestFieldViewShowsError(t *testing.T) {
	styles := NewStyles(LightTheme())

	f := NewField("email", "Email", "you@example.com")
	if out := f.View(styles); strings.Contains(out, "✗") {
		t.Errorf("clean field should not render an error marker:\n%s", out)
	}

	f.Error = "Email is invalid"
	out := f.View(styles)
	if !strings.Contains(out, "✗ Email is invalid") {
		t.Errorf("field output missing error message:\n%s", out)
	}
}

func TestFieldSetFocusTraversal(t *testing.T) {
	fs := NewFieldSet(
		NewField("a", "A", ""),
		NewField("b", "B", ""),
		NewField("c", "C", ""),
	)

	if fs.Focused() != 0 {
		t.Fatalf("initial focus = %d, want 0", fs.Focused())
	}
	if !fs.Fields[0].Input.Focused() {
		t.Error("first input should start focused")
	}

	fs.Next()
	fs.Next()
	if fs.Focused() != 2 {
		t.Errorf("focus after Next x2 = %d, want 2", fs.Focused())
	}
	fs.Next()
	if fs.Focused() != 0 {
		t.Errorf("Next should wrap to 0, got %d", fs.Focused())
	}
	fs.Prev()
	if fs.Focused() != 2 {
		t.Errorf("Prev should wrap to 2, got %d", fs.Focused())
	}

	if fs.Fields[0].Input.Focused() || fs.Fields[1].Input.Focused() {
		t.Error("only the focused field's input may be focused")
	}
	if !fs.Fields[2].Input.Focused() {
		t.Error("focused field's input should be focused")
	}
}

func TestFieldSetUpdateReportsChange(t *testing.T) {
	fs := NewFieldSet(NewField("a", "A", ""))

	_, changed := fs.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if !changed {
		t.Error("typing a rune should report a value change")
	}
	if got := fs.Fields[0].Input.Value(); got != "x" {
		t.Errorf("input value = %q, want %q", got, "x")
	}

	_, changed = fs.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if changed {
		t.Error("cursor movement should not report a value change")
	}
}

func TestFieldSetErrors(t *testing.T) {
	fs := NewFieldSet(
		NewField("a", "A", ""),
		NewField("b", "B", ""),
	)

	fs.SetErrors(map[string]string{"a": "A is required"})
	if fs.Fields[0].Error != "A is required" {
		t.Errorf("field a error = %q", fs.Fields[0].Error)
	}
	if fs.Fields[1].Error != "" {
		t.Errorf("field b should have no error, got %q", fs.Fields[1].Error)
	}

	fs.ClearError("a")
	if fs.Fields[0].Error != "" {
		t.Errorf("ClearError left %q", fs.Fields[0].Error)
	}

	fs.SetErrors(nil)
	if fs.Fields[0].Error != "" || fs.Fields[1].Error != "" {
		t.Error("SetErrors(nil) should clear all messages")
	}
}

func TestStepBar(t *testing.T) {
	styles := NewStyles(LightTheme())
	titles := []string{"Shipping", "Payment", "Confirmation"}

	out := StepBar(styles, titles, 2)
	if !strings.Contains(out, "✓ Shipping") {
		t.Errorf("completed step not marked done:\n%s", out)
	}
	if !strings.Contains(out, "● Payment") {
		t.Errorf("current step not marked active:\n%s", out)
	}
	if !strings.Contains(out, "○ Confirmation") {
		t.Errorf("upcoming step not marked todo:\n%s", out)
	}
}

func TestThemeByName(t *testing.T) {
	if got := ThemeByName("light"); got.IsDark {
		t.Error("light theme reported dark")
	}
	if got := ThemeByName("dark"); !got.IsDark {
		t.Error("dark theme reported light")
	}
	// Unknown names fall through to auto-detection; just assert it returns
	// one of the two palettes without panicking.
	_ = ThemeByName("mauve")
}

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field is a labeled text input with an inline validation message. The
// Name matches the checkout form's field key so errors can be routed back
// onto the input.
type Field struct {
	Name  string
	Label string
	Input textinput.Model
	Error string
}

// NewField creates a field with the given key, label and placeholder.
func NewField(name, label, placeholder string) Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "│ "
	ti.CharLimit = 128
	ti.Width = 36
	return Field{Name: name, Label: label, Input: ti}
}

// View renders the label, input and error message.
func (f Field) View(styles Styles) string {
	var sb strings.Builder
	sb.WriteString(styles.Label.Render(f.Label))
	sb.WriteString("\n")
	sb.WriteString(f.Input.View())
	if f.Error != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.FieldError.Render("✗ " + f.Error))
	}
	sb.WriteString("\n")
	return sb.String()
}

// FieldSet manages focus traversal over an ordered group of fields.
type FieldSet struct {
	Fields  []Field
	focused int
}

// NewFieldSet groups fields and focuses the first one.
func NewFieldSet(fields ...Field) FieldSet {
	fs := FieldSet{Fields: fields}
	if len(fs.Fields) > 0 {
		fs.Fields[0].Input.Focus()
	}
	return fs
}

// Focused returns the index of the focused field.
func (fs *FieldSet) Focused() int { return fs.focused }

// Next moves focus to the following field, wrapping at the end.
func (fs *FieldSet) Next() { fs.setFocus((fs.focused + 1) % len(fs.Fields)) }

// Prev moves focus to the preceding field, wrapping at the start.
func (fs *FieldSet) Prev() { fs.setFocus((fs.focused - 1 + len(fs.Fields)) % len(fs.Fields)) }

func (fs *FieldSet) setFocus(i int) {
	fs.Fields[fs.focused].Input.Blur()
	fs.focused = i
	fs.Fields[fs.focused].Input.Focus()
}

// Update forwards the message to the focused field's input and reports
// whether its value changed.
func (fs *FieldSet) Update(msg tea.Msg) (tea.Cmd, bool) {
	if len(fs.Fields) == 0 {
		return nil, false
	}
	before := fs.Fields[fs.focused].Input.Value()
	var cmd tea.Cmd
	fs.Fields[fs.focused].Input, cmd = fs.Fields[fs.focused].Input.Update(msg)
	return cmd, fs.Fields[fs.focused].Input.Value() != before
}

// SetErrors applies a field-name -> message map to the group, clearing
// messages for fields not present.
func (fs *FieldSet) SetErrors(errs map[string]string) {
	for i := range fs.Fields {
		fs.Fields[i].Error = errs[fs.Fields[i].Name]
	}
}

// ClearError clears the message on the named field.
func (fs *FieldSet) ClearError(name string) {
	for i := range fs.Fields {
		if fs.Fields[i].Name == name {
			fs.Fields[i].Error = ""
		}
	}
}

// View renders all fields in order.
func (fs *FieldSet) View(styles Styles) string {
	var sb strings.Builder
	for _, f := range fs.Fields {
		sb.WriteString(f.View(styles))
		sb.WriteString("\n")
	}
	return sb.String()
}

package ui

import "strings"

// StepBar renders the checkout progress indicator: done steps with a check,
// the active step highlighted, upcoming steps muted.
func StepBar(styles Styles, titles []string, current int) string {
	parts := make([]string, 0, len(titles))
	for i, title := range titles {
		n := i + 1
		switch {
		case n < current:
			parts = append(parts, styles.StepDone.Render("✓ "+title))
		case n == current:
			parts = append(parts, styles.StepActive.Render("● "+title))
		default:
			parts = append(parts, styles.StepTodo.Render("○ "+title))
		}
	}
	return strings.Join(parts, styles.Divider.Render(" ── "))
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"storefront/cmd/storefront/ui"
	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/pricing"
)

// paymentDoneMsg reports completion of the simulated payment call.
type paymentDoneMsg struct{ err error }

var stepTitles = []string{"Shipping", "Payment", "Confirmation"}

// checkoutModel drives one pass through the checkout flow. The state lives
// in the checkout.Session; this model renders the active step's form and
// routes key input into it.
type checkoutModel struct {
	cfg    *config.Config
	store  *cart.Store
	styles ui.Styles

	session *checkout.Session

	shippingFields ui.FieldSet
	paymentFields  ui.FieldSet

	spin         spinner.Model
	confirmation string

	width  int
	height int
}

func newCheckoutModel(cfg *config.Config, store *cart.Store, styles ui.Styles) checkoutModel {
	session := checkout.NewSession(
		checkout.WithProcessingDelay(cfg.ProcessingDelay()),
		checkout.WithExitHook(store.Clear),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := checkoutModel{
		cfg:     cfg,
		store:   store,
		styles:  styles,
		session: session,
		spin:    sp,
	}
	m.shippingFields = ui.NewFieldSet(
		ui.NewField(checkout.FieldFirstName, "First Name *", "John"),
		ui.NewField(checkout.FieldLastName, "Last Name *", "Doe"),
		ui.NewField(checkout.FieldEmail, "Email Address *", "john@example.com"),
		ui.NewField(checkout.FieldPhone, "Phone Number *", "(123) 456-7890"),
		ui.NewField(checkout.FieldAddress, "Street Address *", "123 Main St"),
		ui.NewField(checkout.FieldCity, "City *", "New York"),
		ui.NewField(checkout.FieldState, "State *", "NY"),
		ui.NewField(checkout.FieldZipCode, "ZIP Code *", "10001"),
		ui.NewField(checkout.FieldCountry, "Country", "United States"),
	)
	// Country ships with the reference default.
	m.shippingFields.Fields[8].Input.SetValue(session.Shipping().Country)

	m.paymentFields = ui.NewFieldSet(
		ui.NewField(checkout.FieldCardNumber, "Card Number *", "1234 5678 9012 3456"),
		ui.NewField(checkout.FieldCardholderName, "Cardholder Name *", "Enter cardholder name"),
		ui.NewField(checkout.FieldExpiryDate, "Expiry Date *", "MM/YY"),
		ui.NewField(checkout.FieldCVV, "CVV *", "123"),
	)
	return m
}

func (m checkoutModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m *checkoutModel) setSize(w, h int) {
	m.width, m.height = w, h
}

// activeFields returns the field group for the current step, or nil on
// Confirmation.
func (m *checkoutModel) activeFields() *ui.FieldSet {
	switch m.session.Step() {
	case checkout.StepShipping:
		return &m.shippingFields
	case checkout.StepPayment:
		return &m.paymentFields
	default:
		return nil
	}
}

// syncField mirrors an edited input into the session form. Payment inputs
// come back formatted (card grouping, expiry slash, CVV cap), so the
// display value is rewritten from the form.
func (m *checkoutModel) syncField(fs *ui.FieldSet) {
	f := &fs.Fields[fs.Focused()]
	switch m.session.Step() {
	case checkout.StepShipping:
		m.session.Shipping().Set(f.Name, f.Input.Value())
	case checkout.StepPayment:
		form := m.session.Payment()
		form.Set(f.Name, f.Input.Value())
		switch f.Name {
		case checkout.FieldCardNumber:
			f.Input.SetValue(form.CardNumber)
		case checkout.FieldExpiryDate:
			f.Input.SetValue(form.ExpiryDate)
		case checkout.FieldCVV:
			f.Input.SetValue(form.CVV)
		}
		f.Input.CursorEnd()
	}
	// Editing clears the field's message immediately; re-validation waits
	// for the next submit.
	fs.ClearError(f.Name)
}

// submit runs the active step's submission.
func (m checkoutModel) submit() (checkoutModel, tea.Cmd) {
	switch m.session.Step() {
	case checkout.StepShipping:
		if m.session.SubmitShipping() {
			return m, nil
		}
		m.shippingFields.SetErrors(m.session.Shipping().Errors)
		return m, nil

	case checkout.StepPayment:
		if !m.session.SubmitPayment() {
			m.paymentFields.SetErrors(m.session.Payment().Errors)
			return m, nil
		}
		session := m.session
		process := func() tea.Msg {
			return paymentDoneMsg{err: session.ProcessPayment(context.Background())}
		}
		return m, tea.Batch(m.spin.Tick, process)
	}
	return m, nil
}

func (m checkoutModel) Update(msg tea.Msg) (checkoutModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.session.IsProcessing() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case paymentDoneMsg:
		if msg.err != nil {
			// Cancelled or refused; stay on the payment step.
			return m, nil
		}
		m.confirmation = m.renderConfirmation()
		return m, nil

	case tea.KeyMsg:
		if m.session.IsProcessing() {
			// Submission is disabled while the payment call is in flight.
			return m, nil
		}

		if m.session.Step() == checkout.StepConfirmation {
			switch msg.String() {
			case "enter", "s":
				if err := m.session.StartOver(); err == nil {
					return m, func() tea.Msg { return leaveCheckoutMsg{} }
				}
			}
			return m, nil
		}

		fs := m.activeFields()
		switch msg.String() {
		case "esc":
			if m.session.Step() == checkout.StepPayment {
				_ = m.session.Back()
				return m, nil
			}
			return m, func() tea.Msg { return leaveCheckoutMsg{} }

		case "tab", "down":
			fs.Next()
			return m, nil

		case "shift+tab", "up":
			fs.Prev()
			return m, nil

		case "enter":
			if fs.Focused() == len(fs.Fields)-1 {
				return m.submit()
			}
			fs.Next()
			return m, nil

		case "ctrl+s":
			return m.submit()
		}

		cmd, changed := fs.Update(msg)
		if changed {
			m.syncField(fs)
		}
		return m, cmd
	}

	return m, nil
}

func (m checkoutModel) View() string {
	header := m.styles.Header.Render("◆ Checkout")
	steps := ui.StepBar(m.styles, stepTitles, int(m.session.Step()))

	var content string
	switch m.session.Step() {
	case checkout.StepShipping:
		content = m.viewShipping()
	case checkout.StepPayment:
		content = m.viewPayment()
	case checkout.StepConfirmation:
		content = m.viewConfirmation()
	}

	if m.session.Step() != checkout.StepConfirmation {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, " ", m.viewSummary())
	}

	footer := m.styles.Footer.Render(m.footerHelp())
	return lipgloss.JoinVertical(lipgloss.Left, header, steps, content, footer)
}

func (m checkoutModel) footerHelp() string {
	switch m.session.Step() {
	case checkout.StepShipping:
		return "tab/↑↓: move • enter on last field or ctrl+s: continue • esc: back to cart"
	case checkout.StepPayment:
		if m.session.IsProcessing() {
			return "processing payment..."
		}
		return "tab/↑↓: move • enter on last field or ctrl+s: complete order • esc: back to shipping"
	default:
		return "enter: continue shopping"
	}
}

func (m checkoutModel) viewShipping() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Subtitle.Render("Shipping Information"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("Please enter your shipping details"))
	sb.WriteString("\n\n")
	sb.WriteString(m.shippingFields.View(m.styles))
	return m.styles.Panel.Render(sb.String())
}

func (m checkoutModel) viewPayment() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Subtitle.Render("Payment Information"))
	sb.WriteString("\n\n")
	sb.WriteString(m.viewCardPreview())
	sb.WriteString("\n")
	sb.WriteString(m.paymentFields.View(m.styles))

	if m.session.IsProcessing() {
		sb.WriteString(m.spin.View())
		sb.WriteString(m.styles.Muted.Render(" Processing..."))
		sb.WriteString("\n")
	}
	return m.styles.Panel.Render(sb.String())
}

// viewCardPreview renders the live card mock above the payment form.
func (m checkoutModel) viewCardPreview() string {
	form := m.session.Payment()

	number := form.CardNumber
	if number == "" {
		number = "•••• •••• •••• ••••"
	}
	holder := form.CardholderName
	if holder == "" {
		holder = "YOUR NAME"
	}
	expiry := form.ExpiryDate
	if expiry == "" {
		expiry = "MM/YY"
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Muted.Render(strings.ToUpper(form.CardType())))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Bold.Render(number))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s   %s",
		m.styles.Body.Render(strings.ToUpper(holder)),
		m.styles.Body.Render(expiry)))

	card := m.styles.Panel.BorderForeground(m.styles.Theme.Primary)
	return card.Render(sb.String()) + "\n"
}

func (m checkoutModel) viewSummary() string {
	lines := m.store.Lines()
	summary := pricing.Summarize(lines)

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Order Summary"))
	sb.WriteString("\n\n")
	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("%-22s\n", truncate(l.Product.Name, 22)))
		sb.WriteString(m.styles.Muted.Render(
			fmt.Sprintf("  Qty: %d × %s", l.Quantity, pricing.Format(l.Product.Price))))
		sb.WriteString(fmt.Sprintf("  %s\n", pricing.Format(l.Subtotal())))
	}
	sb.WriteString(m.styles.Divider.Render(strings.Repeat("─", 32)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Subtotal (%d items)  %s\n", summary.Items, pricing.Format(summary.Subtotal)))
	sb.WriteString(fmt.Sprintf("Shipping             %s\n", pricing.Format(summary.Shipping)))
	sb.WriteString(fmt.Sprintf("Tax                  %s\n", pricing.Format(summary.Tax)))
	sb.WriteString(m.styles.Divider.Render(strings.Repeat("─", 32)))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Bold.Render("Total  "))
	sb.WriteString(m.styles.Price.Render(pricing.Format(summary.Total)))
	sb.WriteString("\n")
	return m.styles.Sidebar.Render(sb.String())
}

func (m checkoutModel) viewConfirmation() string {
	if m.confirmation == "" {
		m.confirmation = m.renderConfirmation()
	}
	return m.styles.Panel.Render(m.confirmation)
}

// renderConfirmation builds the confirmation panel from markdown.
func (m checkoutModel) renderConfirmation() string {
	order := m.session.Order()
	if order == nil {
		return ""
	}

	md := fmt.Sprintf(`# Order Confirmed!

Thank you for your purchase. We've sent a confirmation email with your
order details.

**Order #%s**

- Confirmation sent to your email
- Estimated delivery: %s

## What happens next?

1. **Order Processing**: we're preparing your items for shipment within 1-2 business days.
2. **Shipping Updates**: you'll receive tracking information via email once your order ships.
3. **Delivery**: your package will arrive at your specified address.
`, order.Number, order.EstimatedDelivery.Format("Monday, January 2, 2006"))

	stylePath := "light"
	if m.styles.Theme.IsDark {
		stylePath = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(stylePath),
		glamour.WithWordWrap(72),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

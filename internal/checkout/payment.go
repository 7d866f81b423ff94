package checkout

import (
	"strings"
)

// Payment form field names.
const (
	FieldCardNumber     = "cardNumber"
	FieldExpiryDate     = "expiryDate"
	FieldCVV            = "cvv"
	FieldCardholderName = "cardholderName"
)

// PaymentForm holds the payment-step payload and its validation state.
// Card number, expiry and CVV are stored in display format; Set applies the
// input formatting as the user types.
type PaymentForm struct {
	CardNumber     string
	ExpiryDate     string
	CVV            string
	CardholderName string

	Errors FieldErrors
}

// NewPaymentForm returns a blank payment form.
func NewPaymentForm() PaymentForm {
	return PaymentForm{Errors: FieldErrors{}}
}

// Set updates a field by name, applying per-field input formatting, and
// clears that field's error immediately.
func (f *PaymentForm) Set(field, value string) {
	switch field {
	case FieldCardNumber:
		f.CardNumber = FormatCardNumber(value)
	case FieldExpiryDate:
		f.ExpiryDate = FormatExpiry(value)
	case FieldCVV:
		f.CVV = SanitizeCVV(value)
	case FieldCardholderName:
		f.CardholderName = value
	default:
		return
	}
	delete(f.Errors, field)
}

// Validate checks every field and replaces the form's error map. It returns
// true when the form is submittable. Only shape is validated; issuer rules
// and Luhn checks are out of scope for a simulated payment.
func (f *PaymentForm) Validate() bool {
	errs := FieldErrors{}

	digits := stripSpaces(f.CardNumber)
	switch {
	case digits == "":
		errs[FieldCardNumber] = "Card number is required"
	case len(digits) < 13:
		errs[FieldCardNumber] = "Card number is invalid"
	}

	switch {
	case f.ExpiryDate == "":
		errs[FieldExpiryDate] = "Expiry date is required"
	case !isExpiryShape(f.ExpiryDate):
		errs[FieldExpiryDate] = "Expiry date is invalid"
	}

	switch {
	case f.CVV == "":
		errs[FieldCVV] = "CVV is required"
	case len(f.CVV) < 3:
		errs[FieldCVV] = "CVV is invalid"
	}

	if strings.TrimSpace(f.CardholderName) == "" {
		errs[FieldCardholderName] = "Cardholder name is required"
	}

	f.Errors = errs
	return len(errs) == 0
}

// CardType classifies the card by leading digit for display purposes:
// 4 -> visa, 5 -> mastercard, 3 -> amex, anything else -> generic.
func (f *PaymentForm) CardType() string {
	return CardType(f.CardNumber)
}

// FormatCardNumber strips non-digits, caps the number at 16 digits and
// groups it in blocks of 4 separated by single spaces. Fewer than 4 digits
// are returned ungrouped.
func FormatCardNumber(value string) string {
	digits := digitsOnly(value)
	if len(digits) > 16 {
		digits = digits[:16]
	}
	if len(digits) < 4 {
		return digits
	}
	var b strings.Builder
	for i := 0; i < len(digits); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		b.WriteString(digits[i:end])
	}
	return b.String()
}

// FormatExpiry strips non-digits and inserts the slash once two digits are
// present, yielding MM/YY.
func FormatExpiry(value string) string {
	digits := digitsOnly(value)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) >= 2 {
		return digits[:2] + "/" + digits[2:]
	}
	return digits
}

// SanitizeCVV strips non-digits and caps the length at 4.
func SanitizeCVV(value string) string {
	digits := digitsOnly(value)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	return digits
}

// CardType classifies a (possibly space-grouped) card number by its leading
// digit.
func CardType(number string) string {
	clean := stripSpaces(number)
	switch {
	case strings.HasPrefix(clean, "4"):
		return "visa"
	case strings.HasPrefix(clean, "5"):
		return "mastercard"
	case strings.HasPrefix(clean, "3"):
		return "amex"
	default:
		return "generic"
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

// isExpiryShape checks the MM/YY shape without range-checking the month;
// the reference behavior validates shape only.
func isExpiryShape(s string) bool {
	if len(s) != 5 || s[2] != '/' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

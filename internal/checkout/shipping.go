package checkout

import (
	"regexp"
	"strings"
)

// Shipping form field names. These are the keys of the form's FieldErrors.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldAddress   = "address"
	FieldCity      = "city"
	FieldState     = "state"
	FieldZipCode   = "zipCode"
	FieldCountry   = "country"
)

// emailPattern is the deliberately loose local@domain.tld shape. Real
// address verification is out of scope for a simulated checkout.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ShippingForm holds the shipping-step payload and its validation state.
type ShippingForm struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
	Country   string

	Errors FieldErrors
}

// NewShippingForm returns a blank form with the reference default country.
func NewShippingForm() ShippingForm {
	return ShippingForm{Country: "United States", Errors: FieldErrors{}}
}

// Set updates a field by name and clears that field's error immediately.
// The new value is not re-validated until the next submit.
func (f *ShippingForm) Set(field, value string) {
	switch field {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	case FieldAddress:
		f.Address = value
	case FieldCity:
		f.City = value
	case FieldState:
		f.State = value
	case FieldZipCode:
		f.ZipCode = value
	case FieldCountry:
		f.Country = value
	default:
		return
	}
	delete(f.Errors, field)
}

// Validate checks every field and replaces the form's error map. It returns
// true when the form is submittable.
func (f *ShippingForm) Validate() bool {
	errs := FieldErrors{}

	if strings.TrimSpace(f.FirstName) == "" {
		errs[FieldFirstName] = "First name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs[FieldLastName] = "Last name is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs[FieldEmail] = "Email is required"
	} else if !emailPattern.MatchString(strings.TrimSpace(f.Email)) {
		errs[FieldEmail] = "Email is invalid"
	}
	if strings.TrimSpace(f.Phone) == "" {
		errs[FieldPhone] = "Phone number is required"
	}
	if strings.TrimSpace(f.Address) == "" {
		errs[FieldAddress] = "Address is required"
	}
	if strings.TrimSpace(f.City) == "" {
		errs[FieldCity] = "City is required"
	}
	if strings.TrimSpace(f.State) == "" {
		errs[FieldState] = "State is required"
	}
	if strings.TrimSpace(f.ZipCode) == "" {
		errs[FieldZipCode] = "ZIP code is required"
	}

	f.Errors = errs
	return len(errs) == 0
}

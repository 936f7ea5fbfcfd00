package checkout

import (
	"errors"

	"github.com/hupe1980/shopmesh/internal/util"
)

// Address is the structured shipping address attached to a checkout.
// Name and Region are optional; the remaining fields are required by
// ValidateCustomerDetails.
type Address struct {
	Name       string `json:"name,omitempty"`
	Street     string `json:"address_line1"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// CustomerDetails bundles the shipping address with the buyer email. Once
// set on a session it is replaced wholesale; there is no partial patching.
type CustomerDetails struct {
	Address Address `json:"address"`
	Email   string  `json:"email"`
}

// ValidateCustomerDetails applies the minimal boundary validation of the
// external contract: street, city, postal code and country must be present
// and the email must look like an email. Violations are reported as an
// Error with KindInvalidCustomerDetails wrapping the field-level cause.
func ValidateCustomerDetails(addr Address, email string) error {
	checks := []error{
		util.RequireNonEmpty("address_line1", addr.Street),
		util.RequireNonEmpty("city", addr.City),
		util.RequireNonEmpty("postal_code", addr.PostalCode),
		util.RequireNonEmpty("country", addr.Country),
		util.ValidateEmail(email),
	}
	for _, err := range checks {
		if err != nil {
			var ve *util.ValidationError
			if errors.As(err, &ve) {
				return NewError(KindInvalidCustomerDetails, "%s: %s", ve.Field, ve.Message)
			}
			return NewError(KindInvalidCustomerDetails, "%v", err)
		}
	}
	return nil
}

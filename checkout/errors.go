package checkout

import (
	"errors"
	"fmt"
)

// Kind categorizes checkout failures with a stable machine-readable code.
// Every failure surfaced to an external caller carries exactly one Kind.
type Kind string

const (
	// KindProductNotFound signals an unknown product identifier.
	KindProductNotFound Kind = "PRODUCT_NOT_FOUND"
	// KindCheckoutNotFound signals an unknown checkout identifier.
	KindCheckoutNotFound Kind = "CHECKOUT_NOT_FOUND"
	// KindOrderNotFound signals an unknown order identifier.
	KindOrderNotFound Kind = "ORDER_NOT_FOUND"
	// KindInvalidQuantity signals a quantity that violates the line item rules.
	KindInvalidQuantity Kind = "INVALID_QUANTITY"
	// KindItemNotFound signals an update against a product with no line item.
	KindItemNotFound Kind = "ITEM_NOT_FOUND"
	// KindInvalidCustomerDetails signals a rejected address or email.
	KindInvalidCustomerDetails Kind = "INVALID_CUSTOMER_DETAILS"
	// KindPaymentPreconditionFailed signals start_payment or complete called
	// before the session satisfied the required preconditions.
	KindPaymentPreconditionFailed Kind = "PAYMENT_PRECONDITION_FAILED"
	// KindSessionFinalized signals a mutation against a completed session.
	KindSessionFinalized Kind = "SESSION_FINALIZED"
)

// Error is the structured failure type of the checkout domain. It pairs a
// Kind with a human-readable message so callers can branch on the code and
// humans can read the cause.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("checkout error [%s]: %s", e.Kind, e.Message)
}

// NewError creates an Error with the given kind and formatted message.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from an error chain. It returns the empty Kind
// for nil or foreign errors.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// IsKind reports whether the error chain contains a checkout Error of the
// given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

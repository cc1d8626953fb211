package broker

import "context"

// Customer is the opaque customer record created with the processor. It is
// created fresh on every call, forwarded to the client and never stored.
type Customer struct {
	ID string
}

// Intent is the minimal view of a processor-side payment or setup intent.
// The client secret is single-use and must be forwarded verbatim, never
// logged or persisted.
type Intent struct {
	ID           string
	ClientSecret string
}

// PaymentIntentOptions captures the information required to open a payment
// intent with the processor.
type PaymentIntentOptions struct {
	Amount     int64
	Currency   string
	CustomerID string
	// SaveCard marks the intent so the collected payment method stays usable
	// for later off-session charges.
	SaveCard bool
}

// Processor abstracts the operations required from the upstream payment
// processor.
type Processor interface {
	CreateCustomer(ctx context.Context) (Customer, error)
	CreatePaymentIntent(ctx context.Context, opts PaymentIntentOptions) (Intent, error)
	CreateSetupIntent(ctx context.Context, customerID string) (Intent, error)
}

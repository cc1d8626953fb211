package broker

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"

	"github.com/noah-isme/backend-salon/internal/obs"
)

// StripeProcessor implements Processor on top of the Stripe API. The client
// is constructed explicitly and injected; the package-level stripe globals
// are never touched.
type StripeProcessor struct {
	api *client.API
	// AccountID, when set, scopes every call to a connected account.
	AccountID string
}

// NewStripeProcessor constructs a processor bound to the given secret key.
func NewStripeProcessor(secretKey, accountID string) (*StripeProcessor, error) {
	key := strings.TrimSpace(secretKey)
	if key == "" {
		return nil, errors.New("stripe secret key is required")
	}
	api := &client.API{}
	api.Init(key, nil)
	return &StripeProcessor{api: api, AccountID: strings.TrimSpace(accountID)}, nil
}

// CreateCustomer creates a fresh anonymous customer record.
func (p *StripeProcessor) CreateCustomer(ctx context.Context) (Customer, error) {
	params := &stripe.CustomerParams{}
	p.prepare(ctx, &params.Params)

	start := time.Now()
	cus, err := p.api.Customers.New(params)
	observeProcessorCall("create_customer", start, err)
	if err != nil {
		return Customer{}, translateStripeError(err)
	}
	return Customer{ID: cus.ID}, nil
}

// CreatePaymentIntent opens a card payment intent for the given customer and
// amount. When SaveCard is set the intent is marked for off-session future
// usage so the payment method stays attached after confirmation.
func (p *StripeProcessor) CreatePaymentIntent(ctx context.Context, opts PaymentIntentOptions) (Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(opts.Amount),
		Currency:           stripe.String(opts.Currency),
		Customer:           stripe.String(opts.CustomerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	if opts.SaveCard {
		params.SetupFutureUsage = stripe.String(string(stripe.PaymentIntentSetupFutureUsageOffSession))
	}
	p.prepare(ctx, &params.Params)

	start := time.Now()
	pi, err := p.api.PaymentIntents.New(params)
	observeProcessorCall("create_payment_intent", start, err)
	if err != nil {
		return Intent{}, translateStripeError(err)
	}
	return Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// CreateSetupIntent opens a zero-value card verification intent bound to the
// given customer.
func (p *StripeProcessor) CreateSetupIntent(ctx context.Context, customerID string) (Intent, error) {
	params := &stripe.SetupIntentParams{
		Customer:           stripe.String(customerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	p.prepare(ctx, &params.Params)

	start := time.Now()
	si, err := p.api.SetupIntents.New(params)
	observeProcessorCall("create_setup_intent", start, err)
	if err != nil {
		return Intent{}, translateStripeError(err)
	}
	return Intent{ID: si.ID, ClientSecret: si.ClientSecret}, nil
}

// Ping verifies the configured credentials with a lightweight balance
// retrieval. Used by the readiness probe.
func (p *StripeProcessor) Ping(ctx context.Context) error {
	if p == nil || p.api == nil {
		return errors.New("stripe processor not configured")
	}
	params := &stripe.BalanceParams{}
	params.Context = ctx
	if p.AccountID != "" {
		params.SetStripeAccount(p.AccountID)
	}
	_, err := p.api.Balance.Get(params)
	return translateStripeError(err)
}

// prepare attaches the request context, a fresh idempotency key, and the
// optional connected account to outgoing call params.
func (p *StripeProcessor) prepare(ctx context.Context, params *stripe.Params) {
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())
	if p.AccountID != "" {
		params.SetStripeAccount(p.AccountID)
	}
}

// translateStripeError surfaces the processor's own user-facing message text.
func translateStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && strings.TrimSpace(stripeErr.Msg) != "" {
		return errors.New(stripeErr.Msg)
	}
	return err
}

func observeProcessorCall(operation string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	if obs.ProcessorCallTotal != nil {
		obs.ProcessorCallTotal.WithLabelValues(operation, result).Inc()
	}
	if obs.ProcessorCallLatency != nil {
		obs.ProcessorCallLatency.WithLabelValues(operation).Observe(obs.DurationMillis(time.Since(start)))
	}
}

package broker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/backend-salon/internal/obs"
)

// Checkout modes offered by the booking page. Exactly one is active at a time
// on the client; each maps to one broker operation.
const (
	ModePayNow   = "paynow"
	ModeReserve  = "reserve"
	ModeSaveCard = "savecard"
)

// IntentResult is the uniform outcome of every broker operation: the opaque
// client secret the embedded widget confirms against, plus the id of the
// customer the intent is bound to.
type IntentResult struct {
	ClientSecret string `json:"clientSecret"`
	CustomerID   string `json:"customerId"`
}

// Service translates a client-selected checkout mode into the required pair
// of processor calls. It holds no state between requests; every invocation
// manufactures a fresh customer and a fresh intent.
type Service struct {
	Processor       Processor
	DefaultCurrency string
}

// CreatePayNowIntent creates a customer and a card payment intent for the
// given amount. The amount is validated locally before the processor is
// called; the currency falls back to the configured default when empty.
func (s *Service) CreatePayNowIntent(ctx context.Context, amount int64, currency string, saveCard bool) (IntentResult, error) {
	if s == nil || s.Processor == nil {
		return IntentResult{}, errors.New("intent broker not configured")
	}
	ctx, span := otel.Tracer("broker.Service").Start(ctx, "Service.CreatePayNowIntent")
	defer span.End()

	result := "error"
	defer func() { countIntent(ModePayNow, result) }()

	if amount <= 0 {
		return IntentResult{}, fmt.Errorf("amount must be a positive integer, got %d", amount)
	}
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = s.DefaultCurrency
	}
	span.SetAttributes(
		attribute.Int64("checkout.amount", amount),
		attribute.String("checkout.currency", currency),
		attribute.Bool("checkout.save_card", saveCard),
	)

	// The intent embeds the customer id, so the two processor calls are
	// strictly sequential. A customer orphaned by a failed intent call is
	// not cleaned up.
	customer, err := s.Processor.CreateCustomer(ctx)
	if err != nil {
		span.RecordError(err)
		return IntentResult{}, err
	}
	intent, err := s.Processor.CreatePaymentIntent(ctx, PaymentIntentOptions{
		Amount:     amount,
		Currency:   currency,
		CustomerID: customer.ID,
		SaveCard:   saveCard,
	})
	if err != nil {
		span.RecordError(err)
		return IntentResult{}, err
	}

	result = "success"
	return IntentResult{ClientSecret: intent.ClientSecret, CustomerID: customer.ID}, nil
}

// CreateReserveIntent creates a customer and a zero-value verification intent
// used to hold a booking without charging the card.
func (s *Service) CreateReserveIntent(ctx context.Context) (IntentResult, error) {
	return s.createSetupIntent(ctx, ModeReserve)
}

// CreateSaveCardIntent behaves identically to CreateReserveIntent. The two
// operations are kept distinct so the external contract can diverge later
// without breaking callers.
func (s *Service) CreateSaveCardIntent(ctx context.Context) (IntentResult, error) {
	return s.createSetupIntent(ctx, ModeSaveCard)
}

func (s *Service) createSetupIntent(ctx context.Context, mode string) (IntentResult, error) {
	if s == nil || s.Processor == nil {
		return IntentResult{}, errors.New("intent broker not configured")
	}
	ctx, span := otel.Tracer("broker.Service").Start(ctx, "Service.CreateSetupIntent")
	defer span.End()
	span.SetAttributes(attribute.String("checkout.mode", mode))

	result := "error"
	defer func() { countIntent(mode, result) }()

	customer, err := s.Processor.CreateCustomer(ctx)
	if err != nil {
		span.RecordError(err)
		return IntentResult{}, err
	}
	intent, err := s.Processor.CreateSetupIntent(ctx, customer.ID)
	if err != nil {
		span.RecordError(err)
		return IntentResult{}, err
	}

	result = "success"
	return IntentResult{ClientSecret: intent.ClientSecret, CustomerID: customer.ID}, nil
}

func countIntent(mode, result string) {
	if obs.CheckoutIntentTotal != nil {
		obs.CheckoutIntentTotal.WithLabelValues(mode, result).Inc()
	}
}

package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"

	"github.com/rajchaudar/HR-Dep/pkg/config"
	"github.com/rajchaudar/HR-Dep/pkg/logger"
	"github.com/rajchaudar/HR-Dep/pkg/types"
)

const (
	testEnv = "test"
	liveEnv = "live"
)

var (
	errAPIKeyRequired   = errors.New("stripe api key is required")
	errInvalidStripeEnv = fmt.Errorf("stripe environment must be %q or %q", testEnv, liveEnv)
)

// Intent is the subset of a Stripe PaymentIntent the checkout flow needs.
type Intent struct {
	ID           string
	ClientSecret string
}

// IntentParams describes a payment to collect.
type IntentParams struct {
	Amount       decimal.Decimal
	Currency     string
	ReceiptEmail string
	CustomerName string
	Shipping     types.Address
	Metadata     map[string]string
}

// MinorUnits converts a decimal amount to the currency's smallest unit,
// rounding half away from zero so 10.005 becomes 1001 cents.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// PaymentIntents creates and cancels payment intents. Checkout depends on
// this interface so tests can stub the processor.
type PaymentIntents interface {
	CreateIntent(ctx context.Context, params IntentParams) (*Intent, error)
	CancelIntent(ctx context.Context, intentID string) error
}

// Client wraps Stripe's API plus env-specific metadata.
type Client struct {
	environment string
}

// NewClient initializes Stripe once with the configured secret key and env.
func NewClient(ctx context.Context, cfg config.StripeConfig, logg *logger.Logger) (*Client, error) {
	env, err := normalizeEnv(cfg.Environment())
	if err != nil {
		return nil, err
	}

	apiKey := strings.TrimSpace(cfg.SecretKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}
	if err := validateAPIKey(env, apiKey); err != nil {
		return nil, err
	}

	stripe.Key = apiKey

	if logg != nil {
		logg.Info(ctx, fmt.Sprintf("stripe client initialized (%s)", env))
	}

	return &Client{environment: env}, nil
}

// Environment reports the normalized Stripe environment in use.
func (c *Client) Environment() string {
	if c == nil {
		return ""
	}
	return c.environment
}

// CreateIntent creates a PaymentIntent for the given amount. The amount is
// converted to the currency's smallest unit before hitting Stripe.
func (c *Client) CreateIntent(ctx context.Context, params IntentParams) (*Intent, error) {
	cents := MinorUnits(params.Amount)
	if cents <= 0 {
		return nil, fmt.Errorf("payment amount must be positive, got %s", params.Amount)
	}

	piParams := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(cents),
		Currency: stripe.String(params.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: params.Metadata,
	}
	piParams.Context = ctx
	if params.ReceiptEmail != "" {
		piParams.ReceiptEmail = stripe.String(params.ReceiptEmail)
	}
	if params.Shipping.Complete() {
		piParams.Shipping = &stripe.ShippingDetailsParams{
			Name: stripe.String(params.CustomerName),
			Address: &stripe.AddressParams{
				Line1:      stripe.String(params.Shipping.Line1),
				City:       stripe.String(params.Shipping.City),
				State:      stripe.String(params.Shipping.State),
				PostalCode: stripe.String(params.Shipping.PostalCode),
				Country:    stripe.String(params.Shipping.Country),
			},
		}
	}

	intent, err := paymentintent.New(piParams)
	if err != nil {
		return nil, fmt.Errorf("creating payment intent: %w", err)
	}
	return &Intent{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

// CancelIntent voids an intent that was created but never charged.
func (c *Client) CancelIntent(ctx context.Context, intentID string) error {
	if strings.TrimSpace(intentID) == "" {
		return errors.New("intent id is required")
	}
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	if _, err := paymentintent.Cancel(intentID, params); err != nil {
		return fmt.Errorf("canceling payment intent %s: %w", intentID, err)
	}
	return nil
}

func normalizeEnv(raw string) (string, error) {
	env := strings.TrimSpace(strings.ToLower(raw))
	if env == "" {
		env = testEnv
	}
	switch env {
	case testEnv, liveEnv:
		return env, nil
	default:
		return "", errInvalidStripeEnv
	}
}

func validateAPIKey(env, key string) error {
	switch env {
	case testEnv:
		if strings.HasPrefix(key, "sk_test") || strings.HasPrefix(key, "rk_test") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a test secret key (sk_test/rk_test)", testEnv)
	case liveEnv:
		if strings.HasPrefix(key, "sk_live") || strings.HasPrefix(key, "rk_live") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a live secret key (sk_live/rk_live)", liveEnv)
	default:
		return errInvalidStripeEnv
	}
}

package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/you/clubsvc/domain"
)

// StripeServiceImpl implements domain.PaymentGateway against Stripe's
// hosted checkout and signed webhook scheme.
type StripeServiceImpl struct {
	api           *client.API
	webhookSecret string
}

// NewStripeService creates a new Stripe payment gateway. The client is
// constructed here rather than relying on the package-level key so the
// gateway can be injected and torn down with the process.
func NewStripeService(secretKey, webhookSecret string) domain.PaymentGateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeServiceImpl{
		api:           api,
		webhookSecret: webhookSecret,
	}
}

// CreateCheckout implements domain.PaymentGateway
func (s *StripeServiceImpl) CreateCheckout(ctx context.Context, p domain.CheckoutParams) (string, string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:      stripe.String(p.Email),
		SuccessURL:         stripe.String(p.SuccessURL),
		CancelURL:          stripe.String(p.CancelURL),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(p.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(p.Label),
					Description: stripe.String(p.Description),
				},
				UnitAmount: stripe.Int64(p.Amount),
			},
			Quantity: stripe.Int64(1),
		}},
	}
	params.Context = ctx
	params.AddMetadata("user_id", strconv.FormatUint(uint64(p.UserID), 10))
	params.AddMetadata("membership_tier", string(p.Tier))
	params.AddMetadata("season", strconv.Itoa(p.Season))

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	return sess.ID, sess.URL, nil
}

// VerifyEvent implements domain.PaymentGateway. A payload that fails the
// signature check is rejected before anything is decoded.
func (s *StripeServiceImpl) VerifyEvent(payload []byte, signature string) (*domain.PaymentEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return nil, domain.ErrWebhookSignature
	}

	out := &domain.PaymentEvent{ID: event.ID, Type: domain.EventUnknown}

	switch string(event.Type) {
	case string(domain.EventCheckoutCompleted):
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("failed to decode checkout session: %w", err)
		}
		out.Type = domain.EventCheckoutCompleted
		out.CheckoutSessionID = sess.ID
		if sess.PaymentIntent != nil {
			out.PaymentID = sess.PaymentIntent.ID
		}
		if sess.Metadata != nil {
			if id, err := strconv.ParseUint(sess.Metadata["user_id"], 10, 32); err == nil {
				out.UserID = uint(id)
			}
			out.Tier = domain.MembershipTier(sess.Metadata["membership_tier"])
			if season, err := strconv.Atoi(sess.Metadata["season"]); err == nil {
				out.Season = season
			}
		}
	case string(domain.EventPaymentFailed):
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("failed to decode payment intent: %w", err)
		}
		out.Type = domain.EventPaymentFailed
		out.PaymentID = pi.ID
	}

	return out, nil
}

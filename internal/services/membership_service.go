package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/you/clubsvc/domain"
)

// TierPrice describes a membership tier's fee.
type TierPrice struct {
	Label       string
	Amount      int64
	Description string
}

// TierPrices is the club's fee table in GBP minor units.
var TierPrices = map[domain.MembershipTier]TierPrice{
	domain.TierSeniorPlaying: {
		Label:       "Senior Playing Member",
		Amount:      8000,
		Description: "Full playing membership for senior players (18+)",
	},
	domain.TierJuniorPlaying: {
		Label:       "Junior Playing Member",
		Amount:      4000,
		Description: "Playing membership for junior players (under 18)",
	},
	domain.TierSocial: {
		Label:       "Social Member",
		Amount:      2500,
		Description: "Support the club without playing",
	},
	domain.TierFamily: {
		Label:       "Family Membership",
		Amount:      15000,
		Description: "Full family membership for up to 4 members",
	},
	domain.TierLife: {
		Label:       "Life Member",
		Amount:      50000,
		Description: "Lifetime club membership",
	},
}

// MembershipServiceImpl implements domain.MembershipService
type MembershipServiceImpl struct {
	membershipRepo domain.MembershipRepository
	userRepo       domain.UserRepository
	gateway        domain.PaymentGateway
	ledger         domain.EventLedger
	baseURL        string
	clubName       string
}

// NewMembershipService creates a new membership service
func NewMembershipService(
	membershipRepo domain.MembershipRepository,
	userRepo domain.UserRepository,
	gateway domain.PaymentGateway,
	ledger domain.EventLedger,
	baseURL string,
	clubName string,
) domain.MembershipService {
	return &MembershipServiceImpl{
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		gateway:        gateway,
		ledger:         ledger,
		baseURL:        baseURL,
		clubName:       clubName,
	}
}

// StartCheckout implements domain.MembershipService
func (s *MembershipServiceImpl) StartCheckout(ctx context.Context, user *domain.User, tier domain.MembershipTier) (*domain.CheckoutResult, error) {
	price, ok := TierPrices[tier]
	if !ok {
		return nil, domain.ErrInvalidTier
	}

	season := time.Now().Year()
	sessionID, checkoutURL, err := s.gateway.CreateCheckout(ctx, domain.CheckoutParams{
		UserID:      user.ID,
		Email:       user.Email,
		Tier:        tier,
		Season:      season,
		Amount:      price.Amount,
		Currency:    "gbp",
		Label:       fmt.Sprintf("%s %s — %d Season", s.clubName, price.Label, season),
		Description: price.Description,
		SuccessURL:  s.baseURL + "/membership/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   s.baseURL + "/membership",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	membership := &domain.Membership{
		UserID:            user.ID,
		Tier:              tier,
		Season:            season,
		Amount:            price.Amount,
		Currency:          "GBP",
		CheckoutSessionID: sessionID,
		Status:            domain.PaymentPending,
	}
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return nil, fmt.Errorf("failed to create membership record: %w", err)
	}

	return &domain.CheckoutResult{
		CheckoutURL:       checkoutURL,
		CheckoutSessionID: sessionID,
		Membership:        membership,
	}, nil
}

// HandleWebhook implements domain.MembershipService. Signature failures
// carry domain.ErrWebhookSignature and cause no mutation; redeliveries
// of an already-processed event id are acknowledged and skipped.
func (s *MembershipServiceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.VerifyEvent(payload, signature)
	if err != nil {
		return err
	}

	first, err := s.ledger.FirstSeen(ctx, event.ID)
	if err != nil {
		return err
	}
	if !first {
		log.Printf("WEBHOOK_DUPLICATE: event_id=%s type=%s timestamp=%s",
			event.ID, event.Type, time.Now().UTC().Format(time.RFC3339))
		return nil
	}

	var applyErr error
	switch event.Type {
	case domain.EventCheckoutCompleted:
		applyErr = s.applyCheckoutCompleted(ctx, event)
	case domain.EventPaymentFailed:
		applyErr = s.applyPaymentFailed(ctx, event)
	default:
		// Unknown event types are accepted and ignored.
	}

	if applyErr != nil {
		// The event was recorded but not applied; release the id so the
		// provider's redelivery is not mistaken for a duplicate.
		if err := s.ledger.Forget(ctx, event.ID); err != nil {
			log.Printf("WEBHOOK_LEDGER_RELEASE_FAILED: event_id=%s error=%v", event.ID, err)
		}
		return applyErr
	}

	return nil
}

func (s *MembershipServiceImpl) applyCheckoutCompleted(ctx context.Context, event *domain.PaymentEvent) error {
	membership, err := s.membershipRepo.FindByCheckoutSession(ctx, event.CheckoutSessionID)
	if err != nil {
		return err
	}

	now := time.Now()
	membership.Status = domain.PaymentPaid
	membership.PaymentID = event.PaymentID
	membership.PaidAt = &now
	if err := s.membershipRepo.Update(ctx, membership); err != nil {
		return fmt.Errorf("failed to mark membership paid: %w", err)
	}

	expiry := domain.SeasonExpiry(membership.Season)
	if err := s.userRepo.ActivateMembership(ctx, membership.UserID, membership.Tier, expiry); err != nil {
		return fmt.Errorf("failed to activate membership: %w", err)
	}

	log.Printf("MEMBERSHIP_PAID: user_id=%d season=%d tier=%s expiry=%s",
		membership.UserID, membership.Season, membership.Tier, expiry.Format("2006-01-02"))

	return nil
}

func (s *MembershipServiceImpl) applyPaymentFailed(ctx context.Context, event *domain.PaymentEvent) error {
	membership, err := s.membershipRepo.FindByPayment(ctx, event.PaymentID)
	if err != nil {
		if err == domain.ErrMembershipNotFound {
			// A failed intent with no membership bound to it yet is
			// nothing to reconcile.
			return nil
		}
		return err
	}

	membership.Status = domain.PaymentFailed
	if err := s.membershipRepo.Update(ctx, membership); err != nil {
		return fmt.Errorf("failed to mark membership failed: %w", err)
	}

	log.Printf("MEMBERSHIP_PAYMENT_FAILED: user_id=%d membership_id=%d payment_id=%s",
		membership.UserID, membership.ID, event.PaymentID)

	return nil
}

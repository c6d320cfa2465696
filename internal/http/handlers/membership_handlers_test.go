package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/you/clubsvc/domain"
	"github.com/you/clubsvc/internal/http/middleware"
	"github.com/you/clubsvc/internal/mocks"
)

func membershipRouter(svc domain.MembershipService, user *domain.User) *gin.Engine {
	h := NewMembershipHandlers(svc)
	r := gin.New()
	r.POST("/membership/checkout", func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CtxUser, user)
		}
		h.Checkout(c)
	})
	r.POST("/payments/webhook", h.Webhook)
	return r
}

func TestCheckoutRequiresAuthentication(t *testing.T) {
	r := membershipRouter(mocks.NewMockMembershipService(), nil)

	w := postJSON(r, "/membership/checkout", map[string]any{"membership_tier": "SOCIAL"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckoutReturnsHostedURL(t *testing.T) {
	svc := mocks.NewMockMembershipService()
	svc.StartCheckoutFunc = func(ctx context.Context, user *domain.User, tier domain.MembershipTier) (*domain.CheckoutResult, error) {
		require.Equal(t, domain.TierSocial, tier)
		return &domain.CheckoutResult{CheckoutURL: "https://checkout.example.com/cs_1", CheckoutSessionID: "cs_1"}, nil
	}
	r := membershipRouter(svc, &domain.User{ID: 4, Role: domain.RoleMember})

	w := postJSON(r, "/membership/checkout", map[string]any{"membership_tier": "SOCIAL"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "https://checkout.example.com/cs_1")
}

func TestCheckoutInvalidTier(t *testing.T) {
	r := membershipRouter(mocks.NewMockMembershipService(), &domain.User{ID: 4})

	w := postJSON(r, "/membership/checkout", map[string]any{"membership_tier": "PLATINUM"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func postWebhook(r *gin.Engine, body, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader([]byte(body)))
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookBadSignatureGets400(t *testing.T) {
	r := membershipRouter(mocks.NewMockMembershipService(), nil)
	// Default mock rejects every signature.

	w := postWebhook(r, `{"id":"evt_1"}`, "t=1,v1=bogus")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid signature")
}

func TestWebhookPassesRawBodyAndSignature(t *testing.T) {
	svc := mocks.NewMockMembershipService()
	var gotPayload, gotSignature string
	svc.HandleWebhookFunc = func(ctx context.Context, payload []byte, signature string) error {
		gotPayload = string(payload)
		gotSignature = signature
		return nil
	}
	r := membershipRouter(svc, nil)

	body := `{"id":"evt_1","type":"checkout.session.completed"}`
	w := postWebhook(r, body, "t=1,v1=good")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.Contains(w.Body.String(), `"received":true`))
	require.Equal(t, body, gotPayload)
	require.Equal(t, "t=1,v1=good", gotSignature)
}

func TestWebhookUnknownCheckoutSessionGets400(t *testing.T) {
	svc := mocks.NewMockMembershipService()
	svc.HandleWebhookFunc = func(ctx context.Context, payload []byte, signature string) error {
		return domain.ErrMembershipNotFound
	}
	r := membershipRouter(svc, nil)

	w := postWebhook(r, `{"id":"evt_1"}`, "t=1,v1=good")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookInternalFailureGets500(t *testing.T) {
	svc := mocks.NewMockMembershipService()
	svc.HandleWebhookFunc = func(ctx context.Context, payload []byte, signature string) error {
		return context.DeadlineExceeded
	}
	r := membershipRouter(svc, nil)

	w := postWebhook(r, `{"id":"evt_1"}`, "t=1,v1=good")
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

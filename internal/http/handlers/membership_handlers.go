package handlers

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/clubsvc/domain"
	"github.com/you/clubsvc/internal/http/middleware"
)

// MembershipHandlers handles checkout initiation and the asynchronous
// payment-provider webhook.
type MembershipHandlers struct {
	membershipSvc domain.MembershipService
}

// NewMembershipHandlers creates new membership handlers
func NewMembershipHandlers(membershipSvc domain.MembershipService) *MembershipHandlers {
	return &MembershipHandlers{membershipSvc: membershipSvc}
}

// CheckoutRequest represents a checkout initiation request
type CheckoutRequest struct {
	Tier string `json:"membership_tier" binding:"required"`
}

// Checkout starts a hosted payment for the authenticated member
func (h *MembershipHandlers) Checkout(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.membershipSvc.StartCheckout(c.Request.Context(), user, domain.MembershipTier(req.Tier))
	if err != nil {
		switch err {
		case domain.ErrInvalidTier:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid membership tier"})
		default:
			log.Printf("CHECKOUT_FAILED: user_id=%d error=%v timestamp=%s",
				user.ID, err, time.Now().UTC().Format(time.RFC3339))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkout_url": result.CheckoutURL})
}

// Webhook receives provider notifications. The signature is checked
// against the raw body; a bad signature gets 400 and mutates nothing.
// Unknown and duplicate events are acknowledged with 200.
func (h *MembershipHandlers) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable payload"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.membershipSvc.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		switch err {
		case domain.ErrWebhookSignature:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		case domain.ErrMembershipNotFound:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown checkout session"})
		default:
			log.Printf("WEBHOOK_FAILED: error=%v timestamp=%s",
				err, time.Now().UTC().Format(time.RFC3339))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

package handlers

import (
	"net/http"
	"regexp"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/you/clubsvc/domain"
	"github.com/you/clubsvc/internal/http/middleware"
)

var phonePattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)
var maskPattern = regexp.MustCompile(`^(\+\d{2})\d+(\d{3})$`)

// CookieOptions carries the session cookie parameters.
type CookieOptions struct {
	Name   string
	MaxAge int
	Secure bool
}

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc  domain.AuthService
	otpSvc   domain.OTPService
	userRepo domain.UserRepository
	cookie   CookieOptions
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, otpSvc domain.OTPService, userRepo domain.UserRepository, cookie CookieOptions) *AuthHandlers {
	return &AuthHandlers{
		authSvc:  authSvc,
		otpSvc:   otpSvc,
		userRepo: userRepo,
		cookie:   cookie,
	}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	Tier      string `json:"membership_tier" binding:"required"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OTPVerifyRequest represents OTP verification request
type OTPVerifyRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Code   string `json:"code" binding:"required,len=6"`
}

// OTPResendRequest represents an OTP resend request
type OTPResendRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// Register handles member registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !phonePattern.MatchString(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone must be in international format e.g. +447911123456"})
		return
	}
	if !passwordStrong(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must contain uppercase, lowercase, and a number"})
		return
	}
	tier := domain.MembershipTier(req.Tier)
	if !tier.Valid() || tier == domain.TierLife {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid membership tier"})
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), domain.Registration{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		Tier:      tier,
	})
	if err != nil {
		switch err {
		case domain.ErrEmailTaken, domain.ErrPhoneTaken:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred during registration"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user_id":      user.ID,
		"masked_phone": maskPhone(user.Phone),
		"message":      "Account created! Verify your mobile number to continue.",
	})
}

// Login handles the password step. Members with two-factor enabled get
// an OTP and no session yet; the rest get the cookie straight away.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		case domain.ErrUserSuspended:
			c.JSON(http.StatusForbidden, gin.H{"error": "Your account has been suspended. Contact the club."})
		case domain.ErrOTPResendLimit:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting another code"})
		case domain.ErrSMSDelivery:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred"})
		}
		return
	}

	if token == "" {
		c.JSON(http.StatusOK, gin.H{
			"user_id":      user.ID,
			"masked_phone": maskPhone(user.Phone),
			"message":      "Verification code sent to " + maskPhone(user.Phone),
		})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"user": safeUser(user)})
}

// VerifyOTP handles the second factor and issues the session cookie
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authSvc.VerifyOTP(c.Request.Context(), req.UserID, req.Code)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		case domain.ErrOTPInvalid:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code. Please try again."})
		case domain.ErrOTPMaxAttempts:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts. Request a new code."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred"})
		}
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": safeUser(user)})
}

// ResendOTP issues a fresh code to the member's registered phone,
// retiring any outstanding one
func (h *AuthHandlers) ResendOTP(c *gin.Context) {
	var req OTPResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.otpSvc.Issue(c.Request.Context(), user.ID, user.Phone); err != nil {
		switch err {
		case domain.ErrOTPResendLimit:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting another code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent to " + maskPhone(user.Phone)})
}

// Logout destroys the session row and clears the cookie; both steps are
// idempotent and logout always succeeds.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookie.Name); err == nil && token != "" {
		_ = h.authSvc.Logout(c.Request.Context(), token)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the authenticated member's profile
func (h *AuthHandlers) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": safeUser(user)})
}

func (h *AuthHandlers) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, h.cookie.MaxAge, "/", "", h.cookie.Secure, true)
}

func safeUser(user *domain.User) gin.H {
	return gin.H{
		"id":                user.ID,
		"first_name":        user.FirstName,
		"last_name":         user.LastName,
		"email":             user.Email,
		"role":              user.Role,
		"membership_status": user.MembershipStatus,
		"membership_tier":   user.MembershipTier,
		"verified":          user.Verified,
	}
}

func maskPhone(phone string) string {
	return maskPattern.ReplaceAllString(phone, "$1****$2")
}

func passwordStrong(password string) bool {
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

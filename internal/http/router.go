package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/you/clubsvc/domain"
	"github.com/you/clubsvc/internal/http/handlers"
	"github.com/you/clubsvc/internal/http/middleware"
)

func BuildRouter(
	ah *handlers.AuthHandlers,
	mh *handlers.MembershipHandlers,
	dh *handlers.DocumentHandlers,
	authMW *middleware.AuthMW,
	metrics *middleware.Metrics,
	gatherer prometheus.Gatherer,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), metrics.Count())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/otp/verify", ah.VerifyOTP)
	auth.POST("/otp/resend", ah.ResendOTP)
	auth.POST("/logout", ah.Logout)

	// Provider-to-server callback, authenticated by its own signature.
	r.POST("/payments/webhook", mh.Webhook)

	member := r.Group("/", authMW.Authenticate())
	member.GET("/auth/me", ah.Me)
	member.POST("/membership/checkout", mh.Checkout)
	member.GET("/documents", dh.List)
	member.GET("/documents/:id/download", dh.Download)

	committee := r.Group("/", authMW.Authenticate(), authMW.RequireRole(domain.RoleCommittee))
	committee.POST("/documents", dh.Upload)

	admin := r.Group("/", authMW.Authenticate(), authMW.RequireRole(domain.RoleAdmin))
	admin.DELETE("/documents/:id", dh.Delete)

	return r
}

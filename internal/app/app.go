package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/clubsvc/internal/config"
	httpx "github.com/you/clubsvc/internal/http"
	"github.com/you/clubsvc/internal/http/handlers"
	"github.com/you/clubsvc/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	cookie := handlers.CookieOptions{
		Name:   cfg.CookieName,
		MaxAge: int(cfg.SessionTTL.Seconds()),
		Secure: cfg.Production,
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc, c.OTPSvc, c.UserRepo, cookie)
	membershipH := handlers.NewMembershipHandlers(c.MembershipSvc)
	documentH := handlers.NewDocumentHandlers(c.DocumentSvc)

	authMW := middleware.NewAuthMW(c.SessionSvc, cfg.CookieName)
	metrics := middleware.NewMetrics(c.Registry)

	r := httpx.BuildRouter(authH, membershipH, documentH, authMW, metrics, c.Registry)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

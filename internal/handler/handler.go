// Package handler wires the HTTP routes. Handlers compose the auth
// middleware, the field validator, and the response formatter; business
// logic stays in the subscription service and the provider client.
package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dainouesuketarou/subsc-manager-sub001/internal/apperr"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/auth"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/httpx"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/provider"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/subscription"
)

type Handler struct {
	subs   *subscription.Service
	prov   provider.Provider
	authmw *auth.Middleware
	fmtr   httpx.Formatter
	logger *zap.Logger
}

func New(
	subs *subscription.Service,
	prov provider.Provider,
	authmw *auth.Middleware,
	fmtr httpx.Formatter,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		subs:   subs,
		prov:   prov,
		authmw: authmw,
		fmtr:   fmtr,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/logout", h.Logout)
	authGroup.GET("/me", h.authmw.WithAuth(h.Me))

	subs := api.Group("/subscriptions")
	subs.Use(h.authmw.RequireAuth())
	subs.POST("", h.CreateSubscription)
	subs.GET("", h.ListSubscriptions)
	subs.GET("/summary", h.SubscriptionSummary)
	subs.GET("/:id", h.GetSubscription)
	subs.PUT("/:id", h.UpdateSubscription)
	subs.DELETE("/:id", h.DeleteSubscription)
}

// infraMessage is the client-facing text for classified infrastructure
// failures; the real cause stays in logs.
func infraMessage(kind apperr.Kind) string {
	switch kind {
	case apperr.KindConnection:
		return "Database connection error"
	case apperr.KindInit:
		return "Database initialization error"
	case apperr.KindQuery:
		return "Database query error"
	default:
		return "Internal server error"
	}
}

// failureFor maps a use-case error onto the uniform response shape.
func (h *Handler) failureFor(err error) httpx.Response {
	if kind := apperr.KindOf(err); kind != apperr.KindUnknown {
		h.logger.Error("infrastructure failure",
			zap.String("code", kind.Code()), zap.Error(err))
		return httpx.ErrorWithCode(kind.Status(), infraMessage(kind), kind.Code())
	}
	h.logger.Error("unhandled failure", zap.Error(err))
	return h.fmtr.ServerError(err)
}

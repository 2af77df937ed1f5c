package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dainouesuketarou/subsc-manager-sub001/internal/auth"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/httpx"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/subscription"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/validate"
)

type subscriptionRequest struct {
	Name            string `json:"name"`
	Price           int64  `json:"price"`
	Currency        string `json:"currency"`
	PaymentCycle    string `json:"paymentCycle"`
	NextPaymentDate string `json:"nextPaymentDate"`
	Category        string `json:"category"`
	Notes           string `json:"notes"`
}

func (r subscriptionRequest) validateFields() []string {
	return validate.Fields(
		validate.Field{Name: "name", Value: r.Name, Rules: []string{validate.RuleRequired}},
		validate.Field{Name: "paymentCycle", Value: r.PaymentCycle, Rules: []string{validate.RuleRequired}},
		validate.Field{Name: "nextPaymentDate", Value: r.NextPaymentDate, Rules: []string{validate.RuleRequired}},
	)
}

// parseDate accepts a bare date or a full timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func identity(c *gin.Context) (*auth.Identity, bool) {
	return auth.IdentityFromGin(c)
}

func (h *Handler) CreateSubscription(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		httpx.Unauthorized(auth.MsgAuthFailed).JSON(c)
		return
	}

	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fmtr.ServerError(err).JSON(c)
		return
	}
	if violations := req.validateFields(); len(violations) > 0 {
		httpx.ValidationError(strings.Join(violations, ", ")).JSON(c)
		return
	}
	nextPayment, err := parseDate(req.NextPaymentDate)
	if err != nil {
		httpx.ValidationError("nextPaymentDate must be a valid date").JSON(c)
		return
	}

	sub, err := h.subs.Create(c.Request.Context(), subscription.CreateInput{
		UserID:          id.ID,
		Name:            req.Name,
		Price:           req.Price,
		Currency:        req.Currency,
		PaymentCycle:    req.PaymentCycle,
		NextPaymentDate: nextPayment,
		Category:        req.Category,
		Notes:           req.Notes,
	})
	if err != nil {
		// Business-rule violations are client errors, not 500s.
		if errors.Is(err, subscription.ErrInvalidPaymentCycle) {
			httpx.ValidationError(err.Error()).JSON(c)
			return
		}
		h.failureFor(err).JSON(c)
		return
	}

	httpx.Success(sub, http.StatusCreated).JSON(c)
}

func (h *Handler) ListSubscriptions(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		httpx.Unauthorized(auth.MsgAuthFailed).JSON(c)
		return
	}

	subs, err := h.subs.List(c.Request.Context(), id.ID)
	if err != nil {
		h.failureFor(err).JSON(c)
		return
	}
	httpx.Success(gin.H{"subscriptions": subs}).JSON(c)
}

func (h *Handler) SubscriptionSummary(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		httpx.Unauthorized(auth.MsgAuthFailed).JSON(c)
		return
	}

	total, err := h.subs.MonthlyTotal(c.Request.Context(), id.ID)
	if err != nil {
		h.failureFor(err).JSON(c)
		return
	}
	httpx.Success(gin.H{"monthlyTotal": total}).JSON(c)
}

func (h *Handler) GetSubscription(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		httpx.Unauthorized(auth.MsgAuthFailed).JSON(c)
		return
	}

	sub, err := h.subs.Get(c.Request.Context(), id.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, subscription.ErrNotFound) {
			httpx.NotFound("subscription not found").JSON(c)
			return
		}
		h.failureFor(err).JSON(c)
		return
	}
	httpx.Success(sub).JSON(c)
}

func (h *Handler) UpdateSubscription(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		httpx.Unauthorized(auth.MsgAuthFailed).JSON(c)
		return
	}

	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fmtr.ServerError(err).JSON(c)
		return
	}
	if violations := req.validateFields(); len(violations) > 0 {
		httpx.ValidationError(strings.Join(violations, ", ")).JSON(c)
		return
	}
	nextPayment, err := parseDate(req.NextPaymentDate)
	if err != nil {
		httpx.ValidationError("nextPaymentDate must be a valid date").JSON(c)
		return
	}

	sub, err := h.subs.Update(c.Request.Context(), subscription.UpdateInput{
		UserID:          id.ID,
		ID:              c.Param("id"),
		Name:            req.Name,
		Price:           req.Price,
		Currency:        req.Currency,
		PaymentCycle:    req.PaymentCycle,
		NextPaymentDate: nextPayment,
		Category:        req.Category,
		Notes:           req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrInvalidPaymentCycle):
			httpx.ValidationError(err.Error()).JSON(c)
		case errors.Is(err, subscription.ErrNotFound):
			httpx.NotFound("subscription not found").JSON(c)
		default:
			h.failureFor(err).JSON(c)
		}
		return
	}
	httpx.Success(sub).JSON(c)
}

func (h *Handler) DeleteSubscription(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		httpx.Unauthorized(auth.MsgAuthFailed).JSON(c)
		return
	}

	if err := h.subs.Delete(c.Request.Context(), id.ID, c.Param("id")); err != nil {
		if errors.Is(err, subscription.ErrNotFound) {
			httpx.NotFound("subscription not found").JSON(c)
			return
		}
		h.failureFor(err).JSON(c)
		return
	}
	c.Status(http.StatusNoContent)
}

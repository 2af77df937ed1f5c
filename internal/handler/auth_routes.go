package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dainouesuketarou/subsc-manager-sub001/internal/auth"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/httpx"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/provider"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/provider/translate"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/validate"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

const registeredMessage = "確認メールを送信しました"

func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fmtr.ServerError(err).JSON(c)
		return
	}

	violations := validate.Fields(
		validate.Field{Name: "email", Value: req.Email, Rules: []string{validate.RuleRequired, validate.RuleEmail}},
		validate.Field{Name: "password", Value: req.Password, Rules: []string{validate.RuleRequired, validate.RulePassword}},
	)
	if len(violations) > 0 {
		httpx.ValidationError(strings.Join(violations, ", ")).JSON(c)
		return
	}

	res, err := h.prov.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if apiErr, ok := provider.AsAPIError(err); ok {
			httpx.ValidationError(translate.Translate(apiErr.Message)).JSON(c)
			return
		}
		h.failureFor(err).JSON(c)
		return
	}

	httpx.Success(gin.H{
		"user":    res.User,
		"session": res.Session,
		"message": registeredMessage,
	}, http.StatusCreated).JSON(c)
}

func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fmtr.ServerError(err).JSON(c)
		return
	}

	violations := validate.Fields(
		validate.Field{Name: "email", Value: req.Email, Rules: []string{validate.RuleRequired, validate.RuleEmail}},
		validate.Field{Name: "password", Value: req.Password, Rules: []string{validate.RuleRequired}},
	)
	if len(violations) > 0 {
		httpx.ValidationError(strings.Join(violations, ", ")).JSON(c)
		return
	}

	res, err := h.prov.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if apiErr, ok := provider.AsAPIError(err); ok {
			httpx.Unauthorized(translate.Translate(apiErr.Message)).JSON(c)
			return
		}
		h.failureFor(err).JSON(c)
		return
	}

	httpx.Success(gin.H{
		"user":    res.User,
		"session": res.Session,
	}).JSON(c)
}

// Logout revokes the presented token when there is one. Idempotent:
// a missing or already-dead token still yields 204.
func (h *Handler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
		if err := h.prov.SignOut(c.Request.Context(), token); err != nil {
			h.logger.Warn("logout sign-out failed", zap.Error(err))
		}
		// without this the revoked token keeps authenticating from the
		// cache until the TTL runs out
		h.authmw.InvalidateToken(c.Request.Context(), token)
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Me(c *gin.Context) {
	id, ok := auth.IdentityFromGin(c)
	if !ok {
		httpx.Unauthorized(auth.MsgAuthFailed).JSON(c)
		return
	}
	httpx.Success(gin.H{"user": id}).JSON(c)
}

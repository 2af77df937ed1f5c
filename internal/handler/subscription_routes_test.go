package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dainouesuketarou/subsc-manager-sub001/internal/apperr"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/provider"
)

func authed(t *testing.T, production bool) *env {
	t.Helper()
	e := newEnv(t, production)
	e.fake.AddToken("tok-a", provider.User{ID: "user-a", Email: "a@example.com"})
	e.fake.AddToken("tok-b", provider.User{ID: "user-b", Email: "b@example.com"})
	return e
}

func validPayload() gin.H {
	return gin.H{
		"name":            "Netflix",
		"price":           1490,
		"paymentCycle":    "monthly",
		"nextPaymentDate": "2026-09-01",
	}
}

func TestSubscriptionsRequireAuth(t *testing.T) {
	e := authed(t, false)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/subscriptions"},
		{http.MethodGet, "/api/subscriptions"},
		{http.MethodGet, "/api/subscriptions/some-id"},
		{http.MethodPut, "/api/subscriptions/some-id"},
		{http.MethodDelete, "/api/subscriptions/some-id"},
	} {
		w := e.do(tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, "Authorization header is required", decode(t, w)["error"])
	}
}

func TestCreateSubscription(t *testing.T) {
	t.Run("valid payload creates and returns 201", func(t *testing.T) {
		e := authed(t, false)
		w := e.do(http.MethodPost, "/api/subscriptions", "tok-a", validPayload())

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Netflix", body["name"])
		assert.Equal(t, "user-a", body["userId"])
		assert.NotEmpty(t, body["id"])
	})

	t.Run("missing fields fail validation with every message", func(t *testing.T) {
		e := authed(t, false)
		w := e.do(http.MethodPost, "/api/subscriptions", "tok-a", gin.H{"price": 100})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		msg, _ := decode(t, w)["error"].(string)
		assert.Contains(t, msg, "name is required")
		assert.Contains(t, msg, "paymentCycle is required")
		assert.Contains(t, msg, "nextPaymentDate is required")
	})

	t.Run("unknown payment cycle is a validation error, not a 500", func(t *testing.T) {
		e := authed(t, false)
		payload := validPayload()
		payload["paymentCycle"] = "biweekly"
		w := e.do(http.MethodPost, "/api/subscriptions", "tok-a", payload)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid payment cycle", decode(t, w)["error"])
	})

	t.Run("unparseable date is a validation error", func(t *testing.T) {
		e := authed(t, false)
		payload := validPayload()
		payload["nextPaymentDate"] = "next tuesday"
		w := e.do(http.MethodPost, "/api/subscriptions", "tok-a", payload)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("database failure returns the classified code", func(t *testing.T) {
		e := authed(t, true)
		e.repo.FailWith = apperr.Connection("ping", assert.AnError)
		w := e.do(http.MethodPost, "/api/subscriptions", "tok-a", validPayload())

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decode(t, w)
		assert.Equal(t, "DATABASE_CONNECTION_ERROR", body["code"])
		// raw driver error never reaches the client
		assert.NotContains(t, body["error"], assert.AnError.Error())
	})
}

func TestListSubscriptionsIsScopedToCaller(t *testing.T) {
	e := authed(t, false)

	require.Equal(t, http.StatusCreated, e.do(http.MethodPost, "/api/subscriptions", "tok-a", validPayload()).Code)
	other := validPayload()
	other["name"] = "Spotify"
	require.Equal(t, http.StatusCreated, e.do(http.MethodPost, "/api/subscriptions", "tok-b", other).Code)

	w := e.do(http.MethodGet, "/api/subscriptions", "tok-a", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	subs, ok := decode(t, w)["subscriptions"].([]any)
	require.True(t, ok)
	require.Len(t, subs, 1)
	first, _ := subs[0].(map[string]any)
	assert.Equal(t, "Netflix", first["name"])
}

func TestGetUpdateDeleteSubscription(t *testing.T) {
	e := authed(t, false)

	w := e.do(http.MethodPost, "/api/subscriptions", "tok-a", validPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	id, _ := decode(t, w)["id"].(string)
	require.NotEmpty(t, id)

	t.Run("owner reads it back", func(t *testing.T) {
		w := e.do(http.MethodGet, "/api/subscriptions/"+id, "tok-a", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Netflix", decode(t, w)["name"])
	})

	t.Run("another user sees 404, not 403", func(t *testing.T) {
		w := e.do(http.MethodGet, "/api/subscriptions/"+id, "tok-b", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("owner updates", func(t *testing.T) {
		payload := validPayload()
		payload["name"] = "Netflix Premium"
		payload["price"] = 1980
		w := e.do(http.MethodPut, "/api/subscriptions/"+id, "tok-a", payload)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Netflix Premium", body["name"])
		assert.Equal(t, float64(1980), body["price"])
	})

	t.Run("update of a missing id is 404", func(t *testing.T) {
		w := e.do(http.MethodPut, "/api/subscriptions/nope", "tok-a", validPayload())
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("owner deletes, second delete is 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, e.do(http.MethodDelete, "/api/subscriptions/"+id, "tok-a", nil).Code)
		assert.Equal(t, http.StatusNotFound, e.do(http.MethodDelete, "/api/subscriptions/"+id, "tok-a", nil).Code)
	})
}

func TestSubscriptionSummary(t *testing.T) {
	e := authed(t, false)

	monthly := validPayload()
	require.Equal(t, http.StatusCreated, e.do(http.MethodPost, "/api/subscriptions", "tok-a", monthly).Code)

	yearly := validPayload()
	yearly["name"] = "Amazon Prime"
	yearly["price"] = 5900
	yearly["paymentCycle"] = "yearly"
	require.Equal(t, http.StatusCreated, e.do(http.MethodPost, "/api/subscriptions", "tok-a", yearly).Code)

	w := e.do(http.MethodGet, "/api/subscriptions/summary", "tok-a", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	total, ok := decode(t, w)["monthlyTotal"].(float64)
	require.True(t, ok)
	assert.InDelta(t, 1490+5900.0/12, total, 0.01)
}

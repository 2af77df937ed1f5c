// Package httpx shapes every HTTP payload the API returns. Success
// responses carry the payload as-is; failures always carry
// {"error": "...", "code": "..."} so clients can rely on one shape.
package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is a status code plus a JSON body, built ahead of writing so
// middleware can hand failures back to the router as plain values.
type Response struct {
	Status int
	Body   any
}

// JSON writes the response through gin.
func (r Response) JSON(c *gin.Context) {
	c.JSON(r.Status, r.Body)
}

// AbortJSON writes the response and stops the gin handler chain.
func (r Response) AbortJSON(c *gin.Context) {
	c.AbortWithStatusJSON(r.Status, r.Body)
}

// ErrorBody is the uniform failure envelope.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Success wraps payload at the given status; status defaults to 200.
func Success(payload any, status ...int) Response {
	code := http.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	return Response{Status: code, Body: payload}
}

// ValidationError reports a client input problem at 400.
func ValidationError(message string) Response {
	return Response{Status: http.StatusBadRequest, Body: ErrorBody{Error: message}}
}

// Unauthorized reports an authentication failure at 401.
func Unauthorized(message string) Response {
	return Response{Status: http.StatusUnauthorized, Body: ErrorBody{Error: message}}
}

// NotFound reports a missing resource at 404.
func NotFound(message string) Response {
	return Response{Status: http.StatusNotFound, Body: ErrorBody{Error: message}}
}

// ErrorWithCode builds a failure response carrying a machine-readable
// code alongside the message.
func ErrorWithCode(status int, message, code string) Response {
	return Response{Status: status, Body: ErrorBody{Error: message, Code: code}}
}

// Formatter builds responses whose content depends on the runtime
// environment. Production hides real error details from clients.
type Formatter struct {
	Production bool
}

// ServerError reports an unexpected failure at 500. Outside production
// the real error message is surfaced to ease debugging; in production
// the client always sees the same fixed text.
func (f Formatter) ServerError(err error) Response {
	msg := "Internal server error"
	if !f.Production {
		if err != nil {
			msg = err.Error()
		} else {
			msg = "Unknown error"
		}
	}
	return Response{Status: http.StatusInternalServerError, Body: ErrorBody{Error: msg}}
}

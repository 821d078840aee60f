package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"homestay-booking/internal/handler/httperr"
	"homestay-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const (
	SignatureHeader    = "X-Payment-Signature"
	maxCallbackBodyLen = 64 << 10
)

var (
	errBadSignature     = errs.New("payment callback signature mismatch")
	errCallbackTooLarge = errs.New("payment callback body too large")
)

// SignPayload returns the hex HMAC-SHA256 the gateway sends for body.
func SignPayload(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// RequirePaymentSignature rejects callbacks whose body was not signed with secret.
// The body is restored for the handler.
func RequirePaymentSignature(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxCallbackBodyLen+1))
		if err == nil && len(body) > maxCallbackBodyLen {
			err = errCallbackTooLarge
		}
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request body", nil)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		got, err := hex.DecodeString(c.GetHeader(SignatureHeader))
		if err != nil || len(got) == 0 {
			httperr.AbortWithError(c, http.StatusUnauthorized, errBadSignature, "Invalid payment signature", nil)
			return
		}
		want, _ := hex.DecodeString(SignPayload(secret, body))
		if !hmac.Equal(got, want) {
			httperr.AbortWithError(c, http.StatusUnauthorized, errBadSignature, "Invalid payment signature", nil)
			return
		}
		c.Next()
	}
}

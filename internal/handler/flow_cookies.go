package handler

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// The authorization-code flow spans two requests, so the anti-CSRF
// state and the PKCE verifier ride in short-lived cookies between
// initiate and callback.
const (
	stateCookieName = "__oauth_state"
	pkceCookieName  = "__oauth_pkce"
	flowCookieTTL   = 5 * time.Minute
)

func randomURLToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("flow token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func setFlowCookie(c *gin.Context, name, value string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(flowCookieTTL.Seconds()),
	})
}

func generateState(c *gin.Context) (string, error) {
	state, err := randomURLToken()
	if err != nil {
		return "", err
	}
	setFlowCookie(c, stateCookieName, state)
	return state, nil
}

func validateState(c *gin.Context) bool {
	stateQuery := c.Query("state")
	if stateQuery == "" {
		return false
	}

	cookie, err := c.Request.Cookie(stateCookieName)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(stateQuery)) == 1
}

func generatePKCE(c *gin.Context) (verifier string, challenge string, err error) {
	verifier, err = randomURLToken()
	if err != nil {
		return "", "", err
	}

	hash := sha256.Sum256([]byte(verifier))
	challenge = base64.RawURLEncoding.EncodeToString(hash[:])

	setFlowCookie(c, pkceCookieName, verifier)
	return verifier, challenge, nil
}

func getPKCEVerifier(c *gin.Context) string {
	cookie, err := c.Request.Cookie(pkceCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

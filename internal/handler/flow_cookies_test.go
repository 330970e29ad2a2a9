package handler

import (
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
)

func initiateContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/fake", nil)
	return c, w
}

func callbackContext(t *testing.T, query string, cookies []*http.Cookie) *gin.Context {
	t.Helper()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/fake/callback?"+query, nil)
	for _, ck := range cookies {
		c.Request.AddCookie(ck)
	}
	return c
}

func TestStateRoundTrip(t *testing.T) {
	c, w := initiateContext(t)

	state, err := generateState(c)
	if err != nil {
		t.Fatalf("generateState() error = %v", err)
	}
	if state == "" {
		t.Fatal("generateState() returned empty state")
	}
	cookies := w.Result().Cookies()

	if !validateState(callbackContext(t, "state="+url.QueryEscape(state), cookies)) {
		t.Fatal("validateState() rejected the state it issued")
	}
	if validateState(callbackContext(t, "state=forged", cookies)) {
		t.Fatal("validateState() accepted a forged state")
	}
	if validateState(callbackContext(t, "state="+url.QueryEscape(state), nil)) {
		t.Fatal("validateState() accepted a state with no cookie to check against")
	}
}

func TestPKCEChallengeDerivesFromVerifier(t *testing.T) {
	c, w := initiateContext(t)

	verifier, challenge, err := generatePKCE(c)
	if err != nil {
		t.Fatalf("generatePKCE() error = %v", err)
	}

	hash := sha256.Sum256([]byte(verifier))
	if want := base64.RawURLEncoding.EncodeToString(hash[:]); challenge != want {
		t.Fatalf("challenge = %q, want S256 of verifier %q", challenge, want)
	}

	// The verifier rides in a cookie to the callback leg.
	for _, ck := range w.Result().Cookies() {
		if ck.Name == pkceCookieName {
			if ck.Value != verifier {
				t.Fatalf("pkce cookie = %q, want %q", ck.Value, verifier)
			}
			return
		}
	}
	t.Fatal("generatePKCE() set no verifier cookie")
}

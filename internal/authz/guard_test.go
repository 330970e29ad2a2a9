package authz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/auth/token"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/session"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/user"
)

type fixture struct {
	guard    *Guard
	users    *user.MemoryStore
	sessions *session.MemoryStore
	codec    *token.Codec
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := user.NewMemoryStore()
	sessions := session.NewMemoryStore()
	codec := token.NewCodec([]byte("test-secret"))

	return &fixture{
		guard:    NewGuard(codec, sessions, users),
		users:    users,
		sessions: sessions,
		codec:    codec,
	}
}

func (f *fixture) router(t *testing.T, handled *Principal) *gin.Engine {
	t.Helper()

	r := gin.New()
	r.GET("/protected", f.guard.Require(func(c *gin.Context, p Principal) {
		*handled = p
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}))
	r.GET("/admin", f.guard.RequireRole(user.RoleAdmin, func(c *gin.Context, p Principal) {
		*handled = p
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}))
	return r
}

func (f *fixture) seedUser(t *testing.T, username string, role user.Role) user.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), user.User{
		Username:     username,
		Role:         role,
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return u
}

func (f *fixture) seedSession(t *testing.T, userID int64) string {
	t.Helper()
	id, err := session.GenerateID()
	if err != nil {
		t.Fatalf("GenerateID() error = %v", err)
	}
	err = f.sessions.Create(context.Background(), session.Session{
		SessionID: id,
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("sessions.Create() error = %v", err)
	}
	return id
}

func TestRequireRejectsAnonymousRequest(t *testing.T) {
	f := newFixture(t)
	var p Principal
	r := f.router(t, &p)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if p.Username != "" {
		t.Fatal("handler ran for rejected request")
	}
}

func TestRequireAdmitsValidToken(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t, "admin", user.RoleAdmin)

	raw, err := f.codec.Issue(u)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var p Principal
	r := f.router(t, &p)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if p.Username != "admin" || p.Role != user.RoleAdmin {
		t.Fatalf("principal = %+v, want admin/admin", p)
	}
}

func TestRequireRejectsInvalidTokenWithoutSessionFallback(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t, "alice", user.RoleUser)
	sid := f.seedSession(t, u.ID)

	var p Principal
	r := f.router(t, &p)

	// A valid session cookie must not rescue a present-but-bad token.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireAdmitsActiveSession(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t, "alice", user.RoleUser)
	sid := f.seedSession(t, u.ID)

	var p Principal
	r := f.router(t, &p)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if p.UserID != u.ID || p.Username != "alice" {
		t.Fatalf("principal = %+v, want user %d", p, u.ID)
	}
}

func TestRequireRejectsDanglingSession(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t, "alice", user.RoleUser)
	sid := f.seedSession(t, u.ID)

	if err := f.users.Delete(context.Background(), u.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var p Principal
	r := f.router(t, &p)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireRoleRejectsWrongRole(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t, "alice", user.RoleUser)

	raw, err := f.codec.Issue(u)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var p Principal
	r := f.router(t, &p)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if p.Username != "" {
		t.Fatal("handler ran for forbidden request")
	}
}

func TestRequireRoleStillRequiresAuthentication(t *testing.T) {
	f := newFixture(t)
	var p Principal
	r := f.router(t, &p)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireRoleAdmitsMatchingRole(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t, "admin", user.RoleAdmin)

	raw, err := f.codec.Issue(u)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var p Principal
	r := f.router(t, &p)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if p.Role != user.RoleAdmin {
		t.Fatalf("principal role = %q, want admin", p.Role)
	}
}

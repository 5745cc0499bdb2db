package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pilana/internal/audit"
	"pilana/internal/backend/mockstore"
	"pilana/internal/logger"
	"pilana/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	b, err := mockstore.New()
	if err != nil {
		t.Fatalf("mockstore: %v", err)
	}
	lg := logger.Nop()
	return NewService(b, audit.New(b.Audit(), lg), NewSigner("test-secret", time.Hour), lg)
}

func TestPrincipalAllows(t *testing.T) {
	tests := []struct {
		name string
		p    Principal
		perm Permission
		want bool
	}{
		{"anonymous", Principal{}, PermOffers, false},
		{"admin without keys", Principal{UserID: "1", Role: RoleAdmin}, PermCashRegister, true},
		{"user with key", Principal{UserID: "2", Role: RoleUser, Permissions: NewPermissionSet(PermSawmill)}, PermSawmill, true},
		{"user without key", Principal{UserID: "2", Role: RoleUser, Permissions: NewPermissionSet(PermSawmill)}, PermCashRegister, false},
		{"user with all", Principal{UserID: "3", Role: RoleUser, Permissions: ParsePermissions([]string{"all"})}, PermRefinish, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Allows(tt.perm); got != tt.want {
				t.Fatalf("Allows(%s) = %v, want %v", tt.perm, got, tt.want)
			}
		})
	}
}

func TestPermissionsStoredForm(t *testing.T) {
	if got := AllPermissions().Strings(); len(got) != 1 || got[0] != "all" {
		t.Fatalf("all permissions stored as %v", got)
	}
	got := ParsePermissions([]string{"pilana", "ponude"}).Strings()
	if len(got) != 2 || got[0] != "pilana" || got[1] != "ponude" {
		t.Fatalf("unexpected stored form %v", got)
	}
	if !ValidPermissions([]string{"all", "blagajna"}) {
		t.Fatal("expected known keys to be valid")
	}
	if ValidPermissions([]string{"skladiste"}) {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Login(ctx, " Admin@Test.com ", "AsasE0111-", "127.0.0.1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token == "" || !sess.Principal.IsAdmin() {
		t.Fatalf("unexpected session %+v", sess)
	}

	for _, pw := range []string{"wrong", ""} {
		_, err := svc.Login(ctx, "admin@test.com", pw, "")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("password %q: expected invalid credentials, got %v", pw, err)
		}
		if err.Error() != "Neispravno korisničko ime ili lozinka" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	}
	if _, err := svc.Login(ctx, "nobody@test.com", "x", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v", err)
	}
}

func TestAuthenticateAfterLogout(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sess, err := svc.Login(ctx, "korisnik@test.com", "korisnik123", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	p, err := svc.Authenticate(ctx, sess.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if p.IsAdmin() || !p.Allows(PermLogIntake) || p.Allows(PermCashRegister) {
		t.Fatalf("unexpected principal %+v", p)
	}
	if err := svc.Logout(ctx, p); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Authenticate(ctx, sess.Token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected revoked session, got %v", err)
	}
	if err := svc.Logout(ctx, Principal{}); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("anonymous logout: got %v", err)
	}
}

func TestRequirePermission(t *testing.T) {
	h := RequirePermission(PermSawmill)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	tests := []struct {
		name string
		p    Principal
		want int
	}{
		{"allowed", Principal{UserID: "u", Role: RoleUser, Permissions: NewPermissionSet(PermSawmill)}, http.StatusNoContent},
		{"denied", Principal{UserID: "u", Role: RoleUser}, http.StatusForbidden},
		{"admin", Principal{UserID: "a", Role: RoleAdmin}, http.StatusNoContent},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithPrincipal(req.Context(), tt.p))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Fatalf("%s: got %d, want %d", tt.name, rec.Code, tt.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	if ParseRole(models.RoleAdmin) != RoleAdmin || ParseRole("other") != RoleUser {
		t.Fatal("unexpected role mapping")
	}
}

func TestQueryTokenOnlyForWebSocket(t *testing.T) {
	svc := newTestService(t)
	sess, err := svc.Login(context.Background(), "korisnik@test.com", "korisnik123", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	var seen *http.Request
	h := WebSocketToken(JWTAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.WriteHeader(http.StatusNoContent)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ponude?token="+sess.Token, nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("plain request with query token: expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/ws?token="+sess.Token+"&x=1", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("upgrade with query token: expected 204, got %d", rec.Code)
	}
	if strings.Contains(seen.RequestURI, "token") || strings.Contains(seen.URL.RawQuery, "token") {
		t.Fatalf("token left in the request URI %q", seen.RequestURI)
	}
	if seen.URL.Query().Get("x") != "1" {
		t.Fatalf("other query parameters dropped: %q", seen.URL.RawQuery)
	}
}

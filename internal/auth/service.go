package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"pilana/internal/audit"
	"pilana/internal/backend"
	"pilana/internal/models"
)

// InvalidCredentialsMessage is shown for every failed sign-in, whatever the cause.
const InvalidCredentialsMessage = "Neispravno korisničko ime ili lozinka"

var (
	ErrInvalidCredentials = errors.New(InvalidCredentialsMessage)
	ErrUnauthenticated    = errors.New("unauthenticated")
)

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Principal Principal `json:"-"`
}

// Service moves callers between the unauthenticated and authenticated states.
type Service struct {
	users    backend.UserStore
	sessions backend.SessionStore
	audit    *audit.Logger
	signer   *Signer
	lg       *zap.SugaredLogger
	now      func() time.Time
}

func NewService(b backend.Backend, al *audit.Logger, signer *Signer, lg *zap.SugaredLogger) *Service {
	return &Service{users: b.Users(), sessions: b.Sessions(), audit: al, signer: signer, lg: lg, now: time.Now}
}

func (s *Service) Login(ctx context.Context, email, password, ip string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}
	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, backend.ErrNotFound) {
			s.lg.Errorw("user lookup failed", "error", err)
		}
		return Session{}, ErrInvalidCredentials
	}
	if !u.IsActive || CheckPassword(u.PasswordHash, password) != nil {
		return Session{}, ErrInvalidCredentials
	}
	principal := PrincipalFromUser(u, "")
	tok, jti, exp, err := s.signer.Sign(u.ID, principal.Role)
	if err != nil {
		return Session{}, err
	}
	sess := models.Session{JTI: jti, UserID: u.ID, ExpiresAt: exp, CreatedAt: s.now()}
	if err := s.sessions.Create(ctx, &sess); err != nil {
		return Session{}, err
	}
	principal.SessionID = jti
	s.audit.Record(ctx, audit.Entry{
		UserID:   u.ID,
		Username: u.Username,
		Action:   "login",
		Details:  map[string]any{"email": email, "time": s.now().UTC().Format(time.RFC3339)},
		IP:       ip,
	})
	return Session{Token: tok, ExpiresAt: exp, Principal: principal}, nil
}

// Authenticate resolves a bearer token into a principal. The user row is
// re-read on every call so role and permission edits apply immediately.
func (s *Service) Authenticate(ctx context.Context, token string) (Principal, error) {
	claims, err := s.signer.Verify(token)
	if err != nil {
		return Principal{}, ErrUnauthenticated
	}
	sess, err := s.sessions.Find(ctx, claims.JWTID)
	if err != nil || !sess.Active(s.now()) || sess.UserID != claims.Subject {
		return Principal{}, ErrUnauthenticated
	}
	u, err := s.users.Get(ctx, claims.Subject)
	if err != nil || !u.IsActive {
		return Principal{}, ErrUnauthenticated
	}
	return PrincipalFromUser(u, claims.JWTID), nil
}

func (s *Service) Logout(ctx context.Context, p Principal) error {
	if !p.Authenticated() {
		return ErrUnauthenticated
	}
	return s.sessions.Revoke(ctx, p.SessionID, s.now())
}

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	Subject string
	JWTID   string
	Role    Role
}

type Signer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Signer{key: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign issues a token for userID and returns it with its id and expiry.
func (s *Signer) Sign(userID string, role Role) (token, jti string, expires time.Time, err error) {
	now := s.now()
	jti = uuid.NewString()
	expires = now.Add(s.ttl)
	claims := jwt.MapClaims{
		"sub":  userID,
		"jti":  jti,
		"role": string(role),
		"exp":  expires.Unix(),
		"iat":  now.Unix(),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	return token, jti, expires, err
}

func (s *Signer) Verify(tokenStr string) (Claims, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return Claims{}, errors.New("invalid token")
	}
	mapc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims")
	}
	sub, _ := mapc["sub"].(string)
	jti, _ := mapc["jti"].(string)
	role, _ := mapc["role"].(string)
	if sub == "" || jti == "" {
		return Claims{}, errors.New("invalid claims")
	}
	return Claims{Subject: sub, JWTID: jti, Role: ParseRole(role)}, nil
}

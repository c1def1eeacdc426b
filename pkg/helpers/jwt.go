package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures are split so callers can log/count them separately;
// the HTTP layer collapses both into 401.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// JWTManager issues and validates stateless HS256 identity tokens with a
// fixed TTL. Tokens carry only the user id; there is no server-side state
// and no revocation before natural expiry.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration

	now func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		Secret: []byte(secret),
		TTL:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (m *JWTManager) WithClock(now func() time.Time) *JWTManager {
	m.now = now
	return m
}

type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// Generate signs a token for userID expiring TTL from now.
func (m *JWTManager) Generate(userID int64) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.TTL)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Verify checks signature integrity and expiry and returns the embedded user
// id. A token signed with another method (including "none"), another secret,
// or structurally malformed fails as ErrTokenInvalid; a well-signed token
// past its exp fails as ErrTokenExpired.
func (m *JWTManager) Verify(tokenStr string) (int64, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	if !tkn.Valid {
		return 0, ErrTokenInvalid
	}
	return claims.UserID, nil
}

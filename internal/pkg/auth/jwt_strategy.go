package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid auth token")

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// JWTStrategy implements token creation/verification with HS256-signed JWTs.
// Access and refresh tokens are signed with independent secrets so a leaked
// access secret cannot mint refresh tokens.
type JWTStrategy struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewJWTStrategy builds JWTStrategy with the provided secrets and options.
func NewJWTStrategy(accessSecret, refreshSecret string, opts Options) *JWTStrategy {
	accessTTL := opts.AccessTTL
	if accessTTL == 0 {
		accessTTL = defaultAccessTTL
	}
	refreshTTL := opts.RefreshTTL
	if refreshTTL == 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &JWTStrategy{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccess generates the short-lived access token for the principal.
func (s *JWTStrategy) IssueAccess(p Principal) (string, error) {
	return s.sign(p, s.accessSecret, s.accessTTL)
}

// IssueRefresh generates the long-lived refresh token for the principal.
func (s *JWTStrategy) IssueRefresh(p Principal) (string, error) {
	return s.sign(p, s.refreshSecret, s.refreshTTL)
}

// ParseAccess validates an access token and returns the encoded principal.
func (s *JWTStrategy) ParseAccess(token string) (*Principal, error) {
	return s.parse(token, s.accessSecret)
}

// ParseRefresh validates a refresh token and returns the encoded principal.
func (s *JWTStrategy) ParseRefresh(token string) (*Principal, error) {
	return s.parse(token, s.refreshSecret)
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}

func (s *JWTStrategy) sign(p Principal, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Username: p.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *JWTStrategy) parse(token string, secret []byte) (*Principal, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &Principal{UserID: claims.Subject, Username: claims.Username}, nil
}

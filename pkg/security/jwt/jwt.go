package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mkraev/resumeforge/pkg/auth"
)

// Verification failure kinds. Route code must collapse both into one
// undifferentiated 401 so clients cannot probe which check failed;
// the distinction exists for server-side logs and tests only.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Identity is the claim set decoded from a verified token.
// It proves issuance, not that the user record still exists.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// Claims includes the registered claims plus the account email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Codec issues and verifies self-contained HS256 credentials.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// DefaultTTL is the credential validity window used when config supplies none.
const DefaultTTL = 7 * 24 * time.Hour

func NewCodec(secret, issuer string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// TTL reports the validity window, so callers can align cookie max-age.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue signs a token carrying the user id (subject) and email.
func (c *Codec) Issue(ctx context.Context, user auth.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Email: user.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks signature, expiry and issuer, and decodes the identity.
func (c *Codec) Verify(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrTokenInvalid
	}
	if c.issuer != "" && claims.Issuer != c.issuer {
		return Identity{}, ErrTokenInvalid
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, ErrTokenInvalid
	}
	return Identity{UserID: userID, Email: claims.Email}, nil
}

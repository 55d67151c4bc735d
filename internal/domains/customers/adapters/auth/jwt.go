package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/customers/ports"
)

const defaultIssuer = "returns-portal"

// MinSecretLength is the shortest HMAC secret NewJWTIssuer accepts.
const MinSecretLength = 16

// Claims carried by a customer session token.
type Claims struct {
	jwt.RegisteredClaims
	CustomerID string `json:"customer_id"`
}

// JWTIssuer signs customer session tokens with HMAC-SHA256.
type JWTIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTIssuer returns an issuer. An empty issuer falls back to "returns-portal".
func NewJWTIssuer(secret, issuer string, ttl time.Duration) (*JWTIssuer, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLength)
	}
	if issuer == "" {
		issuer = defaultIssuer
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTIssuer{secret: []byte(secret), issuer: issuer, ttl: ttl}, nil
}

func (j *JWTIssuer) Issue(customerID string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(j.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    j.issuer,
			Subject:   customerID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		CustomerID: customerID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

func (j *JWTIssuer) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ports.ErrInvalidToken
		}
		return j.secret, nil
	}, jwt.WithIssuer(j.issuer))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ports.ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.CustomerID == "" || claims.CustomerID != claims.Subject {
		return "", ports.ErrInvalidToken
	}
	return claims.CustomerID, nil
}

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

package configsvc

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// HashAdminToken hashes the daemon's admin token for storage in its own
// config file, the same shape as internal/web/auth.HashPassword.
func HashAdminToken(token string) (string, error) {
	if len(token) > 72 {
		return "", fmt.Errorf("auth: admin token exceeds bcrypt's 72-byte limit")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: hash admin token: %w", err)
	}
	return string(hash), nil
}

// CheckAdminToken reports whether token matches hash.
func CheckAdminToken(hash, token string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}

// AuthService mints and validates the short-lived JWTs the HTTP API
// requires for POST /configs/{name}/reload, grounded on
// internal/web/auth.AuthService.
type AuthService struct {
	secretKey []byte
	tokenTTL  time.Duration
}

// NewAuthService builds an AuthService signing with HS256.
func NewAuthService(secretKey string, tokenTTL time.Duration) *AuthService {
	return &AuthService{secretKey: []byte(secretKey), tokenTTL: tokenTTL}
}

// GenerateToken mints a signed JWT for the admin identity.
func (a *AuthService) GenerateToken(subject string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(a.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(a.secretKey)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies tokenString, rejecting any
// algorithm other than HS256 to close off algorithm-confusion attacks,
// the same guard AuthService.ValidateToken in the teacher repo applies.
func (a *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != "HS256" {
			return nil, fmt.Errorf("auth: unexpected signing method %s", t.Method.Alg())
		}
		return a.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth: parse token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth: invalid token")
	}
	return claims, nil
}

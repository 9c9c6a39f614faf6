package utils // package utils provides helpers for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long both client and admin tokens stay valid. There is no
// refresh or revocation; expiry is the only lifecycle control.
const TokenTTL = 24 * time.Hour

// ErrInvalidToken is returned when a token fails signature verification, has
// expired, or does not carry the expected claim shape.
var ErrInvalidToken = errors.New("invalid token")

// AdminClaims is the identity carried inside an admin token.
type AdminClaims struct {
	ID    uint64
	Email string
}

// NewClientToken signs an HS256 JWT for the client portal. The payload keeps
// the `{user:{clientId}}` shape the portal frontend decodes.
func NewClientToken(secret, clientID string) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(TokenTTL)
	claims := jwt.MapClaims{
		"user": map[string]any{"clientId": clientID},
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// NewAdminToken signs an HS256 JWT for the back office with the
// `{admin:{id,email}}` payload shape.
func NewAdminToken(secret string, id uint64, email string) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(TokenTTL)
	claims := jwt.MapClaims{
		"admin": map[string]any{"id": id, "email": email},
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseClientToken verifies a client token against the client secret and
// returns the embedded client ID. An admin token fails here because it is
// signed with a different secret.
func ParseClientToken(secret, raw string) (string, error) {
	claims, err := parseHS256(secret, raw)
	if err != nil {
		return "", err
	}
	user, ok := claims["user"].(map[string]any)
	if !ok {
		return "", ErrInvalidToken
	}
	clientID, ok := user["clientId"].(string)
	if !ok || clientID == "" {
		return "", ErrInvalidToken
	}
	return clientID, nil
}

// ParseAdminToken verifies an admin token against the admin secret and
// returns the embedded admin identity.
func ParseAdminToken(secret, raw string) (AdminClaims, error) {
	claims, err := parseHS256(secret, raw)
	if err != nil {
		return AdminClaims{}, err
	}
	admin, ok := claims["admin"].(map[string]any)
	if !ok {
		return AdminClaims{}, ErrInvalidToken
	}
	// JSON numbers decode as float64.
	idf, ok := admin["id"].(float64)
	if !ok || idf <= 0 {
		return AdminClaims{}, ErrInvalidToken
	}
	email, _ := admin["email"].(string)
	return AdminClaims{ID: uint64(idf), Email: email}, nil
}

func parseHS256(secret, raw string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleGuest = "GUEST"
	RoleStaff = "STAFF"
)

var tokenTTL = map[string]time.Duration{
	RoleGuest: 12 * time.Hour,
	RoleStaff: 24 * time.Hour,
}

func getJWTSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	return []byte(secret), nil
}

// GenerateToken signs a token for a subject: the session id for guests,
// the staff id for staff.
func GenerateToken(subject, role string) (string, error) {
	if subject == "" {
		return "", errors.New("empty subject passed to GenerateToken")
	}

	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}

	ttl, ok := tokenTTL[role]
	if !ok {
		return "", errors.New("unknown role: " + role)
	}

	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateToken(tokenString string) (string, string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", "", err
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}

	subject, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if subject == "" || role == "" {
		return "", "", errors.New("invalid token claims")
	}

	return subject, role, nil
}

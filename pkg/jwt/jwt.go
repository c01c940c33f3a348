package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de token emitidos. El access token autoriza peticiones; el refresh
// token solo sirve para emitir un nuevo access token.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se añade Role para que el middleware RBAC pueda tomar decisiones sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Role      string `json:"role"` // "admin" | "staff" | "viewer"
	TokenType string `json:"type"`
}

// Generate genera un access token firmado que incluye userID y role.
func Generate(secret, userID, role, issuer string, expMinutes int) (string, error) {
	return generate(secret, userID, role, issuer, TypeAccess, expMinutes)
}

// GenerateRefresh genera un refresh token firmado. Mismo secret, distinto
// claim "type": un refresh token no pasa el middleware de autorización.
func GenerateRefresh(secret, userID, role, issuer string, expMinutes int) (string, error) {
	return generate(secret, userID, role, issuer, TypeRefresh, expMinutes)
}

func generate(secret, userID, role, issuer, tokenType string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida un access token y devuelve userID y role.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta
// o es un refresh token.
func Parse(secret, tokenString string) (userID, role string, err error) {
	claims, err := parse(secret, tokenString)
	if err != nil {
		return "", "", err
	}
	if claims.TokenType == TypeRefresh {
		return "", "", fmt.Errorf("jwt: refresh token usado como access token")
	}
	return claims.UserID, claims.Role, nil
}

// ParseRefresh valida un refresh token y devuelve userID y role.
// Retorna error si el token no es de tipo refresh.
func ParseRefresh(secret, tokenString string) (userID, role string, err error) {
	claims, err := parse(secret, tokenString)
	if err != nil {
		return "", "", err
	}
	if claims.TokenType != TypeRefresh {
		return "", "", fmt.Errorf("jwt: se esperaba un refresh token")
	}
	return claims.UserID, claims.Role, nil
}

func parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

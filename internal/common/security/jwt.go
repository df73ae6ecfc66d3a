package security

import (
	"errors"
	"time"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/platform/config"
	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken issues a signed token carrying the admin's username and role,
// valid for the configured expiry window (one hour by default).
func GenerateToken(username, role string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(config.AppConfig.JWTExp).Unix(),
		"iat":      time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

func GetUsernameFromClaims(claims map[string]interface{}) (string, error) {
	username, ok := claims["username"].(string)
	if !ok {
		return "", errors.New("username claim is missing or not a string")
	}
	return username, nil
}

func GetRoleFromClaims(claims map[string]interface{}) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}

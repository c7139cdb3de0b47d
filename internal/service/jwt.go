package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 30 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

var (
	jwtSecret        []byte
	jwtRefreshSecret []byte
)

var ErrInvalidToken = errors.New("invalid token")

// InitJWT installs the signing secrets. Called once at startup from config.
func InitJWT(secret, refreshSecret string) {
	jwtSecret = []byte(secret)
	jwtRefreshSecret = []byte(refreshSecret)
}

// Identity is the authenticated caller attached to every request.
type Identity struct {
	UserID int64
	Email  string
}

func GenerateJWT(userID int64, email string) (string, error) {
	return signToken(userID, email, accessTokenTTL, jwtSecret)
}

func GenerateRefreshJWT(userID int64, email string) (string, error) {
	return signToken(userID, email, refreshTokenTTL, jwtRefreshSecret)
}

func signToken(userID int64, email string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
		"nbf":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseJWT(tokenString string) (Identity, error) {
	return parseToken(tokenString, jwtSecret)
}

func ParseRefreshJWT(tokenString string) (Identity, error) {
	return parseToken(tokenString, jwtRefreshSecret)
}

func parseToken(tokenString string, secret []byte) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	return Identity{UserID: int64(userID), Email: email}, nil
}

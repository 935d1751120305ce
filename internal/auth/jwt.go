package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"unidash/internal/config"
)

var (
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
)

// Configure sets the signing secrets and lifetimes. Must be called once at
// startup before any token is issued or parsed.
func Configure(cfg config.App) {
	accessSecret = []byte(cfg.AccessSecret)
	refreshSecret = []byte(cfg.RefreshSecret)
	accessTTL = cfg.AccessTTL
	refreshTTL = cfg.RefreshTTL
}

// TokenPair holds a freshly issued access/refresh pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// IssueTokens signs an access and refresh token for the user.
func IssueTokens(userID uint, role string) (TokenPair, error) {
	access, err := generateToken(userID, role, accessTTL, accessSecret)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := generateToken(userID, role, refreshTTL, refreshSecret)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func generateToken(userID uint, role string, duration time.Duration, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseAccess validates an access token and returns the user id and role.
func ParseAccess(tokenString string) (uint, string, error) {
	return parse(tokenString, accessSecret)
}

// ParseRefresh validates a refresh token and returns the user id and role.
func ParseRefresh(tokenString string) (uint, string, error) {
	return parse(tokenString, refreshSecret)
}

func parse(tokenString string, secret []byte) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid token claims")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", errors.New("missing user_id claim")
	}
	role, _ := claims["role"].(string)
	return uint(userID), role, nil
}

package utils

import (
	"time"

	"brewhub-backend/entity"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID uint   `json:"userId"`
	Role   string `json:"role"`
	ShopID uint   `json:"shopId"`
	jwt.RegisteredClaims
}

// GenerateToken issues the session JWT. ShopID is zero for customers and
// the staff member's shop for staff accounts.
func GenerateToken(u *entity.User, secret string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: u.ID,
		Role:   u.Role,
		ShopID: u.ShopID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

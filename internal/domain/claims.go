package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type Claims struct {
	Authenticated bool `json:"authenticated"`
	jwt.RegisteredClaims
}

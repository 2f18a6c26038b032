package auth

import "github.com/golang-jwt/jwt/v5"

type User struct {
	ID                int64
	Email             string
	Username          string
	Password          []byte
	PlaintextPassword string
}

type UserClaim struct {
	Username string `json:"username"`
	Email    string `json:"email"`

	jwt.RegisteredClaims
}

package models

import "github.com/golang-jwt/jwt/v5"

type AuthClaims struct {
	Subject string `json:"sub_name"`
	Tier    string `json:"tier"`
	jwt.RegisteredClaims
}

package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenDetails holds a freshly issued access/refresh token pair.
type TokenDetails struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	AccessUUID   string `json:"-"`
	RefreshUUID  string `json:"-"`
	AtExpires    int64  `json:"at_expires"`
	RtExpires    int64  `json:"rt_expires"`
}

// Claims are the JWT claims of access and refresh tokens.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Roles  []string  `json:"roles"`
	jwt.RegisteredClaims
}

// TokenPurposeEmailConfirm marks an email confirmation token.
const TokenPurposeEmailConfirm = "email_confirm"

// EmailConfirmClaims are carried by the link sent after registration.
type EmailConfirmClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

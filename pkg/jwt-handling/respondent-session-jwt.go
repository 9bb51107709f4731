package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RespondentSessionClaims is the payload of the token handed out when a
// response session is opened. It scopes every subsequent session call to one
// form on one instance.
type RespondentSessionClaims struct {
	InstanceID    string `json:"instance_id,omitempty"`
	FormKey       string `json:"form_key,omitempty"`
	FormVersionID string `json:"form_version_id,omitempty"`
	SessionID     string `json:"session_id,omitempty"`
	jwt.RegisteredClaims
}

func GenerateNewRespondentSessionToken(
	expiresIn time.Duration,
	instanceID string,
	formKey string,
	formVersionID string,
	sessionID string,
	secretKey string,
) (tokenString string, err error) {
	claims := RespondentSessionClaims{
		instanceID,
		formKey,
		formVersionID,
		sessionID,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   sessionID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidateRespondentSessionToken(tokenString string, secretKey string) (claims *RespondentSessionClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &RespondentSessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*RespondentSessionClaims)
	valid = valid && token.Valid
	return
}

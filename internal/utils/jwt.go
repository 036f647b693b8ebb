package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySubject is returned when an identity token carries no "sub" claim.
var ErrEmptySubject = errors.New("empty subject")

// IdentityClaims are the profile claims of an OpenID Connect ID token
// (e.g. the credential returned by Google Identity Services).
type IdentityClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// ParseIdentityToken decodes the claims of an ID token WITHOUT verifying
// its signature. The credential is only used to pick a local storage
// partition and display name; it grants no access on its own.
//
// Returns an error if the token is malformed or has an empty subject.
//
// Example usage:
//
//	claims, err := utils.ParseIdentityToken(credential)
func ParseIdentityToken(tokenString string) (IdentityClaims, error) {
	var claims IdentityClaims
	_, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(tokenString), &claims)
	if err != nil {
		return IdentityClaims{}, fmt.Errorf("error occurred parsing identity token: %w", err)
	}

	if claims.Subject == "" {
		return IdentityClaims{}, ErrEmptySubject
	}

	return claims, nil
}

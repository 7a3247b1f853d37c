package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiration reads the exp claim of token without verifying its
// signature and returns it in epoch milliseconds. A token without exp yields 0.
func tokenExpiration(token string) (int64, error) {
	claims := jwt.MapClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	exp, err := claims.GetExpirationTime()

	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if exp == nil {
		return 0, nil
	}

	return exp.UnixMilli(), nil
}

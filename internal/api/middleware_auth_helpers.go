package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var errNoSession = errors.New("no session")

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*Session, error) {
	rawToken := strings.TrimSpace(c.Cookies(authCookieName))
	if rawToken == "" {
		return nil, errNoSession
	}
	return handler.parseSessionToken(rawToken)
}

func (handler *Handler) parseSessionToken(rawToken string) (*Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == 0 || strings.TrimSpace(claims.Username) == "" {
		return nil, errors.New("invalid token subject")
	}

	return &Session{
		UserID:    claims.UserID,
		Username:  claims.Username,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// optionalSession never fails; pages that render for both states use it.
func (handler *Handler) optionalSession(c *fiber.Ctx) *Session {
	if session, ok := currentSession(c); ok {
		return session
	}
	session, err := handler.authenticateRequest(c)
	if err != nil {
		return nil
	}
	return session
}

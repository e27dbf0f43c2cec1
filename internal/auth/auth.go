package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/droneflow/settlements/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

// Parser validates HMAC-signed access tokens issued by the auth frontend.
type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

type claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

func (p *Parser) Parse(raw string) (model.Principal, error) {
	parsed, err := jwt.ParseWithClaims(raw, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.Subject == "" {
		return model.Principal{}, ErrInvalidToken
	}

	return model.Principal{
		UserID: c.Subject,
		Name:   c.Name,
	}, nil
}

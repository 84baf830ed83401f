package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Validity is how long an issued session token stays usable.
const Validity = 90 * 24 * time.Hour

var (
	ErrMissingEmail = errors.New("identity claims must include an email")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims is the decoded identity carried by a verified token.
type Claims struct {
	Email string
	Raw   jwt.MapClaims
}

type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue signs the given identity fields into a session token. The identity
// may carry arbitrary fields but must include a non-empty email.
func (s *Service) Issue(identity map[string]any) (string, error) {
	email, _ := identity["email"].(string)
	if email == "" {
		return "", ErrMissingEmail
	}

	claims := jwt.MapClaims{}
	for k, v := range identity {
		claims[k] = v
	}
	now := time.Now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(Validity).Unix()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Verify checks signature and expiry. Callers treat any failure the same way,
// so a bad signature and an expired token both come back as ErrInvalidToken.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	email, _ := mc["email"].(string)

	return &Claims{Email: email, Raw: mc}, nil
}

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims — то, что шлюз может прочитать из access-токена без ключа подписи.
type Claims struct {
	Subject   string
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type accessClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AccessClaims декодирует JWT без проверки подписи: авторитет по токену у бэкенда,
// шлюзу нужны только срок и субъект для /session. Непрозрачный токен даёт ok=false.
func AccessClaims(token string) (Claims, bool) {
	if token == "" {
		return Claims{}, false
	}

	var c accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return Claims{}, false
	}

	out := Claims{
		Subject: c.Subject,
		UserID:  c.UserID,
		Email:   c.Email,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time.UTC()
	}

	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time.UTC()
	}

	return out, true
}

// Expired сообщает, истёк ли токен к моменту now. Токен без exp не считается истёкшим.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

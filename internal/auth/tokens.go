package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken: токен не прошёл проверку.
var ErrInvalidToken = errors.New("invalid token")

// Claims: полезная нагрузка токена. Имена id/isAdmin читает существующий клиент.
type Claims struct {
	jwt.RegisteredClaims
	UserID  uint `json:"id"`
	IsAdmin bool `json:"isAdmin"`
}

// TokenManager подписывает и проверяет HS256-токены общим секретом процесса.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue: подписанный токен со сроком now+ttl.
func (m *TokenManager) Issue(userID uint, isAdmin bool) (string, time.Time, error) {
	now := m.now().UTC()
	exp := now.Add(m.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID:  userID,
		IsAdmin: isAdmin,
	})
	s, err := t.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return s, exp, nil
}

// Parse проверяет подпись и срок. exp обязателен.
func (m *TokenManager) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultTTL срок жизни токена по умолчанию (3 дня)
	DefaultTTL = 72 * time.Hour
	// MinSecretLength минимальная длина секрета подписи
	MinSecretLength = 32

	issuer = "learnhub"
)

var (
	// ErrInvalidToken возвращается для любого токена, который не прошел проверку
	ErrInvalidToken = errors.New("invalid token")
	// ErrWeakSecret возвращается при создании сервиса с коротким секретом
	ErrWeakSecret = errors.New("jwt secret is too short")
)

// Identity is the decoded payload of a verified token.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	XP       int64  `json:"xp"`
	Rank     int64  `json:"rank"`
	Streak   int64  `json:"streak"`
}

type claims struct {
	Identity
	jwtv5.RegisteredClaims
}

// Service issues and verifies HS256 identity tokens.
type Service struct {
	now    func() time.Time
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service. A short secret or a non-positive ttl is a
// configuration error and must stop the server from starting.
func NewService(secret string, ttl time.Duration) (*Service, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrWeakSecret, MinSecretLength)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL возвращает срок жизни выдаваемых токенов
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs the identity and returns the token with its expiry time.
func (s *Service) Issue(id Identity) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	c := claims{
		Identity: id,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Subject:   id.ID,
			Issuer:    issuer,
			ExpiresAt: jwtv5.NewNumericDate(expiresAt),
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
		},
	}

	token, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, expiresAt, nil
}

// Verify checks signature, algorithm, issuer and expiry. Every failure is
// reported as ErrInvalidToken.
func (s *Service) Verify(token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwtv5.ParseWithClaims(token, &claims{}, func(t *jwtv5.Token) (any, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithIssuer(issuer),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	id := c.Identity
	return &id, nil
}

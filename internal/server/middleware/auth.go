package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/learnhub/internal/server/jwt"
	"github.com/iudanet/learnhub/pkg/api"
)

// TokenVerifier проверяет подпись и срок действия токена
type TokenVerifier interface {
	Verify(token string) (*jwt.Identity, error)
}

// Authenticate создает middleware, которое пропускает запрос дальше только с валидным JWT.
// Токен берется из cookie JWT, а при ее отсутствии из заголовка Authorization: Bearer.
func Authenticate(logger *slog.Logger, tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, source := tokenFromRequest(r)
			if token == "" {
				logger.WarnContext(ctx, "missing token", slog.String("path", r.URL.Path))
				writeError(w, "Unauthorized: missing token", http.StatusUnauthorized)
				return
			}

			identity, err := tokens.Verify(token)
			if err != nil {
				logger.WarnContext(ctx, "invalid token",
					slog.String("source", source),
					slog.Any("error", err))
				writeError(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			logger.DebugContext(ctx, "user authenticated",
				slog.String("user_id", identity.ID),
				slog.String("role", identity.Role))

			next.ServeHTTP(w, r.WithContext(jwt.WithIdentity(ctx, identity)))
		})
	}
}

func tokenFromRequest(r *http.Request) (token, source string) {
	if c, err := r.Cookie(api.TokenCookieName); err == nil && c.Value != "" {
		return c.Value, "cookie"
	}

	// Ожидаем формат: "Bearer <token>"
	scheme, value, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(value), "header"
	}
	return "", ""
}

// RequireRole пропускает только identity с указанной ролью.
// Должен стоять после Authenticate: отсутствие identity в контексте это ошибка сборки цепочки.
func RequireRole(logger *slog.Logger, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			identity, ok := jwt.IdentityFrom(ctx)
			if !ok {
				logger.ErrorContext(ctx, "role check without authenticated identity",
					slog.String("path", r.URL.Path))
				writeError(w, "internal server error", http.StatusInternalServerError)
				return
			}

			if identity.Role != role {
				logger.WarnContext(ctx, "access denied",
					slog.String("user_id", identity.ID),
					slog.String("role", identity.Role),
					slog.String("required", role))
				writeError(w, "Forbidden: "+role+" role required", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

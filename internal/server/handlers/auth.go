package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/jwt"
	"github.com/iudanet/learnhub/internal/server/storage"
	"github.com/iudanet/learnhub/internal/validation"
	"github.com/iudanet/learnhub/pkg/api"
)

// PasswordHasher хеширует и проверяет пароли
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer подписывает identity
type TokenIssuer interface {
	Issue(id jwt.Identity) (string, time.Time, error)
}

// AuthHandler обрабатывает регистрацию, вход и выход
type AuthHandler struct {
	base
	users        storage.UserStorage
	hasher       PasswordHasher
	tokens       TokenIssuer
	dummyHash    func() string
	cookieSecure bool
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, users storage.UserStorage, hasher PasswordHasher, tokens TokenIssuer, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		base:         base{logger: logger},
		users:        users,
		hasher:       hasher,
		tokens:       tokens,
		cookieSecure: cookieSecure,
		// хеш для неизвестного email, чтобы время ответа не выдавало существующих пользователей
		dummyHash: sync.OnceValue(func() string {
			hash, _ := hasher.Hash(uuid.NewString())
			return hash
		}),
	}
}

// identityOf собирает claim из профиля пользователя
func identityOf(u *models.User) jwt.Identity {
	return jwt.Identity{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		XP:       u.XP,
		Rank:     u.Rank,
		Streak:   u.Streak,
	}
}

// newUser проверяет запрос на регистрацию и возвращает пользователя с захешированным паролем
func newUser(req *api.SignupRequest, hasher PasswordHasher) (*models.User, error) {
	req.Email = validation.NormalizeEmail(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	req.Fullname = strings.TrimSpace(req.Fullname)

	if err := validation.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	if err := validation.ValidateFullname(req.Fullname); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if err := validation.ValidateRole(role); err != nil {
		return nil, err
	}

	hash, err := hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:         uuid.New().String(),
		Email:      req.Email,
		Username:   req.Username,
		HashedPass: hash,
		Fullname:   req.Fullname,
		Role:       role,
		Rank:       1,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// Signup обрабатывает POST /auth/signup
// Роль admin можно выбрать только первому пользователю системы
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, err, "user")
		return
	}

	user, err := newUser(&req, h.hasher)
	if err != nil {
		h.fail(ctx, w, err, "user")
		return
	}

	create := h.users.CreateUser
	if user.Role == models.RoleAdmin {
		create = h.users.CreateFirstUser
	}

	if err := create(ctx, user); err != nil {
		if errors.Is(err, storage.ErrNotFirstUser) {
			h.logger.WarnContext(ctx, "admin self-registration rejected", slog.String("username", user.Username))
			h.sendError(w, "Only an administrator can create admin accounts", http.StatusForbidden)
			return
		}
		h.fail(ctx, w, err, "user")
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", user.Role))

	h.respondWithToken(w, r, user, "User registered successfully", http.StatusCreated)
}

// Signin обрабатывает POST /auth/signin
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SigninRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, err, "user")
		return
	}

	user, err := h.users.GetUserByEmail(ctx, validation.NormalizeEmail(req.Email))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		h.fail(ctx, w, err, "user")
		return
	}

	var hash string
	if user != nil {
		hash = user.HashedPass
	} else {
		hash = h.dummyHash()
	}

	// одинаковый ответ для неизвестного email и неверного пароля
	if !h.hasher.Verify(req.Password, hash) || user == nil {
		h.logger.WarnContext(ctx, "failed sign in attempt")
		h.sendError(w, "Incorrect email or password", http.StatusUnauthorized)
		return
	}

	h.logger.InfoContext(ctx, "user signed in", slog.String("user_id", user.ID))
	h.respondWithToken(w, r, user, "Signed in successfully", http.StatusOK)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, user *models.User, message string, status int) {
	token, expiresAt, err := h.tokens.Issue(identityOf(user))
	if err != nil {
		h.fail(r.Context(), w, err, "token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     api.TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	h.sendJSON(w, api.AuthResponse{
		Success:   true,
		Message:   message,
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, status)
}

// Signout обрабатывает POST /auth/signout
// Токен stateless: выход означает удаление cookie на клиенте
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(api.TokenCookieName); err != nil || c.Value == "" {
		h.sendError(w, "No user logged in", http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     api.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	h.send(w, http.StatusOK, "Signed out successfully", "", nil)
}

// Me обрабатывает GET /user/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUserByID(r.Context(), id.ID)
	if err != nil {
		h.fail(r.Context(), w, err, "user")
		return
	}

	h.sendJSON(w, api.MeResponse{Success: true, Message: "Current user", User: user}, http.StatusOK)
}

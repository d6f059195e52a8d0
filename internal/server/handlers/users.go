package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/avatar"
	"github.com/iudanet/learnhub/internal/server/patch"
	"github.com/iudanet/learnhub/internal/server/storage"
	"github.com/iudanet/learnhub/pkg/api"
)

// AvatarPresigner выдает URL для загрузки аватара
type AvatarPresigner interface {
	PresignUpload(ctx context.Context, userID, contentType string) (*avatar.Upload, error)
}

// UserHandler управляет пользователями (admin) и аватаром текущего пользователя
type UserHandler struct {
	base
	users   storage.UserStorage
	hasher  PasswordHasher
	avatars AvatarPresigner
}

// NewUserHandler создает handler пользователей; avatars может быть nil, если S3 не настроен
func NewUserHandler(logger *slog.Logger, users storage.UserStorage, hasher PasswordHasher, avatars AvatarPresigner) *UserHandler {
	return &UserHandler{
		base:    base{logger: logger},
		users:   users,
		hasher:  hasher,
		avatars: avatars,
	}
}

// List обрабатывает GET /user
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.fail(r.Context(), w, err, "user")
		return
	}
	h.send(w, http.StatusOK, "Users retrieved successfully", "users", users)
}

// Get обрабатывает GET /user/{user_id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "user_id")
	if err != nil {
		h.fail(ctx, w, err, "user")
		return
	}

	user, err := h.users.GetUserByID(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "user")
		return
	}
	h.send(w, http.StatusOK, "User retrieved successfully", "user", user)
}

// Create обрабатывает POST /user: администратор может сразу задать роль
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	if err := h.users.CreateUser(ctx, user); err != nil {
		h.fail(ctx, w, err, "user")
		return
	}

	h.logger.InfoContext(ctx, "user created", slog.String("user_id", user.ID), slog.String("role", user.Role))
	h.send(w, http.StatusCreated, "User created successfully", "user", user)
}

// Update обрабатывает PATCH /user/{user_id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "user_id")
	if err != nil {
		h.fail(ctx, w, err, "user")
		return
	}

	current, err := h.users.GetUserByID(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "user")
		return
	}

	applyPatch(h.base, w, r, userSchema, current, "user", "user",
		func(ctx context.Context, upd *patch.Update) (*models.User, error) {
			return h.users.UpdateUser(ctx, id, upd)
		})
}

// Delete обрабатывает DELETE /user/{user_id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "user_id")
	if err != nil {
		h.fail(ctx, w, err, "user")
		return
	}

	if err := h.users.DeleteUser(ctx, id); err != nil {
		h.fail(ctx, w, err, "user")
		return
	}

	h.logger.InfoContext(ctx, "user deleted", slog.String("user_id", id))
	h.send(w, http.StatusOK, "User deleted successfully", "", nil)
}

// UploadPhoto обрабатывает POST /user/photo
// Возвращает presigned PUT URL; personal_photo сразу указывает на будущий объект
func (h *UserHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	if h.avatars == nil {
		h.sendError(w, "avatar uploads are not configured", http.StatusNotImplemented)
		return
	}

	var req api.PhotoUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, err, "photo")
		return
	}

	upload, err := h.avatars.PresignUpload(ctx, id.ID, req.ContentType)
	if err != nil {
		h.fail(ctx, w, err, "photo")
		return
	}

	if _, err := h.users.SetUserPhoto(ctx, id.ID, upload.PublicURL); err != nil {
		h.fail(ctx, w, err, "user")
		return
	}

	h.sendJSON(w, api.PhotoUploadResponse{
		Success:   true,
		Message:   "Upload the photo with PUT to upload_url",
		UploadURL: upload.URL,
		PhotoURL:  upload.PublicURL,
		ExpiresAt: upload.ExpiresAt,
	}, http.StatusOK)
}

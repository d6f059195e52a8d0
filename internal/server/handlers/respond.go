package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/learnhub/internal/server/jwt"
	"github.com/iudanet/learnhub/internal/server/patch"
	"github.com/iudanet/learnhub/internal/server/storage"
	"github.com/iudanet/learnhub/internal/validation"
	"github.com/iudanet/learnhub/pkg/api"
)

// envelope общий формат ответа: {success, message, <entity>}
type envelope map[string]any

// base содержит общие для всех handler'ов методы ответа
type base struct {
	logger *slog.Logger
}

func (b base) sendJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		b.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// send отвечает успешным конвертом; key может быть пустым, если payload не нужен
func (b base) send(w http.ResponseWriter, status int, message, key string, payload any) {
	env := envelope{"success": true, "message": message}
	if key != "" {
		env[key] = payload
	}
	b.sendJSON(w, env, status)
}

func (b base) sendError(w http.ResponseWriter, message string, status int) {
	b.sendJSON(w, api.ErrorResponse{Success: false, Message: message}, status)
}

func (b base) sendValidation(w http.ResponseWriter, verr *validation.Error) {
	b.sendJSON(w, api.ErrorResponse{
		Success: false,
		Field:   verr.Field,
		Rule:    verr.Rule,
		Message: verr.Error(),
	}, http.StatusBadRequest)
}

// fail переводит ошибку валидации или хранилища в HTTP ответ.
// what - имя сущности для сообщений ("course", "lesson").
func (b base) fail(ctx context.Context, w http.ResponseWriter, err error, what string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		b.sendValidation(w, verr)
	case errors.Is(err, storage.ErrNotFound):
		b.sendError(w, what+" not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrAlreadyExists):
		b.sendJSON(w, api.ErrorResponse{
			Success: false,
			Field:   storage.ConstraintColumn(err),
			Rule:    "unique",
			Message: what + " already exists",
		}, http.StatusConflict)
	case errors.Is(err, storage.ErrReferenceNotFound):
		msg := "referenced row not found"
		if col := storage.ConstraintColumn(err); col != "" {
			msg = "referenced " + col + " not found"
		}
		b.sendJSON(w, api.ErrorResponse{
			Success: false,
			Field:   storage.ConstraintColumn(err),
			Rule:    "exists",
			Message: msg,
		}, http.StatusNotFound)
	case errors.Is(err, storage.ErrCheckFailed):
		b.sendJSON(w, api.ErrorResponse{
			Success: false,
			Field:   storage.ConstraintColumn(err),
			Rule:    "check",
			Message: what + " violates a data constraint",
		}, http.StatusBadRequest)
	default:
		b.logger.ErrorContext(ctx, "request failed", slog.String("entity", what), slog.Any("error", err))
		b.sendError(w, "internal server error", http.StatusInternalServerError)
	}
}

// identity возвращает identity из контекста; без нее запрос не должен был дойти до handler
func (b base) identity(w http.ResponseWriter, r *http.Request) (*jwt.Identity, bool) {
	id, ok := jwt.IdentityFrom(r.Context())
	if !ok {
		b.logger.ErrorContext(r.Context(), "handler reached without identity", slog.String("path", r.URL.Path))
		b.sendError(w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}
	return id, true
}

// normalizer приводит тело запроса к каноническому виду до валидации
type normalizer interface {
	Normalize()
}

// decodeJSON читает тело запроса в v и проверяет теги validate
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &validation.Error{Rule: "json", Message: "invalid request body: " + err.Error()}
	}
	if n, ok := v.(normalizer); ok {
		n.Normalize()
	}
	return validation.Struct(v)
}

// pathUUID читает uuid из пути
func pathUUID(r *http.Request, name string) (string, error) {
	id := r.PathValue(name)
	if err := validation.ValidateUUID(name, id); err != nil {
		return "", err
	}
	return id, nil
}

// pathInt64 читает целочисленный id из пути (skills)
func pathInt64(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &validation.Error{Field: name, Rule: "int", Message: "must be a positive integer"}
	}
	return id, nil
}

// applyPatch общий сценарий PATCH: разобрать тело, построить минимальный UPDATE,
// при отсутствии изменений вернуть текущую строку без обращения к хранилищу.
func applyPatch[R any](
	b base,
	w http.ResponseWriter,
	r *http.Request,
	schema *patch.Schema[R],
	current R,
	what, key string,
	update func(ctx context.Context, upd *patch.Update) (R, error),
) {
	ctx := r.Context()

	body, err := patch.DecodeBody(r.Body)
	if err != nil {
		b.fail(ctx, w, err, what)
		return
	}

	upd, err := schema.Build(current, body)
	if err != nil {
		b.fail(ctx, w, err, what)
		return
	}

	if upd.Empty() {
		b.sendJSON(w, envelope{
			"success":   true,
			"message":   "No changes detected",
			"unchanged": upd.Unchanged,
			key:         current,
		}, http.StatusOK)
		return
	}

	updated, err := update(ctx, upd)
	if err != nil {
		b.fail(ctx, w, err, what)
		return
	}

	b.logger.InfoContext(ctx, what+" updated", slog.Any("columns", upd.Columns()))

	resp := envelope{
		"success": true,
		"message": capitalize(what) + " updated successfully",
		key:       updated,
	}
	if len(upd.Unchanged) > 0 {
		resp["unchanged"] = upd.Unchanged
	}
	b.sendJSON(w, resp, http.StatusOK)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

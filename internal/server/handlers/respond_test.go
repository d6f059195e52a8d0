package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/learnhub/internal/server/storage"
	"github.com/iudanet/learnhub/internal/validation"
)

func TestBase_Fail(t *testing.T) {
	tests := []struct {
		err         error
		name        string
		wantMessage string
		wantField   string
		wantRule    string
		wantStatus  int
	}{
		{
			name:        "validation",
			err:         &validation.Error{Field: "title", Rule: "min=3", Message: "must be at least 3 characters long"},
			wantStatus:  http.StatusBadRequest,
			wantField:   "title",
			wantRule:    "min=3",
			wantMessage: "title must be at least 3 characters long",
		},
		{
			name:        "not found",
			err:         fmt.Errorf("lookup: %w", storage.ErrNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: "course not found",
		},
		{
			name:        "unique",
			err:         &storage.ConstraintError{Err: storage.ErrAlreadyExists, Column: "title"},
			wantStatus:  http.StatusConflict,
			wantField:   "title",
			wantRule:    "unique",
			wantMessage: "course already exists",
		},
		{
			name:        "foreign key with column",
			err:         &storage.ConstraintError{Err: storage.ErrReferenceNotFound, Column: "quiz_id"},
			wantStatus:  http.StatusNotFound,
			wantField:   "quiz_id",
			wantRule:    "exists",
			wantMessage: "referenced quiz_id not found",
		},
		{
			name:        "foreign key without column",
			err:         &storage.ConstraintError{Err: storage.ErrReferenceNotFound},
			wantStatus:  http.StatusNotFound,
			wantRule:    "exists",
			wantMessage: "referenced row not found",
		},
		{
			name:        "check",
			err:         &storage.ConstraintError{Err: storage.ErrCheckFailed},
			wantStatus:  http.StatusBadRequest,
			wantRule:    "check",
			wantMessage: "course violates a data constraint",
		},
		{
			name:        "internal",
			err:         errors.New("disk I/O error"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "internal server error",
		},
	}

	b := base{logger: setupTestLogger()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			b.fail(context.Background(), w, tt.err, "course")

			require.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Equal(t, tt.wantField, resp.Field)
			assert.Equal(t, tt.wantRule, resp.Rule)
		})
	}
}

func TestBase_Send(t *testing.T) {
	b := base{logger: setupTestLogger()}

	w := httptest.NewRecorder()
	b.send(w, http.StatusCreated, "Created", "thing", map[string]int{"n": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success": true, "message": "Created", "thing": {"n": 1}}`, w.Body.String())

	w = httptest.NewRecorder()
	b.send(w, http.StatusOK, "Done", "", nil)
	assert.JSONEq(t, `{"success": true, "message": "Done"}`, w.Body.String())
}

func TestPathInt64(t *testing.T) {
	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.SetPathValue("skill_id", raw)
		_, err := pathInt64(req, "skill_id")
		var verr *validation.Error
		assert.ErrorAs(t, err, &verr, "input %q", raw)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetPathValue("skill_id", "42")
	id, err := pathInt64(req, "skill_id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Lesson progress", capitalize("lesson progress"))
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "Quiz", capitalize("Quiz"))
}

package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecovery(t *testing.T) {
	tests := []struct {
		handler        http.HandlerFunc
		name           string
		expectedStatus int
	}{
		{
			name: "normal handler",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "panic with string",
			handler: func(w http.ResponseWriter, r *http.Request) {
				panic("something went wrong")
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "panic with custom type",
			handler: func(w http.ResponseWriter, r *http.Request) {
				panic(struct{ msg string }{"critical error"})
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "nil map write",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var m map[string]int
				m["boom"] = 1
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Recovery(setupTestLogger())(tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			assert.NotPanics(t, func() { handler.ServeHTTP(w, req) })
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusInternalServerError {
				resp := decodeError(t, w.Body.String())
				assert.False(t, resp.Success)
				assert.Equal(t, "internal server error", resp.Message)
			}
		})
	}
}

func TestRecovery_RepanicsAbortHandler(t *testing.T) {
	handler := Recovery(setupTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.Panics(t, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestRecovery_LogsStackTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	}))

	req := httptest.NewRequest(http.MethodPost, "/course", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "panic recovered")
	assert.Contains(t, out, "test panic")
	assert.Contains(t, out, `"path":"/course"`)
	assert.Contains(t, out, "stack")
}

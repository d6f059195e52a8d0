package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/iudanet/learnhub/pkg/api"
)

// writeError отвечает конвертом {success:false, message} до того, как запрос дойдет до handler
func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Success: false, Message: message})
}

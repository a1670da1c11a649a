package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/sells-group/adphone/internal/apperr"
)

// Response messages.
const (
	MsgPhoneNotFound    = "Номер телефона не найден в объявлении"
	MsgMethodNotAllowed = "Method not allowed"
	msgParseFailed      = "Ошибка парсинга: "
	msgDatabaseError    = "Database error: "
)

const (
	corsMaxAge     = 86400
	parseMethods   = "POST, OPTIONS"
	historyMethods = "GET, OPTIONS"
)

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPStatus maps an error kind to its response status code.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case apperr.IsValidation(err):
		return http.StatusBadRequest
	case apperr.IsStore(err), apperr.IsConfiguration(err):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// preflight answers OPTIONS with an empty body and the CORS headers for methods.
func preflight(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", methods)
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Access-Control-Max-Age", strconv.Itoa(corsMaxAge))
		w.WriteHeader(http.StatusOK)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

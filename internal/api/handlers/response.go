package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int     `json:"code"`
	Message string  `json:"message"`
	Reason  *string `json:"reason,omitempty"`
}

// DecodeJSON декодирует тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return render.DecodeJSON(r.Body, v)
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondNoContent ответ 204 без тела
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

// RespondBadRequest ответ 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondNotFound ответ 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict ответ 409 с машиночитаемой причиной
func RespondConflict(w http.ResponseWriter, message, reason string) {
	RespondJSON(w, http.StatusConflict, ErrorResponse{
		Code:    http.StatusConflict,
		Message: message,
		Reason:  &reason,
	})
}

// RespondTooManyRequests ответ 429
func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

// RespondServiceUnavailable ответ 503
func RespondServiceUnavailable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusServiceUnavailable, message)
}

// RespondInternalError ответ 500 без деталей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

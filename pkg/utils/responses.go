package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// MessageBody is returned by endpoints that only report an outcome.
type MessageBody struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

// ResponseJSON writes payload as JSON with the given status code
func ResponseJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusOK, data)
}

// returns 201 Created with {id, message}
func ResponseCreated(w http.ResponseWriter, id, message string) {
	ResponseJSON(w, http.StatusCreated, MessageBody{ID: id, Message: message})
}

// returns 200 OK with {message}
func ResponseMessage(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusOK, MessageBody{Message: message})
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, fields map[string]string) {
	ResponseJSON(w, http.StatusBadRequest, ErrorBody{Error: message, Fields: fields})
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusUnauthorized, ErrorBody{Error: message})
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusForbidden, ErrorBody{Error: message})
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusNotFound, ErrorBody{Error: message})
}

// returns 429 Too Many Requests
func ResponseTooManyRequests(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusTooManyRequests, ErrorBody{Error: message})
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusInternalServerError, ErrorBody{Error: message})
}

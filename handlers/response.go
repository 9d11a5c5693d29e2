package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"rama-crm/apiclient"
	"rama-crm/logging"

	"github.com/gorilla/mux"
)

// result is the body of every view server response. Data is the view model
// state after the action, whether it succeeded or not.
type result struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.Errorf("Event ID: RESPONSE_ENCODE_FAILED, Description: %v", err)
	}
}

// respond writes data together with the outcome of the action that produced
// it.
func respond(w http.ResponseWriter, data any, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, result{Success: true, Data: data})
		return
	}

	var verr *apiclient.ValidationError
	var aerr *apiclient.AuthError
	var gerr *apiclient.GenericError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, result{Data: data, Errors: verr.Fields})
	case errors.As(err, &aerr):
		writeJSON(w, http.StatusUnauthorized, result{Data: data, Message: aerr.Message})
	case errors.As(err, &gerr):
		writeJSON(w, upstreamStatus(gerr.StatusCode), result{Data: data, Message: gerr.Message})
	default:
		writeJSON(w, http.StatusInternalServerError, result{Data: data, Message: apiclient.ResError(err.Error())})
	}
}

// upstreamStatus keeps client errors of the remote API and reports
// everything else as a bad gateway.
func upstreamStatus(code int) int {
	if code >= 400 && code < 500 {
		return code
	}
	return http.StatusBadGateway
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, result{Message: "Invalid request body"})
		return false
	}
	return true
}

func badID(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, result{Message: "Invalid id"})
}

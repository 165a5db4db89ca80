// Package response - JSON-ответы и разбор тела запроса.
package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, apiError{
		Error:   code,
		Message: message,
	})
}

// DecodeJSON reads a single JSON object into dst. On failure it writes 400 and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	return decode(w, r, dst, false)
}

// DecodeOptionalJSON is DecodeJSON for requests whose body may be empty.
// An empty body leaves dst untouched, whatever Content-Length says.
func DecodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	return decode(w, r, dst, true)
}

func decode(w http.ResponseWriter, r *http.Request, dst any, optional bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		WriteError(w, http.StatusBadRequest, "bad_request", "invalid json body: "+err.Error())
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		WriteError(w, http.StatusBadRequest, "bad_request", "invalid json body: extra data after json")
		return false
	}
	return true
}

package response

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name   string
		input  string
		ok     bool
		status int
	}{
		{name: "valid", input: `{"name":"Center"}`, ok: true, status: http.StatusOK},
		{name: "unknown field", input: `{"title":"Center"}`, ok: false, status: http.StatusBadRequest},
		{name: "extra data", input: `{"name":"a"}{"name":"b"}`, ok: false, status: http.StatusBadRequest},
		{name: "broken", input: `{"name":`, ok: false, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.input))
			w := httptest.NewRecorder()

			var dst body
			require.Equal(t, tt.ok, DecodeJSON(w, r, &dst))
			require.Equal(t, tt.status, w.Code)
		})
	}
}

func TestDecodeOptionalJSON(t *testing.T) {
	type body struct {
		ID int64 `json:"id"`
	}

	tests := []struct {
		name   string
		input  string
		length int64
		ok     bool
		want   int64
	}{
		{name: "empty", input: "", length: 0, ok: true},
		{name: "empty chunked", input: "", length: -1, ok: true},
		{name: "chunked", input: `{"id":4}`, length: -1, ok: true, want: 4},
		{name: "valid", input: `{"id":4}`, length: 8, ok: true, want: 4},
		{name: "unknown field", input: `{"name":"a"}`, length: -1, ok: false},
		{name: "broken", input: `{"id":`, length: -1, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.input))
			r.ContentLength = tt.length
			w := httptest.NewRecorder()

			var dst body
			require.Equal(t, tt.ok, DecodeOptionalJSON(w, r, &dst))
			if tt.ok {
				require.Equal(t, tt.want, dst.ID)
			} else {
				require.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}

	// Для обязательного тела пустой запрос - ошибка
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	w := httptest.NewRecorder()
	var dst body
	require.False(t, DecodeJSON(w, r, &dst))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, http.StatusNotFound, "not_found", "autosalon not found")

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.JSONEq(t, `{"error":"not_found","message":"autosalon not found"}`, w.Body.String())
}
